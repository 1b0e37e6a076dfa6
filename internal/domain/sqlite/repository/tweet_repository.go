package repository

import (
	"errors"

	"gorm.io/gorm"

	"microblog/internal/domain/entity"
)

type DefaultTweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *DefaultTweetRepository {
	return &DefaultTweetRepository{db: db}
}

func (t *DefaultTweetRepository) FindByID(id int64) (*entity.Tweet, error) {
	var tweet entity.Tweet
	err := t.db.First(&tweet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (t *DefaultTweetRepository) Create(tweet *entity.Tweet) error {
	return t.db.Create(tweet).Error
}

func (t *DefaultTweetRepository) Delete(tweet *entity.Tweet) error {
	return t.db.Delete(tweet).Error
}

// FeedFor selects the viewer's own tweets plus those of everyone the viewer
// follows, newest first (id breaks timestamp ties). Authors, attachments and
// likers are loaded alongside so the feed can be rendered without further
// queries.
func (t *DefaultTweetRepository) FeedFor(viewerID int64) ([]*entity.Tweet, error) {
	followings := t.db.Model(&entity.Follow{}).
		Select("following_user_id").
		Where("follower_user_id = ?", viewerID)

	var tweets []*entity.Tweet
	err := t.db.
		Preload("Author").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("attachments.id")
		}).
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.id")
		}).
		Preload("Likes.User").
		Where("author_id = ? OR author_id IN (?)", viewerID, followings).
		Order("date_time DESC").
		Order("id DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}
