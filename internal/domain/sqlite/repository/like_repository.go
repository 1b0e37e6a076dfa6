package repository

import (
	"gorm.io/gorm"

	"microblog/internal/domain/entity"
)

type DefaultLikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *DefaultLikeRepository {
	return &DefaultLikeRepository{db: db}
}

// Create inserts the (tweet, user) edge; the unique index rejects duplicates.
func (l *DefaultLikeRepository) Create(like *entity.Like) error {
	return l.db.Create(like).Error
}

// Delete removes the edge and reports how many rows matched.
func (l *DefaultLikeRepository) Delete(tweetID, userID int64) (int64, error) {
	result := l.db.
		Where("tweet_id = ? AND user_id = ?", tweetID, userID).
		Delete(&entity.Like{})
	return result.RowsAffected, result.Error
}

func (l *DefaultLikeRepository) DeleteByTweetID(tweetID int64) error {
	return l.db.Where("tweet_id = ?", tweetID).Delete(&entity.Like{}).Error
}

func (l *DefaultLikeRepository) FindByTweetID(tweetID int64) ([]*entity.Like, error) {
	var likes []*entity.Like
	err := l.db.Where("tweet_id = ?", tweetID).Order("id").Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}
