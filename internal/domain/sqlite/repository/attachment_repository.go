package repository

import (
	"errors"

	"gorm.io/gorm"

	"microblog/internal/domain/entity"
)

type DefaultAttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *DefaultAttachmentRepository {
	return &DefaultAttachmentRepository{db: db}
}

func (a *DefaultAttachmentRepository) Create(attachment *entity.Attachment) error {
	return a.db.Create(attachment).Error
}

func (a *DefaultAttachmentRepository) FindByID(id int64) (*entity.Attachment, error) {
	var attachment entity.Attachment
	err := a.db.First(&attachment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// BindUnbound links the given attachments to a tweet. Ids that do not exist or
// are already bound to a tweet are skipped silently.
func (a *DefaultAttachmentRepository) BindUnbound(ids []int64, tweetID int64) error {
	if len(ids) == 0 {
		return nil
	}
	return a.db.Model(&entity.Attachment{}).
		Where("id IN ? AND tweet_id IS NULL", ids).
		Update("tweet_id", tweetID).Error
}

// UnlinkByTweetID clears the tweet reference of all attachments bound to it.
// The rows stay, so uploaded files remain addressable after the tweet is gone.
func (a *DefaultAttachmentRepository) UnlinkByTweetID(tweetID int64) error {
	return a.db.Model(&entity.Attachment{}).
		Where("tweet_id = ?", tweetID).
		Update("tweet_id", nil).Error
}
