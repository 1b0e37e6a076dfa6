package repository

import (
	"gorm.io/gorm"

	"microblog/internal/domain/entity"
)

type DefaultFollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *DefaultFollowRepository {
	return &DefaultFollowRepository{db: db}
}

// Create inserts the edge as-is. Duplicate pairs are rejected by the unique
// index and come back as gorm.ErrDuplicatedKey; an unresolved follower id
// violates the users foreign key instead.
func (f *DefaultFollowRepository) Create(follow *entity.Follow) error {
	return f.db.Create(follow).Error
}

// Delete removes the directed edge and reports how many rows matched, so the
// caller can distinguish "unfollowed" from "was not following".
func (f *DefaultFollowRepository) Delete(followerID, followingID int64) (int64, error) {
	result := f.db.
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Delete(&entity.Follow{})
	return result.RowsAffected, result.Error
}

func (f *DefaultFollowRepository) FollowerIDsOf(userID int64) ([]int64, error) {
	var ids []int64
	err := f.db.Model(&entity.Follow{}).
		Where("following_user_id = ?", userID).
		Pluck("follower_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (f *DefaultFollowRepository) FollowingIDsOf(userID int64) ([]int64, error) {
	var ids []int64
	err := f.db.Model(&entity.Follow{}).
		Where("follower_user_id = ?", userID).
		Pluck("following_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
