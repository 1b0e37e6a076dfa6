package sqlite

import (
	"gorm.io/gorm"

	"microblog/internal/domain/entity"
)

// Seed creates the demo users, their static api keys and the initial follow
// graph. It is a no-op when the "test" key already exists.
func Seed(db *gorm.DB) error {
	var count int64
	err := db.Model(&entity.APIKey{}).Where("api_key = ?", "test").Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []*entity.User{
		{Name: "Irina"},
		{Name: "Alex"},
		{Name: "Olga"},
		{Name: "John"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		apiKeys := []*entity.APIKey{
			{Key: "test", UserID: users[0].ID},
			{Key: "test2", UserID: users[1].ID},
			{Key: "test3", UserID: users[2].ID},
			{Key: "test4", UserID: users[3].ID},
		}
		if err := tx.Create(&apiKeys).Error; err != nil {
			return err
		}

		follows := []*entity.Follow{
			{FollowerUserID: users[0].ID, FollowingUserID: users[1].ID},
			{FollowerUserID: users[0].ID, FollowingUserID: users[2].ID},
			{FollowerUserID: users[1].ID, FollowingUserID: users[0].ID},
			{FollowerUserID: users[1].ID, FollowingUserID: users[2].ID},
			{FollowerUserID: users[2].ID, FollowingUserID: users[0].ID},
			{FollowerUserID: users[2].ID, FollowingUserID: users[3].ID},
			{FollowerUserID: users[3].ID, FollowingUserID: users[0].ID},
			{FollowerUserID: users[3].ID, FollowingUserID: users[1].ID},
			{FollowerUserID: users[3].ID, FollowingUserID: users[2].ID},
		}
		return tx.Create(&follows).Error
	})
}
