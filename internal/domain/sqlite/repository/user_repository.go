package repository

import (
	"errors"

	"gorm.io/gorm"

	"microblog/internal/domain/entity"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

// ResolveAPIKey maps an opaque api key to its owner's user id. An unknown key
// resolves to 0, never an error: authorization is expressed as query filters
// downstream, so an invalid key simply matches no rows.
func (u *DefaultUserRepository) ResolveAPIKey(key string) (int64, error) {
	var apiKey entity.APIKey
	err := u.db.Where("api_key = ?", key).First(&apiKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}
	return apiKey.UserID, nil
}

func (u *DefaultUserRepository) FindByID(id int64) (*entity.User, error) {
	var user entity.User
	err := u.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindAllInIDs(ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var users []*entity.User
	err := u.db.Where("id IN ?", ids).Order("id").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u *DefaultUserRepository) Save(user *entity.User) error {
	return u.db.Save(user).Error
}
