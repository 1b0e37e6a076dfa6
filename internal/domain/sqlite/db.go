package sqlite

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"microblog/internal/domain/entity"
)

// Open initializes the database at the given path and migrates the schema.
// Foreign keys are enforced so writes with an unresolved identity are rejected
// by the store, and TranslateError surfaces constraint violations as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func Open(dbPath string) (*gorm.DB, error) {
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.APIKey{},
		&entity.Tweet{},
		&entity.Follow{},
		&entity.Attachment{},
		&entity.Like{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
