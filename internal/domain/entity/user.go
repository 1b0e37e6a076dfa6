package entity

// User is the root entity of the platform; every other row references it by id.
type User struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:20;not null"`
}
