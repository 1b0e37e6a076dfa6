package entity

// APIKey maps an opaque credential string to its owner. A user may hold several
// keys; a key belongs to exactly one user. Keys are static, never rotated.
type APIKey struct {
	ID     int64  `gorm:"primaryKey"`
	Key    string `gorm:"column:api_key;size:64;not null;uniqueIndex"`
	UserID int64  `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (APIKey) TableName() string {
	return "api_keys"
}
