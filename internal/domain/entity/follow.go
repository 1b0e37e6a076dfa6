package entity

// Follow is a directed edge between two users. The unique index on the pair is
// the sole mechanism preventing duplicate edges under concurrent writes.
type Follow struct {
	ID              int64 `gorm:"primaryKey"`
	FollowerUserID  int64 `gorm:"not null;uniqueIndex:idx_follows_follower_following"`
	FollowingUserID int64 `gorm:"not null;uniqueIndex:idx_follows_follower_following"`

	Follower  User `gorm:"foreignKey:FollowerUserID;constraint:OnDelete:CASCADE"`
	Following User `gorm:"foreignKey:FollowingUserID;constraint:OnDelete:CASCADE"`
}
