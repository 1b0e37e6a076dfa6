package entity

// Like is a (tweet, user) edge. The unique index on the pair rejects a second
// like from the same user at the storage layer.
type Like struct {
	ID      int64 `gorm:"primaryKey"`
	TweetID int64 `gorm:"not null;uniqueIndex:idx_likes_tweet_user"`
	UserID  int64 `gorm:"not null;uniqueIndex:idx_likes_tweet_user"`

	Tweet Tweet `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
