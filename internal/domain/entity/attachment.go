package entity

// Attachment is an uploaded media file. It is created unbound (TweetID nil) and
// linked to a tweet at tweet-creation time. Deleting the tweet clears the link
// but keeps the row, so the stored file stays addressable.
type Attachment struct {
	ID      int64  `gorm:"primaryKey"`
	Link    string `gorm:"size:100;not null"`
	TweetID *int64 `gorm:"index"`

	Tweet *Tweet `gorm:"foreignKey:TweetID;constraint:OnDelete:SET NULL"`
}
