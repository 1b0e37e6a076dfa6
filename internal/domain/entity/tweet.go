package entity

import "time"

type Tweet struct {
	ID       int64     `gorm:"primaryKey"`
	Content  string    `gorm:"type:text;not null"`
	DateTime time.Time `gorm:"not null;index"`
	AuthorID int64     `gorm:"not null"`

	// Relations
	Author      User         `gorm:"foreignKey:AuthorID"`
	Attachments []Attachment `gorm:"foreignKey:TweetID"`
	Likes       []Like       `gorm:"foreignKey:TweetID"`
}
