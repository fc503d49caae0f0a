package models

import (
	"time"

	"gorm.io/gorm"
)

type Channel struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Channel) TableName() string {
	return "channels"
}

// Post is forum content. Deleted is the moderation flag (soft delete): the
// row stays for the audit trail, the body is hidden from listings.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ChannelID uint           `gorm:"not null;index" json:"channel_id"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Deleted   bool           `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Channel Channel `gorm:"foreignKey:ChannelID" json:"-"`
	Author  User    `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	Deleted   bool           `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Post   Post `gorm:"foreignKey:PostID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
