package models

import (
	"time"

	"gorm.io/gorm"
)

// Badge is awarded automatically when a user's XP crosses XPThreshold.
type Badge struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string         `gorm:"size:255" json:"description"`
	IconURL     string         `gorm:"size:512" json:"icon_url"`
	XPThreshold int64          `gorm:"not null;index" json:"xp_threshold"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Badge) TableName() string {
	return "badges"
}

type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_badge,unique" json:"user_id"`
	BadgeID   uint      `gorm:"not null;index:idx_user_badge,unique" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
