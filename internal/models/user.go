package models

import (
	"time"

	"gameforge/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index;default:'MEMBER'" json:"role"` // MEMBER | ADMIN
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"`                       // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	Bio          string         `gorm:"type:text" json:"bio"`
	XP           int64          `gorm:"not null;default:0;index" json:"xp"`
	Title        string         `gorm:"size:64" json:"title"`
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Badges []UserBadge `gorm:"foreignKey:UserID" json:"badges,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }

// Level is derived from XP, never stored.
func (u *User) Level() int { return domain.LevelForXP(u.XP) }
