package models

import (
	"time"

	"gorm.io/gorm"
)

// Report is a user complaint about a post or comment. Status moves from
// pending to dismissed or resolved exactly once; ResolvedBy/ResolvedAt are
// set iff the status has left pending.
type Report struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ContentType     string         `gorm:"size:20;not null;index:idx_reports_content" json:"content_type"` // post | comment
	ContentID       uint           `gorm:"not null;index:idx_reports_content" json:"content_id"`
	ReporterID      uint           `gorm:"not null;index" json:"reporter_id"`
	Reason          string         `gorm:"size:100;not null" json:"reason"`
	Details         string         `gorm:"type:text" json:"details"`
	Status          string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ResolvedBy      *uint          `json:"resolved_by"`
	ResolvedAt      *time.Time     `json:"resolved_at"`
	ResolutionNotes string         `gorm:"type:text" json:"resolution_notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Reporter User `gorm:"foreignKey:ReporterID" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}

// Sanction is an immutable disciplinary record. ExpiresAt is set only for
// temporary bans and is strictly in the future at creation time.
type Sanction struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	ModeratorID uint       `gorm:"not null;index" json:"moderator_id"`
	Type        string     `gorm:"size:20;not null;index" json:"type"` // warning | temporary_ban | permanent_ban
	Reason      string     `gorm:"size:255;not null" json:"reason"`
	Description string     `gorm:"type:text" json:"description"`
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`

	User      User `gorm:"foreignKey:UserID" json:"-"`
	Moderator User `gorm:"foreignKey:ModeratorID" json:"-"`
}

func (Sanction) TableName() string {
	return "sanctions"
}

// ModerationAction is the append-only audit log: one row per mutating admin
// operation, never updated or deleted.
type ModerationAction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ModeratorID uint      `gorm:"not null;index" json:"moderator_id"`
	ContentType string    `gorm:"size:20;index:idx_mod_actions_content" json:"content_type"`
	ContentID   uint      `gorm:"index:idx_mod_actions_content" json:"content_id"`
	Action      string    `gorm:"size:50;not null;index" json:"action"`
	Reason      string    `gorm:"size:255" json:"reason"`
	Notes       string    `gorm:"type:text" json:"notes"` // JSON payload (report id, chosen action, free text)
	CreatedAt   time.Time `json:"created_at"`

	Moderator User `gorm:"foreignKey:ModeratorID" json:"-"`
}

func (ModerationAction) TableName() string {
	return "moderation_actions"
}
