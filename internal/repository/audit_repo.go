package repository

import (
	"gameforge/internal/models"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(a *models.ModerationAction) error {
	return r.db.Create(a).Error
}

// AuditFilter narrows the moderation log listing.
type AuditFilter struct {
	ModeratorID uint
	Action      string
	ContentType string
}

func (f AuditFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.ModeratorID != 0 {
		q = q.Where("moderator_id = ?", f.ModeratorID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.ContentType != "" {
		q = q.Where("content_type = ?", f.ContentType)
	}
	return q
}

func (r *AuditLogRepository) List(filter AuditFilter, page, limit int) ([]models.ModerationAction, int64, error) {
	q := filter.Apply(r.db.Model(&models.ModerationAction{}))
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.ModerationAction
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
