package repository

import (
	"time"

	"gameforge/internal/domain"
	"gameforge/internal/models"

	"gorm.io/gorm"
)

type SanctionRepository struct {
	db *gorm.DB
}

func NewSanctionRepository(db *gorm.DB) *SanctionRepository {
	return &SanctionRepository{db: db}
}

func (r *SanctionRepository) Create(s *models.Sanction) error {
	return r.db.Create(s).Error
}

func (r *SanctionRepository) ListByUser(userID uint, limit, offset int) ([]models.Sanction, error) {
	var list []models.Sanction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// ExpiredBanUserIDs returns users who are deactivated, whose temporary bans
// have all expired, and who hold no permanent ban. These accounts are due
// for reactivation by the sweep job.
func (r *SanctionRepository) ExpiredBanUserIDs(now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Sanction{}).
		Distinct("sanctions.user_id").
		Joins("JOIN users ON users.id = sanctions.user_id AND users.is_active = ?", false).
		Where("sanctions.type = ? AND sanctions.expires_at <= ?", domain.SanctionTemporaryBan, now).
		Where("NOT EXISTS (SELECT 1 FROM sanctions s2 WHERE s2.user_id = sanctions.user_id AND (s2.type = ? OR (s2.type = ? AND s2.expires_at > ?)))",
			domain.SanctionPermanentBan, domain.SanctionTemporaryBan, now).
		Pluck("sanctions.user_id", &ids).Error
	return ids, err
}

func (r *SanctionRepository) CountActiveBans(now time.Time) (int64, error) {
	var c int64
	err := r.db.Model(&models.Sanction{}).
		Where("type = ? OR (type = ? AND expires_at > ?)",
			domain.SanctionPermanentBan, domain.SanctionTemporaryBan, now).
		Count(&c).Error
	return c, err
}
