package repository

import (
	"time"

	"gameforge/internal/models"

	"gorm.io/gorm"
)

type GamificationRepository struct {
	db *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) *GamificationRepository {
	return &GamificationRepository{db: db}
}

func (r *GamificationRepository) CreateBadge(b *models.Badge) error {
	return r.db.Create(b).Error
}

func (r *GamificationRepository) ListBadges() ([]models.Badge, error) {
	var list []models.Badge
	err := r.db.Order("xp_threshold").Find(&list).Error
	return list, err
}

// EarnableBadges returns badges the user qualifies for but has not been
// awarded yet.
func (r *GamificationRepository) EarnableBadges(userID uint, xp int64) ([]models.Badge, error) {
	var list []models.Badge
	err := r.db.Where("xp_threshold <= ?", xp).
		Where("id NOT IN (SELECT badge_id FROM user_badges WHERE user_id = ?)", userID).
		Find(&list).Error
	return list, err
}

func (r *GamificationRepository) AwardBadge(userID, badgeID uint) error {
	return r.db.Create(&models.UserBadge{UserID: userID, BadgeID: badgeID, AwardedAt: time.Now()}).Error
}

func (r *GamificationRepository) ListUserBadges(userID uint) ([]models.UserBadge, error) {
	var list []models.UserBadge
	err := r.db.Preload("Badge").Where("user_id = ?", userID).Order("awarded_at").Find(&list).Error
	return list, err
}

// Leaderboard returns the top active users by XP.
func (r *GamificationRepository) Leaderboard(limit int) ([]models.User, error) {
	var list []models.User
	err := r.db.Where("is_active = ?", true).Order("xp DESC").Limit(limit).Find(&list).Error
	return list, err
}
