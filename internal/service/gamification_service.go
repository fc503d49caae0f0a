package service

import (
	"gameforge/internal/domain"
	"gameforge/internal/models"
	"gameforge/internal/repository"

	"go.uber.org/zap"
)

type GamificationService struct {
	log      *zap.SugaredLogger
	users    *repository.UserRepository
	repo     *repository.GamificationRepository
	notifier *NotificationService
}

func NewGamificationService(
	log *zap.SugaredLogger,
	users *repository.UserRepository,
	repo *repository.GamificationRepository,
	notifier *NotificationService,
) *GamificationService {
	return &GamificationService{log: log, users: users, repo: repo, notifier: notifier}
}

// AwardXP adds XP, then grants any badges the new total unlocks and
// announces level-ups. Negative amounts are ignored: XP never decreases.
func (s *GamificationService) AwardXP(userID uint, amount int64) error {
	if amount <= 0 {
		return nil
	}
	before, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if err := s.users.AddXP(userID, amount); err != nil {
		return err
	}
	newXP := before.XP + amount

	if domain.LevelForXP(newXP) > domain.LevelForXP(before.XP) && s.notifier != nil {
		s.notifier.NotifyLevelUp(userID, domain.LevelForXP(newXP))
	}

	earnable, err := s.repo.EarnableBadges(userID, newXP)
	if err != nil {
		s.log.Errorw("badge lookup failed", "user_id", userID, "error", err)
		return nil
	}
	for _, badge := range earnable {
		if err := s.repo.AwardBadge(userID, badge.ID); err != nil {
			s.log.Errorw("badge award failed", "user_id", userID, "badge", badge.Name, "error", err)
			continue
		}
		if s.notifier != nil {
			s.notifier.NotifyBadgeAwarded(userID, badge.Name)
		}
	}
	return nil
}

type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
}

func (s *GamificationService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	users, err := s.repo.Leaderboard(limit)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:   u.ID,
			Username: u.Username,
			XP:       u.XP,
			Level:    u.Level(),
		})
	}
	return entries, nil
}

func (s *GamificationService) UserBadges(userID uint) ([]models.UserBadge, error) {
	return s.repo.ListUserBadges(userID)
}
