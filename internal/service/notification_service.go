package service

import (
	"encoding/json"
	"fmt"
	"time"

	"gameforge/internal/domain"
	"gameforge/internal/models"
	"gameforge/internal/repository"
	"gameforge/internal/ws"
)

type NotificationService struct {
	repo *repository.NotificationRepository
	hub  *ws.Hub
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	n := &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastToUser(userID, map[string]interface{}{
			"type":         "notification",
			"notification": n,
		})
	}
	return nil
}

func (s *NotificationService) NotifySanctioned(userID uint, sanctionType, reason string, expiresAt *time.Time) {
	switch sanctionType {
	case domain.SanctionWarning:
		_ = s.Notify(userID, "WARNING", "You received a warning",
			"A moderator issued you a warning: "+reason, map[string]interface{}{"reason": reason})
	case domain.SanctionTemporaryBan:
		body := "Your account has been temporarily suspended: " + reason
		data := map[string]interface{}{"reason": reason}
		if expiresAt != nil {
			data["expires_at"] = expiresAt
		}
		_ = s.Notify(userID, "TEMP_BAN", "Account suspended", body, data)
	case domain.SanctionPermanentBan:
		_ = s.Notify(userID, "PERM_BAN", "Account banned",
			"Your account has been permanently banned: "+reason, map[string]interface{}{"reason": reason})
	}
}

func (s *NotificationService) NotifyContentRemoved(userID uint, contentType string, contentID uint, reason string) {
	_ = s.Notify(userID, "CONTENT_REMOVED", "Content removed",
		fmt.Sprintf("Your %s was removed by a moderator: %s", contentType, reason),
		map[string]interface{}{"content_type": contentType, "content_id": contentID, "reason": reason})
}

func (s *NotificationService) NotifyBanLifted(userID uint) {
	_ = s.Notify(userID, "BAN_LIFTED", "Suspension lifted",
		"Your temporary suspension has expired. Welcome back.", nil)
}

func (s *NotificationService) NotifyBadgeAwarded(userID uint, badgeName string) {
	_ = s.Notify(userID, "BADGE_AWARDED", "Badge earned",
		"You earned the "+badgeName+" badge!", map[string]interface{}{"badge": badgeName})
}

func (s *NotificationService) NotifyLevelUp(userID uint, level int) {
	_ = s.Notify(userID, "LEVEL_UP", "Level up",
		fmt.Sprintf("You reached level %d!", level), map[string]interface{}{"level": level})
}
