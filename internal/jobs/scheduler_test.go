package jobs

import (
	"testing"
	"time"

	"gameforge/internal/database"
	"gameforge/internal/domain"
	"gameforge/internal/models"
	"gameforge/internal/repository"
	"gameforge/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLiftExpiredBans(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:jobs1?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mod := &models.User{Username: "mod", Email: "mod@example.com", PasswordHash: "x", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(mod).Error)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	served := &models.User{Username: "served", Email: "served@example.com", PasswordHash: "x", Role: domain.RoleMember, IsActive: false}
	require.NoError(t, db.Create(served).Error)
	require.NoError(t, db.Create(&models.Sanction{UserID: served.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &past}).Error)

	lifer := &models.User{Username: "lifer", Email: "lifer@example.com", PasswordHash: "x", Role: domain.RoleMember, IsActive: false}
	require.NoError(t, db.Create(lifer).Error)
	require.NoError(t, db.Create(&models.Sanction{UserID: lifer.ID, ModeratorID: mod.ID, Type: domain.SanctionPermanentBan, Reason: "r"}).Error)

	serving := &models.User{Username: "serving", Email: "serving@example.com", PasswordHash: "x", Role: domain.RoleMember, IsActive: false}
	require.NoError(t, db.Create(serving).Error)
	require.NoError(t, db.Create(&models.Sanction{UserID: serving.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &future}).Error)

	notifier := service.NewNotificationService(repository.NewNotificationRepository(db), nil)
	s := NewScheduler(zap.NewNop().Sugar(), repository.NewUserRepository(db), repository.NewSanctionRepository(db), notifier)
	s.liftExpiredBans()

	var gotServed models.User
	require.NoError(t, db.First(&gotServed, served.ID).Error)
	require.True(t, gotServed.IsActive)

	var gotLifer models.User
	require.NoError(t, db.First(&gotLifer, lifer.ID).Error)
	require.False(t, gotLifer.IsActive)

	// A ban still running is left alone.
	var gotServing models.User
	require.NoError(t, db.First(&gotServing, serving.ID).Error)
	require.False(t, gotServing.IsActive)

	// The reactivated user got told about it.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", served.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, "BAN_LIFTED", notifications[0].Type)

	// Sanction history stays intact after the sweep.
	var sanctionCount int64
	db.Model(&models.Sanction{}).Count(&sanctionCount)
	require.EqualValues(t, 3, sanctionCount)
}
