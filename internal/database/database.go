package database

import (
	"errors"
	"time"

	"gameforge/config"
	"gameforge/internal/domain"
	"gameforge/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.Post{},
		&models.Comment{},
		&models.Report{},
		&models.Sanction{},
		&models.ModerationAction{},
		&models.Notification{},
		&models.Badge{},
		&models.UserBadge{},
	)
}

// SeedAdmin ensures one admin account exists so the back office is reachable
// on a fresh install. Password defaults to a generated-looking constant the
// operator is expected to change; prefer setting it via config.
func SeedAdmin(db *gorm.DB, cfg *config.ModerationConfig) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	password := cfg.SeedAdminPassword
	if password == "" {
		return errors.New("no admin exists and moderation.seedadminpassword is unset")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     "admin",
		Email:        cfg.SeedAdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	return db.Create(admin).Error
}
