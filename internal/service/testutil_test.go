package service_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gameforge/config"
	"gameforge/internal/database"
	"gameforge/internal/domain"
	"gameforge/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// openTestDB gives each test its own in-memory database so fixtures never
// leak between tests sharing the process.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "gameforge-test",
		},
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint) *models.Post {
	t.Helper()

	ch := &models.Channel{Name: "General", Slug: fmt.Sprintf("general-%d", testDBSeq.Add(1))}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("seed channel: %v", err)
	}
	p := &models.Post{ChannelID: ch.ID, AuthorID: authorID, Title: "hello", Body: "first post"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func seedComment(t *testing.T, db *gorm.DB, postID, authorID uint) *models.Comment {
	t.Helper()

	c := &models.Comment{PostID: postID, AuthorID: authorID, Body: "nice post"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return c
}

func seedReport(t *testing.T, db *gorm.DB, reporterID uint, contentType string, contentID uint) *models.Report {
	t.Helper()

	r := &models.Report{
		ContentType: contentType,
		ContentID:   contentID,
		ReporterID:  reporterID,
		Reason:      "spam",
		Status:      domain.ReportStatusPending,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}
	return r
}
