package repository_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gameforge/internal/database"
	"gameforge/internal/domain"
	"gameforge/internal/models"
	"gameforge/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func newUser(t *testing.T, db *gorm.DB, username string, active bool) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         domain.RoleMember,
		IsActive:     active,
	}
	mustCreate(t, db, u)
	return u
}

func TestExpiredBanUserIDs(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSanctionRepository(db)
	mod := newUser(t, db, "mod", true)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	served := newUser(t, db, "served", false)
	mustCreate(t, db, &models.Sanction{UserID: served.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &past})

	stillBanned := newUser(t, db, "still-banned", false)
	mustCreate(t, db, &models.Sanction{UserID: stillBanned.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &future})

	// An expired temp ban does not lift a permanent one.
	permanent := newUser(t, db, "permanent", false)
	mustCreate(t, db, &models.Sanction{UserID: permanent.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &past})
	mustCreate(t, db, &models.Sanction{UserID: permanent.ID, ModeratorID: mod.ID, Type: domain.SanctionPermanentBan, Reason: "r"})

	// Two stacked temp bans: only the latest expiry counts.
	restacked := newUser(t, db, "restacked", false)
	mustCreate(t, db, &models.Sanction{UserID: restacked.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &past})
	mustCreate(t, db, &models.Sanction{UserID: restacked.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &future})

	ids, err := repo.ExpiredBanUserIDs(now)
	require.NoError(t, err)
	require.Equal(t, []uint{served.ID}, ids)
}

func TestCountActiveBans(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSanctionRepository(db)
	mod := newUser(t, db, "mod", true)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	a := newUser(t, db, "a", false)
	b := newUser(t, db, "b", false)
	c := newUser(t, db, "c", true)
	mustCreate(t, db, &models.Sanction{UserID: a.ID, ModeratorID: mod.ID, Type: domain.SanctionPermanentBan, Reason: "r"})
	mustCreate(t, db, &models.Sanction{UserID: b.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &future})
	mustCreate(t, db, &models.Sanction{UserID: c.ID, ModeratorID: mod.ID, Type: domain.SanctionTemporaryBan, Reason: "r", ExpiresAt: &past})
	mustCreate(t, db, &models.Sanction{UserID: c.ID, ModeratorID: mod.ID, Type: domain.SanctionWarning, Reason: "r"})

	count, err := repo.CountActiveBans(now)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestHasPendingByReporter(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewReportRepository(db)
	reporter := newUser(t, db, "reporter", true)

	has, err := repo.HasPendingByReporter(reporter.ID, domain.ContentTypePost, 1)
	require.NoError(t, err)
	require.False(t, has)

	mustCreate(t, db, &models.Report{ContentType: domain.ContentTypePost, ContentID: 1, ReporterID: reporter.ID, Reason: "spam", Status: domain.ReportStatusPending})

	has, err = repo.HasPendingByReporter(reporter.ID, domain.ContentTypePost, 1)
	require.NoError(t, err)
	require.True(t, has)

	// A resolved report no longer blocks a fresh one.
	require.NoError(t, db.Model(&models.Report{}).Where("reporter_id = ?", reporter.ID).
		Update("status", domain.ReportStatusResolved).Error)
	has, err = repo.HasPendingByReporter(reporter.ID, domain.ContentTypePost, 1)
	require.NoError(t, err)
	require.False(t, has)
}

func TestReportFilter(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewReportRepository(db)
	r1 := newUser(t, db, "r1", true)
	r2 := newUser(t, db, "r2", true)

	mustCreate(t, db, &models.Report{ContentType: domain.ContentTypePost, ContentID: 1, ReporterID: r1.ID, Reason: "spam", Status: domain.ReportStatusPending})
	mustCreate(t, db, &models.Report{ContentType: domain.ContentTypeComment, ContentID: 2, ReporterID: r1.ID, Reason: "abuse", Status: domain.ReportStatusResolved})
	mustCreate(t, db, &models.Report{ContentType: domain.ContentTypePost, ContentID: 3, ReporterID: r2.ID, Reason: "spam", Status: domain.ReportStatusPending})

	list, total, err := repo.List(repository.ReportFilter{Status: domain.ReportStatusPending}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, list, 2)

	list, total, err = repo.List(repository.ReportFilter{ContentType: domain.ContentTypeComment}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, uint(2), list[0].ContentID)

	_, total, err = repo.List(repository.ReportFilter{Status: domain.ReportStatusPending, ReporterID: r2.ID}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	_, total, err = repo.List(repository.ReportFilter{}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
}

func TestAuditFilter(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewAuditLogRepository(db)
	m1 := newUser(t, db, "m1", true)
	m2 := newUser(t, db, "m2", true)

	mustCreate(t, db, &models.ModerationAction{ModeratorID: m1.ID, ContentType: domain.ContentTypePost, ContentID: 1, Action: domain.ModActionDelete})
	mustCreate(t, db, &models.ModerationAction{ModeratorID: m1.ID, ContentType: "user", ContentID: 2, Action: domain.SanctionWarning})
	mustCreate(t, db, &models.ModerationAction{ModeratorID: m2.ID, ContentType: domain.ContentTypePost, ContentID: 3, Action: domain.ModActionBan})

	_, total, err := repo.List(repository.AuditFilter{ModeratorID: m1.ID}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	list, total, err := repo.List(repository.AuditFilter{Action: domain.ModActionBan}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, m2.ID, list[0].ModeratorID)

	_, total, err = repo.List(repository.AuditFilter{ContentType: domain.ContentTypePost, ModeratorID: m1.ID}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestParseContentRef(t *testing.T) {
	ref, err := repository.ParseContentRef(domain.ContentTypePost, 7)
	require.NoError(t, err)
	require.Equal(t, domain.ContentTypePost, ref.Kind())
	require.Equal(t, uint(7), ref.RefID())

	ref, err = repository.ParseContentRef(domain.ContentTypeComment, 9)
	require.NoError(t, err)
	require.Equal(t, domain.ContentTypeComment, ref.Kind())

	_, err = repository.ParseContentRef("channel", 1)
	require.Error(t, err)
}

func TestContentDetailsAndSoftDelete(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewContentRepository(db)
	author := newUser(t, db, "author", true)

	ch := &models.Channel{Name: "General", Slug: "general"}
	mustCreate(t, db, ch)
	post := &models.Post{ChannelID: ch.ID, AuthorID: author.ID, Title: "t", Body: "b"}
	mustCreate(t, db, post)
	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Body: "c"}
	mustCreate(t, db, comment)

	ref, err := repository.ParseContentRef(domain.ContentTypeComment, comment.ID)
	require.NoError(t, err)
	details, err := repo.Details(ref)
	require.NoError(t, err)
	require.Equal(t, author.ID, details.AuthorID)
	require.Equal(t, post.ID, details.ContainerID)

	require.NoError(t, repo.SoftDeleteTx(db, ref))
	var gotComment models.Comment
	require.NoError(t, db.First(&gotComment, comment.ID).Error)
	require.True(t, gotComment.Deleted)

	// The listing hides moderated comments but the row survives.
	visible, err := repo.ListComments(post.ID, 10, 0)
	require.NoError(t, err)
	require.Empty(t, visible)
}

func TestUserRepoXPAndActivation(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewUserRepository(db)
	u := newUser(t, db, "u", true)

	require.NoError(t, repo.AddXP(u.ID, 10))
	require.NoError(t, repo.AddXP(u.ID, 5))
	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 15, got.XP)

	require.NoError(t, repo.SetActive(u.ID, false))
	got, err = repo.GetByID(u.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}
