package service_test

import (
	"testing"
	"time"

	"gameforge/internal/domain"
	"gameforge/internal/models"
	"gameforge/internal/repository"
	"gameforge/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newModerationService(db *gorm.DB) *service.ModerationService {
	return service.NewModerationService(
		db,
		testLogger(),
		repository.NewUserRepository(db),
		repository.NewReportRepository(db),
		repository.NewContentRepository(db),
		nil,
	)
}

func TestResolveReportDismissLeavesNoTrace(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	reporter := seedUser(t, db, "reporter", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, reporter.ID, domain.ContentTypePost, post.ID)

	result, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionDismiss, "not actionable")
	require.NoError(t, err)
	require.Equal(t, domain.ReportStatusDismissed, result.Status)

	var got models.Report
	require.NoError(t, db.First(&got, report.ID).Error)
	require.Equal(t, domain.ReportStatusDismissed, got.Status)
	require.NotNil(t, got.ResolvedBy)
	require.Equal(t, admin.ID, *got.ResolvedBy)
	require.NotNil(t, got.ResolvedAt)
	require.Equal(t, "not actionable", got.ResolutionNotes)

	// Dismissal changes nothing but the report itself.
	var sanctions, audits int64
	db.Model(&models.Sanction{}).Count(&sanctions)
	db.Model(&models.ModerationAction{}).Count(&audits)
	require.Zero(t, sanctions)
	require.Zero(t, audits)

	var gotPost models.Post
	require.NoError(t, db.First(&gotPost, post.ID).Error)
	require.False(t, gotPost.Deleted)
}

func TestResolveReportDeleteSoftDeletesContent(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, admin.ID, domain.ContentTypePost, post.ID)

	_, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionDelete, "")
	require.NoError(t, err)

	var gotPost models.Post
	require.NoError(t, db.First(&gotPost, post.ID).Error)
	require.True(t, gotPost.Deleted)

	var audit models.ModerationAction
	require.NoError(t, db.First(&audit).Error)
	require.Equal(t, domain.ModActionDelete, audit.Action)
	require.Equal(t, domain.ContentTypePost, audit.ContentType)
	require.Equal(t, post.ID, audit.ContentID)
	require.Equal(t, admin.ID, audit.ModeratorID)

	var sanctions int64
	db.Model(&models.Sanction{}).Count(&sanctions)
	require.Zero(t, sanctions)
}

func TestResolveReportDeleteComment(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	comment := seedComment(t, db, post.ID, author.ID)
	report := seedReport(t, db, admin.ID, domain.ContentTypeComment, comment.ID)

	_, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionDelete, "")
	require.NoError(t, err)

	var gotComment models.Comment
	require.NoError(t, db.First(&gotComment, comment.ID).Error)
	require.True(t, gotComment.Deleted)

	var gotPost models.Post
	require.NoError(t, db.First(&gotPost, post.ID).Error)
	require.False(t, gotPost.Deleted)
}

func TestResolveReportWarnSanctionsAuthor(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, admin.ID, domain.ContentTypePost, post.ID)

	_, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionWarn, "first strike")
	require.NoError(t, err)

	var sanction models.Sanction
	require.NoError(t, db.First(&sanction).Error)
	require.Equal(t, author.ID, sanction.UserID)
	require.Equal(t, admin.ID, sanction.ModeratorID)
	require.Equal(t, domain.SanctionWarning, sanction.Type)
	require.Nil(t, sanction.ExpiresAt)

	// A warning never locks the account.
	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	require.True(t, gotAuthor.IsActive)

	var audit models.ModerationAction
	require.NoError(t, db.First(&audit).Error)
	require.Equal(t, domain.ModActionWarn, audit.Action)
}

func TestResolveReportBanDeactivatesAuthor(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, admin.ID, domain.ContentTypePost, post.ID)

	before := time.Now()
	result, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionBan, "spam")
	require.NoError(t, err)
	require.Equal(t, domain.ReportStatusResolved, result.Status)

	var got models.Report
	require.NoError(t, db.First(&got, report.ID).Error)
	require.Equal(t, domain.ReportStatusResolved, got.Status)
	require.Equal(t, "spam", got.ResolutionNotes)

	var sanction models.Sanction
	require.NoError(t, db.First(&sanction).Error)
	require.Equal(t, domain.SanctionTemporaryBan, sanction.Type)
	require.NotNil(t, sanction.ExpiresAt)
	require.WithinDuration(t, before.Add(domain.ReportBanDuration), *sanction.ExpiresAt, 5*time.Second)

	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	require.False(t, gotAuthor.IsActive)

	var audit models.ModerationAction
	require.NoError(t, db.First(&audit).Error)
	require.Equal(t, domain.ModActionBan, audit.Action)
	require.Equal(t, post.ID, audit.ContentID)
}

func TestResolveReportRequiresAdmin(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	member := seedUser(t, db, "member", domain.RoleMember)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, member.ID, domain.ContentTypePost, post.ID)

	_, err := svc.ResolveReport(member.ID, report.ID, domain.ResolveActionDismiss, "")
	require.ErrorIs(t, err, service.ErrUnauthorized)

	var got models.Report
	require.NoError(t, db.First(&got, report.ID).Error)
	require.Equal(t, domain.ReportStatusPending, got.Status)
}

func TestResolveReportRejectsUnknownAction(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, admin.ID, domain.ContentTypePost, post.ID)

	_, err := svc.ResolveReport(admin.ID, report.ID, "obliterate", "")
	require.ErrorIs(t, err, service.ErrInvalidAction)
}

func TestResolveReportOnlyOnce(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, admin.ID, domain.ContentTypePost, post.ID)

	_, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionDismiss, "")
	require.NoError(t, err)

	// The second resolution must not change the outcome of the first.
	_, err = svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionBan, "")
	require.ErrorIs(t, err, service.ErrNotFound)

	var got models.Report
	require.NoError(t, db.First(&got, report.ID).Error)
	require.Equal(t, domain.ReportStatusDismissed, got.Status)

	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	require.True(t, gotAuthor.IsActive)
}

func TestResolveReportMissingReport(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)

	_, err := svc.ResolveReport(admin.ID, 9999, domain.ResolveActionDismiss, "")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestResolveReportMissingContent(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	report := seedReport(t, db, admin.ID, domain.ContentTypePost, 4242)

	_, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionWarn, "")
	require.ErrorIs(t, err, service.ErrNotFound)

	// Nothing was applied, so the report must still be workable.
	var got models.Report
	require.NoError(t, db.First(&got, report.ID).Error)
	require.Equal(t, domain.ReportStatusPending, got.Status)
}

func TestResolveReportRollsBackOnSanctionFailure(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	author := seedUser(t, db, "author", domain.RoleMember)
	post := seedPost(t, db, author.ID)
	report := seedReport(t, db, admin.ID, domain.ContentTypePost, post.ID)

	// Sabotage the sanction insert so the transaction fails mid-flight.
	require.NoError(t, db.Migrator().DropTable(&models.Sanction{}))

	_, err := svc.ResolveReport(admin.ID, report.ID, domain.ResolveActionWarn, "")
	require.ErrorIs(t, err, service.ErrInternal)

	// The status update in the same transaction must have been undone.
	var got models.Report
	require.NoError(t, db.First(&got, report.ID).Error)
	require.Equal(t, domain.ReportStatusPending, got.Status)
	require.Nil(t, got.ResolvedBy)

	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	require.True(t, gotAuthor.IsActive)
}

func TestCreateSanctionTemporaryBan(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	target := seedUser(t, db, "target", domain.RoleMember)

	before := time.Now()
	sanction, err := svc.CreateSanction(admin.ID, target.ID, domain.SanctionTemporaryBan, "harassment", "repeat offender", "48")
	require.NoError(t, err)
	require.NotNil(t, sanction.ExpiresAt)
	require.WithinDuration(t, before.Add(48*time.Hour), *sanction.ExpiresAt, 5*time.Second)

	var gotTarget models.User
	require.NoError(t, db.First(&gotTarget, target.ID).Error)
	require.False(t, gotTarget.IsActive)

	var audit models.ModerationAction
	require.NoError(t, db.First(&audit).Error)
	require.Equal(t, domain.SanctionTemporaryBan, audit.Action)
	require.Equal(t, "user", audit.ContentType)
	require.Equal(t, target.ID, audit.ContentID)
}

func TestCreateSanctionPermanentBanNeedsNoDuration(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	target := seedUser(t, db, "target", domain.RoleMember)

	sanction, err := svc.CreateSanction(admin.ID, target.ID, domain.SanctionPermanentBan, "ban evasion", "", "")
	require.NoError(t, err)
	require.Nil(t, sanction.ExpiresAt)

	var gotTarget models.User
	require.NoError(t, db.First(&gotTarget, target.ID).Error)
	require.False(t, gotTarget.IsActive)
}

func TestCreateSanctionWarningKeepsAccountActive(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	target := seedUser(t, db, "target", domain.RoleMember)

	sanction, err := svc.CreateSanction(admin.ID, target.ID, domain.SanctionWarning, "tone it down", "", "")
	require.NoError(t, err)
	require.Nil(t, sanction.ExpiresAt)

	var gotTarget models.User
	require.NoError(t, db.First(&gotTarget, target.ID).Error)
	require.True(t, gotTarget.IsActive)
}

func TestCreateSanctionValidation(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)
	target := seedUser(t, db, "target", domain.RoleMember)

	cases := []struct {
		name     string
		typ      string
		reason   string
		duration string
		want     error
	}{
		{"unknown type", "shadow_ban", "r", "1", service.ErrInvalidType},
		{"blank reason", domain.SanctionWarning, "   ", "", service.ErrMissingReason},
		{"non-numeric duration", domain.SanctionTemporaryBan, "r", "abc", service.ErrInvalidDuration},
		{"zero duration", domain.SanctionTemporaryBan, "r", "0", service.ErrInvalidDuration},
		{"negative duration", domain.SanctionTemporaryBan, "r", "-3", service.ErrInvalidDuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSanction(admin.ID, target.ID, tc.typ, tc.reason, "", tc.duration)
			require.ErrorIs(t, err, tc.want)
		})
	}

	// None of the rejected calls may have left a row behind.
	var sanctions, audits int64
	db.Model(&models.Sanction{}).Count(&sanctions)
	db.Model(&models.ModerationAction{}).Count(&audits)
	require.Zero(t, sanctions)
	require.Zero(t, audits)
}

func TestCreateSanctionSelfTarget(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)

	_, err := svc.CreateSanction(admin.ID, admin.ID, domain.SanctionWarning, "oops", "", "")
	require.ErrorIs(t, err, service.ErrSelfSanction)
}

func TestCreateSanctionMissingTarget(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)

	_, err := svc.CreateSanction(admin.ID, 9999, domain.SanctionWarning, "gone", "", "")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateSanctionRequiresAdmin(t *testing.T) {
	db := openTestDB(t)
	svc := newModerationService(db)
	member := seedUser(t, db, "member", domain.RoleMember)
	target := seedUser(t, db, "target", domain.RoleMember)

	_, err := svc.CreateSanction(member.ID, target.ID, domain.SanctionWarning, "r", "", "")
	require.ErrorIs(t, err, service.ErrUnauthorized)
}
