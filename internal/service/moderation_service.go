package service

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"gameforge/internal/domain"
	"gameforge/internal/models"
	"gameforge/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Failure taxonomy for the moderation workflow. Validation failures are
// detected before any write; persistence failures roll the whole
// transaction back and surface as ErrInternal.
var (
	ErrUnauthorized    = errors.New("admin role required")
	ErrNotFound        = errors.New("not found")
	ErrInvalidAction   = errors.New("invalid resolution action")
	ErrInvalidType     = errors.New("invalid sanction type")
	ErrInvalidDuration = errors.New("duration must be a positive number of hours")
	ErrMissingReason   = errors.New("reason must not be blank")
	ErrSelfSanction    = errors.New("cannot sanction yourself")
	ErrInternal        = errors.New("internal error")
)

type ModerationService struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	users    *repository.UserRepository
	reports  *repository.ReportRepository
	content  *repository.ContentRepository
	notifier *NotificationService
}

func NewModerationService(
	db *gorm.DB,
	log *zap.SugaredLogger,
	users *repository.UserRepository,
	reports *repository.ReportRepository,
	content *repository.ContentRepository,
	notifier *NotificationService,
) *ModerationService {
	return &ModerationService{
		db:       db,
		log:      log,
		users:    users,
		reports:  reports,
		content:  content,
		notifier: notifier,
	}
}

type ResolveResult struct {
	ReportID uint   `json:"report_id"`
	Action   string `json:"action"`
	Status   string `json:"status"`
}

// ResolveReport transitions a pending report to its terminal status and
// applies the chosen moderation side effect in one transaction. Concurrent
// resolutions of the same report are serialized by the conditional status
// update: the loser sees zero rows affected and fails with ErrNotFound.
func (s *ModerationService) ResolveReport(actorID, reportID uint, action, notes string) (*ResolveResult, error) {
	actor, err := s.users.GetByID(actorID)
	if err != nil || !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	var terminal string
	switch action {
	case domain.ResolveActionDismiss:
		terminal = domain.ReportStatusDismissed
	case domain.ResolveActionDelete, domain.ResolveActionWarn, domain.ResolveActionBan:
		terminal = domain.ReportStatusResolved
	default:
		return nil, ErrInvalidAction
	}

	report, err := s.reports.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	// An already-terminal report is indistinguishable from a missing one:
	// re-resolution is disallowed either way.
	if report.Status != domain.ReportStatusPending {
		return nil, ErrNotFound
	}

	ref, err := repository.ParseContentRef(report.ContentType, report.ContentID)
	if err != nil {
		return nil, ErrInternal
	}

	var details *repository.ContentDetails
	if action != domain.ResolveActionDismiss {
		// The content must still exist for any side-effecting action. A race
		// with an out-of-band hard delete fails the whole call rather than
		// marking the report resolved with nothing applied.
		details, err = s.content.Details(ref)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, ErrInternal
		}
	}

	now := time.Now()
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, domain.ReportStatusPending).
			Updates(map[string]interface{}{
				"status":           terminal,
				"resolved_by":      actor.ID,
				"resolved_at":      now,
				"resolution_notes": notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var label string
		switch action {
		case domain.ResolveActionDelete:
			if err := s.content.SoftDeleteTx(tx, ref); err != nil {
				return err
			}
			label = domain.ModActionDelete
		case domain.ResolveActionWarn:
			expiry := (*time.Time)(nil)
			if err := s.applySanction(tx, actor.ID, details.AuthorID, domain.SanctionWarning,
				"reported: "+report.Reason, "issued while resolving report #"+strconv.FormatUint(uint64(report.ID), 10), expiry, now); err != nil {
				return err
			}
			label = domain.ModActionWarn
		case domain.ResolveActionBan:
			expiresAt := now.Add(domain.ReportBanDuration)
			if err := s.applySanction(tx, actor.ID, details.AuthorID, domain.SanctionTemporaryBan,
				"reported: "+report.Reason, "issued while resolving report #"+strconv.FormatUint(uint64(report.ID), 10), &expiresAt, now); err != nil {
				return err
			}
			label = domain.ModActionBan
		}

		if label != "" {
			payload, _ := json.Marshal(map[string]interface{}{
				"report_id": report.ID,
				"action":    action,
				"notes":     notes,
			})
			audit := &models.ModerationAction{
				ModeratorID: actor.ID,
				ContentType: report.ContentType,
				ContentID:   report.ContentID,
				Action:      label,
				Reason:      report.Reason,
				Notes:       string(payload),
			}
			if err := tx.Create(audit).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if isTaxonomyErr(txErr) {
			return nil, txErr
		}
		s.log.Errorw("report resolution rolled back", "report_id", reportID, "action", action, "error", txErr)
		return nil, ErrInternal
	}

	s.notifyResolution(action, report, details)

	return &ResolveResult{ReportID: report.ID, Action: action, Status: terminal}, nil
}

// CreateSanction is the direct sanction path. It shares applySanction with
// report resolution so expiry computation and guards cannot diverge.
func (s *ModerationService) CreateSanction(actorID, targetID uint, sanctionType, reason, description, durationHours string) (*models.Sanction, error) {
	actor, err := s.users.GetByID(actorID)
	if err != nil || !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if !domain.ValidSanctionType(sanctionType) {
		return nil, ErrInvalidType
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	now := time.Now()
	var expiresAt *time.Time
	if sanctionType == domain.SanctionTemporaryBan {
		hours, err := strconv.Atoi(strings.TrimSpace(durationHours))
		if err != nil || hours <= 0 {
			return nil, ErrInvalidDuration
		}
		t := now.Add(time.Duration(hours) * time.Hour)
		expiresAt = &t
	}

	var sanction *models.Sanction
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.applySanctionReturning(tx, actor.ID, targetID, sanctionType, strings.TrimSpace(reason), description, expiresAt, now)
		if err != nil {
			return err
		}
		sanction = created

		payload, _ := json.Marshal(map[string]interface{}{
			"sanction_id": created.ID,
			"type":        sanctionType,
			"description": description,
		})
		audit := &models.ModerationAction{
			ModeratorID: actor.ID,
			ContentType: "user",
			ContentID:   targetID,
			Action:      sanctionType,
			Reason:      strings.TrimSpace(reason),
			Notes:       string(payload),
		}
		return tx.Create(audit).Error
	})
	if txErr != nil {
		if isTaxonomyErr(txErr) {
			return nil, txErr
		}
		s.log.Errorw("sanction creation rolled back", "target_id", targetID, "type", sanctionType, "error", txErr)
		return nil, ErrInternal
	}

	if s.notifier != nil {
		s.notifier.NotifySanctioned(targetID, sanctionType, sanction.Reason, sanction.ExpiresAt)
	}
	return sanction, nil
}

// applySanction inserts the sanction row and deactivates the target for ban
// types. Validation happens here so both call sites enforce identical
// invariants.
func (s *ModerationService) applySanction(tx *gorm.DB, moderatorID, targetID uint, sanctionType, reason, description string, expiresAt *time.Time, now time.Time) error {
	_, err := s.applySanctionReturning(tx, moderatorID, targetID, sanctionType, reason, description, expiresAt, now)
	return err
}

func (s *ModerationService) applySanctionReturning(tx *gorm.DB, moderatorID, targetID uint, sanctionType, reason, description string, expiresAt *time.Time, now time.Time) (*models.Sanction, error) {
	if targetID == moderatorID {
		return nil, ErrSelfSanction
	}
	var target models.User
	if err := tx.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, ErrInvalidDuration
	}

	sanction := &models.Sanction{
		UserID:      targetID,
		ModeratorID: moderatorID,
		Type:        sanctionType,
		Reason:      reason,
		Description: description,
		ExpiresAt:   expiresAt,
	}
	if err := tx.Create(sanction).Error; err != nil {
		return nil, err
	}

	if sanctionType == domain.SanctionTemporaryBan || sanctionType == domain.SanctionPermanentBan {
		if err := tx.Model(&models.User{}).Where("id = ?", targetID).Update("is_active", false).Error; err != nil {
			return nil, err
		}
	}
	return sanction, nil
}

// notifyResolution tells the content author what happened, outside the
// transaction; a lost notification is acceptable, a half-applied sanction
// is not.
func (s *ModerationService) notifyResolution(action string, report *models.Report, details *repository.ContentDetails) {
	if s.notifier == nil || details == nil {
		return
	}
	switch action {
	case domain.ResolveActionDelete:
		s.notifier.NotifyContentRemoved(details.AuthorID, report.ContentType, report.ContentID, report.Reason)
	case domain.ResolveActionWarn:
		s.notifier.NotifySanctioned(details.AuthorID, domain.SanctionWarning, report.Reason, nil)
	case domain.ResolveActionBan:
		expiry := time.Now().Add(domain.ReportBanDuration)
		s.notifier.NotifySanctioned(details.AuthorID, domain.SanctionTemporaryBan, report.Reason, &expiry)
	}
}

func isTaxonomyErr(err error) bool {
	for _, known := range []error{
		ErrUnauthorized, ErrNotFound, ErrInvalidAction, ErrInvalidType,
		ErrInvalidDuration, ErrMissingReason, ErrSelfSanction,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
