package domain

import "time"

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

// Report lifecycle. A report leaves "pending" exactly once and never returns.
const (
	ReportStatusPending   = "pending"
	ReportStatusDismissed = "dismissed"
	ReportStatusResolved  = "resolved"
)

// Actions an admin can take when resolving a report.
const (
	ResolveActionDismiss = "dismiss"
	ResolveActionDelete  = "resolve_delete"
	ResolveActionWarn    = "resolve_warn"
	ResolveActionBan     = "resolve_ban"
)

const (
	SanctionWarning      = "warning"
	SanctionTemporaryBan = "temporary_ban"
	SanctionPermanentBan = "permanent_ban"
)

// Moderation audit action labels.
const (
	ModActionDelete = "delete"
	ModActionWarn   = "warn"
	ModActionBan    = "ban"
	ModActionUpdate = "update"
	ModActionCreate = "create"
)

const (
	ContentTypePost    = "post"
	ContentTypeComment = "comment"
)

// ReportBanDuration is the fixed temporary-ban length applied when a report
// is resolved with resolve_ban. Direct sanctions take an explicit duration.
const ReportBanDuration = 24 * time.Hour

// XP awards. XP only ever goes up.
const (
	XPPostCreated    = 10
	XPCommentCreated = 5
)

// XPPerLevel drives LevelForXP. The back office and the API must agree on
// one formula, so it lives here and nowhere else.
const XPPerLevel = 100

// LevelForXP returns the level for a given XP total: level 1 at 0 XP, one
// level per XPPerLevel.
func LevelForXP(xp int64) int {
	return int(xp/XPPerLevel) + 1
}

func ValidSanctionType(t string) bool {
	switch t {
	case SanctionWarning, SanctionTemporaryBan, SanctionPermanentBan:
		return true
	}
	return false
}

func ValidContentType(t string) bool {
	return t == ContentTypePost || t == ContentTypeComment
}
