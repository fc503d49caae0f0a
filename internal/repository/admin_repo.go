package repository

import (
	"time"

	"gameforge/internal/domain"
	"gameforge/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	TotalPosts     int64 `json:"total_posts"`
	TotalComments  int64 `json:"total_comments"`
	PendingReports int64 `json:"pending_reports"`
	ActiveBans     int64 `json:"active_bans"`
	TotalSanctions int64 `json:"total_sanctions"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats(now time.Time) (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.User{}).Count(&s.TotalUsers)
	r.db.Model(&models.User{}).Where("is_active = ?", true).Count(&s.ActiveUsers)
	r.db.Model(&models.Post{}).Where("deleted = ?", false).Count(&s.TotalPosts)
	r.db.Model(&models.Comment{}).Where("deleted = ?", false).Count(&s.TotalComments)
	r.db.Model(&models.Report{}).Where("status = ?", domain.ReportStatusPending).Count(&s.PendingReports)
	r.db.Model(&models.Sanction{}).Count(&s.TotalSanctions)
	r.db.Model(&models.Sanction{}).
		Where("type = ? OR (type = ? AND expires_at > ?)",
			domain.SanctionPermanentBan, domain.SanctionTemporaryBan, now).
		Count(&s.ActiveBans)
	return &s, nil
}

// UserFilter is the typed filter spec for the admin user listing. Every set
// field is translated to one parameterized predicate; free text never
// reaches the SQL string.
type UserFilter struct {
	Search string // matched against username and email
	Role   string
	Active *bool
}

func (f UserFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	return q
}

func (r *AdminRepository) ListUsers(filter UserFilter, page, limit int) ([]models.User, int64, error) {
	q := filter.Apply(r.db.Model(&models.User{}))
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

func (r *AdminRepository) GetUserByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.Preload("Badges.Badge").First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepository) UpdateUser(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// UserSignupsByDay returns one point per day over the trailing window.
func (r *AdminRepository) UserSignupsByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.User{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").Order("date").
		Scan(&points).Error
	return points, err
}

func (r *AdminRepository) ReportsByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.Report{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").Order("date").
		Scan(&points).Error
	return points, err
}
