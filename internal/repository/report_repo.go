package repository

import (
	"gameforge/internal/domain"
	"gameforge/internal/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// HasPendingByReporter reports whether the reporter already has an open
// report against the same content.
func (r *ReportRepository) HasPendingByReporter(reporterID uint, contentType string, contentID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Report{}).
		Where("reporter_id = ? AND content_type = ? AND content_id = ? AND status = ?",
			reporterID, contentType, contentID, domain.ReportStatusPending).
		Count(&c).Error
	return c > 0, err
}

// ReportFilter is the typed filter spec for admin report listings; each set
// field becomes one parameterized predicate.
type ReportFilter struct {
	Status      string
	ContentType string
	ReporterID  uint
}

func (f ReportFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ContentType != "" {
		q = q.Where("content_type = ?", f.ContentType)
	}
	if f.ReporterID != 0 {
		q = q.Where("reporter_id = ?", f.ReporterID)
	}
	return q
}

func (r *ReportRepository) List(filter ReportFilter, page, limit int) ([]models.Report, int64, error) {
	q := filter.Apply(r.db.Model(&models.Report{}))
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Report
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func (r *ReportRepository) CountPending() (int64, error) {
	var c int64
	err := r.db.Model(&models.Report{}).Where("status = ?", domain.ReportStatusPending).Count(&c).Error
	return c, err
}
