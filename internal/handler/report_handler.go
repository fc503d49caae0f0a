package handler

import (
	"errors"
	"net/http"

	"gameforge/internal/domain"
	"gameforge/internal/middleware"
	"gameforge/internal/models"
	"gameforge/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportHandler struct {
	reports *repository.ReportRepository
	content *repository.ContentRepository
}

func NewReportHandler(reports *repository.ReportRepository, content *repository.ContentRepository) *ReportHandler {
	return &ReportHandler{reports: reports, content: content}
}

// Create files a report against a post or comment. Resolution happens in
// the admin back office.
func (h *ReportHandler) Create(c *gin.Context) {
	reporterID := middleware.GetUserID(c)
	var req struct {
		ContentType string `json:"content_type" binding:"required"`
		ContentID   uint   `json:"content_id" binding:"required"`
		Reason      string `json:"reason" binding:"required,max=100"`
		Details     string `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	ref, err := repository.ParseContentRef(req.ContentType, req.ContentID)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidType, "content_type must be post or comment")
		return
	}
	if _, err := h.content.Details(ref); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, CodeNotFound, "content not found")
			return
		}
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to submit report")
		return
	}
	dup, err := h.reports.HasPendingByReporter(reporterID, req.ContentType, req.ContentID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to submit report")
		return
	}
	if dup {
		respondError(c, http.StatusConflict, CodeBadRequest, "you already have a pending report for this content")
		return
	}
	report := &models.Report{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		ReporterID:  reporterID,
		Reason:      req.Reason,
		Details:     req.Details,
		Status:      domain.ReportStatusPending,
	}
	if err := h.reports.Create(report); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to submit report")
		return
	}
	c.JSON(http.StatusCreated, report)
}
