package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"gameforge/internal/domain"
	"gameforge/internal/middleware"
	"gameforge/internal/models"
	"gameforge/internal/repository"
	"gameforge/internal/service"
	"gameforge/internal/ws"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminRepo    *repository.AdminRepository
	reportRepo   *repository.ReportRepository
	sanctionRepo *repository.SanctionRepository
	auditRepo    *repository.AuditLogRepository
	moderation   *service.ModerationService
	hub          *ws.Hub
}

func NewAdminHandler(
	adminRepo *repository.AdminRepository,
	reportRepo *repository.ReportRepository,
	sanctionRepo *repository.SanctionRepository,
	auditRepo *repository.AuditLogRepository,
	moderation *service.ModerationService,
	hub *ws.Hub,
) *AdminHandler {
	return &AdminHandler{
		adminRepo:    adminRepo,
		reportRepo:   reportRepo,
		sanctionRepo: sanctionRepo,
		auditRepo:    auditRepo,
		moderation:   moderation,
		hub:          hub,
	}
}

// Dashboard handles GET /admin/dashboard — overview stats.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats(time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to load stats")
		return
	}
	connected := 0
	if h.hub != nil {
		connected = h.hub.ConnectedUsers()
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"connected_users": connected,
	})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		filter.Active = &active
	}
	page, limit := parsePagination(c)
	users, total, err := h.adminRepo.ListUsers(filter, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid id")
		return
	}
	u, err := h.adminRepo.GetUserByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUser handles PATCH /admin/users/:id — safe fields only, and an admin
// cannot change their own role through this endpoint.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid id")
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	allowed := map[string]bool{"role": true, "username": true, "title": true}
	safe := make(map[string]interface{})
	for k, v := range updates {
		if allowed[k] {
			safe[k] = v
		}
	}
	if len(safe) == 0 {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "no valid fields to update")
		return
	}
	if _, ok := safe["role"]; ok && uint(id) == middleware.GetUserID(c) {
		respondError(c, http.StatusBadRequest, CodeSelfSanction, "cannot change your own role")
		return
	}
	if err := h.adminRepo.UpdateUser(uint(id), safe); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "update failed")
		return
	}
	payload, _ := json.Marshal(safe)
	if err := h.auditRepo.Create(&models.ModerationAction{
		ModeratorID: middleware.GetUserID(c),
		ContentType: "user",
		ContentID:   uint(id),
		Action:      domain.ModActionUpdate,
		Notes:       string(payload),
	}); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListReports handles GET /admin/reports.
func (h *AdminHandler) ListReports(c *gin.Context) {
	filter := repository.ReportFilter{
		Status:      c.Query("status"),
		ContentType: c.Query("content_type"),
	}
	page, limit := parsePagination(c)
	list, total, err := h.reportRepo.List(filter, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list reports")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ResolveReport handles PUT /admin/reports/:id — the transactional
// moderation workflow.
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid id")
		return
	}
	var req struct {
		Action          string `json:"action" binding:"required"`
		ResolutionNotes string `json:"resolution_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	result, err := h.moderation.ResolveReport(middleware.GetUserID(c), uint(id), req.Action, req.ResolutionNotes)
	if err != nil {
		respondModerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateSanction handles POST /admin/users/:id/sanctions — the direct
// sanction path.
func (h *AdminHandler) CreateSanction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid id")
		return
	}
	var req struct {
		Type        string `json:"type" binding:"required"`
		Reason      string `json:"reason" binding:"required"`
		Description string `json:"description"`
		Duration    string `json:"duration"` // hours, required for temporary_ban
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	sanction, err := h.moderation.CreateSanction(middleware.GetUserID(c), uint(id), req.Type, req.Reason, req.Description, req.Duration)
	if err != nil {
		respondModerationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sanction)
}

// ListSanctions handles GET /admin/users/:id/sanctions.
func (h *AdminHandler) ListSanctions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.sanctionRepo.ListByUser(uint(id), limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list sanctions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// ListModerationLog handles GET /admin/moderation-log.
func (h *AdminHandler) ListModerationLog(c *gin.Context) {
	filter := repository.AuditFilter{
		Action:      c.Query("action"),
		ContentType: c.Query("content_type"),
	}
	if v := c.Query("moderator_id"); v != "" {
		id, _ := strconv.ParseUint(v, 10, 64)
		filter.ModeratorID = uint(id)
	}
	page, limit := parsePagination(c)
	list, total, err := h.auditRepo.List(filter, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list moderation log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Analytics handles GET /admin/analytics?days=30.
func (h *AdminHandler) Analytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 || days > 365 {
		days = 30
	}
	signups, _ := h.adminRepo.UserSignupsByDay(days)
	reports, _ := h.adminRepo.ReportsByDay(days)
	c.JSON(http.StatusOK, gin.H{
		"signups": signups,
		"reports": reports,
		"days":    days,
	})
}
