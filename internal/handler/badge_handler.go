package handler

import (
	"net/http"

	"gameforge/internal/domain"
	"gameforge/internal/middleware"
	"gameforge/internal/models"
	"gameforge/internal/repository"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	repo  *repository.GamificationRepository
	audit *repository.AuditLogRepository
}

func NewBadgeHandler(repo *repository.GamificationRepository, audit *repository.AuditLogRepository) *BadgeHandler {
	return &BadgeHandler{repo: repo, audit: audit}
}

// List is public; members see what they can earn.
func (h *BadgeHandler) List(c *gin.Context) {
	badges, err := h.repo.ListBadges()
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list badges")
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// Create is admin-only. Existing users who already sit past the threshold
// pick the badge up on their next XP award.
func (h *BadgeHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description"`
		IconURL     string `json:"icon_url"`
		XPThreshold int64  `json:"xp_threshold" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	badge := &models.Badge{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		XPThreshold: req.XPThreshold,
	}
	if err := h.repo.CreateBadge(badge); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to create badge")
		return
	}
	if err := h.audit.Create(&models.ModerationAction{
		ModeratorID: middleware.GetUserID(c),
		ContentType: "badge",
		ContentID:   badge.ID,
		Action:      domain.ModActionCreate,
		Reason:      badge.Name,
	}); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to create badge")
		return
	}
	c.JSON(http.StatusCreated, badge)
}
