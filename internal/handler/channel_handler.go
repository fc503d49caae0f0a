package handler

import (
	"net/http"
	"strings"

	"gameforge/internal/domain"
	"gameforge/internal/middleware"
	"gameforge/internal/models"
	"gameforge/internal/repository"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	content *repository.ContentRepository
	audit   *repository.AuditLogRepository
}

func NewChannelHandler(content *repository.ContentRepository, audit *repository.AuditLogRepository) *ChannelHandler {
	return &ChannelHandler{content: content, audit: audit}
}

func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.content.ListChannels()
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list channels")
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

// Create is admin-only; channels are curated, not user-generated. Like any
// admin mutation, it leaves an audit row.
func (h *ChannelHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	ch := &models.Channel{
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: req.Description,
	}
	if err := h.content.CreateChannel(ch); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to create channel")
		return
	}
	if err := h.audit.Create(&models.ModerationAction{
		ModeratorID: middleware.GetUserID(c),
		ContentType: "channel",
		ContentID:   ch.ID,
		Action:      domain.ModActionCreate,
		Reason:      ch.Name,
	}); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to create channel")
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, s)
	return strings.Trim(s, "-")
}
