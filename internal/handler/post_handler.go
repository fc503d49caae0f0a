package handler

import (
	"net/http"
	"strconv"

	"gameforge/internal/domain"
	"gameforge/internal/middleware"
	"gameforge/internal/models"
	"gameforge/internal/repository"
	"gameforge/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	content      *repository.ContentRepository
	gamification *service.GamificationService
}

func NewPostHandler(content *repository.ContentRepository, gamification *service.GamificationService) *PostHandler {
	return &PostHandler{content: content, gamification: gamification}
}

func (h *PostHandler) Create(c *gin.Context) {
	authorID := middleware.GetUserID(c)
	var req struct {
		ChannelID uint   `json:"channel_id" binding:"required"`
		Title     string `json:"title" binding:"required,max=255"`
		Body      string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	post := &models.Post{
		ChannelID: req.ChannelID,
		AuthorID:  authorID,
		Title:     req.Title,
		Body:      req.Body,
	}
	if err := h.content.CreatePost(post); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to create post")
		return
	}
	_ = h.gamification.AwardXP(authorID, domain.XPPostCreated)
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) List(c *gin.Context) {
	channelID, err := strconv.ParseUint(c.Param("channel_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid channel id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	posts, err := h.content.ListPosts(uint(channelID), limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid id")
		return
	}
	post, err := h.content.GetPost(uint(id))
	if err != nil || post.Deleted {
		respondError(c, http.StatusNotFound, CodeNotFound, "post not found")
		return
	}
	c.JSON(http.StatusOK, post)
}
