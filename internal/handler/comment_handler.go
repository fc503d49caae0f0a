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

type CommentHandler struct {
	content      *repository.ContentRepository
	gamification *service.GamificationService
}

func NewCommentHandler(content *repository.ContentRepository, gamification *service.GamificationService) *CommentHandler {
	return &CommentHandler{content: content, gamification: gamification}
}

func (h *CommentHandler) Create(c *gin.Context) {
	authorID := middleware.GetUserID(c)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid post id")
		return
	}
	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	post, err := h.content.GetPost(uint(postID))
	if err != nil || post.Deleted {
		respondError(c, http.StatusNotFound, CodeNotFound, "post not found")
		return
	}
	comment := &models.Comment{
		PostID:   uint(postID),
		AuthorID: authorID,
		Body:     req.Body,
	}
	if err := h.content.CreateComment(comment); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to create comment")
		return
	}
	_ = h.gamification.AwardXP(authorID, domain.XPCommentCreated)
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) List(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "invalid post id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	comments, err := h.content.ListComments(uint(postID), limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to list comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
