package handler

import (
	"net/http"
	"strconv"
	"strings"

	"gameforge/internal/middleware"
	"gameforge/internal/repository"
	"gameforge/internal/service"
	"gameforge/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MeHandler struct {
	userRepo     *repository.UserRepository
	gamification *service.GamificationService
	cloud        cloudinary.Client
}

func NewMeHandler(userRepo *repository.UserRepository, gamification *service.GamificationService, cloud cloudinary.Client) *MeHandler {
	return &MeHandler{userRepo: userRepo, gamification: gamification, cloud: cloud}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}
	badges, _ := h.gamification.UserBadges(userID)
	c.JSON(http.StatusOK, gin.H{
		"user":   u,
		"level":  u.Level(),
		"badges": badges,
	})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Bio   string `json:"bio"`
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}
	u.Bio = req.Bio
	u.Title = req.Title
	if err := h.userRepo.Update(u); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "update failed")
		return
	}
	c.JSON(http.StatusOK, u)
}

// UploadAvatar stores the avatar in Cloudinary and saves the URL.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	if h.cloud == nil {
		respondError(c, http.StatusServiceUnavailable, CodeInternal, "media uploads not configured")
		return
	}
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "file required")
		return
	}
	folder := "gameforge/avatars/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "avatar_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "could not read file")
		return
	}
	defer f.Close()

	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "upload failed")
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}
	u.AvatarURL = url
	if err := h.userRepo.Update(u); err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
