package handler

import (
	"net/http"
	"strconv"

	"gameforge/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	gamification *service.GamificationService
}

func NewLeaderboardHandler(gamification *service.GamificationService) *LeaderboardHandler {
	return &LeaderboardHandler{gamification: gamification}
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	entries, err := h.gamification.Leaderboard(limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to load leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
