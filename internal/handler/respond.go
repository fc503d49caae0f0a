package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gameforge/internal/service"

	"github.com/gin-gonic/gin"
)

// Error codes for the uniform {"error": {"code", "message"}} envelope.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidAction   = "INVALID_ACTION"
	CodeInvalidType     = "INVALID_TYPE"
	CodeInvalidDuration = "INVALID_DURATION"
	CodeMissingReason   = "MISSING_REASON"
	CodeSelfSanction    = "SELF_SANCTION"
	CodeBadRequest      = "BAD_REQUEST"
	CodeInternal        = "INTERNAL"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// respondModerationError maps the moderation failure taxonomy onto HTTP.
func respondModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusForbidden, CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidAction):
		respondError(c, http.StatusBadRequest, CodeInvalidAction, err.Error())
	case errors.Is(err, service.ErrInvalidType):
		respondError(c, http.StatusBadRequest, CodeInvalidType, err.Error())
	case errors.Is(err, service.ErrInvalidDuration):
		respondError(c, http.StatusBadRequest, CodeInvalidDuration, err.Error())
	case errors.Is(err, service.ErrMissingReason):
		respondError(c, http.StatusBadRequest, CodeMissingReason, err.Error())
	case errors.Is(err, service.ErrSelfSanction):
		respondError(c, http.StatusBadRequest, CodeSelfSanction, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, CodeInternal, "something went wrong; no changes were applied")
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
