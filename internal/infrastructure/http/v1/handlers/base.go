// Package handlers implements the v1 HTTP handlers.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"movistock/internal/core/apperror"
	"movistock/internal/core/id"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// SessionID parses the :id path parameter.
func (h *BaseHandler) SessionID(c *gin.Context) (id.ID, bool) {
	sessionID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid session id"))
		return id.ID{}, false
	}
	return sessionID, true
}

// Position parses the :pos path parameter (1-based item position).
func (h *BaseHandler) Position(c *gin.Context) (int, bool) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil || pos < 1 {
		h.Error(c, apperror.NewValidation("invalid item position"))
		return 0, false
	}
	return pos, true
}
