package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movistock/internal/domain/movement"
	"movistock/internal/infrastructure/http/v1/dto"
)

// SessionHandler handles HTTP requests for movement form sessions.
type SessionHandler struct {
	*BaseHandler
	service *movement.Service
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(base *BaseHandler, service *movement.Service) *SessionHandler {
	return &SessionHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Open handles POST /sessions - start a new form session.
func (h *SessionHandler) Open(c *gin.Context) {
	snap := h.service.Open(c.Request.Context())
	c.JSON(http.StatusCreated, dto.FromSnapshot(snap))
}

// Get handles GET /sessions/:id - current form state.
func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, ok := h.SessionID(c)
	if !ok {
		return
	}

	snap, err := h.service.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSnapshot(snap))
}

// UpdateHeader handles PATCH /sessions/:id - header field changes.
func (h *SessionHandler) UpdateHeader(c *gin.Context) {
	sessionID, ok := h.SessionID(c)
	if !ok {
		return
	}

	var req dto.UpdateHeaderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	snap, err := h.service.UpdateHeader(c.Request.Context(), sessionID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSnapshot(snap))
}

// AddItem handles POST /sessions/:id/items - append a row.
func (h *SessionHandler) AddItem(c *gin.Context) {
	sessionID, ok := h.SessionID(c)
	if !ok {
		return
	}

	snap, err := h.service.AddItem(c.Request.Context(), sessionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromSnapshot(snap))
}

// UpdateItem handles PATCH /sessions/:id/items/:pos - one field edit.
func (h *SessionHandler) UpdateItem(c *gin.Context) {
	sessionID, ok := h.SessionID(c)
	if !ok {
		return
	}
	pos, ok := h.Position(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	update, err := h.service.SetItemField(c.Request.Context(), sessionID, pos, req.Field, req.Value)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromItemUpdate(update))
}

// RemoveItem handles DELETE /sessions/:id/items/:pos - remove a row.
// The response carries the reindexed snapshot; positions captured
// before this call must not be reused.
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := h.SessionID(c)
	if !ok {
		return
	}
	pos, ok := h.Position(c)
	if !ok {
		return
	}

	snap, err := h.service.RemoveItem(c.Request.Context(), sessionID, pos)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSnapshot(snap))
}

// Submit handles POST /sessions/:id/submit - validate and record.
func (h *SessionHandler) Submit(c *gin.Context) {
	sessionID, ok := h.SessionID(c)
	if !ok {
		return
	}

	movementID, err := h.service.Submit(c.Request.Context(), sessionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitResponse{
		MovementID: movementID.String(),
		Message:    "movement recorded successfully",
	})
}

// Close handles DELETE /sessions/:id - end the session.
func (h *SessionHandler) Close(c *gin.Context) {
	sessionID, ok := h.SessionID(c)
	if !ok {
		return
	}

	if err := h.service.Close(c.Request.Context(), sessionID); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
