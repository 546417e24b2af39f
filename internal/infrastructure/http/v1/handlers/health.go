package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movistock/internal/domain/movement"
	"movistock/internal/infrastructure/storage/postgres"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pool     *postgres.Pool // nil when running without a database
	sessions *movement.Manager
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *postgres.Pool, sessions *movement.Manager) *HealthHandler {
	return &HealthHandler{
		pool:     pool,
		sessions: sessions,
	}
}

// Live handles GET /health - process liveness.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"open_sessions": h.sessions.Count(),
	})
}

// Ready handles GET /health/ready - dependency readiness.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.pool != nil {
		if err := h.pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
