package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stylehub/backend/internal/infrastructure/persistence"
)

// SystemHandler serves operational endpoints
type SystemHandler struct {
	db        *persistence.Database
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now()}
}

// Health reports process liveness and database reachability
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "ok",
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
	})
}
