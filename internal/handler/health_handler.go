package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homevista/homevista-backend/internal/cache"
	"github.com/homevista/homevista-backend/internal/database"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db    *database.PostgresDB
	redis *cache.Client
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, redis *cache.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "homevista-backend",
	})
}

// Ready checks if the service is ready to accept traffic
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{
		"database": "connected",
		"redis":    "connected",
	}
	ready := true

	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		checks["database"] = "disconnected"
		ready = false
	}
	if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
		checks["redis"] = "disconnected"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"service": "homevista-backend",
			"checks":  checks,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": "homevista-backend",
		"checks":  checks,
	})
}

// Metrics exposes connection pool statistics
// GET /metrics
func (h *HealthHandler) Metrics(c *gin.Context) {
	stats := h.db.Stats()
	c.JSON(http.StatusOK, gin.H{
		"database": gin.H{
			"total_conns":    stats.TotalConns(),
			"idle_conns":     stats.IdleConns(),
			"acquired_conns": stats.AcquiredConns(),
			"max_conns":      stats.MaxConns(),
		},
	})
}
