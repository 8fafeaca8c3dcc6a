package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is a dependency the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the app and its session store are reachable
type HealthHandler struct {
	BaseHandler
	startTime time.Time
	store     Pinger
	timeout   time.Duration
}

// NewHealthHandler creates a new HealthHandler. store is nil when sessions
// are held in memory.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		store:     store,
		timeout:   2 * time.Second,
	}
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status: "UP",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
		Checks: map[string]string{"sessionStore": "UP"},
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Session store health check failed", zap.Error(err))
			resp.Status = "DOWN"
			resp.Checks["sessionStore"] = "DOWN"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Ping handles GET /ping
func (h *HealthHandler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
