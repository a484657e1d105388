package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks storage reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	storage Pinger
	info    func() map[string]any
	version string
}

// NewHealthHandler creates a new health handler. info, when set, contributes
// storage details to /health/info.
func NewHealthHandler(storage Pinger, version string, info func() map[string]any) *HealthHandler {
	return &HealthHandler{storage: storage, info: info, version: version}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.storage.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"storage": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"storage": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	body := gin.H{
		"app":     "backoffice",
		"version": h.version,
	}
	if h.info != nil {
		body["storage"] = h.info()
	}
	c.JSON(http.StatusOK, body)
}
