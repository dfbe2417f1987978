package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConsumerStatus reports whether the queue consumer loop is active.
type ConsumerStatus interface {
	Running() bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	consumer ConsumerStatus
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(consumer ConsumerStatus) *HealthHandler {
	return &HealthHandler{consumer: consumer}
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "order-notification-service",
	})
}

// Livez returns liveness status
func (h *HealthHandler) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// Readyz returns readiness status
func (h *HealthHandler) Readyz(c *gin.Context) {
	checks := make(map[string]string)

	if h.consumer != nil && h.consumer.Running() {
		checks["consumer"] = "running"
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"checks": checks,
		})
		return
	}

	checks["consumer"] = "stopped"
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "not ready",
		"checks": checks,
	})
}
