package handler

import (
	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness probes
type HealthHandler struct {
	BaseHandler
	appName string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName}
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.GetHealth)
}

// GetHealth reports the service as up
func (h *HealthHandler) GetHealth(c *gin.Context) {
	h.Success(c, gin.H{
		"service": h.appName,
		"status":  "ok",
	})
}
