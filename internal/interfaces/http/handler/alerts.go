package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wady/orderhub/internal/application/alert"
)

// AlertsHandler serves the polled alert feed
type AlertsHandler struct {
	BaseHandler
	feed *alert.Feed
}

// NewAlertsHandler creates a new AlertsHandler
func NewAlertsHandler(feed *alert.Feed) *AlertsHandler {
	return &AlertsHandler{feed: feed}
}

// RegisterRoutes registers alert routes
func (h *AlertsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/alerts", h.GetAlerts)
}

// GetAlerts drains and returns all pending alerts
func (h *AlertsHandler) GetAlerts(c *gin.Context) {
	alerts := h.feed.Drain()
	if alerts == nil {
		alerts = []alert.Alert{}
	}
	h.Success(c, alerts)
}
