package handler

import (
	"github.com/gin-gonic/gin"

	appinbox "github.com/wady/orderhub/internal/application/inbox"
	"github.com/wady/orderhub/internal/interfaces/http/dto"
	"github.com/wady/orderhub/internal/view"
)

// InboxHandler serves the message inbox view
type InboxHandler struct {
	BaseHandler
	service *appinbox.Service
}

// NewInboxHandler creates a new InboxHandler
func NewInboxHandler(service *appinbox.Service) *InboxHandler {
	return &InboxHandler{service: service}
}

// RegisterRoutes registers inbox routes
func (h *InboxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inbox", h.GetInbox)
}

// GetInbox reloads the inbox from the order service and returns the
// filtered two-column view
func (h *InboxHandler) GetInbox(c *gin.Context) {
	var query dto.ViewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	state, err := query.ToState(view.State{})
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Load(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	v := h.service.View(state)
	buckets := make([]dto.BucketDTO[dto.MessageCardDTO], 0, len(v.Buckets))
	for _, b := range v.Buckets {
		buckets = append(buckets, dto.FromBucket(b, state.IsExpanded(b.Name), dto.FromMessageCard))
	}
	h.Success(c, dto.InboxViewDTO{Buckets: buckets, Total: v.Total})
}
