package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apporders "github.com/wady/orderhub/internal/application/orders"
	"github.com/wady/orderhub/internal/domain/shared"
	"github.com/wady/orderhub/internal/interfaces/http/dto"
	"github.com/wady/orderhub/internal/view"
)

// OrdersHandler serves the order hub, the order detail, and all
// detail-view edit operations
type OrdersHandler struct {
	BaseHandler
	hub    *apporders.HubService
	detail *apporders.DetailService
	edit   *apporders.EditService
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(hub *apporders.HubService, detail *apporders.DetailService, edit *apporders.EditService) *OrdersHandler {
	return &OrdersHandler{hub: hub, detail: detail, edit: edit}
}

// RegisterRoutes registers order routes
func (h *OrdersHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.GetOrders)
	rg.POST("/orders/refresh", h.Refresh)
	rg.GET("/orders/:id", h.GetOrderDetail)
	rg.POST("/orders/:id/save", h.Save)
	rg.PUT("/orders/:id/instructions", h.SetInstructions)
	rg.PUT("/orders/:id/delivery-date", h.SetDeliveryDate)
	rg.POST("/orders/:id/items", h.AddItem)
	rg.POST("/orders/:id/items/:idx/increment", h.IncrementItem)
	rg.POST("/orders/:id/items/:idx/decrement", h.DecrementItem)
	rg.PUT("/orders/:id/items/:idx/quantity", h.SetQuantity)
	rg.PUT("/orders/:id/items/:idx/product", h.SelectProduct)
}

// GetOrders reloads the order hub from the order service and returns
// the filtered bucketed view
func (h *OrdersHandler) GetOrders(c *gin.Context) {
	var query dto.ViewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	state, err := query.ToState(view.DefaultOrderHubState())
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.hub.Load(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, h.hubView(state))
}

// Refresh asks the order service to re-sync from upstream, reloads the
// hub, and returns the refreshed view
func (h *OrdersHandler) Refresh(c *gin.Context) {
	if err := h.hub.Refresh(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.hubView(view.DefaultOrderHubState()))
}

func (h *OrdersHandler) hubView(state view.State) dto.HubViewDTO {
	v := h.hub.View(state)
	buckets := make([]dto.BucketDTO[dto.OrderRowDTO], 0, len(v.Buckets))
	for _, b := range v.Buckets {
		buckets = append(buckets, dto.FromBucket(b, state.IsExpanded(b.Name), dto.FromOrderRow))
	}
	return dto.HubViewDTO{Buckets: buckets, Total: v.Total}
}

// GetOrderDetail opens an order detail, priming line items, message,
// and catalog, and moving a fresh order into review
func (h *OrdersHandler) GetOrderDetail(c *gin.Context) {
	detail, err := h.detail.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.FromOrderDetail(detail))
}

// Save pushes the matched products upstream and marks the order reviewed
func (h *OrdersHandler) Save(c *gin.Context) {
	if err := h.edit.Save(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetInstructions commits delivery instructions locally and schedules
// the debounced upstream write
func (h *OrdersHandler) SetInstructions(c *gin.Context) {
	var req dto.InstructionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.edit.SetDeliveryInstructions(c.Param("id"), req.DeliveryInstructions); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDeliveryDate writes the delivery date upstream and mirrors it
// locally on success
func (h *OrdersHandler) SetDeliveryDate(c *gin.Context) {
	var req dto.DeliveryDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.edit.SetDeliveryDate(c.Request.Context(), c.Param("id"), req.DeliveryDate); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem appends an empty unmatched line item to the order
func (h *OrdersHandler) AddItem(c *gin.Context) {
	item := h.edit.AddItem(c.Param("id"))
	h.Success(c, dto.FromLineItem(item))
}

// IncrementItem bumps a line item quantity by one
func (h *OrdersHandler) IncrementItem(c *gin.Context) {
	idx, ok := h.itemIndex(c)
	if !ok {
		return
	}
	if err := h.edit.IncrementItem(c.Param("id"), idx); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DecrementItem lowers a line item quantity by one, floored at zero
func (h *OrdersHandler) DecrementItem(c *gin.Context) {
	idx, ok := h.itemIndex(c)
	if !ok {
		return
	}
	if err := h.edit.DecrementItem(c.Param("id"), idx); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetQuantity sets a line item quantity from raw input
func (h *OrdersHandler) SetQuantity(c *gin.Context) {
	idx, ok := h.itemIndex(c)
	if !ok {
		return
	}
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.edit.SetItemQuantity(c.Param("id"), idx, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SelectProduct matches a line item to a catalog product
func (h *OrdersHandler) SelectProduct(c *gin.Context) {
	idx, ok := h.itemIndex(c)
	if !ok {
		return
	}
	var req dto.ProductSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.edit.SelectProduct(c.Request.Context(), c.Param("id"), idx, req.ProductID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *OrdersHandler) itemIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil || idx < 0 {
		h.HandleError(c, shared.ErrInvalidInput)
		return 0, false
	}
	return idx, true
}
