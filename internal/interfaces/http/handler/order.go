package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/packmart/backend/internal/application/trade"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/domain/trade"
	"github.com/packmart/backend/internal/infrastructure/telemetry"
	"github.com/packmart/backend/internal/interfaces/http/dto"
)

// OrderHandler handles fulfilment tracking for orders placed on the hosted
// checkout
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
	metrics      *telemetry.StoreMetrics
}

// NewOrderHandler creates a new OrderHandler. Metrics may be nil when
// telemetry is disabled.
func NewOrderHandler(orderService *tradeapp.OrderService, metrics *telemetry.StoreMetrics) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		metrics:      metrics,
	}
}

// Record registers an order completed on the hosted checkout
func (h *OrderHandler) Record(c *gin.Context) {
	var req tradeapp.RecordOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOrderRecorded(c.Request.Context())
	}
	h.Created(c, order)
}

// ListOrdersRequest filters the order listing
type ListOrdersRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=pending paid fulfilled cancelled"`
}

// List returns orders for the admin console
func (h *OrderHandler) List(c *gin.Context) {
	req := ListOrdersRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()

	var (
		result *shared.Paginated[tradeapp.OrderSummaryResponse]
		err    error
	)
	if req.Status != "" {
		result, err = h.orderService.ListByStatus(c.Request.Context(), trade.OrderStatus(req.Status), filter)
	} else {
		result, err = h.orderService.List(c.Request.Context(), filter)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single order with its lines
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkPaid records payment confirmation for an order
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.orderService.MarkPaid)
}

// MarkFulfilled records that an order has shipped
func (h *OrderHandler) MarkFulfilled(c *gin.Context) {
	h.transition(c, h.orderService.MarkFulfilled)
}

// Cancel cancels an order that has not shipped
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

// PackingSlip renders the order's packing slip as a PDF download
func (h *OrderHandler) PackingSlip(c *gin.Context) {
	id, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.orderService.PackingSlip(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("packing-slip-%s.pdf", order.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *OrderHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*tradeapp.OrderResponse, error)) {
	id, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	order, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOrderStatusChange(c.Request.Context(), string(order.Status))
	}
	h.Success(c, order)
}

func (h *OrderHandler) bindOrderID(c *gin.Context) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err.Error())
		return uuid.Nil, false
	}
	return uuid.MustParse(idReq.ID), true
}

// RegisterAdminRoutes registers the order management routes
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Record)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/pay", h.MarkPaid)
		orders.POST("/:id/fulfill", h.MarkFulfilled)
		orders.POST("/:id/cancel", h.Cancel)
		orders.GET("/:id/packing-slip", h.PackingSlip)
	}
}
