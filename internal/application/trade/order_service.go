package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/domain/trade"
	"github.com/packmart/backend/internal/infrastructure/telemetry"
)

// OrderService backs the admin fulfilment view: recording checkouts that
// completed on the hosted platform, walking orders through the fulfilment
// states and producing packing slips.
type OrderService struct {
	orderRepo trade.OrderRepository
	renderer  SlipRenderer
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. renderer may be nil when
// packing slip generation is not configured.
func NewOrderService(orderRepo trade.OrderRepository, renderer SlipRenderer, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		renderer:  renderer,
		logger:    logger.Named("trade"),
	}
}

// Record stores an order that completed checkout upstream. Recording the
// same order number twice is rejected.
func (s *OrderService) Record(ctx context.Context, req RecordOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "record")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderNumber, req.Number)

	existing, err := s.orderRepo.FindByNumber(ctx, req.Number)
	if err != nil && !shared.IsNotFound(err) {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Order %s is already recorded", req.Number))
	}

	items := make([]trade.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, trade.OrderItem{
			Title:     item.Title,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := trade.NewOrder(req.Number, req.CustomerName, req.CustomerEmail, req.ShippingAddr, req.Currency, req.ShippingFee, items)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("number", order.Number),
	)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Get returns a single order with its line items
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns a page of orders, newest first
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderSummaryResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderSummaryResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderSummaryResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByStatus returns a page of orders in the given fulfilment state
func (s *OrderService) ListByStatus(ctx context.Context, status trade.OrderStatus, filter shared.Filter) (*shared.Paginated[OrderSummaryResponse], error) {
	orders, err := s.orderRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		return nil, err
	}

	statusFilter := filter
	statusFilter.Filters = map[string]interface{}{"status": string(status)}
	total, err := s.orderRepo.Count(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderSummaryResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderSummaryResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// MarkPaid records payment confirmation for a pending order
func (s *OrderService) MarkPaid(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*trade.Order).MarkPaid)
}

// MarkFulfilled records that a paid order has shipped
func (s *OrderService) MarkFulfilled(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*trade.Order).MarkFulfilled)
}

// Cancel voids an order that has not shipped
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*trade.Order).Cancel)
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, apply func(*trade.Order) error) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "transition")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, id.String())

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := apply(order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrOrderStatus, string(order.Status))
	s.logger.Info("order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// PackingSlip renders the packing slip PDF for an order
func (s *OrderService) PackingSlip(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "packing_slip")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, id.String())

	if s.renderer == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Packing slip rendering is not configured")
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	html, err := RenderPackingSlipHTML(order)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(ctx, html, fmt.Sprintf("Packing slip %s", order.Number))
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("packing slip render failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, shared.ErrUpstream
	}
	return pdf, nil
}
