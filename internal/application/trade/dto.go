package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/packmart/backend/internal/domain/trade"
)

// RecordOrderRequest records a checkout completed on the hosted platform
type RecordOrderRequest struct {
	Number        string                   `json:"number" binding:"required,min=1,max=64"`
	CustomerName  string                   `json:"customer_name" binding:"max=200"`
	CustomerEmail string                   `json:"customer_email" binding:"required,max=254"`
	ShippingAddr  string                   `json:"shipping_address" binding:"max=1000"`
	Currency      string                   `json:"currency" binding:"omitempty,len=3"`
	ShippingFee   decimal.Decimal          `json:"shipping_fee"`
	Items         []RecordOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordOrderItemRequest is a line on an incoming order
type RecordOrderItemRequest struct {
	Title     string          `json:"title" binding:"required,max=300"`
	SKU       string          `json:"sku" binding:"max=100"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderItemResponse is the API view of an order line
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse is the API view of an order
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerEmail string              `json:"customer_email"`
	ShippingAddr  string              `json:"shipping_address,omitempty"`
	Currency      string              `json:"currency"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	ShippingFee   decimal.Decimal     `json:"shipping_fee"`
	Total         decimal.Decimal     `json:"total"`
	Status        trade.OrderStatus   `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderSummaryResponse is the listing view without line items
type OrderSummaryResponse struct {
	ID            uuid.UUID         `json:"id"`
	Number        string            `json:"number"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerEmail string            `json:"customer_email"`
	Currency      string            `json:"currency"`
	Total         decimal.Decimal   `json:"total"`
	Status        trade.OrderStatus `json:"status"`
	ItemCount     int               `json:"item_count"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			Title:     item.Title,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return OrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		ShippingAddr:  order.ShippingAddr,
		Currency:      order.Currency,
		Subtotal:      order.Subtotal,
		ShippingFee:   order.ShippingFee,
		Total:         order.Total,
		Status:        order.Status,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// ToOrderSummaryResponse converts a domain order to its listing representation
func ToOrderSummaryResponse(order *trade.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:            order.ID,
		Number:        order.Number,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Currency:      order.Currency,
		Total:         order.Total,
		Status:        order.Status,
		ItemCount:     order.TotalQuantity(),
		CreatedAt:     order.CreatedAt,
	}
}
