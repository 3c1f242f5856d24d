package trade

import (
	"strings"

	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the local record of a checkout completed on the hosted commerce
// platform. Checkout itself happens upstream; this record backs the admin
// console's fulfilment view and packing slips.
type Order struct {
	shared.BaseEntity
	Number        string
	CustomerName  string
	CustomerEmail string
	ShippingAddr  string
	Currency      string
	Subtotal      decimal.Decimal
	ShippingFee   decimal.Decimal
	Total         decimal.Decimal
	Status        OrderStatus
	Items         []OrderItem
}

// OrderItem is a line on an order
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Title     string
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// NewOrder creates a pending order from checkout data
func NewOrder(number, customerName, customerEmail, shippingAddr, currency string, shippingFee decimal.Decimal, items []OrderItem) (*Order, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number is required")
	}
	if err := contact.ValidateEmail(customerEmail); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must have at least one item")
	}
	if currency == "" {
		currency = "USD"
	}

	order := &Order{
		BaseEntity:    shared.NewBaseEntity(),
		Number:        number,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(customerEmail)),
		ShippingAddr:  strings.TrimSpace(shippingAddr),
		Currency:      currency,
		ShippingFee:   shippingFee,
		Status:        OrderStatusPending,
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
		}
		item.ID = uuid.New()
		item.OrderID = order.ID
		item.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(item.LineTotal)
		order.Items = append(order.Items, item)
	}
	order.Subtotal = subtotal
	order.Total = subtotal.Add(shippingFee)

	return order, nil
}

// MarkPaid records payment confirmation from the platform
func (o *Order) MarkPaid() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be marked paid")
	}
	o.Status = OrderStatusPaid
	o.Touch()
	return nil
}

// MarkFulfilled records that the order has shipped
func (o *Order) MarkFulfilled() error {
	if o.Status != OrderStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid orders can be fulfilled")
	}
	o.Status = OrderStatusFulfilled
	o.Touch()
	return nil
}

// Cancel voids an order that has not shipped
func (o *Order) Cancel() error {
	if o.Status == OrderStatusFulfilled {
		return shared.NewDomainError("INVALID_STATE", "Fulfilled orders cannot be cancelled")
	}
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order is already cancelled")
	}
	o.Status = OrderStatusCancelled
	o.Touch()
	return nil
}

// TotalQuantity returns the total number of units on the order
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
