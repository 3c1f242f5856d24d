package models

import (
	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	BaseModel
	Number        string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName  string            `gorm:"type:varchar(200);not null"`
	CustomerEmail string            `gorm:"type:varchar(200);not null;index"`
	ShippingAddr  string            `gorm:"type:text;not null"`
	Currency      string            `gorm:"type:varchar(3);not null"`
	Subtotal      decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingFee   decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status        trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Items         []OrderItemModel  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(300);not null"`
	SKU       string          `gorm:"type:varchar(100)"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *trade.Order {
	items := make([]trade.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = trade.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			Title:     item.Title,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
	}
	return &trade.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		Number:        m.Number,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		ShippingAddr:  m.ShippingAddr,
		Currency:      m.Currency,
		Subtotal:      m.Subtotal,
		ShippingFee:   m.ShippingFee,
		Total:         m.Total,
		Status:        m.Status,
		Items:         items,
	}
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Number = o.Number
	m.CustomerName = o.CustomerName
	m.CustomerEmail = o.CustomerEmail
	m.ShippingAddr = o.ShippingAddr
	m.Currency = o.Currency
	m.Subtotal = o.Subtotal
	m.ShippingFee = o.ShippingFee
	m.Total = o.Total
	m.Status = o.Status
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			Title:     item.Title,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order aggregate.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
