package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("PM-1001", "Ana", "ana@x.tn", "12 Rue des Oliviers, Tunis", "USD",
		decimal.NewFromInt(5),
		[]OrderItem{
			{Title: "Kraftview Window Box", SKU: "KV-50", Quantity: 2, UnitPrice: decimal.NewFromFloat(12.50)},
			{Title: "Mailer Box", SKU: "MB-10", Quantity: 1, UnitPrice: decimal.NewFromFloat(8.00)},
		})
	require.NoError(t, err)
	return order
}

func TestNewOrder_Totals(t *testing.T) {
	order := makeOrder(t)

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromFloat(33.00)), order.Subtotal.String())
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(38.00)), order.Total.String())
	assert.Equal(t, 3, order.TotalQuantity())
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
	}
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := NewOrder("", "Ana", "ana@x.tn", "", "USD", decimal.Zero, []OrderItem{{Quantity: 1}})
	assert.Error(t, err)

	_, err = NewOrder("PM-1", "Ana", "nope", "", "USD", decimal.Zero, []OrderItem{{Quantity: 1}})
	assert.Error(t, err)

	_, err = NewOrder("PM-1", "Ana", "ana@x.tn", "", "USD", decimal.Zero, nil)
	assert.Error(t, err)

	_, err = NewOrder("PM-1", "Ana", "ana@x.tn", "", "USD", decimal.Zero, []OrderItem{{Quantity: 0}})
	assert.Error(t, err)
}

func TestOrder_StatusTransitions(t *testing.T) {
	order := makeOrder(t)

	require.Error(t, order.MarkFulfilled())
	require.NoError(t, order.MarkPaid())
	require.Error(t, order.MarkPaid())
	require.NoError(t, order.MarkFulfilled())
	require.Error(t, order.Cancel())

	cancelled := makeOrder(t)
	require.NoError(t, cancelled.Cancel())
	assert.Equal(t, OrderStatusCancelled, cancelled.Status)
	require.Error(t, cancelled.Cancel())
}
