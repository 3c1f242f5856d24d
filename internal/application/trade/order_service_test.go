package trade

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/domain/trade"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*trade.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status trade.OrderStatus, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSlipRenderer is a mock implementation of SlipRenderer
type MockSlipRenderer struct {
	mock.Mock
}

func (m *MockSlipRenderer) Render(ctx context.Context, html string, title string) ([]byte, error) {
	args := m.Called(ctx, html, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestOrder(t *testing.T) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder("PM-1042", "Imen Trabelsi", "imen@example.com", "14 Rue de Carthage\nTunis 1000", "TND",
		decimal.NewFromInt(7), []trade.OrderItem{
			{Title: "KraftView 50 pcs", SKU: "KV-50", Quantity: 2, UnitPrice: decimal.NewFromInt(45)},
			{Title: "Seal Bag 100 pcs", SKU: "SB-100", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
		})
	require.NoError(t, err)
	return order
}

func TestOrderService_Record(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	mockRepo.On("FindByNumber", mock.Anything, "PM-1042").Return(nil, shared.ErrNotFound)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)

	resp, err := service.Record(context.Background(), RecordOrderRequest{
		Number:        "PM-1042",
		CustomerName:  "Imen Trabelsi",
		CustomerEmail: "Imen@Example.com",
		ShippingAddr:  "14 Rue de Carthage, Tunis",
		Currency:      "TND",
		ShippingFee:   decimal.NewFromInt(7),
		Items: []RecordOrderItemRequest{
			{Title: "KraftView 50 pcs", SKU: "KV-50", Quantity: 2, UnitPrice: decimal.NewFromInt(45)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "PM-1042", resp.Number)
	assert.Equal(t, "imen@example.com", resp.CustomerEmail)
	assert.Equal(t, trade.OrderStatusPending, resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(90)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(97)))
	mockRepo.AssertExpectations(t)
}

func TestOrderService_Record_DuplicateNumber(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	existing := newTestOrder(t)
	mockRepo.On("FindByNumber", mock.Anything, "PM-1042").Return(existing, nil)

	_, err := service.Record(context.Background(), RecordOrderRequest{
		Number:        "PM-1042",
		CustomerEmail: "imen@example.com",
		Items:         []RecordOrderItemRequest{{Title: "KraftView 50 pcs", Quantity: 1}},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Record_InvalidEmail(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	mockRepo.On("FindByNumber", mock.Anything, "PM-1").Return(nil, shared.ErrNotFound)

	_, err := service.Record(context.Background(), RecordOrderRequest{
		Number:        "PM-1",
		CustomerEmail: "not-an-email",
		Items:         []RecordOrderItemRequest{{Title: "KraftView 50 pcs", Quantity: 1}},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_MarkPaidThenFulfilled(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	order := newTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mockRepo.On("Save", mock.Anything, order).Return(nil)

	resp, err := service.MarkPaid(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPaid, resp.Status)

	resp, err = service.MarkFulfilled(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusFulfilled, resp.Status)
}

func TestOrderService_MarkFulfilled_RequiresPayment(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	order := newTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := service.MarkFulfilled(context.Background(), order.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.Equal(t, trade.OrderStatusPending, order.Status)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Cancel_FulfilledRejected(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	order := newTestOrder(t)
	require.NoError(t, order.MarkPaid())
	require.NoError(t, order.MarkFulfilled())
	mockRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := service.Cancel(context.Background(), order.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_ListByStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	order := newTestOrder(t)
	filter := shared.DefaultFilter()
	mockRepo.On("FindByStatus", mock.Anything, trade.OrderStatusPending, filter).Return([]trade.Order{*order}, nil)
	mockRepo.On("Count", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == string(trade.OrderStatusPending)
	})).Return(int64(1), nil)

	result, err := service.ListByStatus(context.Background(), trade.OrderStatusPending, filter)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "PM-1042", result.Items[0].Number)
	assert.Equal(t, 3, result.Items[0].ItemCount)
}

func TestOrderService_PackingSlip(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRenderer := new(MockSlipRenderer)
	service := NewOrderService(mockRepo, mockRenderer, zap.NewNop())

	order := newTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mockRenderer.On("Render", mock.Anything, mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, "PM-1042") &&
			strings.Contains(html, "KraftView 50 pcs") &&
			!strings.Contains(html, "45")
	}), "Packing slip PM-1042").Return([]byte("%PDF-1.7"), nil)

	pdf, err := service.PackingSlip(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	mockRenderer.AssertExpectations(t)
}

func TestOrderService_PackingSlip_RenderFailure(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRenderer := new(MockSlipRenderer)
	service := NewOrderService(mockRepo, mockRenderer, zap.NewNop())

	order := newTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mockRenderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("browser crashed"))

	_, err := service.PackingSlip(context.Background(), order.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUpstream)
}

func TestOrderService_PackingSlip_NotConfigured(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewOrderService(mockRepo, nil, zap.NewNop())

	_, err := service.PackingSlip(context.Background(), uuid.New())

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
