package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar-orders/internal/domain"
)

type fakeOrderRepo struct {
	orders []domain.Order
}

func (f *fakeOrderRepo) FindById(ctx context.Context, id int64) (*domain.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			order := f.orders[i]
			return &order, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	order.ID = int64(len(f.orders) + 1)
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i].Status = order.Status
			f.orders[i].CompletedAt = order.CompletedAt
		}
	}
	return nil
}

type recordingNotifier struct {
	created []*domain.Order
	updated []*domain.Order
}

func (n *recordingNotifier) OrderCreated(order *domain.Order) { n.created = append(n.created, order) }
func (n *recordingNotifier) OrderUpdated(order *domain.Order) { n.updated = append(n.updated, order) }

func validItem() domain.OrderItem {
	return domain.OrderItem{
		ProductID:   1,
		ProductName: "Gulla barozha",
		PricePerKg:  4500,
		PaidAmount:  1350,
		WeightKg:    0.3,
	}
}

func TestCreateOrderRejectsEmptyBasket(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewOrderService(nil, &fakeOrderRepo{}, notifier)

	_, err := svc.CreateOrder(context.Background(), nil)

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, notifier.created, "nothing may be announced for a rejected basket")
}

func TestCreateOrderRejectsMalformedItems(t *testing.T) {
	testCases := []struct {
		desc   string
		mutate func(*domain.OrderItem)
	}{
		{"zero weight", func(i *domain.OrderItem) { i.WeightKg = 0 }},
		{"negative weight", func(i *domain.OrderItem) { i.WeightKg = -0.5 }},
		{"negative paid amount", func(i *domain.OrderItem) { i.PaidAmount = -1 }},
		{"zero price", func(i *domain.OrderItem) { i.PricePerKg = 0 }},
		{"missing name", func(i *domain.OrderItem) { i.ProductName = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			notifier := &recordingNotifier{}
			svc := NewOrderService(nil, &fakeOrderRepo{}, notifier)

			item := validItem()
			tc.mutate(&item)
			_, err := svc.CreateOrder(context.Background(), []domain.OrderItem{item})

			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Empty(t, notifier.created)
		})
	}
}

func TestCreateOrderAcceptsZeroPaidAmount(t *testing.T) {
	// Paid amount must be non-negative, not positive: a fully discounted
	// line is odd but not malformed.
	item := validItem()
	item.PaidAmount = 0

	err := validateItems([]domain.OrderItem{item})
	assert.NoError(t, err)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	svc := NewOrderService(nil, &fakeOrderRepo{}, &recordingNotifier{})

	_, err := svc.UpdateOrderStatus(context.Background(), 99, domain.OrderCompleted)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(nil, &fakeOrderRepo{}, &recordingNotifier{})

	_, err := svc.UpdateOrderStatus(context.Background(), 1, "shipped")

	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUpdateOrderStatusIsOneWay(t *testing.T) {
	repo := &fakeOrderRepo{orders: []domain.Order{{ID: 1, Status: domain.OrderCompleted}}}
	notifier := &recordingNotifier{}
	svc := NewOrderService(nil, repo, notifier)

	_, err := svc.UpdateOrderStatus(context.Background(), 1, domain.OrderPending)

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, notifier.updated)
	assert.Equal(t, domain.OrderCompleted, repo.orders[0].Status)
}

func TestOrderTotals(t *testing.T) {
	order := domain.Order{Items: []domain.OrderItem{
		{PaidAmount: 1000, WeightKg: 0.222},
		{PaidAmount: 1250, WeightKg: 0.278},
	}}

	require.Equal(t, int64(2250), order.TotalAmount())
	assert.InDelta(t, 0.5, order.TotalWeight(), 1e-9)
}
