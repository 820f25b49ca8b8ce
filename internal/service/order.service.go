package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bazaar-orders/internal/domain"
	"bazaar-orders/internal/repo"
)

// Notifier receives lifecycle events strictly after the corresponding write
// has committed. The broadcast hub implements it; tests substitute a
// recorder.
type Notifier interface {
	OrderCreated(order *domain.Order)
	OrderUpdated(order *domain.Order)
}

type OrderService interface {
	CreateOrder(ctx context.Context, items []domain.OrderItem) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderId int64, status domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	db        *sql.DB
	orderRepo repo.OrderRepo
	notifier  Notifier
}

func NewOrderService(db *sql.DB, orderRepo repo.OrderRepo, notifier Notifier) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// CreateOrder persists a basket as one pending order. The header and every
// line item commit in a single transaction, so readers never observe a
// partial order.
func (s *orderService) CreateOrder(ctx context.Context, items []domain.OrderItem) (*domain.Order, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	order := &domain.Order{
		Status:    domain.OrderPending,
		CreatedAt: time.Now(),
		Items:     items,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Notify only after the commit; a failed write must never be announced.
	s.notifier.OrderCreated(order)
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListOrders(ctx)
}

// UpdateOrderStatus applies the one-way pending -> completed transition.
// Completing stamps the completion timestamp; re-completing an already
// completed order re-stamps it.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderId int64, status domain.OrderStatus) (*domain.Order, error) {
	if status != domain.OrderPending && status != domain.OrderCompleted {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	order, err := s.orderRepo.FindById(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderId)
	}

	if order.Status == domain.OrderCompleted && status == domain.OrderPending {
		return nil, fmt.Errorf("%w: completed orders cannot go back to pending", domain.ErrValidation)
	}

	order.Status = status
	if status == domain.OrderCompleted {
		now := time.Now()
		order.CompletedAt = &now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateOrderStatus(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.notifier.OrderUpdated(order)
	return order, nil
}

func validateItems(items []domain.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order needs at least one item", domain.ErrValidation)
	}
	for i, item := range items {
		if item.ProductName == "" {
			return fmt.Errorf("%w: item %d has no product name", domain.ErrValidation, i)
		}
		if item.PricePerKg <= 0 {
			return fmt.Errorf("%w: item %d has a non-positive unit price", domain.ErrValidation, i)
		}
		if item.WeightKg <= 0 {
			return fmt.Errorf("%w: item %d has a non-positive weight", domain.ErrValidation, i)
		}
		if item.PaidAmount < 0 {
			return fmt.Errorf("%w: item %d has a negative paid amount", domain.ErrValidation, i)
		}
	}
	return nil
}
