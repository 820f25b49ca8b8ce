package repo

import (
	"context"
	"database/sql"

	"bazaar-orders/internal/domain"
)

type OrderRepo interface {
	FindById(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	CreateOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error
	UpdateOrderStatus(ctx context.Context, tx *sql.Tx, order *domain.Order) error
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) FindById(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT id, status, created_at, completed_at FROM orders WHERE id = $1", id,
	).Scan(&order.ID, &order.Status, &order.CreatedAt, &order.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err // system error
	}

	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// ListOrders returns every order newest first, with its line items attached.
func (r *orderRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, status, created_at, completed_at FROM orders ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[int64]int)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Status, &order.CreatedAt, &order.CompletedAt); err != nil {
			return nil, err
		}
		order.Items = []domain.OrderItem{}
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, product_id, product_name, price_per_kg, paid_amount, weight_kg FROM order_items ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.PricePerKg, &item.PaidAmount, &item.WeightKg,
		); err != nil {
			return nil, err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

// CreateOrder inserts the order header and all its line items inside the
// caller's transaction, so a failed item insert never leaves a headerless
// fragment visible to readers. Server-assigned ids and the creation
// timestamp are written back into order.
func (r *orderRepo) CreateOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	err := tx.QueryRowContext(ctx,
		"INSERT INTO orders (status, created_at) VALUES ($1, $2) RETURNING id, created_at",
		order.Status, order.CreatedAt,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, price_per_kg, paid_amount, weight_kg)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.PricePerKg, item.PaidAmount, item.WeightKg,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) UpdateOrderStatus(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = $1, completed_at = $2 WHERE id = $3",
		order.Status, order.CompletedAt, order.ID)
	return err
}

func (r *orderRepo) itemsFor(ctx context.Context, orderId int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, product_id, product_name, price_per_kg, paid_amount, weight_kg FROM order_items WHERE order_id = $1 ORDER BY id",
		orderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.PricePerKg, &item.PaidAmount, &item.WeightKg,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
