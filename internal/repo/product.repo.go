package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bazaar-orders/internal/domain"
)

// ProductUpdate carries the fields of a partial product update. Nil fields
// are left untouched; RemoveImage clears the image reference even when no
// replacement is supplied.
type ProductUpdate struct {
	Name        *string
	PricePerKg  *int64
	ImageURL    *string
	RemoveImage bool
}

type ProductRepo interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	FindById(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, id int64, update ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepo {
	return &productRepo{db: db}
}

func (r *productRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, price_per_kg, image_url FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePerKg, &p.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) FindById(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, price_per_kg, image_url FROM products WHERE id = $1", id,
	).Scan(&p.ID, &p.Name, &p.PricePerKg, &p.ImageURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) CreateProduct(ctx context.Context, product *domain.Product) error {
	return r.db.QueryRowContext(ctx,
		"INSERT INTO products (name, price_per_kg, image_url) VALUES ($1, $2, $3) RETURNING id",
		product.Name, product.PricePerKg, product.ImageURL,
	).Scan(&product.ID)
}

func (r *productRepo) UpdateProduct(ctx context.Context, id int64, update ProductUpdate) (*domain.Product, error) {
	var sets []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if update.Name != nil {
		sets = append(sets, "name = "+arg(*update.Name))
	}
	if update.PricePerKg != nil {
		sets = append(sets, "price_per_kg = "+arg(*update.PricePerKg))
	}
	// Removal wins even when a replacement image arrived in the same
	// request.
	if update.RemoveImage {
		sets = append(sets, "image_url = NULL")
	} else if update.ImageURL != nil {
		sets = append(sets, "image_url = "+arg(*update.ImageURL))
	}

	if len(sets) == 0 {
		return r.FindById(ctx, id)
	}

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = %s RETURNING id, name, price_per_kg, image_url",
		strings.Join(sets, ", "), arg(id),
	)

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.PricePerKg, &p.ImageURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct never cascades to order_items: line items keep their
// name/price snapshot after the product is gone.
func (r *productRepo) DeleteProduct(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}
