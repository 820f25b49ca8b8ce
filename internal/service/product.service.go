package service

import (
	"context"
	"fmt"

	"bazaar-orders/internal/domain"
	"bazaar-orders/internal/repo"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, name string, pricePerKg int64, imageURL *string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, update repo.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repo.ProductRepo
}

func NewProductService(productRepo repo.ProductRepo) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx)
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, name string, pricePerKg int64, imageURL *string) (*domain.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if pricePerKg <= 0 {
		return nil, fmt.Errorf("%w: price per kg must be positive", domain.ErrValidation)
	}

	product := &domain.Product{Name: name, PricePerKg: pricePerKg, ImageURL: imageURL}
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, update repo.ProductUpdate) (*domain.Product, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("%w: product name cannot be empty", domain.ErrValidation)
	}
	if update.PricePerKg != nil && *update.PricePerKg <= 0 {
		return nil, fmt.Errorf("%w: price per kg must be positive", domain.ErrValidation)
	}

	product, err := s.productRepo.UpdateProduct(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return product, nil
}

// DeleteProduct is idempotent and leaves historical order items untouched.
func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	return s.productRepo.DeleteProduct(ctx, id)
}
