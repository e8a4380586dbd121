package service

import (
	"context"
	"fmt"
	"time"

	"stock-tracker/internal/domain"
	"stock-tracker/internal/repository"
)

// CatalogService defines the interface for product catalog business logic.
// Mutating operations perform a capability check at this boundary.
type CatalogService interface {
	Add(ctx context.Context, actor domain.Role, name, description string, price float64, stock int, lowStockAlert *int) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Update(ctx context.Context, actor domain.Role, id int, update domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.Role, id int) error
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// Add stores a new product and returns it with its assigned identifier.
// Numeric ranges are not validated beyond parsing: negative price or stock is
// accepted as-is, a documented gap this implementation preserves.
func (s *catalogService) Add(ctx context.Context, actor domain.Role, name, description string, price float64, stock int, lowStockAlert *int) (*domain.Product, error) {
	if err := requireRole(actor, CapCatalogWrite); err != nil {
		return nil, err
	}

	alert := domain.DefaultLowStockAlert
	if lowStockAlert != nil {
		alert = *lowStockAlert
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:          name,
		Description:   description,
		Price:         price,
		Stock:         stock,
		LowStockAlert: alert,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// List returns every product ordered by identifier.
func (s *catalogService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get retrieves a single product by identifier.
func (s *catalogService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Update applies a partial update: fields left nil retain their current
// value. No mutation occurs when the product does not exist.
func (s *catalogService) Update(ctx context.Context, actor domain.Role, id int, update domain.ProductUpdate) (*domain.Product, error) {
	if err := requireRole(actor, CapCatalogWrite); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.LowStockAlert != nil {
		product.LowStockAlert = *update.LowStockAlert
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product. The identifier sequence resets to the smallest
// unused value as a side effect; historical ledger entries for the product are
// left in place.
func (s *catalogService) Delete(ctx context.Context, actor domain.Role, id int) error {
	if err := requireRole(actor, CapCatalogDelete); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, id)
}
