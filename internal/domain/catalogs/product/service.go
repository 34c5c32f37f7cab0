package product

import (
	"context"
	"fmt"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/domain"
	"karobar/pkg/logger"
)

// Service provides business operations for the product catalog.
type Service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new product after checking SKU uniqueness.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetBySKU(ctx, p.SKU)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check sku: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("product", "sku", p.SKU)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	logger.Info(ctx, "product created", "id", p.ID, "sku", p.SKU)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update modifies an existing product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// Restock increases stock by the given number of boxes.
func (s *Service) Restock(ctx context.Context, productID id.ID, boxes int) error {
	if boxes <= 0 {
		return apperror.NewValidation("restock quantity must be positive").
			WithDetail("field", "boxes")
	}

	if err := s.repo.AdjustStock(ctx, productID, boxes); err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	logger.Info(ctx, "product restocked", "id", productID, "boxes", boxes)
	return nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.repo.Delete(ctx, productID)
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.List(ctx, filter)
}
