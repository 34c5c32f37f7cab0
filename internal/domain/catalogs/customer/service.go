package customer

import (
	"context"
	"fmt"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/domain"
	"karobar/pkg/logger"
)

// Service provides business operations for the customer catalog.
type Service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a standalone customer (the ledger engine creates inline
// customers itself, inside its own transaction).
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	logger.Info(ctx, "customer created", "id", c.ID, "salesman_id", c.SalesmanID)
	return nil
}

// GetByID retrieves a customer.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// Update modifies contact details. TotalDue changes are rejected here;
// the ledger engine is the only writer of that aggregate.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	current, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if !current.TotalDue.Equal(c.TotalDue) {
		return apperror.NewValidation("total due cannot be edited directly").
			WithDetail("field", "totalDue")
	}

	return s.repo.Update(ctx, c)
}

// Delete removes a customer. Refused while a balance is outstanding.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c.TotalDue.IsPositive() {
		return apperror.NewConflict("customer has outstanding due balance").
			WithDetail("total_due", c.TotalDue.String())
	}
	return s.repo.Delete(ctx, customerID)
}

// List retrieves customers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Customer], error) {
	return s.repo.List(ctx, filter)
}
