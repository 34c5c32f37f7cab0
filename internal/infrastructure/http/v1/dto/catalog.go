package dto

import (
	"time"

	"karobar/internal/core/types"
	"karobar/internal/domain/catalogs/customer"
	"karobar/internal/domain/catalogs/product"
)

// --- Product ---

// CreateProductRequest for adding a product to the catalog.
type CreateProductRequest struct {
	Name         string      `json:"name" binding:"required"`
	SKU          string      `json:"sku" binding:"required"`
	PiecesPerBox int         `json:"piecesPerBox" binding:"required,gt=0"`
	Stock        int         `json:"stock" binding:"gte=0"`
	CostPrice    types.Money `json:"costPrice"`
	SalePrice    types.Money `json:"salePrice"`
	ExpiryDate   *time.Time  `json:"expiryDate,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.Name, r.SKU, r.PiecesPerBox, r.Stock, r.CostPrice, r.SalePrice)
	p.ExpiryDate = r.ExpiryDate
	return p
}

// UpdateProductRequest for editing a product. Stock is not editable here;
// it moves through restock and sale operations only.
type UpdateProductRequest struct {
	Name         *string      `json:"name"`
	SKU          *string      `json:"sku"`
	PiecesPerBox *int         `json:"piecesPerBox"`
	CostPrice    *types.Money `json:"costPrice"`
	SalePrice    *types.Money `json:"salePrice"`
	ExpiryDate   *time.Time   `json:"expiryDate"`
	Version      int          `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.SKU != nil {
		p.SKU = *r.SKU
	}
	if r.PiecesPerBox != nil {
		p.PiecesPerBox = *r.PiecesPerBox
	}
	if r.CostPrice != nil {
		p.CostPrice = *r.CostPrice
	}
	if r.SalePrice != nil {
		p.SalePrice = *r.SalePrice
	}
	if r.ExpiryDate != nil {
		p.ExpiryDate = r.ExpiryDate
	}
	p.Version = r.Version
}

// RestockRequest adds boxes to a product's stock.
type RestockRequest struct {
	Boxes int `json:"boxes" binding:"required,gt=0"`
}

// --- Customer ---

// CreateCustomerRequest for adding a customer.
type CreateCustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address"`
	SalesmanID string `json:"salesmanId" binding:"required"`
}

// ToEntity converts request to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	return customer.New(r.Name, r.Phone, r.Address, r.SalesmanID)
}

// UpdateCustomerRequest for editing contact details. TotalDue is absent
// on purpose; the ledger is the only writer of that aggregate.
type UpdateCustomerRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	SalesmanID *string `json:"salesmanId"`
	Version    int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.SalesmanID != nil {
		c.SalesmanID = *r.SalesmanID
	}
	c.Version = r.Version
}
