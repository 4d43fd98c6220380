package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if p.SalePrice != nil && *p.SalePrice < 0 {
		return fmt.Errorf("sale_price cannot be negative")
	}
	if p.IsForSale && p.SalePrice == nil {
		return fmt.Errorf("sale_price is required for products for sale")
	}
	p.Active = true
	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, forSaleOnly bool) ([]*Product, error) {
	return s.repo.List(ctx, forSaleOnly)
}

func (s *Service) LowStockProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.LowStock(ctx)
}
