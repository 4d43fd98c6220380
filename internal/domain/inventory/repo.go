package inventory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Update(ctx context.Context, p *Product) error
	List(ctx context.Context, forSaleOnly bool) ([]*Product, error)
	// LowStock returns products whose quantity has fallen to or below their
	// minimum quantity.
	LowStock(ctx context.Context) ([]*Product, error)
}
