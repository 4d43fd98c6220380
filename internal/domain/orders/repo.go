package orders

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create stores the order and its items and decrements stock, all in a
	// single transaction.
	Create(ctx context.Context, o *Order) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*Order, error)
}
