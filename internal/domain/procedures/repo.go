package procedures

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Procedure) error
	GetByID(ctx context.Context, id uuid.UUID) (*Procedure, error)
	List(ctx context.Context, activeOnly bool) ([]*Procedure, error)
	ListBookable(ctx context.Context) ([]*Procedure, error)
	Categories(ctx context.Context) ([]string, error)
}
