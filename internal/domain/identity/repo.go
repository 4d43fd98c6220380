package identity

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetByPhone(ctx context.Context, phone string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	ListByRole(ctx context.Context, role string) ([]*Profile, error)
}
