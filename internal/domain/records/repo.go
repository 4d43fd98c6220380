package records

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *AudioRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*AudioRecord, error)
	Update(ctx context.Context, r *AudioRecord) error
	ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*AudioRecord, error)
}
