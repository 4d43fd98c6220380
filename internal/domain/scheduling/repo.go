package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type WindowRepository interface {
	Create(ctx context.Context, w *AvailabilityWindow) error
	GetByID(ctx context.Context, id uuid.UUID) (*AvailabilityWindow, error)
	Update(ctx context.Context, w *AvailabilityWindow) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*AvailabilityWindow, error)
	ListForDay(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) ([]*AvailabilityWindow, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	List(ctx context.Context, filter AppointmentFilter) ([]*Appointment, error)
	BookingsForDay(ctx context.Context, professionalID uuid.UUID, day time.Time) ([]Booking, error)
	HasConflict(ctx context.Context, professionalID uuid.UUID, start, end time.Time) (bool, error)
}
