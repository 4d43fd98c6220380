package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow maps to the availability_settings table. DayOfWeek uses
// Monday=0 through Sunday=6. Start and end times are "HH:MM" strings.
type AvailabilityWindow struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ProfessionalID uuid.UUID `db:"professional_id" json:"professional_id"`
	DayOfWeek      int       `db:"day_of_week" json:"day_of_week"`
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
	IsAvailable    bool      `db:"is_available" json:"is_available"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Appointment maps to the agendamentos table.
type Appointment struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PacienteID       uuid.UUID `db:"paciente_id" json:"paciente_id"`
	ProcedimentoID   uuid.UUID `db:"procedimento_id" json:"procedimento_id"`
	ProfessionalID   uuid.UUID `db:"professional_id" json:"professional_id"`
	StartTime        time.Time `db:"start_time" json:"start_time"`
	EndTime          time.Time `db:"end_time" json:"end_time"`
	Status           string    `db:"status" json:"status"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	Source           string    `db:"source" json:"source"`
	ConfirmationSent bool      `db:"confirmation_sent" json:"confirmation_sent"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// AppointmentUpdate carries the optional fields of a partial update.
type AppointmentUpdate struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Booking is an occupied interval considered by the availability solver.
// Intervals are half-open: a booking ending at 10:00 does not block a slot
// starting at 10:00.
type Booking struct {
	Start time.Time
	End   time.Time
}

// Slot is a bookable interval produced by the availability solver.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Display   string `json:"display"`
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	ProfessionalID *uuid.UUID
	PacienteID     *uuid.UUID
	Status         string
	StartDate      *time.Time
	EndDate        *time.Time
}
