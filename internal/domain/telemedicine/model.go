package telemedicine

import (
	"time"

	"github.com/google/uuid"
)

// Session is a video consultation tied to an appointment. The room ID keys
// the WebRTC signaling room both participants join.
type Session struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	AgendamentoID   uuid.UUID  `db:"agendamento_id" json:"agendamento_id"`
	PacienteID      uuid.UUID  `db:"paciente_id" json:"paciente_id"`
	ProfessionalID  uuid.UUID  `db:"professional_id" json:"professional_id"`
	RoomID          string     `db:"room_id" json:"room_id"`
	Status          string     `db:"status" json:"status"`
	StartedAt       *time.Time `db:"started_at" json:"started_at,omitempty"`
	EndedAt         *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
