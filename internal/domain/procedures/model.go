package procedures

import (
	"time"

	"github.com/google/uuid"
)

// Procedure maps to the procedimentos table.
type Procedure struct {
	ID                        uuid.UUID `db:"id" json:"id"`
	Name                      string    `db:"name" json:"name"`
	Description               *string   `db:"description" json:"description,omitempty"`
	Category                  *string   `db:"category" json:"category,omitempty"`
	DurationMinutes           int       `db:"duration" json:"duration"`
	Price                     float64   `db:"price" json:"price"`
	AvailableForOnlineBooking bool      `db:"available_for_online_booking" json:"available_for_online_booking"`
	Active                    bool      `db:"active" json:"active"`
	CreatedAt                 time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                 time.Time `db:"updated_at" json:"updated_at"`
}
