package financial

import (
	"time"

	"github.com/google/uuid"
)

// Record is a cashflow entry, either income or expense.
type Record struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Type          string     `db:"type" json:"type"`
	Category      *string    `db:"category" json:"category,omitempty"`
	Amount        float64    `db:"amount" json:"amount"`
	Date          string     `db:"date" json:"date"`
	Description   *string    `db:"description" json:"description,omitempty"`
	Status        string     `db:"status" json:"status"`
	PacienteID    *uuid.UUID `db:"paciente_id" json:"paciente_id,omitempty"`
	AgendamentoID *uuid.UUID `db:"agendamento_id" json:"agendamento_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Summary aggregates paid income and expenses plus outstanding pending
// amounts, optionally restricted to a month.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
	Pending float64 `json:"pending"`
}

type Filter struct {
	Type      string
	Status    string
	StartDate string
	EndDate   string
}
