package financial

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	List(ctx context.Context, filter Filter) ([]*Record, error)
	// Totals returns paid income, paid expense and pending amounts, optionally
	// restricted to a month in YYYY-MM format.
	Totals(ctx context.Context, month string) (income, expense, pending float64, err error)
}
