package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	AppointmentsOn(ctx context.Context, day time.Time) (int, error)
	PaidIncomeSince(ctx context.Context, since time.Time) (float64, error)
	NewPatientsSince(ctx context.Context, since time.Time) (int, error)
	UpcomingAppointments(ctx context.Context, from time.Time, limit int) ([]*UpcomingAppointment, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]RevenuePoint, error)
	TopProcedures(ctx context.Context, limit int) ([]ProcedureCount, error)
}
