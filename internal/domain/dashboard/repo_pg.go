package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RepoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{pool: pool}
}

func (r *RepoPG) AppointmentsOn(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM agendamentos
		WHERE status <> 'cancelled' AND start_time >= $1 AND start_time < $2`,
		start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return count, nil
}

func (r *RepoPG) PaidIncomeSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM financeiro
		WHERE type = 'income' AND status = 'paid' AND date >= $1`,
		since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum income: %w", err)
	}
	return total, nil
}

func (r *RepoPG) NewPatientsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pacientes WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return count, nil
}

func (r *RepoPG) UpcomingAppointments(ctx context.Context, from time.Time, limit int) ([]*UpcomingAppointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.start_time, a.status,
		       COALESCE(p.full_name, ''), COALESCE(pr.name, '')
		FROM agendamentos a
		LEFT JOIN pacientes p ON p.id = a.paciente_id
		LEFT JOIN procedimentos pr ON pr.id = a.procedimento_id
		WHERE a.status <> 'cancelled' AND a.start_time >= $1
		ORDER BY a.start_time ASC
		LIMIT $2`, from, limit)
	if err != nil {
		return nil, fmt.Errorf("query upcoming appointments: %w", err)
	}
	defer rows.Close()

	var items []*UpcomingAppointment
	for rows.Next() {
		var a UpcomingAppointment
		if err := rows.Scan(&a.ID, &a.StartTime, &a.Status, &a.PatientName, &a.ProcedureName); err != nil {
			return nil, fmt.Errorf("scan upcoming appointment: %w", err)
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *RepoPG) MonthlyRevenue(ctx context.Context, since time.Time) ([]RevenuePoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount)
		FROM financeiro
		WHERE type = 'income' AND status = 'paid' AND date >= $1
		GROUP BY month
		ORDER BY month ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("query monthly revenue: %w", err)
	}
	defer rows.Close()

	var points []RevenuePoint
	for rows.Next() {
		var p RevenuePoint
		if err := rows.Scan(&p.Month, &p.Value); err != nil {
			return nil, fmt.Errorf("scan revenue point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *RepoPG) TopProcedures(ctx context.Context, limit int) ([]ProcedureCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(pr.name, 'Desconhecido'), COUNT(*) AS bookings
		FROM agendamentos a
		LEFT JOIN procedimentos pr ON pr.id = a.procedimento_id
		WHERE a.status <> 'cancelled'
		GROUP BY pr.name
		ORDER BY bookings DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top procedures: %w", err)
	}
	defer rows.Close()

	var items []ProcedureCount
	for rows.Next() {
		var p ProcedureCount
		if err := rows.Scan(&p.Name, &p.Count); err != nil {
			return nil, fmt.Errorf("scan procedure count: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
