package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Availability Window Repository ===========

type windowRepoPG struct{ pool *pgxpool.Pool }

func NewWindowRepoPG(pool *pgxpool.Pool) WindowRepository { return &windowRepoPG{pool: pool} }

const windowCols = `id, professional_id, day_of_week, start_time, end_time, is_available, created_at, updated_at`

func scanWindow(row pgx.Row) (*AvailabilityWindow, error) {
	var w AvailabilityWindow
	err := row.Scan(&w.ID, &w.ProfessionalID, &w.DayOfWeek, &w.StartTime, &w.EndTime,
		&w.IsAvailable, &w.CreatedAt, &w.UpdatedAt)
	return &w, err
}

func (r *windowRepoPG) Create(ctx context.Context, w *AvailabilityWindow) error {
	w.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO availability_settings (id, professional_id, day_of_week, start_time, end_time, is_available)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		w.ID, w.ProfessionalID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsAvailable)
	return err
}

func (r *windowRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AvailabilityWindow, error) {
	return scanWindow(r.pool.QueryRow(ctx, `SELECT `+windowCols+` FROM availability_settings WHERE id = $1`, id))
}

func (r *windowRepoPG) Update(ctx context.Context, w *AvailabilityWindow) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE availability_settings SET day_of_week=$2, start_time=$3, end_time=$4, is_available=$5, updated_at=NOW()
		WHERE id = $1`,
		w.ID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsAvailable)
	return err
}

func (r *windowRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM availability_settings WHERE id = $1`, id)
	return err
}

func (r *windowRepoPG) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*AvailabilityWindow, error) {
	return r.queryWindows(ctx, `SELECT `+windowCols+` FROM availability_settings
		WHERE professional_id = $1 ORDER BY day_of_week, start_time`, professionalID)
}

func (r *windowRepoPG) ListForDay(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) ([]*AvailabilityWindow, error) {
	return r.queryWindows(ctx, `SELECT `+windowCols+` FROM availability_settings
		WHERE professional_id = $1 AND day_of_week = $2 AND is_available = TRUE
		ORDER BY start_time`, professionalID, dayOfWeek)
}

func (r *windowRepoPG) queryWindows(ctx context.Context, query string, args ...interface{}) ([]*AvailabilityWindow, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*AvailabilityWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const apptCols = `id, paciente_id, procedimento_id, professional_id, start_time, end_time,
	status, notes, source, confirmation_sent, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PacienteID, &a.ProcedimentoID, &a.ProfessionalID, &a.StartTime,
		&a.EndTime, &a.Status, &a.Notes, &a.Source, &a.ConfirmationSent, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO agendamentos (id, paciente_id, procedimento_id, professional_id,
			start_time, end_time, status, notes, source, confirmation_sent)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.PacienteID, a.ProcedimentoID, a.ProfessionalID,
		a.StartTime, a.EndTime, a.Status, a.Notes, a.Source, a.ConfirmationSent)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM agendamentos WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE agendamentos SET start_time=$2, end_time=$3, status=$4, notes=$5,
			confirmation_sent=$6, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.StartTime, a.EndTime, a.Status, a.Notes, a.ConfirmationSent)
	return err
}

func (r *appointmentRepoPG) List(ctx context.Context, filter AppointmentFilter) ([]*Appointment, error) {
	query := `SELECT ` + apptCols + ` FROM agendamentos WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.ProfessionalID != nil {
		query += fmt.Sprintf(` AND professional_id = $%d`, idx)
		args = append(args, *filter.ProfessionalID)
		idx++
	}
	if filter.PacienteID != nil {
		query += fmt.Sprintf(` AND paciente_id = $%d`, idx)
		args = append(args, *filter.PacienteID)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.StartDate != nil {
		query += fmt.Sprintf(` AND start_time >= $%d`, idx)
		args = append(args, *filter.StartDate)
		idx++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(` AND start_time <= $%d`, idx)
		args = append(args, *filter.EndDate)
		idx++
	}
	query += ` ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) BookingsForDay(ctx context.Context, professionalID uuid.UUID, day time.Time) ([]Booking, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	rows, err := r.pool.Query(ctx, `
		SELECT start_time, end_time FROM agendamentos
		WHERE professional_id = $1 AND start_time >= $2 AND start_time <= $3 AND status <> 'cancelled'`,
		professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.Start, &b.End); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *appointmentRepoPG) HasConflict(ctx context.Context, professionalID uuid.UUID, start, end time.Time) (bool, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM agendamentos
		WHERE professional_id = $1 AND start_time >= $2 AND start_time <= $3 AND status <> 'cancelled'`,
		professionalID, start, end).Scan(&count)
	return count > 0, err
}
