package telemedicine

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const sessionCols = `id, agendamento_id, paciente_id, professional_id, room_id, status,
	started_at, ended_at, duration_minutes, notes, created_at, updated_at`

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.AgendamentoID, &s.PacienteID, &s.ProfessionalID, &s.RoomID,
		&s.Status, &s.StartedAt, &s.EndedAt, &s.DurationMinutes, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Session) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO telemedicine_sessions (id, agendamento_id, paciente_id, professional_id, room_id, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.AgendamentoID, s.PacienteID, s.ProfessionalID, s.RoomID, s.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	return scanSession(r.pool.QueryRow(ctx, `SELECT `+sessionCols+` FROM telemedicine_sessions WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, s *Session) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE telemedicine_sessions SET status=$2, started_at=$3, ended_at=$4,
			duration_minutes=$5, notes=$6, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Status, s.StartedAt, s.EndedAt, s.DurationMinutes, s.Notes)
	return err
}
