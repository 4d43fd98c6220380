package financial

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const recordCols = `id, type, category, amount, date::text, description, status,
	paciente_id, agendamento_id, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.Type, &r.Category, &r.Amount, &r.Date, &r.Description,
		&r.Status, &r.PacienteID, &r.AgendamentoID, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *repoPG) Create(ctx context.Context, r *Record) error {
	r.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO financeiro (id, type, category, amount, date, description, status, paciente_id, agendamento_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		r.ID, r.Type, r.Category, r.Amount, r.Date, r.Description, r.Status, r.PacienteID, r.AgendamentoID)
	return err
}

func (p *repoPG) List(ctx context.Context, filter Filter) ([]*Record, error) {
	query := `SELECT ` + recordCols + ` FROM financeiro WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.Type != "" {
		query += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, filter.Type)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.StartDate != "" {
		query += fmt.Sprintf(` AND date >= $%d`, idx)
		args = append(args, filter.StartDate)
		idx++
	}
	if filter.EndDate != "" {
		query += fmt.Sprintf(` AND date <= $%d`, idx)
		args = append(args, filter.EndDate)
		idx++
	}
	query += ` ORDER BY date DESC`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func (p *repoPG) Totals(ctx context.Context, month string) (float64, float64, float64, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income' AND status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense' AND status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0)
		FROM financeiro`
	var args []interface{}
	if month != "" {
		query += ` WHERE to_char(date, 'YYYY-MM') = $1`
		args = append(args, month)
	}

	var income, expense, pending float64
	err := p.pool.QueryRow(ctx, query, args...).Scan(&income, &expense, &pending)
	return income, expense, pending, err
}
