package procedures

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const procCols = `id, name, description, category, duration, price,
	available_for_online_booking, active, created_at, updated_at`

func scanProcedure(row pgx.Row) (*Procedure, error) {
	var p Procedure
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.DurationMinutes, &p.Price,
		&p.AvailableForOnlineBooking, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Procedure) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO procedimentos (id, name, description, category, duration, price,
			available_for_online_booking, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Description, p.Category, p.DurationMinutes, p.Price,
		p.AvailableForOnlineBooking, p.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return scanProcedure(r.pool.QueryRow(ctx, `SELECT `+procCols+` FROM procedimentos WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, activeOnly bool) ([]*Procedure, error) {
	query := `SELECT ` + procCols + ` FROM procedimentos`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name`
	return r.queryList(ctx, query)
}

func (r *repoPG) ListBookable(ctx context.Context) ([]*Procedure, error) {
	return r.queryList(ctx, `SELECT `+procCols+` FROM procedimentos
		WHERE active = TRUE AND available_for_online_booking = TRUE ORDER BY name`)
}

func (r *repoPG) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM procedimentos WHERE category IS NOT NULL ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repoPG) queryList(ctx context.Context, query string) ([]*Procedure, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Procedure
	for rows.Next() {
		p, err := scanProcedure(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
