package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const profileCols = `id, email, full_name, phone, role, password_hash, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role,
		&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Profile) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, phone, role, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Email, p.FullName, p.Phone, p.Role, p.PasswordHash)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileCols+` FROM profiles WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileCols+` FROM profiles WHERE email = $1`, email))
}

func (r *repoPG) GetByPhone(ctx context.Context, phone string) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileCols+` FROM profiles WHERE phone = $1`, phone))
}

func (r *repoPG) Update(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles SET email=$2, full_name=$3, phone=$4, role=$5, password_hash=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Email, p.FullName, p.Phone, p.Role, p.PasswordHash)
	return err
}

func (r *repoPG) ListByRole(ctx context.Context, role string) ([]*Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profileCols+` FROM profiles WHERE role = $1 ORDER BY full_name`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
