package patients

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, full_name, email, phone, whatsapp_number, cpf, birth_date,
	gender, address, observations, tags, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.WhatsAppNumber, &p.CPF,
		&p.BirthDate, &p.Gender, &p.Address, &p.Observations, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pacientes (id, full_name, email, phone, whatsapp_number, cpf, birth_date,
			gender, address, observations, tags)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.FullName, p.Email, p.Phone, p.WhatsAppNumber, p.CPF, p.BirthDate,
		p.Gender, p.Address, p.Observations, p.Tags)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM pacientes WHERE id = $1`, id))
}

func (r *repoPG) GetByWhatsAppNumber(ctx context.Context, number string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM pacientes WHERE whatsapp_number = $1`, number))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE pacientes SET full_name=$2, email=$3, phone=$4, whatsapp_number=$5, cpf=$6,
			birth_date=$7, gender=$8, address=$9, observations=$10, tags=$11, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.Email, p.Phone, p.WhatsAppNumber, p.CPF,
		p.BirthDate, p.Gender, p.Address, p.Observations, p.Tags)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pacientes WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, search string) ([]*Patient, error) {
	query := `SELECT ` + patientCols + ` FROM pacientes`
	var args []interface{}
	if search != "" {
		query += ` WHERE full_name ILIKE $1 OR cpf ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY full_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
