package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const productCols = `id, name, description, category, quantity, min_quantity,
	sale_price, is_for_sale, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Quantity, &p.MinQuantity,
		&p.SalePrice, &p.IsForSale, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Product) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO estoque (id, name, description, category, quantity, min_quantity, sale_price, is_for_sale, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Description, p.Category, p.Quantity, p.MinQuantity, p.SalePrice, p.IsForSale, p.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productCols+` FROM estoque WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Product) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE estoque SET name=$2, description=$3, category=$4, quantity=$5, min_quantity=$6,
			sale_price=$7, is_for_sale=$8, active=$9, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Category, p.Quantity, p.MinQuantity, p.SalePrice, p.IsForSale, p.Active)
	return err
}

func (r *repoPG) List(ctx context.Context, forSaleOnly bool) ([]*Product, error) {
	query := `SELECT ` + productCols + ` FROM estoque`
	if forSaleOnly {
		query += ` WHERE is_for_sale = TRUE AND active = TRUE`
	}
	query += ` ORDER BY name`
	return r.queryProducts(ctx, query)
}

func (r *repoPG) LowStock(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx, `SELECT `+productCols+` FROM estoque WHERE quantity <= min_quantity ORDER BY name`)
}

func (r *repoPG) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
