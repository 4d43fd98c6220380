package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/domain/inventory"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const orderCols = `id, paciente_id, total_amount, shipping_address, source, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.PacienteID, &o.TotalAmount, &o.ShippingAddress,
		&o.Source, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *repoPG) Create(ctx context.Context, o *Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	o.ID = uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, paciente_id, total_amount, shipping_address, source, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.PacienteID, o.TotalAmount, o.ShippingAddress, o.Source, o.Status)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		item.ID = uuid.New()
		item.OrderID = o.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, estoque_id, quantity, unit_price, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, item.OrderID, item.EstoqueID, item.Quantity, item.UnitPrice, item.Subtotal)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE estoque SET quantity = quantity - $2, updated_at = NOW() WHERE id = $1`,
			item.EstoqueID, item.Quantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *repoPG) GetWithItems(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.itemsForOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderCols+` FROM orders
		WHERE paciente_id = $1 ORDER BY created_at DESC`, pacienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range items {
		o.Items, err = r.itemsForOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *repoPG) itemsForOrder(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.order_id, i.estoque_id, i.quantity, i.unit_price, i.subtotal,
			e.id, e.name, e.description, e.category, e.quantity, e.min_quantity,
			e.sale_price, e.is_for_sale, e.active, e.created_at, e.updated_at
		FROM order_items i
		JOIN estoque e ON e.id = i.estoque_id
		WHERE i.order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		var item OrderItem
		var p inventory.Product
		err := rows.Scan(&item.ID, &item.OrderID, &item.EstoqueID, &item.Quantity, &item.UnitPrice, &item.Subtotal,
			&p.ID, &p.Name, &p.Description, &p.Category, &p.Quantity, &p.MinQuantity,
			&p.SalePrice, &p.IsForSale, &p.Active, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, &item)
	}
	return items, rows.Err()
}
