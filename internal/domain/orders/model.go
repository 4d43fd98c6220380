package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/inventory"
)

// Order is a product purchase made by a patient, typically through the PWA
// store.
type Order struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	PacienteID      uuid.UUID    `db:"paciente_id" json:"paciente_id"`
	TotalAmount     float64      `db:"total_amount" json:"total_amount"`
	ShippingAddress *string      `db:"shipping_address" json:"shipping_address,omitempty"`
	Source          string       `db:"source" json:"source"`
	Status          string       `db:"status" json:"status"`
	Items           []*OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	OrderID   uuid.UUID          `db:"order_id" json:"order_id"`
	EstoqueID uuid.UUID          `db:"estoque_id" json:"estoque_id"`
	Quantity  int                `db:"quantity" json:"quantity"`
	UnitPrice float64            `db:"unit_price" json:"unit_price"`
	Subtotal  float64            `db:"subtotal" json:"subtotal"`
	Product   *inventory.Product `json:"product,omitempty"`
}
