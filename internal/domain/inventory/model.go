package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Product is a stock item. Items flagged for sale appear in the patient
// facing store.
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Category    *string   `db:"category" json:"category,omitempty"`
	Quantity    int       `db:"quantity" json:"quantity"`
	MinQuantity int       `db:"min_quantity" json:"min_quantity"`
	SalePrice   *float64  `db:"sale_price" json:"sale_price,omitempty"`
	IsForSale   bool      `db:"is_for_sale" json:"is_for_sale"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
