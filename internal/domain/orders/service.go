package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateOrder validates the order, computes per item subtotals and the order
// total, and stores everything transactionally.
func (s *Service) CreateOrder(ctx context.Context, o *Order) error {
	if o.PacienteID == uuid.Nil {
		return fmt.Errorf("paciente_id is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order must have at least one item")
	}

	var total float64
	for _, item := range o.Items {
		if item.EstoqueID == uuid.Nil {
			return fmt.Errorf("estoque_id is required on every item")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("unit_price cannot be negative")
		}
		item.Subtotal = float64(item.Quantity) * item.UnitPrice
		total += item.Subtotal
	}

	o.TotalAmount = total
	o.Status = "pending"
	if o.Source == "" {
		o.Source = "pwa"
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetWithItems(ctx, id)
}

func (s *Service) ListPatientOrders(ctx context.Context, pacienteID uuid.UUID) ([]*Order, error) {
	return s.repo.ListByPatient(ctx, pacienteID)
}
