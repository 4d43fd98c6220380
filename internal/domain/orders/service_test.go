package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	orders map[uuid.UUID]*Order
}

func newMockRepo() *mockRepo {
	return &mockRepo{orders: make(map[uuid.UUID]*Order)}
}

func (m *mockRepo) Create(_ context.Context, o *Order) error {
	o.ID = uuid.New()
	m.orders[o.ID] = o
	return nil
}

func (m *mockRepo) GetWithItems(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return o, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, pacienteID uuid.UUID) ([]*Order, error) {
	var result []*Order
	for _, o := range m.orders {
		if o.PacienteID == pacienteID {
			result = append(result, o)
		}
	}
	return result, nil
}

func TestCreateOrder_ComputesTotals(t *testing.T) {
	svc := NewService(newMockRepo())

	o := &Order{
		PacienteID: uuid.New(),
		Items: []*OrderItem{
			{EstoqueID: uuid.New(), Quantity: 2, UnitPrice: 50},
			{EstoqueID: uuid.New(), Quantity: 1, UnitPrice: 89.90},
		},
	}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.Items[0].Subtotal != 100 {
		t.Errorf("expected subtotal 100, got %v", o.Items[0].Subtotal)
	}
	if o.TotalAmount != 189.90 {
		t.Errorf("expected total 189.90, got %v", o.TotalAmount)
	}
	if o.Status != "pending" {
		t.Errorf("expected status pending, got %s", o.Status)
	}
	if o.Source != "pwa" {
		t.Errorf("expected default source pwa, got %s", o.Source)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []Order{
		{Items: []*OrderItem{{EstoqueID: uuid.New(), Quantity: 1, UnitPrice: 10}}},
		{PacienteID: uuid.New()},
		{PacienteID: uuid.New(), Items: []*OrderItem{{Quantity: 1, UnitPrice: 10}}},
		{PacienteID: uuid.New(), Items: []*OrderItem{{EstoqueID: uuid.New(), Quantity: 0, UnitPrice: 10}}},
		{PacienteID: uuid.New(), Items: []*OrderItem{{EstoqueID: uuid.New(), Quantity: 1, UnitPrice: -1}}},
	}
	for i := range cases {
		if err := svc.CreateOrder(context.Background(), &cases[i]); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestListPatientOrders(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	pacienteID := uuid.New()
	for i := 0; i < 2; i++ {
		o := &Order{PacienteID: pacienteID, Items: []*OrderItem{{EstoqueID: uuid.New(), Quantity: 1, UnitPrice: 10}}}
		if err := svc.CreateOrder(context.Background(), o); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	other := &Order{PacienteID: uuid.New(), Items: []*OrderItem{{EstoqueID: uuid.New(), Quantity: 1, UnitPrice: 10}}}
	if err := svc.CreateOrder(context.Background(), other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := svc.ListPatientOrders(context.Background(), pacienteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(items))
	}
}
