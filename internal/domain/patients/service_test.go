package patients

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) GetByWhatsAppNumber(_ context.Context, number string) (*Patient, error) {
	for _, p := range m.patients {
		if p.WhatsAppNumber != nil && *p.WhatsAppNumber == number {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, search string) ([]*Patient, error) {
	var result []*Patient
	for _, p := range m.patients {
		if search == "" || strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			result = append(result, p)
		}
	}
	return result, nil
}

func strPtr(s string) *string { return &s }

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{FullName: "Maria Silva", WhatsAppNumber: strPtr("5511999990000")}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestCreatePatient_RequiresFullName(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.CreatePatient(context.Background(), &Patient{})
	if err == nil {
		t.Fatal("expected error for missing full_name")
	}
}

func TestUpdatePatient_AppliesPartialUpdate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{FullName: "Maria Silva", Phone: strPtr("11 3333-0000")}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdatePatient(context.Background(), p.ID, &PatientUpdate{
		Email: strPtr("maria@example.com"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Email == nil || *updated.Email != "maria@example.com" {
		t.Error("expected email to be updated")
	}
	if updated.FullName != "Maria Silva" {
		t.Error("expected untouched fields to be preserved")
	}
	if updated.Phone == nil || *updated.Phone != "11 3333-0000" {
		t.Error("expected phone to be preserved")
	}
}

func TestUpdatePatient_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.UpdatePatient(context.Background(), uuid.New(), &PatientUpdate{})
	if err == nil {
		t.Fatal("expected error for unknown patient")
	}
}

func TestGetByWhatsAppNumber(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{FullName: "Ana", WhatsAppNumber: strPtr("5511988887777")}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := svc.GetByWhatsAppNumber(context.Background(), "5511988887777")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != p.ID {
		t.Error("expected matching patient")
	}
}

func TestListPatients_Search(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	for _, name := range []string{"Maria Silva", "Ana Souza", "Mariana Costa"} {
		if err := svc.CreatePatient(context.Background(), &Patient{FullName: name}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, err := svc.ListPatients(context.Background(), "maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 matches, got %d", len(items))
	}
}
