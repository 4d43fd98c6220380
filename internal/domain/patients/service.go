package patients

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

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByWhatsAppNumber(ctx context.Context, number string) (*Patient, error) {
	return s.repo.GetByWhatsAppNumber(ctx, number)
}

// CreateLead registers a patient stub for an unknown WhatsApp contact. Leads
// have no name yet, only the number they wrote from.
func (s *Service) CreateLead(ctx context.Context, whatsappNumber, observations string, tags []string) (*Patient, error) {
	if whatsappNumber == "" {
		return nil, fmt.Errorf("whatsapp_number is required")
	}
	p := &Patient{
		WhatsAppNumber: &whatsappNumber,
		Observations:   &observations,
		Tags:           tags,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, update *PatientUpdate) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(p)
	if p.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, search string) ([]*Patient, error) {
	return s.repo.List(ctx, search)
}
