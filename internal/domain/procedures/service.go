package procedures

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const DefaultDurationMinutes = 60

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProcedure(ctx context.Context, p *Procedure) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.DurationMinutes <= 0 {
		p.DurationMinutes = DefaultDurationMinutes
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	p.Active = true
	return s.repo.Create(ctx, p)
}

func (s *Service) GetProcedure(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProcedures(ctx context.Context, activeOnly bool) ([]*Procedure, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) ListBookable(ctx context.Context) ([]*Procedure, error) {
	return s.repo.ListBookable(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}
