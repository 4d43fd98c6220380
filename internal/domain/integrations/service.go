package integrations

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

func (s *Service) CreateIntegration(ctx context.Context, i *Integration) error {
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}
	if i.Type == "" {
		return fmt.Errorf("type is required")
	}
	if len(i.Credentials) == 0 {
		return fmt.Errorf("credentials are required")
	}
	return s.repo.Create(ctx, i)
}

func (s *Service) ListIntegrations(ctx context.Context, integrationType string) ([]*IntegrationSummary, error) {
	return s.repo.List(ctx, integrationType)
}

// ToggleIntegration flips the active flag and returns the new state.
func (s *Service) ToggleIntegration(ctx context.Context, id uuid.UUID) (bool, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	newState := !i.IsActive
	if err := s.repo.SetActive(ctx, id, newState); err != nil {
		return false, err
	}
	return newState, nil
}

func (s *Service) SaveAPIKey(ctx context.Context, k *APIKey) error {
	if k.Name == "" {
		return fmt.Errorf("name is required")
	}
	if k.Service == "" {
		return fmt.Errorf("service is required")
	}
	if k.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	return s.repo.CreateAPIKey(ctx, k)
}

func (s *Service) ListAPIKeys(ctx context.Context) ([]*APIKeySummary, error) {
	return s.repo.ListAPIKeys(ctx)
}

func (s *Service) GetAPIKeyByService(ctx context.Context, service string) (*APIKey, error) {
	return s.repo.GetAPIKeyByService(ctx, service)
}
