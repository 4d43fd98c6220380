package integrations

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, i *Integration) error
	GetByID(ctx context.Context, id uuid.UUID) (*Integration, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, integrationType string) ([]*IntegrationSummary, error)

	CreateAPIKey(ctx context.Context, k *APIKey) error
	ListAPIKeys(ctx context.Context) ([]*APIKeySummary, error)
	GetAPIKeyByService(ctx context.Context, service string) (*APIKey, error)
}
