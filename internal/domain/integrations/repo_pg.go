package integrations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Create(ctx context.Context, i *Integration) error {
	i.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO integrations (id, name, type, provider, credentials, settings, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		i.ID, i.Name, i.Type, i.Provider, i.Credentials, i.Settings, i.IsActive)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Integration, error) {
	var i Integration
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, type, provider, credentials, settings, is_active, last_sync, created_at, updated_at
		FROM integrations WHERE id = $1`, id).
		Scan(&i.ID, &i.Name, &i.Type, &i.Provider, &i.Credentials, &i.Settings,
			&i.IsActive, &i.LastSync, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE integrations SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	return err
}

func (r *repoPG) List(ctx context.Context, integrationType string) ([]*IntegrationSummary, error) {
	query := `SELECT id, name, type, provider, is_active, last_sync FROM integrations`
	var args []interface{}
	if integrationType != "" {
		query += ` WHERE type = $1`
		args = append(args, integrationType)
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*IntegrationSummary
	for rows.Next() {
		var s IntegrationSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Provider, &s.IsActive, &s.LastSync); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoPG) CreateAPIKey(ctx context.Context, k *APIKey) error {
	k.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO api_keys (id, name, service, api_key, api_secret, additional_config, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,TRUE)`,
		k.ID, k.Name, k.Service, k.APIKey, k.APISecret, k.AdditionalConfig)
	return err
}

func (r *repoPG) ListAPIKeys(ctx context.Context) ([]*APIKeySummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, service, is_active, usage_count, expires_at FROM api_keys ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*APIKeySummary
	for rows.Next() {
		var s APIKeySummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Service, &s.IsActive, &s.UsageCount, &s.ExpiresAt); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoPG) GetAPIKeyByService(ctx context.Context, service string) (*APIKey, error) {
	var k APIKey
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, service, api_key, api_secret, additional_config, is_active, usage_count, expires_at, created_at
		FROM api_keys WHERE service = $1 AND is_active = TRUE`, service).
		Scan(&k.ID, &k.Name, &k.Service, &k.APIKey, &k.APISecret, &k.AdditionalConfig,
			&k.IsActive, &k.UsageCount, &k.ExpiresAt, &k.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
