package integrations

import (
	"time"

	"github.com/google/uuid"
)

// Integration is an external service connection, for example a payment
// gateway or a calendar sync.
type Integration struct {
	ID          uuid.UUID              `db:"id" json:"id"`
	Name        string                 `db:"name" json:"name"`
	Type        string                 `db:"type" json:"type"`
	Provider    *string                `db:"provider" json:"provider,omitempty"`
	Credentials map[string]interface{} `db:"credentials" json:"credentials,omitempty"`
	Settings    map[string]interface{} `db:"settings" json:"settings,omitempty"`
	IsActive    bool                   `db:"is_active" json:"is_active"`
	LastSync    *time.Time             `db:"last_sync" json:"last_sync,omitempty"`
	CreatedAt   time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time              `db:"updated_at" json:"updated_at"`
}

// IntegrationSummary is the listing shape. Credentials never leave the
// server through list endpoints.
type IntegrationSummary struct {
	ID       uuid.UUID  `db:"id" json:"id"`
	Name     string     `db:"name" json:"name"`
	Type     string     `db:"type" json:"type"`
	Provider *string    `db:"provider" json:"provider,omitempty"`
	IsActive bool       `db:"is_active" json:"is_active"`
	LastSync *time.Time `db:"last_sync" json:"last_sync,omitempty"`
}

// APIKey stores a third-party service credential.
type APIKey struct {
	ID               uuid.UUID              `db:"id" json:"id"`
	Name             string                 `db:"name" json:"name"`
	Service          string                 `db:"service" json:"service"`
	APIKey           string                 `db:"api_key" json:"api_key,omitempty"`
	APISecret        *string                `db:"api_secret" json:"api_secret,omitempty"`
	AdditionalConfig map[string]interface{} `db:"additional_config" json:"additional_config,omitempty"`
	IsActive         bool                   `db:"is_active" json:"is_active"`
	UsageCount       int                    `db:"usage_count" json:"usage_count"`
	ExpiresAt        *time.Time             `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt        time.Time              `db:"created_at" json:"created_at"`
}

// APIKeySummary is the listing shape with the secret material stripped.
type APIKeySummary struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Service    string     `db:"service" json:"service"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	UsageCount int        `db:"usage_count" json:"usage_count"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}
