package automation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateRule(ctx context.Context, r *Rule) error
	GetRule(ctx context.Context, id uuid.UUID) (*Rule, error)
	UpdateRule(ctx context.Context, r *Rule) error
	DeleteRule(ctx context.Context, id uuid.UUID) error
	ListRules(ctx context.Context, activeOnly bool) ([]*Rule, error)

	AppendLog(ctx context.Context, entry *LogEntry) error
	ListLogs(ctx context.Context, ruleID *uuid.UUID, limit int) ([]*LogEntry, error)
}
