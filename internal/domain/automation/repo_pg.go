package automation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const ruleCols = `id, name, trigger_type, trigger_time_offset, channel, message_template,
	webhook_url, is_active, created_at, updated_at`

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule
	err := row.Scan(&r.ID, &r.Name, &r.TriggerType, &r.TriggerTimeOffset, &r.Channel,
		&r.MessageTemplate, &r.WebhookURL, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *repoPG) CreateRule(ctx context.Context, r *Rule) error {
	r.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO automation_rules (id, name, trigger_type, trigger_time_offset, channel, message_template, webhook_url, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.Name, r.TriggerType, r.TriggerTimeOffset, r.Channel, r.MessageTemplate, r.WebhookURL, r.IsActive)
	return err
}

func (p *repoPG) GetRule(ctx context.Context, id uuid.UUID) (*Rule, error) {
	return scanRule(p.pool.QueryRow(ctx, `SELECT `+ruleCols+` FROM automation_rules WHERE id = $1`, id))
}

func (p *repoPG) UpdateRule(ctx context.Context, r *Rule) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE automation_rules SET name=$2, trigger_type=$3, trigger_time_offset=$4, channel=$5,
			message_template=$6, webhook_url=$7, is_active=$8, updated_at=NOW()
		WHERE id = $1`,
		r.ID, r.Name, r.TriggerType, r.TriggerTimeOffset, r.Channel, r.MessageTemplate, r.WebhookURL, r.IsActive)
	return err
}

func (p *repoPG) DeleteRule(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM automation_rules WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListRules(ctx context.Context, activeOnly bool) ([]*Rule, error) {
	query := `SELECT ` + ruleCols + ` FROM automation_rules`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Rule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func (p *repoPG) AppendLog(ctx context.Context, entry *LogEntry) error {
	entry.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO automation_logs (id, rule_id, status, detail)
		VALUES ($1,$2,$3,$4)`,
		entry.ID, entry.RuleID, entry.Status, entry.Detail)
	return err
}

func (p *repoPG) ListLogs(ctx context.Context, ruleID *uuid.UUID, limit int) ([]*LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT l.id, l.rule_id, r.name, l.status, l.detail, l.created_at
		FROM automation_logs l
		JOIN automation_rules r ON r.id = l.rule_id`
	args := []interface{}{limit}
	if ruleID != nil {
		query += ` WHERE l.rule_id = $2`
		args = append(args, *ruleID)
	}
	query += ` ORDER BY l.created_at DESC LIMIT $1`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.RuleID, &e.RuleName, &e.Status, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}
