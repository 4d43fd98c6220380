package automation

import (
	"time"

	"github.com/google/uuid"
)

// Rule triggers an outbound message a fixed offset around an event, for
// example a reminder 24 hours before an appointment.
type Rule struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	TriggerType       string    `db:"trigger_type" json:"trigger_type"`
	TriggerTimeOffset *int      `db:"trigger_time_offset" json:"trigger_time_offset,omitempty"`
	Channel           string    `db:"channel" json:"channel"`
	MessageTemplate   string    `db:"message_template" json:"message_template"`
	WebhookURL        *string   `db:"webhook_url" json:"webhook_url,omitempty"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type RuleUpdate struct {
	Name              *string `json:"name,omitempty"`
	TriggerType       *string `json:"trigger_type,omitempty"`
	TriggerTimeOffset *int    `json:"trigger_time_offset,omitempty"`
	Channel           *string `json:"channel,omitempty"`
	MessageTemplate   *string `json:"message_template,omitempty"`
	WebhookURL        *string `json:"webhook_url,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// Apply copies the non-nil update fields onto the rule.
func (u *RuleUpdate) Apply(r *Rule) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.TriggerType != nil {
		r.TriggerType = *u.TriggerType
	}
	if u.TriggerTimeOffset != nil {
		r.TriggerTimeOffset = u.TriggerTimeOffset
	}
	if u.Channel != nil {
		r.Channel = *u.Channel
	}
	if u.MessageTemplate != nil {
		r.MessageTemplate = *u.MessageTemplate
	}
	if u.WebhookURL != nil {
		r.WebhookURL = u.WebhookURL
	}
	if u.IsActive != nil {
		r.IsActive = *u.IsActive
	}
}

// LogEntry records a rule execution.
type LogEntry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RuleID    uuid.UUID `db:"rule_id" json:"rule_id"`
	RuleName  string    `db:"rule_name" json:"rule_name,omitempty"`
	Status    string    `db:"status" json:"status"`
	Detail    *string   `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
