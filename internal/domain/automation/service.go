package automation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var validTriggerTypes = map[string]bool{
	"appointment_reminder": true,
	"appointment_followup": true,
	"birthday":             true,
	"feedback_request":     true,
}

// Notifier delivers rule test messages over WhatsApp.
type Notifier interface {
	SendText(ctx context.Context, to, text string) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) CreateRule(ctx context.Context, r *Rule) error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validTriggerTypes[r.TriggerType] {
		return fmt.Errorf("invalid trigger_type: %s", r.TriggerType)
	}
	if r.MessageTemplate == "" {
		return fmt.Errorf("message_template is required")
	}
	if r.Channel == "" {
		r.Channel = "whatsapp"
	}
	return s.repo.CreateRule(ctx, r)
}

func (s *Service) GetRule(ctx context.Context, id uuid.UUID) (*Rule, error) {
	return s.repo.GetRule(ctx, id)
}

func (s *Service) UpdateRule(ctx context.Context, id uuid.UUID, update *RuleUpdate) (*Rule, error) {
	r, err := s.repo.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(r)
	if r.TriggerType != "" && !validTriggerTypes[r.TriggerType] {
		return nil, fmt.Errorf("invalid trigger_type: %s", r.TriggerType)
	}
	if err := s.repo.UpdateRule(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, id)
}

func (s *Service) ListRules(ctx context.Context, activeOnly bool) ([]*Rule, error) {
	return s.repo.ListRules(ctx, activeOnly)
}

func (s *Service) ListLogs(ctx context.Context, ruleID *uuid.UUID, limit int) ([]*LogEntry, error) {
	return s.repo.ListLogs(ctx, ruleID, limit)
}

// RenderTemplate substitutes {key} placeholders in the template with the
// given values.
func RenderTemplate(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// TestRule renders the rule's template with the test data and, when a phone
// is provided, sends the result over WhatsApp.
func (s *Service) TestRule(ctx context.Context, ruleID uuid.UUID, data map[string]string) (string, error) {
	rule, err := s.repo.GetRule(ctx, ruleID)
	if err != nil {
		return "", fmt.Errorf("rule not found")
	}

	message := RenderTemplate(rule.MessageTemplate, data)

	if phone := data["phone"]; phone != "" {
		if err := s.notifier.SendText(ctx, phone, message); err != nil {
			s.appendLog(ctx, rule.ID, "failed", err.Error())
			return "", fmt.Errorf("sending test message: %w", err)
		}
		s.appendLog(ctx, rule.ID, "sent", "test message to "+phone)
	}
	return message, nil
}

func (s *Service) appendLog(ctx context.Context, ruleID uuid.UUID, status, detail string) {
	_ = s.repo.AppendLog(ctx, &LogEntry{RuleID: ruleID, Status: status, Detail: &detail})
}
