package financial

import (
	"context"
	"fmt"
	"time"
)

var validRecordTypes = map[string]bool{"income": true, "expense": true}

var validRecordStatuses = map[string]bool{
	"pending": true, "paid": true, "cancelled": true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateRecord(ctx context.Context, r *Record) error {
	if !validRecordTypes[r.Type] {
		return fmt.Errorf("type must be income or expense")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if r.Status == "" {
		r.Status = "pending"
	}
	if !validRecordStatuses[r.Status] {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	if r.Date == "" {
		r.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("date must be formatted YYYY-MM-DD")
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) ListRecords(ctx context.Context, filter Filter) ([]*Record, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Summarize(ctx context.Context, month string) (*Summary, error) {
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return nil, fmt.Errorf("month must be formatted YYYY-MM")
		}
	}
	income, expense, pending, err := s.repo.Totals(ctx, month)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Income:  income,
		Expense: expense,
		Balance: income - expense,
		Pending: pending,
	}, nil
}
