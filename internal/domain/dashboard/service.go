package dashboard

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

const upcomingLimit = 5

// Stats aggregates the headline numbers for the current day and month.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.repo.AppointmentsOn(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("appointments today: %w", err)
	}
	revenue, err := s.repo.PaidIncomeSince(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("month revenue: %w", err)
	}
	patients, err := s.repo.NewPatientsSince(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("new patients: %w", err)
	}
	upcoming, err := s.repo.UpcomingAppointments(ctx, now, upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("upcoming appointments: %w", err)
	}
	if upcoming == nil {
		upcoming = []*UpcomingAppointment{}
	}

	return &Stats{
		AppointmentsToday:    today,
		RevenueMonth:         revenue,
		NewPatientsMonth:     patients,
		UpcomingAppointments: upcoming,
	}, nil
}

// RevenueChart returns paid income grouped by month over the trailing window.
func (s *Service) RevenueChart(ctx context.Context, months int) ([]RevenuePoint, error) {
	if months <= 0 {
		months = 6
	}
	since := s.now().AddDate(0, 0, -months*30)
	points, err := s.repo.MonthlyRevenue(ctx, since)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []RevenuePoint{}
	}
	return points, nil
}

func (s *Service) TopProcedures(ctx context.Context, limit int) ([]ProcedureCount, error) {
	if limit <= 0 {
		limit = 5
	}
	items, err := s.repo.TopProcedures(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ProcedureCount{}
	}
	return items, nil
}
