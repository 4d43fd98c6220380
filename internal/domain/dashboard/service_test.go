package dashboard

import (
	"context"
	"testing"
	"time"
)

type mockRepo struct {
	appointmentsToday int
	income            float64
	newPatients       int
	upcoming          []*UpcomingAppointment
	revenue           []RevenuePoint
	topProcedures     []ProcedureCount

	incomeSince   time.Time
	patientsSince time.Time
	revenueSince  time.Time
	limitAsked    int
}

func (m *mockRepo) AppointmentsOn(_ context.Context, _ time.Time) (int, error) {
	return m.appointmentsToday, nil
}

func (m *mockRepo) PaidIncomeSince(_ context.Context, since time.Time) (float64, error) {
	m.incomeSince = since
	return m.income, nil
}

func (m *mockRepo) NewPatientsSince(_ context.Context, since time.Time) (int, error) {
	m.patientsSince = since
	return m.newPatients, nil
}

func (m *mockRepo) UpcomingAppointments(_ context.Context, _ time.Time, limit int) ([]*UpcomingAppointment, error) {
	m.limitAsked = limit
	return m.upcoming, nil
}

func (m *mockRepo) MonthlyRevenue(_ context.Context, since time.Time) ([]RevenuePoint, error) {
	m.revenueSince = since
	return m.revenue, nil
}

func (m *mockRepo) TopProcedures(_ context.Context, limit int) ([]ProcedureCount, error) {
	m.limitAsked = limit
	return m.topProcedures, nil
}

func fixedService(repo *mockRepo, at string) (*Service, time.Time) {
	now, err := time.Parse("2006-01-02 15:04", at)
	if err != nil {
		panic(err)
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, now
}

func TestStats_UsesMonthStart(t *testing.T) {
	repo := &mockRepo{appointmentsToday: 4, income: 1250.50, newPatients: 7}
	svc, _ := fixedService(repo, "2026-08-18 14:30")

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	if !repo.incomeSince.Equal(wantStart) {
		t.Errorf("revenue window starts at %v, want %v", repo.incomeSince, wantStart)
	}
	if !repo.patientsSince.Equal(wantStart) {
		t.Errorf("patient window starts at %v, want %v", repo.patientsSince, wantStart)
	}
	if repo.limitAsked != 5 {
		t.Errorf("upcoming limit = %d, want 5", repo.limitAsked)
	}
	if stats.AppointmentsToday != 4 || stats.RevenueMonth != 1250.50 || stats.NewPatientsMonth != 7 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.UpcomingAppointments == nil {
		t.Error("upcoming list should never be nil")
	}
}

func TestRevenueChart_DefaultWindow(t *testing.T) {
	repo := &mockRepo{revenue: []RevenuePoint{{Month: "2026-07", Value: 900}}}
	svc, now := fixedService(repo, "2026-08-18 14:30")

	points, err := svc.RevenueChart(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].Month != "2026-07" {
		t.Fatalf("unexpected points: %+v", points)
	}

	want := now.AddDate(0, 0, -180)
	if !repo.revenueSince.Equal(want) {
		t.Errorf("chart window starts at %v, want %v", repo.revenueSince, want)
	}
}

func TestTopProcedures_DefaultLimit(t *testing.T) {
	repo := &mockRepo{topProcedures: []ProcedureCount{{Name: "Botox", Count: 12}}}
	svc, _ := fixedService(repo, "2026-08-18 14:30")

	items, err := svc.TopProcedures(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.limitAsked != 5 {
		t.Errorf("limit = %d, want 5", repo.limitAsked)
	}
	if len(items) != 1 || items[0].Name != "Botox" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestEmptyResultsComeBackAsEmptySlices(t *testing.T) {
	svc, _ := fixedService(&mockRepo{}, "2026-08-18 14:30")

	points, err := svc.RevenueChart(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points == nil {
		t.Error("revenue points should be an empty slice")
	}

	items, err := svc.TopProcedures(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil {
		t.Error("procedure list should be an empty slice")
	}
}
