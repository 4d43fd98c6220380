package telemedicine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	sessions map[uuid.UUID]*Session
}

func newMockRepo() *mockRepo {
	return &mockRepo{sessions: make(map[uuid.UUID]*Session)}
}

func (m *mockRepo) Create(_ context.Context, s *Session) error {
	s.ID = uuid.New()
	m.sessions[s.ID] = s
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (m *mockRepo) Update(_ context.Context, s *Session) error {
	m.sessions[s.ID] = s
	return nil
}

func newSession() *Session {
	return &Session{
		AgendamentoID:  uuid.New(),
		PacienteID:     uuid.New(),
		ProfessionalID: uuid.New(),
	}
}

func TestCreateSession(t *testing.T) {
	svc := NewService(newMockRepo())

	session := newSession()
	if err := svc.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.Status != "scheduled" {
		t.Errorf("expected status scheduled, got %s", session.Status)
	}
	if _, err := uuid.Parse(session.RoomID); err != nil {
		t.Errorf("expected a UUID room id, got %q", session.RoomID)
	}
}

func TestCreateSession_RoomIDsAreUnique(t *testing.T) {
	svc := NewService(newMockRepo())

	a, b := newSession(), newSession()
	if err := svc.CreateSession(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreateSession(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.RoomID == b.RoomID {
		t.Fatal("expected distinct room ids per session")
	}
}

func TestCreateSession_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []Session{
		{PacienteID: uuid.New(), ProfessionalID: uuid.New()},
		{AgendamentoID: uuid.New(), ProfessionalID: uuid.New()},
		{AgendamentoID: uuid.New(), PacienteID: uuid.New()},
	}
	for i := range cases {
		if err := svc.CreateSession(context.Background(), &cases[i]); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestStartAndEndSession(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	session := newSession()
	if err := svc.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	started, err := svc.StartSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if started.Status != "in_progress" || started.StartedAt == nil {
		t.Fatalf("expected in_progress session with start time, got %+v", started)
	}

	svc.now = func() time.Time { return start.Add(25 * time.Minute) }

	notes := "Paciente orientado sobre pós-procedimento"
	ended, err := svc.EndSession(context.Background(), session.ID, &notes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ended.Status != "completed" || ended.EndedAt == nil {
		t.Fatalf("expected completed session, got %+v", ended)
	}
	if ended.DurationMinutes == nil || *ended.DurationMinutes != 25 {
		t.Fatalf("expected 25 minute duration, got %v", ended.DurationMinutes)
	}
	if ended.Notes == nil || *ended.Notes != notes {
		t.Errorf("expected notes to be stored, got %v", ended.Notes)
	}
}

func TestEndSession_NeverStarted(t *testing.T) {
	svc := NewService(newMockRepo())

	session := newSession()
	if err := svc.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ended, err := svc.EndSession(context.Background(), session.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ended.DurationMinutes == nil || *ended.DurationMinutes != 0 {
		t.Fatalf("expected zero duration, got %v", ended.DurationMinutes)
	}
}
