package telemedicine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateSession opens a scheduled session with a fresh signaling room.
func (s *Service) CreateSession(ctx context.Context, session *Session) error {
	if session.AgendamentoID == uuid.Nil {
		return fmt.Errorf("agendamento_id is required")
	}
	if session.PacienteID == uuid.Nil {
		return fmt.Errorf("paciente_id is required")
	}
	if session.ProfessionalID == uuid.Nil {
		return fmt.Errorf("professional_id is required")
	}

	session.RoomID = uuid.NewString()
	session.Status = "scheduled"
	return s.repo.Create(ctx, session)
}

func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

// StartSession moves a session to in_progress and stamps the start time.
func (s *Service) StartSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	started := s.now()
	session.Status = "in_progress"
	session.StartedAt = &started
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession completes the session and computes its duration from the start
// stamp. Sessions ended before ever starting get a zero duration.
func (s *Service) EndSession(ctx context.Context, id uuid.UUID, notes *string) (*Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ended := s.now()
	duration := 0
	if session.StartedAt != nil {
		duration = int(ended.Sub(*session.StartedAt).Minutes())
	}

	session.Status = "completed"
	session.EndedAt = &ended
	session.DurationMinutes = &duration
	if notes != nil {
		session.Notes = notes
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
