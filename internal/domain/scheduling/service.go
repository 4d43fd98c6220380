package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/patients"
	"github.com/clinic/clinic/internal/domain/procedures"
	"github.com/clinic/clinic/internal/platform/whatsapp"
)

// ErrConflict is returned when the requested time overlaps an existing
// appointment for the same professional.
var ErrConflict = errors.New("time slot is not available")

// ProcedureSource resolves procedures referenced by appointments.
type ProcedureSource interface {
	GetProcedure(ctx context.Context, id uuid.UUID) (*procedures.Procedure, error)
}

// PatientSource resolves patients referenced by appointments.
type PatientSource interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*patients.Patient, error)
}

// ProfessionalSource resolves professional display names.
type ProfessionalSource interface {
	ProfessionalName(ctx context.Context, id uuid.UUID) (string, error)
}

// Notifier delivers WhatsApp messages. Notification failures never fail the
// booking operation.
type Notifier interface {
	SendText(ctx context.Context, to, text string) error
}

var validAppointmentStatuses = map[string]bool{
	"pending": true, "confirmed": true, "completed": true,
	"cancelled": true, "no_show": true,
}

type Service struct {
	windows       WindowRepository
	appointments  AppointmentRepository
	procedures    ProcedureSource
	patients      PatientSource
	professionals ProfessionalSource
	notifier      Notifier
	logger        zerolog.Logger
}

func NewService(
	windows WindowRepository,
	appointments AppointmentRepository,
	procs ProcedureSource,
	pats PatientSource,
	profs ProfessionalSource,
	notifier Notifier,
	logger zerolog.Logger,
) *Service {
	return &Service{
		windows:       windows,
		appointments:  appointments,
		procedures:    procs,
		patients:      pats,
		professionals: profs,
		notifier:      notifier,
		logger:        logger,
	}
}

// -- Availability windows --

func (s *Service) CreateWindow(ctx context.Context, w *AvailabilityWindow) error {
	if w.ProfessionalID == uuid.Nil {
		return fmt.Errorf("professional_id is required")
	}
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}
	day := time.Now()
	start, err := atClock(day, w.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := atClock(day, w.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time must be before end_time")
	}
	return s.windows.Create(ctx, w)
}

func (s *Service) UpdateWindow(ctx context.Context, id uuid.UUID, w *AvailabilityWindow) error {
	existing, err := s.windows.GetByID(ctx, id)
	if err != nil {
		return err
	}
	w.ID = existing.ID
	w.ProfessionalID = existing.ProfessionalID
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}
	return s.windows.Update(ctx, w)
}

func (s *Service) DeleteWindow(ctx context.Context, id uuid.UUID) error {
	return s.windows.Delete(ctx, id)
}

func (s *Service) ListWindows(ctx context.Context, professionalID uuid.UUID) ([]*AvailabilityWindow, error) {
	return s.windows.ListByProfessional(ctx, professionalID)
}

// -- Availability solver --

// AvailableSlotsFor computes the bookable slots for a professional on the
// given date, sized by the procedure's duration.
func (s *Service) AvailableSlotsFor(ctx context.Context, professionalID uuid.UUID, date time.Time, procedimentoID uuid.UUID) ([]Slot, error) {
	windows, err := s.windows.ListForDay(ctx, professionalID, WeekdayMondayZero(date))
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	duration := procedures.DefaultDurationMinutes
	proc, err := s.procedures.GetProcedure(ctx, procedimentoID)
	if err != nil {
		return nil, fmt.Errorf("loading procedure: %w", err)
	}
	if proc.DurationMinutes > 0 {
		duration = proc.DurationMinutes
	}

	bookings, err := s.appointments.BookingsForDay(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("loading bookings: %w", err)
	}

	return AvailableSlots(date, windows, duration, bookings), nil
}

// -- Appointments --

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.PacienteID == uuid.Nil {
		return fmt.Errorf("paciente_id is required")
	}
	if a.ProcedimentoID == uuid.Nil {
		return fmt.Errorf("procedimento_id is required")
	}
	if a.ProfessionalID == uuid.Nil {
		return fmt.Errorf("professional_id is required")
	}
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return fmt.Errorf("start_time and end_time are required")
	}
	if !a.StartTime.Before(a.EndTime) {
		return fmt.Errorf("start_time must be before end_time")
	}

	conflict, err := s.appointments.HasConflict(ctx, a.ProfessionalID, a.StartTime, a.EndTime)
	if err != nil {
		return fmt.Errorf("checking conflicts: %w", err)
	}
	if conflict {
		return ErrConflict
	}

	a.Status = "pending"
	if a.Source == "" {
		a.Source = "manual"
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return err
	}

	s.sendConfirmation(ctx, a)
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]*Appointment, error) {
	return s.appointments.List(ctx, filter)
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, update *AppointmentUpdate) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.StartTime != nil {
		a.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		a.EndTime = *update.EndTime
	}
	if update.Status != nil {
		if !validAppointmentStatuses[*update.Status] {
			return nil, fmt.Errorf("invalid appointment status: %s", *update.Status)
		}
		a.Status = *update.Status
	}
	if update.Notes != nil {
		a.Notes = update.Notes
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// CancelAppointment sets the appointment status to cancelled and notifies the
// patient over WhatsApp.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Status = "cancelled"
	if err := s.appointments.Update(ctx, a); err != nil {
		return err
	}

	patient, err := s.patients.GetPatient(ctx, a.PacienteID)
	if err != nil || patient.WhatsAppNumber == nil {
		return nil
	}
	if err := s.notifier.SendText(ctx, *patient.WhatsAppNumber, whatsapp.CancellationMessage(patient.FullName)); err != nil {
		s.logger.Warn().Err(err).Str("appointment_id", id.String()).Msg("failed to send cancellation message")
	}
	return nil
}

// ConfirmPendingAppointment confirms the most recent pending appointment of a
// patient. It returns the confirmed appointment, or nil when there is none.
func (s *Service) ConfirmPendingAppointment(ctx context.Context, pacienteID uuid.UUID) (*Appointment, error) {
	status := "pending"
	items, err := s.appointments.List(ctx, AppointmentFilter{PacienteID: &pacienteID, Status: status})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	latest := items[0]
	for _, a := range items[1:] {
		if a.CreatedAt.After(latest.CreatedAt) {
			latest = a
		}
	}

	latest.Status = "confirmed"
	latest.ConfirmationSent = true
	if err := s.appointments.Update(ctx, latest); err != nil {
		return nil, err
	}
	return latest, nil
}

func (s *Service) sendConfirmation(ctx context.Context, a *Appointment) {
	patient, err := s.patients.GetPatient(ctx, a.PacienteID)
	if err != nil || patient.WhatsAppNumber == nil {
		return
	}
	proc, err := s.procedures.GetProcedure(ctx, a.ProcedimentoID)
	if err != nil {
		return
	}
	profName, err := s.professionals.ProfessionalName(ctx, a.ProfessionalID)
	if err != nil {
		profName = ""
	}

	msg := whatsapp.ConfirmationMessage(whatsapp.AppointmentInfo{
		PatientName:  patient.FullName,
		Procedure:    proc.Name,
		Date:         a.StartTime.Format("02/01/2006"),
		Time:         a.StartTime.Format("15:04"),
		Professional: profName,
	})
	if err := s.notifier.SendText(ctx, *patient.WhatsAppNumber, msg); err != nil {
		s.logger.Warn().Err(err).Str("appointment_id", a.ID.String()).Msg("failed to send confirmation message")
	}
}
