package whatsappbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/identity"
	"github.com/clinic/clinic/internal/domain/patients"
	"github.com/clinic/clinic/internal/domain/procedures"
	"github.com/clinic/clinic/internal/domain/scheduling"
	"github.com/clinic/clinic/internal/platform/whatsapp"
)

// patientBotContext frames AI replies sent to patients.
const patientBotContext = "Você ajuda pacientes a agendar consultas, confirmar agendamentos e tirar dúvidas."

// PatientDirectory resolves and registers patients by WhatsApp number.
type PatientDirectory interface {
	GetByWhatsAppNumber(ctx context.Context, number string) (*patients.Patient, error)
	CreateLead(ctx context.Context, whatsappNumber, observations string, tags []string) (*patients.Patient, error)
}

// ProfessionalDirectory recognises clinic staff by phone number.
type ProfessionalDirectory interface {
	GetByPhone(ctx context.Context, phone string) (*identity.Profile, error)
}

type Scheduler interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error)
	ConfirmPendingAppointment(ctx context.Context, pacienteID uuid.UUID) (*scheduling.Appointment, error)
}

type ProcedureCatalog interface {
	GetProcedure(ctx context.Context, id uuid.UUID) (*procedures.Procedure, error)
	ListBookable(ctx context.Context) ([]*procedures.Procedure, error)
}

type PatientResolver interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*patients.Patient, error)
}

type ProfessionalNames interface {
	ProfessionalName(ctx context.Context, id uuid.UUID) (string, error)
}

// Responder generates AI replies for free-form patient messages. It always
// returns something sendable, falling back to a canned reply on failure.
type Responder interface {
	WhatsAppReply(ctx context.Context, conversationContext, message string) string
}

// Sender delivers messages through Evolution API.
type Sender interface {
	SendText(ctx context.Context, to, text string) error
	SendButtons(ctx context.Context, to, title string, buttons []whatsapp.Button) error
}

type Service struct {
	patients      PatientDirectory
	resolver      PatientResolver
	professionals ProfessionalDirectory
	names         ProfessionalNames
	scheduler     Scheduler
	catalog       ProcedureCatalog
	responder     Responder
	sender        Sender
	logger        zerolog.Logger
}

func NewService(
	pats PatientDirectory,
	resolver PatientResolver,
	profs ProfessionalDirectory,
	names ProfessionalNames,
	scheduler Scheduler,
	catalog ProcedureCatalog,
	responder Responder,
	sender Sender,
	logger zerolog.Logger,
) *Service {
	return &Service{
		patients:      pats,
		resolver:      resolver,
		professionals: profs,
		names:         names,
		scheduler:     scheduler,
		catalog:       catalog,
		responder:     responder,
		sender:        sender,
		logger:        logger,
	}
}

// ProcessWebhook routes an Evolution API event. Only messages.upsert events
// carry inbound messages; everything else is acknowledged and dropped.
func (s *Service) ProcessWebhook(ctx context.Context, payload *WebhookPayload) error {
	if payload.Event != "messages.upsert" {
		return nil
	}

	msg := &payload.Data.Message
	from := msg.FromNumber()
	if from == "" {
		return nil
	}

	if patient, err := s.patients.GetByWhatsAppNumber(ctx, from); err == nil {
		return s.processPatientMessage(ctx, msg, patient)
	}
	if prof, err := s.professionals.GetByPhone(ctx, from); err == nil {
		return s.processProfessionalMessage(ctx, msg, prof)
	}
	return s.createLead(ctx, from, msg)
}

func (s *Service) processPatientMessage(ctx context.Context, msg *IncomingMessage, patient *patients.Patient) error {
	if patient.WhatsAppNumber == nil {
		return nil
	}
	from := *patient.WhatsAppNumber
	text := msg.Message.Conversation
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "agendar"):
		return s.sendBookableProcedures(ctx, from)
	case strings.Contains(lower, "horários") || isDigits(text):
		return s.sendAvailableTimes(ctx, from)
	case strings.Contains(lower, "confirmar") || strings.ToUpper(text) == "SIM":
		return s.confirmAppointment(ctx, patient.ID, from)
	default:
		reply := s.responder.WhatsAppReply(ctx, patientBotContext, text)
		return s.sender.SendText(ctx, from, reply)
	}
}

func (s *Service) sendBookableProcedures(ctx context.Context, to string) error {
	procs, err := s.catalog.ListBookable(ctx)
	if err != nil {
		return fmt.Errorf("loading bookable procedures: %w", err)
	}

	var b strings.Builder
	b.WriteString("🗓️ *Agendar Consulta*\n\nEscolha o procedimento:\n\n")
	for i, p := range procs {
		fmt.Fprintf(&b, "%d. %s - R$ %.2f\n", i+1, p.Name, p.Price)
	}
	return s.sender.SendText(ctx, to, b.String())
}

func (s *Service) sendAvailableTimes(ctx context.Context, to string) error {
	msg := "📅 *Horários Disponíveis*\n\n" +
		"Escolha um horário:\n\n" +
		"1. Amanhã 10:00\n" +
		"2. Amanhã 14:00\n" +
		"3. Sexta 09:00\n" +
		"4. Sexta 15:30\n\n" +
		"Digite o número do horário desejado."
	return s.sender.SendText(ctx, to, msg)
}

func (s *Service) confirmAppointment(ctx context.Context, pacienteID uuid.UUID, to string) error {
	appt, err := s.scheduler.ConfirmPendingAppointment(ctx, pacienteID)
	if err != nil {
		return fmt.Errorf("confirming appointment: %w", err)
	}
	if appt == nil {
		return nil
	}

	procName := ""
	if proc, err := s.catalog.GetProcedure(ctx, appt.ProcedimentoID); err == nil {
		procName = proc.Name
	}

	msg := fmt.Sprintf("✅ *Agendamento Confirmado!*\n\n"+
		"Seu agendamento foi confirmado com sucesso!\n\n"+
		"📋 %s\n📅 %s\n\nAté breve! ✨",
		procName, appt.StartTime.Format("02/01/2006 15:04"))
	return s.sender.SendText(ctx, to, msg)
}

func (s *Service) processProfessionalMessage(ctx context.Context, msg *IncomingMessage, prof *identity.Profile) error {
	if msg.MessageType != "audioMessage" || prof.Phone == nil {
		return nil
	}
	if msg.Message.AudioMessage == nil || msg.Message.AudioMessage.URL == "" {
		return nil
	}
	return s.sender.SendText(ctx, *prof.Phone, whatsapp.ProfessionalAudioPrompt())
}

func (s *Service) createLead(ctx context.Context, from string, msg *IncomingMessage) error {
	text := msg.Message.Conversation
	if text == "" {
		text = "Novo contato via WhatsApp"
	}

	_, err := s.patients.CreateLead(ctx, from,
		fmt.Sprintf("Lead criado via WhatsApp: %s", text),
		[]string{"lead", "whatsapp"})
	if err != nil {
		return fmt.Errorf("creating lead: %w", err)
	}
	return s.sender.SendText(ctx, from, whatsapp.WelcomeMessage())
}

// SendMessage sends a manual text message to the given number.
func (s *Service) SendMessage(ctx context.Context, to, message string) error {
	if to == "" || message == "" {
		return fmt.Errorf("to and message are required")
	}
	return s.sender.SendText(ctx, to, message)
}

// SendAppointmentReminder sends the reminder template with confirm,
// reschedule and cancel buttons for the given appointment.
func (s *Service) SendAppointmentReminder(ctx context.Context, appointmentID uuid.UUID) error {
	appt, err := s.scheduler.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	patient, err := s.resolver.GetPatient(ctx, appt.PacienteID)
	if err != nil {
		return err
	}
	if patient.WhatsAppNumber == nil {
		return fmt.Errorf("patient has no whatsapp number")
	}

	info := whatsapp.AppointmentInfo{
		PatientName: patient.FullName,
		Date:        appt.StartTime.Format("02/01/2006"),
		Time:        appt.StartTime.Format("15:04"),
	}
	if proc, err := s.catalog.GetProcedure(ctx, appt.ProcedimentoID); err == nil {
		info.Procedure = proc.Name
	}
	if name, err := s.names.ProfessionalName(ctx, appt.ProfessionalID); err == nil {
		info.Professional = name
	}

	return s.sender.SendButtons(ctx, *patient.WhatsAppNumber,
		whatsapp.ReminderMessage(info), whatsapp.ReminderButtons())
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
