package whatsapp

import "fmt"

// AppointmentInfo carries the fields interpolated into appointment messages.
type AppointmentInfo struct {
	PatientName  string
	Procedure    string
	Date         string
	Time         string
	Professional string
	Address      string
}

// ConfirmationMessage is sent right after an appointment is booked.
func ConfirmationMessage(info AppointmentInfo) string {
	address := info.Address
	if address == "" {
		address = "Endereço da clínica"
	}
	return fmt.Sprintf(`🗓️ *Agendamento Confirmado!*

Olá %s,

Seu agendamento foi confirmado com sucesso!

📋 *Detalhes:*
• Procedimento: %s
• Data: %s
• Horário: %s
• Profissional: %s

📍 Local: %s

💡 *Importante:*
• Chegue 10 minutos antes
• Traga documento com foto

Para reagendar ou cancelar, responda esta mensagem.

Até breve! ✨`,
		info.PatientName, info.Procedure, info.Date, info.Time, info.Professional, address)
}

// ReminderMessage is sent the day before an appointment.
func ReminderMessage(info AppointmentInfo) string {
	return fmt.Sprintf(`⏰ *Lembrete de Consulta*

Olá %s,

Lembramos que você tem consulta agendada:

📋 %s
📅 %s às %s
👩‍⚕️ Com %s

Confirme sua presença respondendo SIM.

Para reagendar, entre em contato conosco.

Te esperamos! 💙`,
		info.PatientName, info.Procedure, info.Date, info.Time, info.Professional)
}

// ReminderButtons are the interactive replies attached to a reminder.
func ReminderButtons() []Button {
	return []Button{
		{ButtonID: "confirm", ButtonText: ButtonText{DisplayText: "✅ Confirmar"}},
		{ButtonID: "reschedule", ButtonText: ButtonText{DisplayText: "📅 Reagendar"}},
		{ButtonID: "cancel", ButtonText: ButtonText{DisplayText: "❌ Cancelar"}},
	}
}

// FeedbackMessage asks the patient to rate the visit from 1 to 5.
func FeedbackMessage(patientName string) string {
	return fmt.Sprintf(`💬 *Como foi sua experiência?*

Olá %s!

Esperamos que tenha gostado do atendimento!

Sua opinião é muito importante para nós.
Avalie sua experiência de 1 a 5 estrelas:

⭐ ⭐ ⭐ ⭐ ⭐

Responda com um número de 1 a 5.

Obrigada! 💙`, patientName)
}

// CancellationMessage notifies the patient their appointment was cancelled.
func CancellationMessage(patientName string) string {
	return fmt.Sprintf(`❌ *Agendamento Cancelado*

Olá %s,

Seu agendamento foi cancelado.

Para reagendar, entre em contato conosco.`, patientName)
}

// WelcomeMessage greets a new contact and lists the bot menu.
func WelcomeMessage() string {
	return `👋 *Bem-vindo à Clínica Estética!*

Olá! Obrigada por entrar em contato.

Como posso te ajudar hoje?

1️⃣ Agendar consulta
2️⃣ Ver procedimentos
3️⃣ Falar com atendente

Digite o número da opção desejada.`
}

// ProfessionalAudioPrompt asks which patient a dictated record belongs to.
func ProfessionalAudioPrompt() string {
	return `🎤 *Áudio de Prontuário Recebido*

Para qual paciente é este prontuário?
Digite o nome ou CPF do paciente:`
}
