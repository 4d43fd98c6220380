package records

import (
	"time"

	"github.com/google/uuid"
)

// AudioRecord is a consultation audio file with its transcription and AI
// generated summary. Statuses move through processing, completed and failed.
type AudioRecord struct {
	ID                  uuid.UUID              `db:"id" json:"id"`
	PacienteID          uuid.UUID              `db:"paciente_id" json:"paciente_id"`
	ProfessionalID      uuid.UUID              `db:"professional_id" json:"professional_id"`
	AgendamentoID       *uuid.UUID             `db:"agendamento_id" json:"agendamento_id,omitempty"`
	AudioURL            string                 `db:"audio_url" json:"audio_url"`
	FileSizeBytes       int64                  `db:"file_size_bytes" json:"file_size_bytes"`
	Transcription       *string                `db:"transcription" json:"transcription,omitempty"`
	TranscriptionStatus string                 `db:"transcription_status" json:"transcription_status"`
	AISummary           *string                `db:"ai_summary" json:"ai_summary,omitempty"`
	SummaryStatus       *string                `db:"summary_status" json:"summary_status,omitempty"`
	Metadata            map[string]interface{} `db:"metadata" json:"metadata,omitempty"`
	CreatedAt           time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time              `db:"updated_at" json:"updated_at"`
}

// Upload carries a multipart audio submission.
type Upload struct {
	PacienteID     uuid.UUID
	ProfessionalID uuid.UUID
	AgendamentoID  *uuid.UUID
	FileName       string
	ContentType    string
	Content        []byte
}
