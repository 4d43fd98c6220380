package records

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/patients"
	"github.com/clinic/clinic/internal/platform/ai"
	"github.com/clinic/clinic/internal/platform/blobstore"
)

// PatientSource resolves the patient a record belongs to.
type PatientSource interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*patients.Patient, error)
}

type Service struct {
	repo        Repository
	blobs       blobstore.Store
	transcriber ai.Transcriber
	assistant   ai.Assistant
	patients    PatientSource
	logger      zerolog.Logger
}

func NewService(
	repo Repository,
	blobs blobstore.Store,
	transcriber ai.Transcriber,
	assistant ai.Assistant,
	pats PatientSource,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		blobs:       blobs,
		transcriber: transcriber,
		assistant:   assistant,
		patients:    pats,
		logger:      logger,
	}
}

// Transcribe stores the uploaded audio, creates the record, and runs
// speech-to-text. The record keeps a failed status when transcription errors
// out.
func (s *Service) Transcribe(ctx context.Context, upload *Upload) (*AudioRecord, error) {
	if upload.PacienteID == uuid.Nil {
		return nil, fmt.Errorf("paciente_id is required")
	}
	if upload.ProfessionalID == uuid.Nil {
		return nil, fmt.Errorf("professional_id is required")
	}
	if len(upload.Content) == 0 {
		return nil, fmt.Errorf("audio file is empty")
	}

	meta, err := s.blobs.Save(ctx, blobstore.BlobMetadata{
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
	}, bytes.NewReader(upload.Content))
	if err != nil {
		return nil, fmt.Errorf("storing audio: %w", err)
	}

	record := &AudioRecord{
		PacienteID:          upload.PacienteID,
		ProfessionalID:      upload.ProfessionalID,
		AgendamentoID:       upload.AgendamentoID,
		AudioURL:            meta.ID,
		FileSizeBytes:       meta.Size,
		TranscriptionStatus: "processing",
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	text, err := s.transcriber.Transcribe(ctx, upload.Content, upload.FileName)
	if err != nil {
		record.TranscriptionStatus = "failed"
		record.Metadata = map[string]interface{}{"error": err.Error()}
		if uerr := s.repo.Update(ctx, record); uerr != nil {
			s.logger.Error().Err(uerr).Str("record_id", record.ID.String()).Msg("failed to mark transcription as failed")
		}
		return nil, fmt.Errorf("transcribing audio: %w", err)
	}

	record.Transcription = &text
	record.TranscriptionStatus = "completed"
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Summarize generates the structured consultation summary from the record's
// transcription.
func (s *Service) Summarize(ctx context.Context, recordID uuid.UUID) (string, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return "", err
	}
	if record.Transcription == nil || *record.Transcription == "" {
		return "", fmt.Errorf("no transcription available")
	}

	status := "processing"
	record.SummaryStatus = &status
	if err := s.repo.Update(ctx, record); err != nil {
		return "", err
	}

	summary, err := s.assistant.SummarizeRecord(ctx, *record.Transcription, s.patientContext(ctx, record.PacienteID))
	if err != nil {
		failed := "failed"
		record.SummaryStatus = &failed
		if uerr := s.repo.Update(ctx, record); uerr != nil {
			s.logger.Error().Err(uerr).Str("record_id", recordID.String()).Msg("failed to mark summary as failed")
		}
		return "", fmt.Errorf("generating summary: %w", err)
	}

	completed := "completed"
	record.AISummary = &summary
	record.SummaryStatus = &completed
	if err := s.repo.Update(ctx, record); err != nil {
		return "", err
	}
	return summary, nil
}

// ExtractInfo pulls structured key information out of the transcription and
// stores it under the record's metadata.
func (s *Service) ExtractInfo(ctx context.Context, recordID uuid.UUID) (*ai.KeyInfo, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.Transcription == nil || *record.Transcription == "" {
		return nil, fmt.Errorf("no transcription available")
	}

	info, err := s.assistant.ExtractKeyInfo(ctx, *record.Transcription)
	if err != nil {
		return nil, fmt.Errorf("extracting key info: %w", err)
	}

	if record.Metadata == nil {
		record.Metadata = map[string]interface{}{}
	}
	record.Metadata["extracted_info"] = info
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*AudioRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPatientRecords(ctx context.Context, pacienteID uuid.UUID) ([]*AudioRecord, error) {
	return s.repo.ListByPatient(ctx, pacienteID)
}

func (s *Service) patientContext(ctx context.Context, pacienteID uuid.UUID) *ai.PatientContext {
	patient, err := s.patients.GetPatient(ctx, pacienteID)
	if err != nil {
		return nil
	}
	pc := &ai.PatientContext{Name: patient.FullName}
	if patient.BirthDate != nil {
		pc.Age = fmt.Sprintf("%d", ageInYears(*patient.BirthDate, time.Now()))
	}
	if patient.Observations != nil {
		pc.History = *patient.Observations
	}
	return pc
}

func ageInYears(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		years--
	}
	return years
}
