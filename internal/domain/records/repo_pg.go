package records

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const recordCols = `id, paciente_id, professional_id, agendamento_id, audio_url, file_size_bytes,
	transcription, transcription_status, ai_summary, summary_status, metadata, created_at, updated_at`

func scanRecord(row pgx.Row) (*AudioRecord, error) {
	var r AudioRecord
	err := row.Scan(&r.ID, &r.PacienteID, &r.ProfessionalID, &r.AgendamentoID, &r.AudioURL,
		&r.FileSizeBytes, &r.Transcription, &r.TranscriptionStatus, &r.AISummary,
		&r.SummaryStatus, &r.Metadata, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *repoPG) Create(ctx context.Context, r *AudioRecord) error {
	r.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO medical_audio_records (id, paciente_id, professional_id, agendamento_id,
			audio_url, file_size_bytes, transcription_status, metadata)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.PacienteID, r.ProfessionalID, r.AgendamentoID,
		r.AudioURL, r.FileSizeBytes, r.TranscriptionStatus, r.Metadata)
	return err
}

func (p *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*AudioRecord, error) {
	return scanRecord(p.pool.QueryRow(ctx, `SELECT `+recordCols+` FROM medical_audio_records WHERE id = $1`, id))
}

func (p *repoPG) Update(ctx context.Context, r *AudioRecord) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE medical_audio_records SET transcription=$2, transcription_status=$3,
			ai_summary=$4, summary_status=$5, metadata=$6, updated_at=NOW()
		WHERE id = $1`,
		r.ID, r.Transcription, r.TranscriptionStatus, r.AISummary, r.SummaryStatus, r.Metadata)
	return err
}

func (p *repoPG) ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*AudioRecord, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+recordCols+` FROM medical_audio_records
		WHERE paciente_id = $1 ORDER BY created_at DESC`, pacienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*AudioRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
