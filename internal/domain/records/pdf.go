package records

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// ExportPDF renders the record's summary as a printable document. The QR
// code in the header links back to the record in the web app.
func (s *Service) ExportPDF(ctx context.Context, recordID uuid.UUID, appBaseURL string) ([]byte, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	patientName := ""
	if patient, err := s.patients.GetPatient(ctx, record.PacienteID); err == nil {
		patientName = patient.FullName
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Prontuário de Consulta", true)
	pdf.AddPage()

	if appBaseURL != "" {
		recordURL := fmt.Sprintf("%s/records/%s", strings.TrimRight(appBaseURL, "/"), record.ID)
		png, err := qrcode.Encode(recordURL, qrcode.Medium, 128)
		if err == nil {
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("record-qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("record-qr", 170, 10, 25, 25, false, opts, 0, "")
		}
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Prontuário de Consulta"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if patientName != "" {
		pdf.CellFormat(0, 7, tr("Paciente: "+patientName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 7, tr("Data: "+record.CreatedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if record.AISummary != nil && *record.AISummary != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Resumo"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*record.AISummary), "", "L", false)
		pdf.Ln(4)
	}

	if record.Transcription != nil && *record.Transcription != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Transcrição"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*record.Transcription), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
