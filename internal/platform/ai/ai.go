// Package ai provides transcription and text generation for consultation
// records. Transcription goes through Google Cloud Speech-to-Text and text
// generation through Gemini.
package ai

import "context"

// PatientContext carries optional patient details included in summaries.
type PatientContext struct {
	Name    string
	Age     string
	History string
}

// KeyInfo is the structured data extracted from a consultation transcription.
type KeyInfo struct {
	ProcedimentosMencionados []string `json:"procedimentos_mencionados"`
	Medicamentos             []string `json:"medicamentos"`
	Alergias                 []string `json:"alergias"`
	ProximaConsulta          string   `json:"proxima_consulta"`
	Recomendacoes            []string `json:"recomendacoes"`
}

// Assistant generates summaries, structured extractions, and chat replies.
type Assistant interface {
	SummarizeRecord(ctx context.Context, transcription string, patient *PatientContext) (string, error)
	ExtractKeyInfo(ctx context.Context, transcription string) (*KeyInfo, error)
	WhatsAppReply(ctx context.Context, systemContext, userMessage string) string
}

// Transcriber converts consultation audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, fileName string) (string, error)
}
