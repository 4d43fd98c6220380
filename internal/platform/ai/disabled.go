package ai

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the disabled implementations when no API
// credentials were configured.
var ErrDisabled = errors.New("ai features are not configured")

// DisabledAssistant satisfies Assistant when no Gemini key is configured.
// Summaries and extractions fail with ErrDisabled; chat replies fall back to
// the canned response so WhatsApp conversations still get an answer.
type DisabledAssistant struct{}

func (DisabledAssistant) SummarizeRecord(context.Context, string, *PatientContext) (string, error) {
	return "", ErrDisabled
}

func (DisabledAssistant) ExtractKeyInfo(context.Context, string) (*KeyInfo, error) {
	return nil, ErrDisabled
}

func (DisabledAssistant) WhatsAppReply(context.Context, string, string) string {
	return FallbackReply
}

// DisabledTranscriber satisfies Transcriber when Speech-to-Text is not
// configured.
type DisabledTranscriber struct{}

func (DisabledTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return "", ErrDisabled
}
