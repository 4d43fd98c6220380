package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// FallbackReply is returned to WhatsApp users when generation fails.
const FallbackReply = "Desculpe, não consegui processar sua mensagem. Por favor, entre em contato com nossa equipe."

// GeminiAssistant implements Assistant on top of the Gemini API.
type GeminiAssistant struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger zerolog.Logger
}

// NewGeminiAssistant creates a GeminiAssistant using the given API key.
func NewGeminiAssistant(ctx context.Context, apiKey string, logger zerolog.Logger) (*GeminiAssistant, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiAssistant{client: client, model: model, logger: logger}, nil
}

// Close releases the underlying client.
func (g *GeminiAssistant) Close() error {
	return g.client.Close()
}

// SummarizeRecord produces a structured summary of a consultation
// transcription, optionally enriched with patient context.
func (g *GeminiAssistant) SummarizeRecord(ctx context.Context, transcription string, patient *PatientContext) (string, error) {
	out, err := g.generate(ctx, summaryPrompt(transcription, patient))
	if err != nil {
		return "", fmt.Errorf("summarizing record: %w", err)
	}
	return out, nil
}

// ExtractKeyInfo pulls procedures, medications, allergies, the next visit
// date, and recommendations out of a transcription.
func (g *GeminiAssistant) ExtractKeyInfo(ctx context.Context, transcription string) (*KeyInfo, error) {
	out, err := g.generate(ctx, extractPrompt(transcription))
	if err != nil {
		return nil, fmt.Errorf("extracting key info: %w", err)
	}
	return parseKeyInfo(out)
}

// WhatsAppReply generates an automatic reply for an incoming WhatsApp
// message. Failures fall back to a fixed apology so the bot always answers.
func (g *GeminiAssistant) WhatsAppReply(ctx context.Context, systemContext, userMessage string) string {
	prompt := fmt.Sprintf("Você é a assistente virtual de uma clínica estética. %s\n\nMensagem do cliente:\n%s", systemContext, userMessage)

	out, err := g.generate(ctx, prompt)
	if err != nil {
		g.logger.Warn().Err(err).Msg("whatsapp reply generation failed")
		return FallbackReply
	}
	return out
}

func (g *GeminiAssistant) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func summaryPrompt(transcription string, patient *PatientContext) string {
	var context string
	if patient != nil {
		context = fmt.Sprintf(`Dados do paciente:
Nome: %s
Idade: %s
Histórico: %s

`, orNA(patient.Name), orNA(patient.Age), orNA(patient.History))
	}

	return fmt.Sprintf(`Você é um assistente médico especializado em clínica estética.
Analise a transcrição do atendimento abaixo e crie um resumo estruturado do prontuário.

%sTRANSCRIÇÃO DO ATENDIMENTO:
%s

Crie um resumo estruturado contendo:
1. QUEIXA PRINCIPAL
2. HISTÓRICO
3. AVALIAÇÃO FÍSICA
4. PROCEDIMENTO REALIZADO/RECOMENDADO
5. ORIENTAÇÕES PÓS-TRATAMENTO
6. PRÓXIMOS PASSOS

Mantenha o formato profissional e objetivo.`, context, transcription)
}

func extractPrompt(transcription string) string {
	return fmt.Sprintf(`Extraia as seguintes informações da transcrição médica abaixo em formato JSON:
- procedimentos_mencionados: lista de procedimentos
- medicamentos: lista de medicamentos
- alergias: lista de alergias mencionadas
- proxima_consulta: data mencionada para retorno (se houver)
- recomendacoes: lista de recomendações

TRANSCRIÇÃO:
%s

Retorne apenas o JSON, sem texto adicional.`, transcription)
}

// parseKeyInfo unmarshals the model output, tolerating markdown code fences
// around the JSON.
func parseKeyInfo(raw string) (*KeyInfo, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	var info KeyInfo
	if err := json.Unmarshal([]byte(s), &info); err != nil {
		return nil, fmt.Errorf("parsing extracted info: %w", err)
	}
	return &info, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
