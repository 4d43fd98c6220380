package ai

import (
	"strings"
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
)

func TestSummaryPrompt_IncludesSections(t *testing.T) {
	prompt := summaryPrompt("Paciente relata manchas na pele.", nil)

	for _, section := range []string{
		"QUEIXA PRINCIPAL",
		"HISTÓRICO",
		"AVALIAÇÃO FÍSICA",
		"PROCEDIMENTO REALIZADO/RECOMENDADO",
		"ORIENTAÇÕES PÓS-TRATAMENTO",
		"PRÓXIMOS PASSOS",
	} {
		if !strings.Contains(prompt, section) {
			t.Errorf("expected prompt to require section %q", section)
		}
	}
	if !strings.Contains(prompt, "Paciente relata manchas na pele.") {
		t.Error("expected prompt to include the transcription")
	}
	if strings.Contains(prompt, "Dados do paciente") {
		t.Error("expected no patient context block without patient data")
	}
}

func TestSummaryPrompt_WithPatientContext(t *testing.T) {
	prompt := summaryPrompt("texto", &PatientContext{Name: "Maria", Age: "34"})

	if !strings.Contains(prompt, "Nome: Maria") {
		t.Error("expected patient name in prompt")
	}
	if !strings.Contains(prompt, "Histórico: N/A") {
		t.Error("expected missing history to default to N/A")
	}
}

func TestExtractPrompt_ListsFields(t *testing.T) {
	prompt := extractPrompt("texto")

	for _, field := range []string{
		"procedimentos_mencionados",
		"medicamentos",
		"alergias",
		"proxima_consulta",
		"recomendacoes",
	} {
		if !strings.Contains(prompt, field) {
			t.Errorf("expected prompt to request field %q", field)
		}
	}
}

func TestParseKeyInfo_PlainJSON(t *testing.T) {
	info, err := parseKeyInfo(`{
		"procedimentos_mencionados": ["Botox", "Peeling"],
		"medicamentos": ["Isotretinoína"],
		"alergias": [],
		"proxima_consulta": "2026-09-15",
		"recomendacoes": ["Evitar sol"]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(info.ProcedimentosMencionados) != 2 || info.ProcedimentosMencionados[0] != "Botox" {
		t.Errorf("unexpected procedures: %v", info.ProcedimentosMencionados)
	}
	if info.ProximaConsulta != "2026-09-15" {
		t.Errorf("unexpected next visit: %s", info.ProximaConsulta)
	}
}

func TestParseKeyInfo_StripsCodeFences(t *testing.T) {
	raw := "```json\n{\"procedimentos_mencionados\":[\"Limpeza de pele\"],\"medicamentos\":[],\"alergias\":[\"níquel\"],\"proxima_consulta\":\"\",\"recomendacoes\":[]}\n```"

	info, err := parseKeyInfo(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Alergias) != 1 || info.Alergias[0] != "níquel" {
		t.Errorf("unexpected allergies: %v", info.Alergias)
	}
}

func TestParseKeyInfo_InvalidJSON(t *testing.T) {
	if _, err := parseKeyInfo("not json at all"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestEncodingForFile(t *testing.T) {
	cases := map[string]speechpb.RecognitionConfig_AudioEncoding{
		"voice.ogg":   speechpb.RecognitionConfig_OGG_OPUS,
		"VOICE.OPUS":  speechpb.RecognitionConfig_OGG_OPUS,
		"consulta.wav": speechpb.RecognitionConfig_LINEAR16,
		"nota.mp3":    speechpb.RecognitionConfig_MP3,
		"clip.webm":   speechpb.RecognitionConfig_WEBM_OPUS,
		"unknown.bin": speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
	}
	for name, want := range cases {
		if got := encodingForFile(name); got != want {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}
}
