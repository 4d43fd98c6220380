package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type recordedCall struct {
	path   string
	apiKey string
	body   map[string]any
}

func newTestServer(t *testing.T, calls *[]recordedCall) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		var body map[string]any
		if err := json.Unmarshal(data, &body); err != nil {
			t.Fatalf("unmarshaling body: %v", err)
		}
		*calls = append(*calls, recordedCall{
			path:   r.URL.Path,
			apiKey: r.Header.Get("apikey"),
			body:   body,
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func testClient(baseURL string, opts ...ClientOption) *Client {
	return NewClient(baseURL, "secret-key", "clinic-main", zerolog.New(os.Stderr), opts...)
}

func TestClient_SendText(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, &calls)
	defer srv.Close()

	client := testClient(srv.URL)
	if err := client.SendText(context.Background(), "5511999990000", "Olá!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	call := calls[0]
	if call.path != "/message/sendText/clinic-main" {
		t.Errorf("unexpected path: %s", call.path)
	}
	if call.apiKey != "secret-key" {
		t.Errorf("expected apikey header, got %q", call.apiKey)
	}
	if call.body["number"] != "5511999990000" || call.body["text"] != "Olá!" {
		t.Errorf("unexpected body: %v", call.body)
	}
}

func TestClient_SendAudio(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, &calls)
	defer srv.Close()

	client := testClient(srv.URL)
	if err := client.SendAudio(context.Background(), "5511999990000", "https://cdn.example/a.ogg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := calls[0]
	if call.path != "/message/sendMedia/clinic-main" {
		t.Errorf("unexpected path: %s", call.path)
	}
	if call.body["mediatype"] != "audio" || call.body["media"] != "https://cdn.example/a.ogg" {
		t.Errorf("unexpected body: %v", call.body)
	}
}

func TestClient_SendButtons(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, &calls)
	defer srv.Close()

	client := testClient(srv.URL)
	err := client.SendButtons(context.Background(), "5511999990000", "Confirme sua presença", ReminderButtons())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := calls[0]
	if call.path != "/message/sendButtons/clinic-main" {
		t.Errorf("unexpected path: %s", call.path)
	}
	buttons, ok := call.body["buttons"].([]any)
	if !ok || len(buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %v", call.body["buttons"])
	}
	first := buttons[0].(map[string]any)
	if first["buttonId"] != "confirm" {
		t.Errorf("unexpected first button: %v", first)
	}
	if first["buttonText"].(map[string]any)["displayText"] != "✅ Confirmar" {
		t.Errorf("unexpected button text: %v", first)
	}
}

func TestClient_SetupWebhook(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, &calls)
	defer srv.Close()

	client := testClient(srv.URL)
	if err := client.SetupWebhook(context.Background(), "https://clinic.example/api/whatsapp/webhook"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := calls[0]
	if call.path != "/webhook/set/clinic-main" {
		t.Errorf("unexpected path: %s", call.path)
	}
	webhook := call.body["webhook"].(map[string]any)
	if webhook["url"] != "https://clinic.example/api/whatsapp/webhook" {
		t.Errorf("unexpected webhook url: %v", webhook["url"])
	}
	events := webhook["events"].([]any)
	if len(events) != 3 || events[0] != "MESSAGES_UPSERT" {
		t.Errorf("unexpected events: %v", events)
	}
}

func TestClient_DisabledIsNoOp(t *testing.T) {
	client := NewClient("", "", "", zerolog.New(os.Stderr))

	if client.Enabled() {
		t.Fatal("expected client to be disabled")
	}
	if err := client.SendText(context.Background(), "5511999990000", "oi"); err != nil {
		t.Fatalf("disabled client must not error: %v", err)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	err := client.SendText(context.Background(), "5511999990000", "oi")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status error, got %v", err)
	}
}

type fakeRecorder struct {
	records []string
}

func (r *fakeRecorder) RecordOutbound(_ context.Context, to, content, messageType, status string) error {
	r.records = append(r.records, to+"|"+messageType+"|"+status)
	return nil
}

func TestClient_RecordsOutboundMessages(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, &calls)
	defer srv.Close()

	rec := &fakeRecorder{}
	client := testClient(srv.URL, WithRecorder(rec))

	if err := client.SendText(context.Background(), "5511999990000", "oi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.records) != 1 || rec.records[0] != "5511999990000|text|sent" {
		t.Fatalf("unexpected records: %v", rec.records)
	}
}

func TestClient_PairingCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instance/connect/clinic-main" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "secret-key" {
			t.Errorf("missing api key header")
		}
		json.NewEncoder(w).Encode(map[string]string{"code": "2@pairing-code"})
	}))
	defer srv.Close()

	code, err := testClient(srv.URL).PairingCode(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "2@pairing-code" {
		t.Errorf("code = %q", code)
	}
}

func TestClient_PairingCode_AlreadyConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"instance": map[string]string{"state": "open"}})
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).PairingCode(context.Background()); err == nil {
		t.Fatal("expected error when no pairing code is returned")
	}
}

func TestConfirmationMessage_DefaultsAddress(t *testing.T) {
	msg := ConfirmationMessage(AppointmentInfo{
		PatientName:  "Maria",
		Procedure:    "Limpeza de Pele",
		Date:         "2026-09-01",
		Time:         "10:00",
		Professional: "Dra. Ana",
	})

	if !strings.Contains(msg, "Maria") || !strings.Contains(msg, "Limpeza de Pele") {
		t.Error("expected message to include patient and procedure")
	}
	if !strings.Contains(msg, "Endereço da clínica") {
		t.Error("expected default address when none is given")
	}
}
