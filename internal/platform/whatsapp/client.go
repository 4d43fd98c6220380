// Package whatsapp integrates with the Evolution API to send WhatsApp
// messages. Every outbound message is recorded through the Recorder so the
// clinic keeps a history of what was sent to each number.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Recorder persists outbound message records. Implementations must tolerate
// failure without affecting delivery.
type Recorder interface {
	RecordOutbound(ctx context.Context, to, content, messageType, status string) error
}

// Button is an interactive reply button in the Evolution API wire format.
type Button struct {
	ButtonID   string     `json:"buttonId"`
	ButtonText ButtonText `json:"buttonText"`
}

// ButtonText holds the label shown on a Button.
type ButtonText struct {
	DisplayText string `json:"displayText"`
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// WithRecorder sets the outbound message recorder.
func WithRecorder(r Recorder) ClientOption {
	return func(cl *Client) { cl.recorder = r }
}

// Client sends messages through an Evolution API instance. A Client built
// without a base URL, API key, or instance name is disabled: all send
// operations become no-ops so the rest of the system works without WhatsApp.
type Client struct {
	baseURL    string
	apiKey     string
	instance   string
	httpClient *http.Client
	recorder   Recorder
	logger     zerolog.Logger
}

// NewClient creates a Client for the given Evolution API instance.
func NewClient(baseURL, apiKey, instance string, logger zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		instance: instance,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enabled reports whether the client has complete Evolution API credentials.
func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.apiKey != "" && c.instance != ""
}

// SendText sends a plain text message to a WhatsApp number.
func (c *Client) SendText(ctx context.Context, to, text string) error {
	if !c.Enabled() {
		c.logger.Debug().Str("to", to).Msg("whatsapp disabled, skipping text message")
		return nil
	}

	payload := map[string]string{
		"number": to,
		"text":   text,
	}
	err := c.post(ctx, "/message/sendText/"+c.instance, payload)
	c.record(ctx, to, text, "text", err)
	return err
}

// SendAudio sends an audio message referenced by URL.
func (c *Client) SendAudio(ctx context.Context, to, mediaURL string) error {
	if !c.Enabled() {
		c.logger.Debug().Str("to", to).Msg("whatsapp disabled, skipping audio message")
		return nil
	}

	payload := map[string]string{
		"number":    to,
		"mediatype": "audio",
		"media":     mediaURL,
	}
	err := c.post(ctx, "/message/sendMedia/"+c.instance, payload)
	c.record(ctx, to, mediaURL, "audio", err)
	return err
}

// SendButtons sends an interactive message with reply buttons.
func (c *Client) SendButtons(ctx context.Context, to, title string, buttons []Button) error {
	if !c.Enabled() {
		c.logger.Debug().Str("to", to).Msg("whatsapp disabled, skipping button message")
		return nil
	}

	payload := map[string]any{
		"number":  to,
		"title":   title,
		"buttons": buttons,
	}
	err := c.post(ctx, "/message/sendButtons/"+c.instance, payload)
	c.record(ctx, to, title, "buttons", err)
	return err
}

// SetupWebhook points the Evolution API instance at the given webhook URL and
// subscribes it to message and connection events.
func (c *Client) SetupWebhook(ctx context.Context, webhookURL string) error {
	if !c.Enabled() {
		c.logger.Debug().Msg("whatsapp disabled, skipping webhook setup")
		return nil
	}

	payload := map[string]any{
		"webhook": map[string]any{
			"url":               webhookURL,
			"webhook_by_events": true,
			"events": []string{
				"MESSAGES_UPSERT",
				"MESSAGES_UPDATE",
				"CONNECTION_UPDATE",
			},
		},
	}
	return c.post(ctx, "/webhook/set/"+c.instance, payload)
}

// PairingCode fetches the current pairing code for the instance. The code is
// rendered client-side as a QR so a phone can link to the instance.
func (c *Client) PairingCode(ctx context.Context) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("whatsapp integration is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/instance/connect/"+c.instance, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling evolution api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("evolution api returned status %d", resp.StatusCode)
	}

	var out struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding pairing response: %w", err)
	}
	if out.Code == "" {
		return "", fmt.Errorf("instance is already connected")
	}
	return out.Code, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling evolution api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("evolution api returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) record(ctx context.Context, to, content, messageType string, sendErr error) {
	if c.recorder == nil {
		return
	}
	status := "sent"
	if sendErr != nil {
		status = "failed"
	}
	if err := c.recorder.RecordOutbound(ctx, to, content, messageType, status); err != nil {
		c.logger.Warn().Err(err).Str("to", to).Msg("failed to record whatsapp message")
	}
}
