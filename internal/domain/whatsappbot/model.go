package whatsappbot

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WebhookPayload is the envelope Evolution API posts to our webhook.
type WebhookPayload struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	Message IncomingMessage `json:"message"`
}

type IncomingMessage struct {
	Key         MessageKey     `json:"key"`
	MessageType string         `json:"messageType"`
	Message     MessageContent `json:"message"`
}

type MessageKey struct {
	RemoteJID string `json:"remoteJid"`
}

type MessageContent struct {
	Conversation string        `json:"conversation"`
	AudioMessage *AudioMessage `json:"audioMessage,omitempty"`
}

type AudioMessage struct {
	URL string `json:"url"`
}

// FromNumber extracts the sender's phone number from the JID.
func (m *IncomingMessage) FromNumber() string {
	return strings.ReplaceAll(m.Key.RemoteJID, "@s.whatsapp.net", "")
}

// OutboundMessage is a log entry for every message sent through Evolution
// API.
type OutboundMessage struct {
	ID          uuid.UUID `db:"id" json:"id"`
	To          string    `db:"to_number" json:"to"`
	Content     string    `db:"content" json:"content"`
	MessageType string    `db:"message_type" json:"message_type"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
