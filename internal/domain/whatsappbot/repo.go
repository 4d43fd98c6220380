package whatsappbot

import (
	"context"
)

type MessageRepository interface {
	// RecordOutbound logs a sent or failed outbound message.
	RecordOutbound(ctx context.Context, to, content, messageType, status string) error
	ListRecent(ctx context.Context, limit int) ([]*OutboundMessage, error)
}
