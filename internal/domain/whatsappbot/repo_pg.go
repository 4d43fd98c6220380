package whatsappbot

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepoPG struct{ pool *pgxpool.Pool }

func NewMessageRepoPG(pool *pgxpool.Pool) MessageRepository {
	return &messageRepoPG{pool: pool}
}

func (r *messageRepoPG) RecordOutbound(ctx context.Context, to, content, messageType, status string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO whatsapp_messages (id, to_number, content, message_type, status)
		VALUES ($1,$2,$3,$4,$5)`,
		uuid.New(), to, content, messageType, status)
	return err
}

func (r *messageRepoPG) ListRecent(ctx context.Context, limit int) ([]*OutboundMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, to_number, content, message_type, status, created_at
		FROM whatsapp_messages ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OutboundMessage
	for rows.Next() {
		var m OutboundMessage
		if err := rows.Scan(&m.ID, &m.To, &m.Content, &m.MessageType, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}
