package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/joshuarp/msgcontext-gateway/internal/domain"
)

// InboundMessageRepository is the inbox admitted messages are executed into.
// Redeliveries that slip past the gate collide on (conversation_key, msg_id)
// and are dropped.
type InboundMessageRepository struct {
	db *sqlx.DB
}

func NewInboundMessageRepository(db *sqlx.DB) *InboundMessageRepository {
	return &InboundMessageRepository{db: db}
}

func (r *InboundMessageRepository) InsertInboundMessage(ctx context.Context, msg domain.InboundMessage, conversationKey string) (bool, error) {
	const query = `
		INSERT INTO inbound_messages (
			conversation_key, platform, recipient, sender, context_type,
			msg_id, msg_type, content, create_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (conversation_key, msg_id) WHERE msg_id <> 0 AND conversation_key <> ''
		DO NOTHING
		RETURNING id
	`

	createTime := sql.NullTime{Time: msg.CreateTime, Valid: !msg.CreateTime.IsZero()}

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		conversationKey, msg.Platform, msg.Recipient, msg.Sender, msg.ContextType,
		msg.MsgID, msg.MsgType, msg.Content, createTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("repository: insert inbound message failed: %w", err)
	}

	return true, nil
}
