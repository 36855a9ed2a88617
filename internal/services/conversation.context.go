package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joshuarp/msgcontext-gateway/internal/domain/vo"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/dedup"
)

type ContextInspector interface {
	Enabled() bool
	MaxRecordCount() int
	Inspect(ctx context.Context, msg dedup.Message) (string, dedup.Context, error)
}

// ConversationContextService exposes recent history to operators. Reads are
// not locked and may be stale under a distributed backend.
type ConversationContextService struct {
	inspector ContextInspector
}

func NewConversationContextService(inspector ContextInspector) *ConversationContextService {
	return &ConversationContextService{inspector: inspector}
}

func (s *ConversationContextService) GetConversationContext(ctx context.Context, platform, recipient, sender, contextType string) (vo.ConversationContext, error) {
	if !s.inspector.Enabled() {
		return vo.ConversationContext{}, vo.ErrContextDisabled
	}

	key, history, err := s.inspector.Inspect(ctx, dedup.Message{
		Platform:    strings.ToLower(strings.TrimSpace(platform)),
		Recipient:   recipient,
		Sender:      sender,
		ContextType: contextType,
	})
	if err != nil {
		if errors.Is(err, dedup.ErrNoConversationKey) {
			return vo.ConversationContext{}, vo.ErrConversationUnresolvable
		}
		return vo.ConversationContext{}, fmt.Errorf("service: %w: %w", vo.ErrDedupUnavailable, err)
	}

	records := make([]vo.ConversationRecord, 0, history.Len())
	for _, r := range history.Records {
		records = append(records, vo.ConversationRecord{
			MsgID:      r.ID,
			CreateTime: r.CreatedAt,
			MsgType:    string(r.Type),
			Sender:     r.Sender,
		})
	}

	return vo.ConversationContext{
		ConversationKey: key,
		MaxRecordCount:  s.inspector.MaxRecordCount(),
		Records:         records,
	}, nil
}
