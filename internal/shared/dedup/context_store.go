package dedup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshuarp/msgcontext-gateway/internal/shared/cache"
)

// ContextStore is a typed accessor over the per-conversation history held by
// a cache.Backend. It does not lock: callers that modify history must hold the
// conversation lock.
type ContextStore struct {
	backend        cache.Backend
	maxRecordCount int
	expire         time.Duration
	logger         *slog.Logger
}

// NewContextStore creates a store keeping at most maxRecordCount records per
// conversation. maxRecordCount == 0 stores nothing. expire <= 0 keeps history
// until the backend evicts it.
func NewContextStore(backend cache.Backend, maxRecordCount int, expire time.Duration, logger *slog.Logger) (*ContextStore, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: cache backend is required", ErrInvalidConfig)
	}
	if maxRecordCount < 0 {
		return nil, fmt.Errorf("%w: max record count must not be negative, got %d", ErrInvalidConfig, maxRecordCount)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ContextStore{
		backend:        backend,
		maxRecordCount: maxRecordCount,
		expire:         expire,
		logger:         logger,
	}, nil
}

func (s *ContextStore) MaxRecordCount() int { return s.maxRecordCount }

// GetFreshContext always reads the backend. A missing conversation is an empty
// Context. Reads outside the conversation lock may be stale by the time they
// are used.
func (s *ContextStore) GetFreshContext(ctx context.Context, key string) (Context, error) {
	raw, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return Context{}, fmt.Errorf("dedup: read context %s: %w", key, err)
	}
	if !found {
		return Context{}, nil
	}

	var history Context
	if err := json.Unmarshal(raw, &history); err != nil {
		// the next append overwrites the payload
		s.logger.Warn("discarding unreadable conversation context", "conversation_key", key, "error", err)
		return Context{}, nil
	}
	return history, nil
}

// GetCachedContext returns the history as first read by this handler state.
// Local backends are re-read every time since that costs nothing; distributed
// backends reuse the first read, which may be stale. Never use it for
// read-modify-write sequences.
func (s *ContextStore) GetCachedContext(ctx context.Context, key string, state *HandlerState) (Context, error) {
	if state == nil || s.backend.Kind() == cache.KindLocal || state.cached == nil {
		history, err := s.GetFreshContext(ctx, key)
		if err != nil {
			return Context{}, err
		}
		if state != nil {
			state.cached = &history
		}
		return history, nil
	}
	return *state.cached, nil
}

// Append adds record to the conversation, evicting the oldest records so that
// at most MaxRecordCount remain. The caller must hold the conversation lock.
func (s *ContextStore) Append(ctx context.Context, key string, record Record) (Context, error) {
	history, err := s.GetFreshContext(ctx, key)
	if err != nil {
		return Context{}, err
	}
	updated, _, err := s.appendTo(ctx, key, history, record)
	return updated, err
}

// Remove deletes the newest record equal to record and reports whether one was
// found. The caller must hold the conversation lock.
func (s *ContextStore) Remove(ctx context.Context, key string, record Record) (bool, error) {
	history, err := s.GetFreshContext(ctx, key)
	if err != nil {
		return false, err
	}

	at := -1
	for i := len(history.Records) - 1; i >= 0; i-- {
		if history.Records[i].equal(record) {
			at = i
			break
		}
	}
	if at < 0 {
		return false, nil
	}

	records := make([]Record, 0, len(history.Records)-1)
	records = append(records, history.Records[:at]...)
	records = append(records, history.Records[at+1:]...)

	if err := s.write(ctx, key, Context{Records: records}); err != nil {
		return false, err
	}
	return true, nil
}

// appendTo writes history+record back and reports whether anything was stored.
func (s *ContextStore) appendTo(ctx context.Context, key string, history Context, record Record) (Context, bool, error) {
	if s.maxRecordCount == 0 {
		return history, false, nil
	}

	records := make([]Record, 0, min(len(history.Records)+1, s.maxRecordCount))
	if overflow := len(history.Records) + 1 - s.maxRecordCount; overflow > 0 {
		records = append(records, history.Records[overflow:]...)
	} else {
		records = append(records, history.Records...)
	}
	records = append(records, record)
	updated := Context{Records: records}

	if err := s.write(ctx, key, updated); err != nil {
		return history, false, err
	}
	return updated, true, nil
}

func (s *ContextStore) write(ctx context.Context, key string, history Context) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("dedup: encode context %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw, s.expire); err != nil {
		return fmt.Errorf("dedup: write context %s: %w", key, err)
	}
	return nil
}
