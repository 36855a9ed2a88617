package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshuarp/msgcontext-gateway/internal/shared/cache"
)

// DefaultLockDomain names the lock family used for history updates. It must
// not be reused by unrelated locking in the host.
const DefaultLockDomain = "msgctx-insert-message"

var (
	// ErrInvalidConfig is returned at construction time for unusable settings.
	ErrInvalidConfig = errors.New("dedup: invalid configuration")

	// ErrNoConversationKey is returned by Inspect for messages without a
	// recipient or sender.
	ErrNoConversationKey = errors.New("dedup: conversation key cannot be derived")
)

// Outcome is the result of gating one message.
type Outcome string

const (
	// OutcomeAdmitted means the message is not a repeat and may execute.
	OutcomeAdmitted Outcome = "admitted"

	// OutcomeRejected means the message repeats the last one seen; it must be
	// acknowledged without executing.
	OutcomeRejected Outcome = "rejected"

	// OutcomeBypassed means gating was skipped (disabled, or no conversation key).
	OutcomeBypassed Outcome = "bypassed"
)

// Decision describes how a message was gated. It is not persisted.
type Decision struct {
	Outcome         Outcome
	ConversationKey string

	// Recorded is true when the message was appended to history.
	Recorded bool

	// ContextLength is the history length after the protected section.
	ContextLength int
}

// Config configures an Engine.
type Config struct {
	// UseMessageContext is the global switch; false admits every message.
	UseMessageContext bool

	// MaxRecordCount bounds the per-conversation history. 0 stores nothing.
	MaxRecordCount int

	// Expire is the history TTL handed to the backend.
	Expire time.Duration

	// LockTimeout bounds the wait for the conversation lock. 0 waits on ctx only.
	LockTimeout time.Duration

	// LockDomain defaults to DefaultLockDomain.
	LockDomain string
}

// Engine runs the lock-scoped read-decide-append protocol. It is explicitly
// constructed and shared by all handlers; it holds no per-message state.
type Engine struct {
	backend cache.Backend
	store   *ContextStore
	keys    KeyDeriver
	cfg     Config
	logger  *slog.Logger
}

func NewEngine(backend cache.Backend, keys KeyDeriver, cfg Config, logger *slog.Logger) (*Engine, error) {
	if keys.hasher == nil {
		return nil, fmt.Errorf("%w: key deriver has no hasher", ErrInvalidConfig)
	}
	if cfg.LockTimeout < 0 {
		return nil, fmt.Errorf("%w: lock timeout must not be negative", ErrInvalidConfig)
	}
	if cfg.LockDomain == "" {
		cfg.LockDomain = DefaultLockDomain
	}
	if logger == nil {
		logger = slog.Default()
	}

	store, err := NewContextStore(backend, cfg.MaxRecordCount, cfg.Expire, logger)
	if err != nil {
		return nil, err
	}

	if cfg.UseMessageContext && cfg.MaxRecordCount == 0 {
		logger.Warn("message context enabled with max record count 0; no history is kept and no repeats will be detected")
	}

	return &Engine{
		backend: backend,
		store:   store,
		keys:    keys,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (e *Engine) Enabled() bool { return e.cfg.UseMessageContext }

func (e *Engine) Store() *ContextStore { return e.store }

func (e *Engine) MaxRecordCount() int { return e.store.MaxRecordCount() }

// Inspect reads the history of msg's conversation without taking the lock.
// The result may be stale by the time it is returned; it must never feed a
// decision or an append.
func (e *Engine) Inspect(ctx context.Context, msg Message) (string, Context, error) {
	key, ok := e.keys.Key(msg)
	if !ok {
		return "", Context{}, ErrNoConversationKey
	}

	history, err := e.store.GetFreshContext(ctx, key)
	if err != nil {
		return key, Context{}, err
	}
	return key, history, nil
}

// Gate decides whether msg repeats the previous message of its conversation
// and records it when it does not. The read, the decision and the append run
// under one lock on (LockDomain, conversation key), so concurrent deliveries
// of one message admit exactly one copy. The lock is released on every path
// before an error is returned.
//
// A repeat is a normal outcome: state is marked repeated and no error is
// returned. Backend faults and lock timeouts are returned wrapped; callers
// must not treat them as admission.
func (e *Engine) Gate(ctx context.Context, msg Message, state *HandlerState, opts ...GateOption) (Decision, error) {
	if !e.cfg.UseMessageContext {
		return Decision{Outcome: OutcomeBypassed}, nil
	}

	key, ok := e.keys.Key(msg)
	if !ok {
		return Decision{Outcome: OutcomeBypassed}, nil
	}

	if state == nil {
		state = NewHandlerState()
	}

	lock, err := e.backend.AcquireLock(ctx, e.cfg.LockDomain, key, e.cfg.LockTimeout)
	if err != nil {
		return Decision{ConversationKey: key}, fmt.Errorf("dedup: lock conversation %s: %w", key, err)
	}
	defer func() {
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			e.logger.Error("failed to release conversation lock", "conversation_key", key, "error", releaseErr)
		}
	}()

	history, err := e.store.GetFreshContext(ctx, key)
	if err != nil {
		return Decision{ConversationKey: key}, err
	}

	decision := Decision{
		Outcome:         OutcomeAdmitted,
		ConversationKey: key,
		ContextLength:   history.Len(),
	}

	if Decide(history, msg, state, opts...) {
		state.MarkRepeated()
		decision.Outcome = OutcomeRejected
		return decision, nil
	}

	if msg.Type == TypeUnknown {
		return decision, nil
	}

	updated, recorded, err := e.store.appendTo(ctx, key, history, msg.Record())
	if err != nil {
		return Decision{ConversationKey: key}, err
	}
	decision.Recorded = recorded
	decision.ContextLength = updated.Len()

	return decision, nil
}

// Forget removes msg's record from its conversation so that a redelivery of
// msg is admitted again. It is meant for admitted messages whose execution
// failed. Records evicted when msg was appended are not restored.
func (e *Engine) Forget(ctx context.Context, msg Message) error {
	if !e.cfg.UseMessageContext {
		return nil
	}

	key, ok := e.keys.Key(msg)
	if !ok {
		return nil
	}

	lock, err := e.backend.AcquireLock(ctx, e.cfg.LockDomain, key, e.cfg.LockTimeout)
	if err != nil {
		return fmt.Errorf("dedup: lock conversation %s: %w", key, err)
	}
	defer func() {
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			e.logger.Error("failed to release conversation lock", "conversation_key", key, "error", releaseErr)
		}
	}()

	_, err = e.store.Remove(ctx, key, msg.Record())
	return err
}
