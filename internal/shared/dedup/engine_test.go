package dedup

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/joshuarp/msgcontext-gateway/internal/shared/cache"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/hash"
)

var errInjected = errors.New("injected backend fault")

// faultyBackend wraps a LocalStore and fails selected calls.
type faultyBackend struct {
	*cache.LocalStore

	getErr  error
	setErr  error
	lockErr error

	acquired atomic.Int32
	released atomic.Int32
}

type countingLock struct {
	inner cache.Lock
	owner *faultyBackend
}

func (l countingLock) Release(ctx context.Context) error {
	l.owner.released.Add(1)
	return l.inner.Release(ctx)
}

func (b *faultyBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if b.getErr != nil {
		return nil, false, b.getErr
	}
	return b.LocalStore.Get(ctx, key)
}

func (b *faultyBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.LocalStore.Set(ctx, key, value, ttl)
}

func (b *faultyBackend) AcquireLock(ctx context.Context, domain, key string, timeout time.Duration) (cache.Lock, error) {
	if b.lockErr != nil {
		return nil, b.lockErr
	}
	lock, err := b.LocalStore.AcquireLock(ctx, domain, key, timeout)
	if err != nil {
		return nil, err
	}
	b.acquired.Add(1)
	return countingLock{inner: lock, owner: b}, nil
}

type EngineSuite struct {
	suite.Suite

	backend *cache.LocalStore
	keys    KeyDeriver
}

func (s *EngineSuite) SetupTest() {
	s.backend = cache.NewLocalStore()
	s.keys = NewKeyDeriver(hash.NewSHA256(), "")
}

func (s *EngineSuite) newEngine(backend cache.Backend, cfg Config) *Engine {
	engine, err := NewEngine(backend, s.keys, cfg, newTestLogger())
	require.NoError(s.T(), err)
	return engine
}

func enabled(maxRecords int) Config {
	return Config{
		UseMessageContext: true,
		MaxRecordCount:    maxRecords,
		Expire:            90 * time.Minute,
		LockTimeout:       time.Second,
	}
}

func textMessage(id int64) Message {
	return Message{
		Platform:  "wechat",
		Recipient: "gh_account",
		Sender:    "openid-1",
		ID:        id,
		CreatedAt: time.Unix(1700000000+id, 0).UTC(),
		Type:      "text",
	}
}

func (s *EngineSuite) TestNewEngine_Validation() {
	tests := []struct {
		name string
		keys KeyDeriver
		cfg  Config
	}{
		{name: "negative max record count", keys: s.keys, cfg: Config{MaxRecordCount: -1}},
		{name: "negative lock timeout", keys: s.keys, cfg: Config{LockTimeout: -time.Second}},
		{name: "zero key deriver", keys: KeyDeriver{}, cfg: Config{}},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := NewEngine(s.backend, tc.keys, tc.cfg, nil)
			assert.ErrorIs(s.T(), err, ErrInvalidConfig)
		})
	}
}

func (s *EngineSuite) TestGate_BoundedHistory() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(3))

	for id := int64(1); id <= 4; id++ {
		decision, err := engine.Gate(ctx, textMessage(id), NewHandlerState())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), OutcomeAdmitted, decision.Outcome)
		assert.True(s.T(), decision.Recorded)
	}

	key, ok := s.keys.Key(textMessage(1))
	require.True(s.T(), ok)
	history, err := engine.Store().GetFreshContext(ctx, key)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []int64{2, 3, 4}, ids(history))
}

func (s *EngineSuite) TestGate_RejectsImmediateRepeat() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(3))

	first, err := engine.Gate(ctx, textMessage(7), NewHandlerState())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeAdmitted, first.Outcome)

	state := NewHandlerState()
	second, err := engine.Gate(ctx, textMessage(7), state)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeRejected, second.Outcome)
	assert.False(s.T(), second.Recorded)
	assert.Equal(s.T(), 1, second.ContextLength)
	assert.True(s.T(), state.MessageIsRepeated)
	assert.True(s.T(), state.CancelExecute)
	assert.Equal(s.T(), first.ConversationKey, second.ConversationKey)
}

func (s *EngineSuite) TestGate_IDZeroEventRepeat() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(3))

	event := textMessage(0)
	event.Type = "event"

	first, err := engine.Gate(ctx, event, NewHandlerState())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeAdmitted, first.Outcome)

	second, err := engine.Gate(ctx, event, NewHandlerState())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeRejected, second.Outcome)

	later := event
	later.CreatedAt = event.CreatedAt.Add(time.Second)
	third, err := engine.Gate(ctx, later, NewHandlerState())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeAdmitted, third.Outcome)
}

func (s *EngineSuite) TestGate_UnknownTypeAdmittedNotStored() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(3))

	_, err := engine.Gate(ctx, textMessage(1), NewHandlerState())
	require.NoError(s.T(), err)

	unknown := textMessage(2)
	unknown.Type = TypeUnknown
	decision, err := engine.Gate(ctx, unknown, NewHandlerState())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeAdmitted, decision.Outcome)
	assert.False(s.T(), decision.Recorded)
	assert.Equal(s.T(), 1, decision.ContextLength)

	history, err := engine.Store().GetFreshContext(ctx, decision.ConversationKey)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []int64{1}, ids(history))
}

func (s *EngineSuite) TestGate_UnknownTypeRepeatOfLastRecordIsRejected() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(3))

	_, err := engine.Gate(ctx, textMessage(5), NewHandlerState())
	require.NoError(s.T(), err)

	unknown := textMessage(5)
	unknown.Type = TypeUnknown
	decision, err := engine.Gate(ctx, unknown, NewHandlerState())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeRejected, decision.Outcome)
}

func (s *EngineSuite) TestGate_PredicateOptOutStillRecords() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(3))
	optOut := WithPredicate(func(Message) bool { return false })

	for range 2 {
		decision, err := engine.Gate(ctx, textMessage(7), NewHandlerState(), optOut)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), OutcomeAdmitted, decision.Outcome)
	}

	key, _ := s.keys.Key(textMessage(7))
	history, err := engine.Store().GetFreshContext(ctx, key)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []int64{7, 7}, ids(history))
}

func (s *EngineSuite) TestGate_Bypass_TableDriven() {
	tests := []struct {
		name string
		cfg  Config
		msg  Message
	}{
		{name: "context disabled", cfg: Config{MaxRecordCount: 3}, msg: textMessage(1)},
		{name: "missing sender", cfg: enabled(3), msg: Message{Recipient: "gh", ID: 1, Type: "text"}},
		{name: "missing recipient", cfg: enabled(3), msg: Message{Sender: "openid", ID: 1, Type: "text"}},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			backend := &faultyBackend{LocalStore: cache.NewLocalStore(), lockErr: errInjected}
			engine := s.newEngine(backend, tc.cfg)

			for range 2 {
				state := NewHandlerState()
				decision, err := engine.Gate(context.Background(), tc.msg, state)
				require.NoError(s.T(), err)
				assert.Equal(s.T(), OutcomeBypassed, decision.Outcome)
				assert.False(s.T(), state.MessageIsRepeated)
			}
			assert.Zero(s.T(), backend.acquired.Load())
		})
	}
}

func (s *EngineSuite) TestGate_ZeroMaxRecordCountNeverRejects() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(0))

	for range 3 {
		decision, err := engine.Gate(ctx, textMessage(7), NewHandlerState())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), OutcomeAdmitted, decision.Outcome)
		assert.False(s.T(), decision.Recorded)
	}
}

func (s *EngineSuite) TestGate_ConversationsAreIsolated() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(3))

	other := textMessage(7)
	other.Sender = "openid-2"

	_, err := engine.Gate(ctx, textMessage(7), NewHandlerState())
	require.NoError(s.T(), err)

	decision, err := engine.Gate(ctx, other, NewHandlerState())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeAdmitted, decision.Outcome)
}

func (s *EngineSuite) TestGate_BackendFaults_TableDriven() {
	tests := []struct {
		name         string
		configure    func(b *faultyBackend)
		expectErr    error
		expectLocked int32
	}{
		{
			name:         "lock fails",
			configure:    func(b *faultyBackend) { b.lockErr = cache.ErrLockTimeout },
			expectErr:    cache.ErrBackendUnavailable,
			expectLocked: 0,
		},
		{
			name:         "read fails",
			configure:    func(b *faultyBackend) { b.getErr = errInjected },
			expectErr:    errInjected,
			expectLocked: 1,
		},
		{
			name:         "write fails",
			configure:    func(b *faultyBackend) { b.setErr = errInjected },
			expectErr:    errInjected,
			expectLocked: 1,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			local := cache.NewLocalStore()
			backend := &faultyBackend{LocalStore: local}
			tc.configure(backend)
			engine := s.newEngine(backend, enabled(3))

			state := NewHandlerState()
			decision, err := engine.Gate(context.Background(), textMessage(1), state)
			require.Error(s.T(), err)
			assert.ErrorIs(s.T(), err, tc.expectErr)
			assert.NotEqual(s.T(), OutcomeAdmitted, decision.Outcome)
			assert.False(s.T(), state.MessageIsRepeated)

			assert.Equal(s.T(), tc.expectLocked, backend.acquired.Load())
			assert.Equal(s.T(), tc.expectLocked, backend.released.Load())

			// the lock must be free again
			key, _ := s.keys.Key(textMessage(1))
			lock, err := local.AcquireLock(context.Background(), DefaultLockDomain, key, 10*time.Millisecond)
			require.NoError(s.T(), err)
			require.NoError(s.T(), lock.Release(context.Background()))
		})
	}
}

func (s *EngineSuite) TestGate_ReleasesLockOnEveryOutcome() {
	ctx := context.Background()
	backend := &faultyBackend{LocalStore: cache.NewLocalStore()}
	engine := s.newEngine(backend, enabled(3))

	unknown := textMessage(2)
	unknown.Type = TypeUnknown

	for _, msg := range []Message{textMessage(1), textMessage(1), unknown} {
		_, err := engine.Gate(ctx, msg, NewHandlerState())
		require.NoError(s.T(), err)
	}

	assert.Equal(s.T(), int32(3), backend.acquired.Load())
	assert.Equal(s.T(), int32(3), backend.released.Load())
}

func (s *EngineSuite) TestGate_LockTimeoutWhileHeld() {
	ctx := context.Background()
	cfg := enabled(3)
	cfg.LockTimeout = 20 * time.Millisecond
	engine := s.newEngine(s.backend, cfg)

	key, _ := s.keys.Key(textMessage(1))
	held, err := s.backend.AcquireLock(ctx, DefaultLockDomain, key, time.Second)
	require.NoError(s.T(), err)
	defer func() { _ = held.Release(ctx) }()

	_, err = engine.Gate(ctx, textMessage(1), NewHandlerState())
	assert.ErrorIs(s.T(), err, cache.ErrLockTimeout)
	assert.ErrorIs(s.T(), err, cache.ErrBackendUnavailable)
}

func (s *EngineSuite) TestGate_ConcurrentCopiesAdmitOnce() {
	server := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })

	redisBackend, err := cache.NewRedisStore(client, cache.WithLockRetry(time.Millisecond, 5*time.Millisecond))
	require.NoError(s.T(), err)

	backends := map[string]cache.Backend{
		"local": cache.NewLocalStore(),
		"redis": redisBackend,
	}

	for name, backend := range backends {
		s.Run(name, func() {
			cfg := enabled(5)
			cfg.LockTimeout = 10 * time.Second
			engine := s.newEngine(backend, cfg)

			const copies = 16
			var (
				wg       sync.WaitGroup
				admitted atomic.Int32
				rejected atomic.Int32
			)
			start := make(chan struct{})

			for range copies {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					decision, err := engine.Gate(context.Background(), textMessage(99), NewHandlerState())
					if err != nil {
						return
					}
					switch decision.Outcome {
					case OutcomeAdmitted:
						admitted.Add(1)
					case OutcomeRejected:
						rejected.Add(1)
					}
				}()
			}
			close(start)
			wg.Wait()

			assert.Equal(s.T(), int32(1), admitted.Load())
			assert.Equal(s.T(), int32(copies-1), rejected.Load())

			key, _ := s.keys.Key(textMessage(99))
			history, err := engine.Store().GetFreshContext(context.Background(), key)
			require.NoError(s.T(), err)
			assert.Equal(s.T(), []int64{99}, ids(history))
		})
	}
}

func (s *EngineSuite) TestGate_ConcurrentDistinctMessagesAllRecorded() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(64))

	const senders = 8
	const perSender = 4
	var wg sync.WaitGroup
	for sender := range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perSender {
				msg := textMessage(int64(i + 1))
				msg.Sender = "openid-shared"
				msg.ID = int64(sender*perSender + i + 1)
				_, _ = engine.Gate(ctx, msg, NewHandlerState())
			}
		}()
	}
	wg.Wait()

	key, _ := s.keys.Key(Message{Platform: "wechat", Recipient: "gh_account", Sender: "openid-shared"})
	history, err := engine.Store().GetFreshContext(ctx, key)
	require.NoError(s.T(), err)
	assert.Len(s.T(), history.Records, senders*perSender)
}

func (s *EngineSuite) TestForget_RedeliveryAdmittedAgain() {
	ctx := context.Background()
	engine := s.newEngine(s.backend, enabled(5))

	for _, id := range []int64{6, 7} {
		_, err := engine.Gate(ctx, textMessage(id), NewHandlerState())
		require.NoError(s.T(), err)
	}

	require.NoError(s.T(), engine.Forget(ctx, textMessage(7)))

	key, ok := s.keys.Key(textMessage(7))
	require.True(s.T(), ok)
	history, err := engine.Store().GetFreshContext(ctx, key)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []int64{6}, ids(history))

	state := NewHandlerState()
	decision, err := engine.Gate(ctx, textMessage(7), state)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), OutcomeAdmitted, decision.Outcome)
	assert.False(s.T(), state.MessageIsRepeated)
}

func (s *EngineSuite) TestForget_TableDriven() {
	tests := []struct {
		name        string
		cfg         Config
		msg         Message
		lockErr     error
		expectErr   error
		expectLocks int32
	}{
		{name: "disabled is a no-op", cfg: Config{}, msg: textMessage(1)},
		{name: "no conversation key is a no-op", cfg: enabled(3), msg: Message{Platform: "wechat", ID: 1}},
		{name: "unknown message is a no-op", cfg: enabled(3), msg: textMessage(9), expectLocks: 1},
		{name: "lock fault is returned", cfg: enabled(3), msg: textMessage(1), lockErr: cache.ErrLockTimeout, expectErr: cache.ErrBackendUnavailable},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			backend := &faultyBackend{LocalStore: cache.NewLocalStore(), lockErr: tc.lockErr}
			engine := s.newEngine(backend, tc.cfg)

			err := engine.Forget(context.Background(), tc.msg)
			if tc.expectErr != nil {
				assert.ErrorIs(s.T(), err, tc.expectErr)
				return
			}
			require.NoError(s.T(), err)
			assert.Equal(s.T(), tc.expectLocks, backend.acquired.Load())
			assert.Equal(s.T(), tc.expectLocks, backend.released.Load())
		})
	}
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

type EngineInspectSuite struct{ suite.Suite }

func (s *EngineInspectSuite) TestInspect() {
	ctx := context.Background()
	engine, err := NewEngine(cache.NewLocalStore(), NewKeyDeriver(hash.NewSHA256(), ""), enabled(3), nil)
	require.NoError(s.T(), err)

	_, _, err = engine.Inspect(ctx, Message{Recipient: "gh"})
	assert.ErrorIs(s.T(), err, ErrNoConversationKey)

	key, history, err := engine.Inspect(ctx, textMessage(1))
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), key)
	assert.Equal(s.T(), 0, history.Len())

	_, err = engine.Gate(ctx, textMessage(1), NewHandlerState())
	require.NoError(s.T(), err)

	_, history, err = engine.Inspect(ctx, textMessage(1))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []int64{1}, ids(history))
	assert.Equal(s.T(), 3, engine.MaxRecordCount())
}

func TestEngineInspectSuite(t *testing.T) {
	suite.Run(t, new(EngineInspectSuite))
}
