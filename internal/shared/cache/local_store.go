package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

var _ Backend = (*LocalStore)(nil)

// localSweepInterval bounds how long expired items may linger after their TTL
// when their keys are never read again.
const localSweepInterval = time.Minute

// LocalStore is an in-process Backend. Locks are weighted semaphores created on
// demand and dropped once no goroutine holds or waits on them. Expired items
// are dropped on read and by a sweep that Set runs at most once per
// localSweepInterval.
type LocalStore struct {
	mu        sync.Mutex
	items     map[string]localItem
	locks     map[string]*localLock
	now       func() time.Time
	lastSweep time.Time
}

type localItem struct {
	value     []byte
	expiresAt time.Time
}

type localLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewLocalStore creates an empty process-local backend.
func NewLocalStore() *LocalStore {
	return &LocalStore{
		items: make(map[string]localItem),
		locks: make(map[string]*localLock),
		now:   time.Now,
	}
}

func (s *LocalStore) Kind() Kind { return KindLocal }

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	if !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt) {
		delete(s.items, key)
		return nil, false, nil
	}

	return append([]byte(nil), item.value...), true, nil
}

func (s *LocalStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := localItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.sweepExpiredLocked()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *LocalStore) sweepExpiredLocked() {
	now := s.now()
	if !s.lastSweep.IsZero() && now.Sub(s.lastSweep) < localSweepInterval {
		return
	}
	s.lastSweep = now

	for key, item := range s.items {
		if !item.expiresAt.IsZero() && !now.Before(item.expiresAt) {
			delete(s.items, key)
		}
	}
}

func (s *LocalStore) itemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *LocalStore) AcquireLock(ctx context.Context, domain, key string, timeout time.Duration) (Lock, error) {
	name := lockName(domain, key)

	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &localLock{sem: semaphore.NewWeighted(1)}
		s.locks[name] = l
	}
	l.refs++
	s.mu.Unlock()

	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		s.unref(name, l)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("cache: wait for lock %s: %w", name, ctxErr)
		}
		return nil, fmt.Errorf("%w: %s after %s", ErrLockTimeout, name, timeout)
	}

	return &localHandle{store: s, name: name, lock: l}, nil
}

func (s *LocalStore) unref(name string, l *localLock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, name)
	}
}

func (s *LocalStore) lockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func (s *LocalStore) Close() error { return nil }

type localHandle struct {
	store    *LocalStore
	name     string
	lock     *localLock
	released sync.Once
}

func (h *localHandle) Release(_ context.Context) error {
	err := ErrLockNotHeld
	h.released.Do(func() {
		h.lock.sem.Release(1)
		h.store.unref(h.name, h.lock)
		err = nil
	})
	return err
}
