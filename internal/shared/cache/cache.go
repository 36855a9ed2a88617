// Package cache is the coordination backend of the gateway: a key/value store
// plus a named mutual-exclusion primitive. RedisStore is shared by every
// replica; LocalStore only coordinates goroutines of one process.
// Implementations are safe for concurrent use.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind tells callers whether a read may be served from a process-local copy.
type Kind string

const (
	// KindLocal backends live in process memory; there is no cross-process staleness.
	KindLocal Kind = "local"

	// KindDistributed backends are shared by several processes; every read must
	// hit the backend to observe writes made elsewhere.
	KindDistributed Kind = "distributed"
)

var (
	// ErrBackendUnavailable reports that the backend could not serve a lock,
	// read or write.
	ErrBackendUnavailable = errors.New("cache: backend unavailable")

	// ErrLockTimeout reports that a bounded lock wait ran out. It wraps
	// ErrBackendUnavailable so callers can treat both the same way.
	ErrLockTimeout = fmt.Errorf("%w: lock wait timed out", ErrBackendUnavailable)

	// ErrLockNotHeld is returned by Release when the handle no longer owns the lock,
	// e.g. a redis lease expired while the section was still running.
	ErrLockNotHeld = errors.New("cache: lock not held")
)

// Lock is a single-holder handle on (domain, key). Release must be called on
// every exit path of the protected section, typically via defer.
type Lock interface {
	Release(ctx context.Context) error
}

// Backend is the contract the dedup engine consumes.
type Backend interface {
	// Get returns the stored value. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. ttl <= 0 keeps the key until overwritten.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// AcquireLock blocks until the lock on (domain, key) is held, timeout elapses
	// (ErrLockTimeout) or ctx is done. timeout <= 0 waits on ctx alone.
	AcquireLock(ctx context.Context, domain, key string, timeout time.Duration) (Lock, error)

	// Kind reports whether the backend is process-local or shared.
	Kind() Kind

	// Close releases any resources used by the backend.
	Close() error
}

func lockName(domain, key string) string {
	return domain + ":" + key
}
