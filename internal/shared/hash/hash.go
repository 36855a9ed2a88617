// Package hash derives short, deterministic digests from ordered string parts.
// It is used to turn conversation identity fields into cache partition keys.
package hash

import (
	"fmt"
)

// Strategy defines which digest algorithm to use.
type Strategy string

const (
	StrategySHA256  Strategy = "sha256"
	StrategyBLAKE2b Strategy = "blake2b"
)

// Options configures the hasher.
type Options struct {
	// Strategy selects the digest algorithm.
	Strategy Strategy

	// Size is the digest length in bytes (BLAKE2b only, 1–64).
	// Zero uses 32.
	Size int
}

// Hasher is the interface consumers depend on for deterministic digests.
// Implementations must be safe for concurrent use.
type Hasher interface {
	// Sum returns the hex digest of parts. Part boundaries are significant:
	// Sum("ab", "c") != Sum("a", "bc").
	Sum(parts ...string) string
}

// New creates a Hasher based on the provided options.
// Returns an error if the strategy is unknown or configuration is invalid.
func New(opts Options) (Hasher, error) {
	switch opts.Strategy {
	case StrategySHA256, "":
		return NewSHA256(), nil
	case StrategyBLAKE2b:
		return NewBLAKE2b(opts.Size)
	default:
		return nil, fmt.Errorf("hash: unknown strategy %q", opts.Strategy)
	}
}
