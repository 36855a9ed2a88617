// Package uid generates unique identifiers. The gateway uses them as lock
// ownership tokens so that only the holder of a distributed lock can release it.
package uid

import (
	"context"
	"fmt"
	"strings"
)

// Strategy defines which UID generation algorithm to use.
type Strategy string

const (
	StrategySnowflake Strategy = "snowflake"
	StrategyUUIDv7    Strategy = "uuidv7"
)

// Options configures the UID generator.
type Options struct {
	// Strategy selects the generation algorithm.
	Strategy Strategy

	// NodeID identifies this node in a distributed system (Snowflake only).
	// Valid range: 0–1023.
	NodeID int64

	// Prefix is prepended to every generated id as "<prefix>-<id>".
	// Useful to tell lock holders apart when inspecting redis.
	Prefix string
}

// UIDGenerator is the interface consumers depend on for generating unique identifiers.
// Implementations must be safe for concurrent use.
type UIDGenerator interface {
	// Generate returns a new unique identifier as a string.
	Generate(ctx context.Context) (string, error)
}

// New creates a UIDGenerator based on the provided options.
// Returns an error if the strategy is unknown or configuration is invalid.
func New(opts Options) (UIDGenerator, error) {
	var (
		gen UIDGenerator
		err error
	)

	switch opts.Strategy {
	case StrategySnowflake:
		gen, err = NewSnowflake(opts.NodeID)
	case StrategyUUIDv7, "":
		gen, err = NewUUIDv7()
	default:
		return nil, fmt.Errorf("uid: unknown strategy %q", opts.Strategy)
	}
	if err != nil {
		return nil, err
	}

	if prefix := strings.TrimSpace(opts.Prefix); prefix != "" {
		return &prefixed{prefix: prefix, next: gen}, nil
	}
	return gen, nil
}

type prefixed struct {
	prefix string
	next   UIDGenerator
}

func (p *prefixed) Generate(ctx context.Context) (string, error) {
	id, err := p.next.Generate(ctx)
	if err != nil {
		return "", err
	}
	return p.prefix + "-" + id, nil
}
