// Package jwt issues and verifies the operator tokens that guard the
// conversation inspection API.
package jwt

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Strategy defines which signing algorithm family to use.
type Strategy string

const StrategyHMAC Strategy = "hmac"

// ScopeContextRead allows reading conversation history.
const ScopeContextRead = "context:read"

// Options configures the token manager.
type Options struct {
	Strategy Strategy

	// Secret is the shared HMAC key. Must be at least 32 bytes.
	Secret []byte

	// Algorithm is "HS256" (default), "HS384" or "HS512".
	Algorithm string

	// Issuer is the default "iss" claim and, when set, the only issuer Verify
	// accepts.
	Issuer string

	// Audience is the default "aud" claim.
	Audience []string

	// TTL determines "exp". Zero means tokens do not expire.
	TTL time.Duration
}

// Claims are the registered claims plus the operator scopes.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	NotBefore time.Time
	ID        string

	// Scopes are carried as a space separated "scope" claim.
	Scopes []string
}

func (c *Claims) HasScope(scope string) bool {
	return c != nil && slices.Contains(c.Scopes, scope)
}

// Signer creates signed tokens. Safe for concurrent use.
type Signer interface {
	Sign(ctx context.Context, claims Claims) (string, error)
}

// Verifier validates tokens and returns their claims. Safe for concurrent use.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

type TokenManager interface {
	Signer
	Verifier
}

// New creates a TokenManager based on the provided options.
func New(opts Options) (TokenManager, error) {
	switch opts.Strategy {
	case StrategyHMAC, "":
		return NewHMAC(opts)
	default:
		return nil, fmt.Errorf("jwt: unknown strategy %q", opts.Strategy)
	}
}
