package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	sharedjwt "github.com/joshuarp/msgcontext-gateway/internal/shared/jwt"
)

// IssueOperatorToken signs a context:read token for subject with the
// configured secret and writes it to w.
func IssueOperatorToken(ctx context.Context, bin, subject string, w io.Writer) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return fmt.Errorf("app: operator subject is required")
	}

	cfg, err := loadConfig(bin)
	if err != nil {
		return err
	}

	tokenManager, err := provideJWTTokenManager(cfg)
	if err != nil {
		return err
	}

	token, err := tokenManager.Sign(ctx, sharedjwt.Claims{
		Subject: subject,
		Scopes:  []string{sharedjwt.ScopeContextRead},
	})
	if err != nil {
		return fmt.Errorf("app: failed to issue operator token: %w", err)
	}

	_, err = fmt.Fprintln(w, token)
	return err
}
