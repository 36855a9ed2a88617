package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	sharedjwt "github.com/joshuarp/msgcontext-gateway/internal/shared/jwt"
)

const (
	OperatorIDLocal     = "operator_id"
	OperatorClaimsLocal = "operator_claims"
)

// NewHTTPOperatorAuthMiddleware requires a bearer token carrying requiredScope.
func NewHTTPOperatorAuthMiddleware(verifier sharedjwt.Verifier, requiredScope string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authorizationHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		parts := strings.SplitN(authorizationHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		claims, err := verifier.Verify(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		if requiredScope != "" && !claims.HasScope(requiredScope) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient scope",
			})
		}

		c.Locals(OperatorIDLocal, claims.Subject)
		c.Locals(OperatorClaimsLocal, claims)
		c.SetContext(sharedjwt.WithClaims(c.Context(), claims))
		return c.Next()
	}
}
