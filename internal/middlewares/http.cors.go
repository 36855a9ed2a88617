package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewHTTPCORSMiddleware lets operator dashboards read conversation context.
// An empty origin list allows any origin.
func NewHTTPCORSMiddleware(allowOrigins []string) fiber.Handler {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowHeaders:  []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, RequestIDHeader},
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodOptions},
		ExposeHeaders: []string{RequestIDHeader},
	})
}
