package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/msgcontext-gateway/internal/domain/vo"
	"github.com/joshuarp/msgcontext-gateway/internal/middlewares"
)

type ConversationContextReader interface {
	GetConversationContext(ctx context.Context, platform, recipient, sender, contextType string) (vo.ConversationContext, error)
}

// ConversationContextHandler serves recent conversation history to operators.
// The data is read without the conversation lock.
type ConversationContextHandler struct {
	service ConversationContextReader
	logger  *slog.Logger
}

func NewConversationContextHandler(service ConversationContextReader, logger *slog.Logger) *ConversationContextHandler {
	return &ConversationContextHandler{service: service, logger: logger}
}

func (h *ConversationContextHandler) Register(router fiber.Router) {
	router.Get("/conversations/context", h.Handle)
}

func (h *ConversationContextHandler) Handle(c fiber.Ctx) error {
	result, err := h.service.GetConversationContext(
		c.Context(),
		c.Query("platform"),
		c.Query("to_user"),
		c.Query("from_user"),
		c.Query("context_type"),
	)
	if err != nil {
		switch {
		case errors.Is(err, vo.ErrConversationUnresolvable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to_user and from_user are required"})
		case errors.Is(err, vo.ErrContextDisabled):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "message context disabled"})
		case errors.Is(err, vo.ErrDedupUnavailable):
			h.logger.Error("failed to read conversation context",
				"request_id", middlewares.RequestIDFromContext(c),
				"error", err,
			)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "context store unavailable"})
		default:
			h.logger.Error("failed to read conversation context",
				"request_id", middlewares.RequestIDFromContext(c),
				"error", err,
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).JSON(result)
}
