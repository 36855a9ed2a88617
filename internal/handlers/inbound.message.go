package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/msgcontext-gateway/internal/domain"
	"github.com/joshuarp/msgcontext-gateway/internal/domain/vo"
	"github.com/joshuarp/msgcontext-gateway/internal/middlewares"
)

// AckBody acknowledges messages that were not executed, so the platform stops
// redelivering them.
const AckBody = "success"

type InboundMessageProcessor interface {
	Process(ctx context.Context, msg domain.InboundMessage) (vo.ProcessOutcome, error)
}

type InboundMessageHandler struct {
	service InboundMessageProcessor
	logger  *slog.Logger
}

type inboundMessageRequest struct {
	Platform    string `json:"platform"`
	Recipient   string `json:"to_user"`
	Sender      string `json:"from_user"`
	ContextType string `json:"context_type"`
	MsgID       int64  `json:"msg_id"`
	CreateTime  int64  `json:"create_time"`
	MsgType     string `json:"msg_type"`
	Content     string `json:"content"`
}

func (r inboundMessageRequest) toDomain() domain.InboundMessage {
	msg := domain.InboundMessage{
		Platform:    r.Platform,
		Recipient:   r.Recipient,
		Sender:      r.Sender,
		ContextType: r.ContextType,
		MsgID:       r.MsgID,
		MsgType:     r.MsgType,
		Content:     r.Content,
	}
	if r.CreateTime > 0 {
		msg.CreateTime = time.Unix(r.CreateTime, 0).UTC()
	}
	return msg
}

func NewInboundMessageHandler(service InboundMessageProcessor, logger *slog.Logger) *InboundMessageHandler {
	return &InboundMessageHandler{service: service, logger: logger}
}

func (h *InboundMessageHandler) Register(router fiber.Router) {
	router.Post("/messages", h.Handle)
}

func (h *InboundMessageHandler) Handle(c fiber.Ctx) error {
	var requestBody inboundMessageRequest
	if err := c.Bind().JSON(&requestBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	outcome, err := h.service.Process(c.Context(), requestBody.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, vo.ErrInvalidMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, vo.ErrDedupUnavailable):
			h.logger.Error("deduplication unavailable",
				"request_id", middlewares.RequestIDFromContext(c),
				"platform", requestBody.Platform,
				"msg_id", requestBody.MsgID,
				"error", err,
			)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "deduplication unavailable, retry later"})
		default:
			h.logger.Error("failed to process inbound message",
				"request_id", middlewares.RequestIDFromContext(c),
				"platform", requestBody.Platform,
				"msg_id", requestBody.MsgID,
				"error", err,
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	if outcome.Stage == vo.StageRejected {
		return c.Status(fiber.StatusOK).SendString(AckBody)
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}
