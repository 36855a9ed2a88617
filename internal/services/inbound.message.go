package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshuarp/msgcontext-gateway/internal/domain"
	"github.com/joshuarp/msgcontext-gateway/internal/domain/vo"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/dedup"
)

type DedupGate interface {
	Gate(ctx context.Context, msg dedup.Message, state *dedup.HandlerState, opts ...dedup.GateOption) (dedup.Decision, error)
	Forget(ctx context.Context, msg dedup.Message) error
}

type InboundInboxRepository interface {
	InsertInboundMessage(ctx context.Context, msg domain.InboundMessage, conversationKey string) (bool, error)
}

type InboundMessageServiceOptions struct {
	// OmitRepeatedMessage is the per-handler switch; false admits repeats.
	OmitRepeatedMessage bool

	// FailOpen admits messages when the dedup backend fails. Off by default.
	FailOpen bool

	Predicate     dedup.Predicate
	SpecialAction dedup.SpecialAction
}

// InboundMessageService drives one inbound message through gating and
// execution.
type InboundMessageService struct {
	gate       DedupGate
	repository InboundInboxRepository
	options    InboundMessageServiceOptions
	gateOpts   []dedup.GateOption
	logger     *slog.Logger
}

func NewInboundMessageService(
	gate DedupGate,
	repository InboundInboxRepository,
	options InboundMessageServiceOptions,
	logger *slog.Logger,
) *InboundMessageService {
	if logger == nil {
		logger = slog.Default()
	}

	var gateOpts []dedup.GateOption
	if options.Predicate != nil {
		gateOpts = append(gateOpts, dedup.WithPredicate(options.Predicate))
	}
	if options.SpecialAction != nil {
		gateOpts = append(gateOpts, dedup.WithSpecialAction(options.SpecialAction))
	}

	return &InboundMessageService{
		gate:       gate,
		repository: repository,
		options:    options,
		gateOpts:   gateOpts,
		logger:     logger,
	}
}

// Process returns a Rejected outcome without error for repeats; the caller
// must still acknowledge them. An error means the message was not handled and
// the platform should redeliver it.
func (s *InboundMessageService) Process(ctx context.Context, msg domain.InboundMessage) (vo.ProcessOutcome, error) {
	var outcome vo.ProcessOutcome
	outcome.Advance(vo.StageReceived)

	msg, err := normalizeInboundMessage(msg)
	if err != nil {
		outcome.Advance(vo.StageFailed)
		return outcome, err
	}

	state := dedup.NewHandlerState()
	state.OmitRepeatedMessage = s.options.OmitRepeatedMessage

	outcome.Advance(vo.StageGating)
	dedupMsg := toDedupMessage(msg)
	decision, err := s.gate.Gate(ctx, dedupMsg, state, s.gateOpts...)
	outcome.ConversationKey = decision.ConversationKey
	if err != nil {
		if !s.options.FailOpen {
			outcome.Advance(vo.StageFailed)
			return outcome, fmt.Errorf("service: %w: %w", vo.ErrDedupUnavailable, err)
		}

		s.logger.Warn("dedup unavailable, admitting message unguarded",
			"platform", msg.Platform,
			"msg_id", msg.MsgID,
			"conversation_key", decision.ConversationKey,
			"error", err,
		)
		outcome.FailedOpen = true
	}

	if decision.Outcome == dedup.OutcomeRejected || state.CancelExecute {
		outcome.Repeated = state.MessageIsRepeated
		outcome.Advance(vo.StageRejected)
		s.logger.Debug("repeated message rejected",
			"platform", msg.Platform,
			"msg_id", msg.MsgID,
			"conversation_key", decision.ConversationKey,
		)
		return outcome, nil
	}

	outcome.Recorded = decision.Recorded
	outcome.Advance(vo.StageAdmitted)

	outcome.Advance(vo.StageExecuting)
	stored, err := s.repository.InsertInboundMessage(ctx, msg, decision.ConversationKey)
	if err != nil {
		outcome.Advance(vo.StageFailed)
		if decision.Recorded {
			s.forget(ctx, msg, dedupMsg, decision.ConversationKey)
		}
		return outcome, fmt.Errorf("service: failed to execute inbound message: %w", err)
	}
	outcome.Stored = stored
	outcome.Advance(vo.StageCompleted)

	return outcome, nil
}

// forget drops the history record of a message that failed to execute so the
// platform's redelivery is admitted instead of acknowledged as a repeat.
func (s *InboundMessageService) forget(ctx context.Context, msg domain.InboundMessage, dedupMsg dedup.Message, conversationKey string) {
	if err := s.gate.Forget(context.WithoutCancel(ctx), dedupMsg); err != nil {
		s.logger.Error("failed to forget unexecuted message; redelivery will be rejected",
			"platform", msg.Platform,
			"msg_id", msg.MsgID,
			"conversation_key", conversationKey,
			"error", err,
		)
	}
}

func normalizeInboundMessage(msg domain.InboundMessage) (domain.InboundMessage, error) {
	msg.Platform = strings.ToLower(strings.TrimSpace(msg.Platform))
	msg.Recipient = strings.TrimSpace(msg.Recipient)
	msg.Sender = strings.TrimSpace(msg.Sender)
	msg.ContextType = strings.TrimSpace(msg.ContextType)
	msg.MsgType = strings.ToLower(strings.TrimSpace(msg.MsgType))

	if msg.Platform == "" {
		return domain.InboundMessage{}, fmt.Errorf("%w: platform is required", vo.ErrInvalidMessage)
	}
	if msg.MsgID < 0 {
		return domain.InboundMessage{}, fmt.Errorf("%w: msg_id must not be negative", vo.ErrInvalidMessage)
	}
	if msg.MsgID == 0 && msg.CreateTime.IsZero() {
		return domain.InboundMessage{}, fmt.Errorf("%w: create_time is required when msg_id is 0", vo.ErrInvalidMessage)
	}
	if msg.MsgType == "" {
		msg.MsgType = string(dedup.TypeUnknown)
	}

	return msg, nil
}

func toDedupMessage(msg domain.InboundMessage) dedup.Message {
	return dedup.Message{
		Platform:    msg.Platform,
		Recipient:   msg.Recipient,
		Sender:      msg.Sender,
		ContextType: msg.ContextType,
		ID:          msg.MsgID,
		CreatedAt:   msg.CreateTime,
		Type:        dedup.MessageType(msg.MsgType),
	}
}

// SkipMessageTypes returns a predicate that opts the given types out of
// deduplication.
func SkipMessageTypes(types []string) dedup.Predicate {
	if len(types) == 0 {
		return nil
	}

	skip := make(map[dedup.MessageType]struct{}, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			skip[dedup.MessageType(t)] = struct{}{}
		}
	}
	if len(skip) == 0 {
		return nil
	}

	return func(msg dedup.Message) bool {
		_, skipped := skip[msg.Type]
		return !skipped
	}
}
