package dedup

// HandlerState is the in-flight state of one message as it moves through the
// gateway. It is owned by a single goroutine and must not be shared.
type HandlerState struct {
	// OmitRepeatedMessage enables deduplication for this handler instance.
	OmitRepeatedMessage bool

	// MessageIsRepeated is set once the message is classified as a repeat.
	MessageIsRepeated bool

	// CancelExecute tells the orchestrator to skip business execution.
	CancelExecute bool

	cached *Context
}

// NewHandlerState returns a state with deduplication enabled.
func NewHandlerState() *HandlerState {
	return &HandlerState{OmitRepeatedMessage: true}
}

// MarkRepeated flags the message as a repeat and cancels its execution.
func (s *HandlerState) MarkRepeated() {
	s.CancelExecute = true
	s.MessageIsRepeated = true
}
