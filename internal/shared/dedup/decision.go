package dedup

// Predicate opts a message out of deduplication when it returns false.
type Predicate func(Message) bool

// SpecialAction classifies additional repeats the id/timestamp rules miss,
// e.g. platform events whose identifier legitimately recurs.
type SpecialAction func(Message, *HandlerState) bool

// GateOption supplies optional hooks to a single decision.
type GateOption func(*gateOptions)

type gateOptions struct {
	predicate Predicate
	special   SpecialAction
}

// WithPredicate sets the per-call opt-out hook. Nil keeps the default, which
// lets every message participate.
func WithPredicate(p Predicate) GateOption {
	return func(o *gateOptions) {
		if p != nil {
			o.predicate = p
		}
	}
}

// WithSpecialAction sets the extra duplicate classifier. Nil keeps the no-op default.
func WithSpecialAction(a SpecialAction) GateOption {
	return func(o *gateOptions) {
		if a != nil {
			o.special = a
		}
	}
}

func resolveOptions(opts []GateOption) gateOptions {
	o := gateOptions{
		predicate: func(Message) bool { return true },
		special:   func(Message, *HandlerState) bool { return false },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decide reports whether incoming repeats the last record of history.
// It never mutates history or state and never fails.
//
// The id-zero clause is deliberate: message kinds without an identifier repeat
// only when timestamp and type both match. Sender equality is implied because
// history is already partitioned by conversation.
func Decide(history Context, incoming Message, state *HandlerState, opts ...GateOption) bool {
	if state != nil && !state.OmitRepeatedMessage {
		return false
	}

	o := resolveOptions(opts)
	if !o.predicate(incoming) {
		return false
	}

	last, ok := history.Last()
	if !ok {
		return false
	}

	if last.ID != 0 && last.ID == incoming.ID {
		return true
	}
	if last.ID == incoming.ID && last.CreatedAt.Equal(incoming.CreatedAt) && last.Type == incoming.Type {
		return true
	}

	return o.special(incoming, state)
}
