package vo

import "errors"

var ErrInvalidMessage = errors.New("invalid inbound message")
var ErrDedupUnavailable = errors.New("deduplication unavailable")
var ErrContextDisabled = errors.New("message context disabled")
var ErrConversationUnresolvable = errors.New("conversation key cannot be derived")
