// Package dedup guards an at-least-once inbound message stream against
// repeats. It keeps a bounded per-conversation history in a cache.Backend and
// decides, under a per-conversation lock, whether an incoming message repeats
// the last one seen.
package dedup

import (
	"strings"
	"time"

	"github.com/joshuarp/msgcontext-gateway/internal/shared/hash"
)

// MessageType is the platform message-type tag, e.g. "text" or "event".
type MessageType string

// TypeUnknown marks messages the parser could not classify. They are checked
// against history but never recorded.
const TypeUnknown MessageType = "unknown"

// Message is the dedup-relevant view of one inbound message.
type Message struct {
	Platform    string
	Recipient   string
	Sender      string
	ContextType string

	ID        int64
	CreatedAt time.Time
	Type      MessageType
}

// Record snapshots the fields kept in history.
func (m Message) Record() Record {
	return Record{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		Type:      m.Type,
		Sender:    m.Sender,
	}
}

// Record is an immutable history entry. Once appended it is never modified.
type Record struct {
	ID        int64       `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Type      MessageType `json:"type"`
	Sender    string      `json:"sender"`
}

func (r Record) equal(o Record) bool {
	return r.ID == o.ID && r.CreatedAt.Equal(o.CreatedAt) && r.Type == o.Type && r.Sender == o.Sender
}

// Context is the ordered history of one conversation, oldest first.
type Context struct {
	Records []Record `json:"records"`
}

func (c Context) Len() int { return len(c.Records) }

// Last returns the most recently appended record.
func (c Context) Last() (Record, bool) {
	if len(c.Records) == 0 {
		return Record{}, false
	}
	return c.Records[len(c.Records)-1], true
}

// KeyDeriver turns conversation identity into a cache partition key that also
// names the conversation's lock.
type KeyDeriver struct {
	hasher    hash.Hasher
	namespace string
}

func NewKeyDeriver(hasher hash.Hasher, namespace string) KeyDeriver {
	if namespace == "" {
		namespace = "conversation"
	}
	return KeyDeriver{hasher: hasher, namespace: namespace}
}

// Key returns false when the message lacks a recipient or sender; such
// messages cannot be partitioned and skip deduplication.
func (d KeyDeriver) Key(m Message) (string, bool) {
	recipient := strings.TrimSpace(m.Recipient)
	sender := strings.TrimSpace(m.Sender)
	if recipient == "" || sender == "" {
		return "", false
	}

	digest := d.hasher.Sum(
		strings.TrimSpace(m.ContextType),
		strings.ToLower(strings.TrimSpace(m.Platform)),
		recipient,
		sender,
	)
	return d.namespace + ":" + digest, true
}
