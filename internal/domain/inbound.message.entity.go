package domain

import "time"

// InboundMessage is one delivery received from a messaging platform. The same
// logical message may arrive several times.
type InboundMessage struct {
	Platform    string
	Recipient   string
	Sender      string
	ContextType string
	MsgID       int64
	CreateTime  time.Time
	MsgType     string
	Content     string
}
