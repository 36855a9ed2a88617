package vo

import "time"

type ConversationRecord struct {
	MsgID      int64     `json:"msg_id"`
	CreateTime time.Time `json:"create_time"`
	MsgType    string    `json:"msg_type"`
	Sender     string    `json:"sender"`
}

type ConversationContext struct {
	ConversationKey string               `json:"conversation_key"`
	MaxRecordCount  int                  `json:"max_record_count"`
	Records         []ConversationRecord `json:"records"`
}
