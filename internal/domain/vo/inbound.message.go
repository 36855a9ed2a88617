package vo

// ProcessingStage is the lifecycle position of one inbound message.
type ProcessingStage string

const (
	StageReceived  ProcessingStage = "received"
	StageGating    ProcessingStage = "gating"
	StageAdmitted  ProcessingStage = "admitted"
	StageRejected  ProcessingStage = "rejected"
	StageExecuting ProcessingStage = "executing"
	StageCompleted ProcessingStage = "completed"
	StageFailed    ProcessingStage = "failed"
)

// Terminal reports whether no further transition follows.
func (s ProcessingStage) Terminal() bool {
	return s == StageRejected || s == StageCompleted || s == StageFailed
}

type ProcessOutcome struct {
	Stage           ProcessingStage   `json:"stage"`
	Trail           []ProcessingStage `json:"trail"`
	ConversationKey string            `json:"conversation_key,omitempty"`
	Repeated        bool              `json:"repeated"`
	Recorded        bool              `json:"recorded"`
	Stored          bool              `json:"stored"`
	FailedOpen      bool              `json:"failed_open,omitempty"`
}

// Advance moves the outcome to stage and appends it to the trail.
func (o *ProcessOutcome) Advance(stage ProcessingStage) {
	o.Stage = stage
	o.Trail = append(o.Trail, stage)
}
