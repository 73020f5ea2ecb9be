package assistant

import "context"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a conversation as exchanged with the chat client.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// RunStatus mirrors the upstream run lifecycle states.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusIncomplete     RunStatus = "incomplete"
	RunStatusExpired        RunStatus = "expired"
)

// Failed reports whether the status is terminal without a usable reply.
// requires_action is included because this proxy never submits tool outputs.
func (s RunStatus) Failed() bool {
	switch s {
	case RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusIncomplete, RunStatusRequiresAction:
		return true
	}
	return false
}

// Run is the upstream unit of work that produces the assistant's next turn.
type Run struct {
	ID        string
	Status    RunStatus
	LastError string // upstream failure reason, empty when none was given
}

// Message is a thread message as returned by the upstream service.
type Message struct {
	ID      string
	Role    Role
	Content Content
}

// RunOptions is the fixed assistant configuration attached to every run.
type RunOptions struct {
	AssistantID  string
	Instructions string
}

// Service is the upstream assistant API consumed by the proxy.
// ListMessages returns messages newest first.
type Service interface {
	CreateThread(ctx context.Context) (string, error)
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
	CreateMessage(ctx context.Context, threadID string, turn Turn) error
	CreateRun(ctx context.Context, threadID string, opts RunOptions) (Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (Run, error)
}
