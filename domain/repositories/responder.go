package repositories

import "context"

// Role identifies the author of a prompt message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation context handed to the responder,
// oldest-first.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Responder abstracts the language-model backend that produces the
// assistant's reply for a turn. Implementations must be safe for concurrent
// use by independent call sessions. Failures are returned as
// *ResponderError.
type Responder interface {
	Respond(ctx context.Context, messages []Message) (string, error)
}
