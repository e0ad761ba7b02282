package providers

import "context"

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions tunes a single completion call
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// Provider interface for LLM providers
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}
