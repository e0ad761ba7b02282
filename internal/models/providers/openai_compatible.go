package providers

import (
	"context"
	"fmt"
	"strings"

	"foodassistant/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LLMProvider implements the Provider interface on top of a langchaingo model.
// NVIDIA and OpenAI both expose an OpenAI-compatible API, so one client serves both.
type LLMProvider struct {
	name  string
	model llms.Model
}

// NewOpenAICompatibleProvider creates a provider talking to an OpenAI-compatible endpoint
func NewOpenAICompatibleProvider(name, token, baseURL, model string) (*LLMProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("%s: %w", name, models.ErrInferenceNotConfigured)
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", name, err)
	}

	return NewLLMProvider(name, client), nil
}

// NewLLMProvider wraps an already constructed langchaingo model
func NewLLMProvider(name string, model llms.Model) *LLMProvider {
	return &LLMProvider{name: name, model: model}
}

// Name returns the provider name
func (p *LLMProvider) Name() string {
	return p.name
}

// Complete generates a chat completion
func (p *LLMProvider) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	content := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		var msgType schema.ChatMessageType
		switch msg.Role {
		case RoleSystem:
			msgType = schema.ChatMessageTypeSystem
		case RoleAssistant:
			msgType = schema.ChatMessageTypeAI
		case RoleUser:
			msgType = schema.ChatMessageTypeHuman
		default:
			return "", fmt.Errorf("unsupported message role: %s", msg.Role)
		}
		content[i] = llms.TextParts(msgType, msg.Content)
	}

	callOpts := []llms.CallOption{}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}

	response, err := p.model.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", p.name, err)
	}

	if response == nil || len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Content) == "" {
		return "", fmt.Errorf("%s: %w", p.name, models.ErrEmptyReply)
	}

	return response.Choices[0].Content, nil
}
