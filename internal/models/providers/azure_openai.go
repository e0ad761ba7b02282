package providers

import (
	"context"
	"fmt"

	"foodassistant/internal/models"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureOpenAIProvider implements the Provider interface for Azure OpenAI
type AzureOpenAIProvider struct {
	client         *azopenai.Client
	deploymentName string
}

// NewAzureOpenAIProvider creates a new Azure OpenAI provider
func NewAzureOpenAIProvider(endpoint, apiKey, deploymentName string) (*AzureOpenAIProvider, error) {
	if endpoint == "" || apiKey == "" || deploymentName == "" {
		return nil, fmt.Errorf("azure openai: %w", models.ErrInferenceNotConfigured)
	}

	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}

	return &AzureOpenAIProvider{
		client:         client,
		deploymentName: deploymentName,
	}, nil
}

// Name returns the provider name
func (p *AzureOpenAIProvider) Name() string {
	return "azure"
}

// Complete implements the Provider interface
func (p *AzureOpenAIProvider) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	chatMessages := make([]azopenai.ChatRequestMessageClassification, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			chatMessages[i] = &azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(msg.Content),
			}
		case RoleUser:
			chatMessages[i] = &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(msg.Content),
			}
		case RoleAssistant:
			chatMessages[i] = &azopenai.ChatRequestAssistantMessage{
				Content: azopenai.NewChatRequestAssistantMessageContent(msg.Content),
			}
		default:
			return "", fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	req := azopenai.ChatCompletionsOptions{
		Messages:       chatMessages,
		DeploymentName: to.Ptr(p.deploymentName),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = to.Ptr(int32(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		req.Temperature = to.Ptr(float32(opts.Temperature))
	}

	resp, err := p.client.GetChatCompletions(ctx, req, nil)
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("azure openai: %w", models.ErrEmptyReply)
	}

	return *resp.Choices[0].Message.Content, nil
}
