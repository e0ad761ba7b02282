package assistant

import (
	"context"
	"errors"
	"strings"

	"foodassistant/internal/metrics"
	"foodassistant/internal/models"
	"foodassistant/internal/models/providers"

	"go.uber.org/zap"
)

const chatSystemPrompt = "You are a helpful AI food assistant. Help users discover food, find recipes, analyze ingredients, and guide them to restaurants or grocery stores. Be conversational, friendly, and provide practical food advice. You can reference the available restaurants (McDonald's, Domino's, Subway) and grocery stores (Walmart, Kroger, Whole Foods) in your responses."

const chatVenues = `Available restaurants: McDonald's (fast food), Domino's (pizza), Subway (sandwiches)
Available grocery stores: Walmart (general groceries), Kroger (fresh ingredients), Whole Foods (organic/premium)

Please provide a helpful, conversational response about food, cooking, or dining options.`

var chatOptions = providers.CompletionOptions{Temperature: 0.8, MaxTokens: 500}

// historyWindow is how many previous turns are sent to the provider
const historyWindow = 5

// Chat answers a conversational message. history is read but never modified.
func (e *Engine) Chat(ctx context.Context, message string, history []models.ChatTurn) string {
	reply, err := e.complete(ctx, OpChat, buildChatMessages(message, history), chatOptions)
	if err == nil {
		reply = strings.TrimSpace(reply)
		if reply != "" {
			e.answered(OpChat, metrics.SourceRemote)
			return reply
		}
		err = models.ErrEmptyReply
	}

	if !errors.Is(err, models.ErrInferenceNotConfigured) {
		e.logger.Warn("remote chat failed, using fallback",
			zap.String("operation", OpChat),
			zap.Error(err))
	}
	e.answered(OpChat, metrics.SourceFallback)
	return FallbackReply(message, history)
}

func buildChatMessages(message string, history []models.ChatTurn) []providers.Message {
	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	msgs := make([]providers.Message, 0, len(recent)+2)
	msgs = append(msgs, providers.Message{Role: providers.RoleSystem, Content: chatSystemPrompt})
	for _, turn := range recent {
		role := providers.RoleAssistant
		if turn.IsUser() {
			role = providers.RoleUser
		}
		msgs = append(msgs, providers.Message{Role: role, Content: turn.Content})
	}
	msgs = append(msgs, providers.Message{
		Role:    providers.RoleUser,
		Content: "Current message: " + message + "\n\n" + chatVenues,
	})
	return msgs
}
