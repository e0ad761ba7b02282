package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"foodassistant/internal/metrics"
	"foodassistant/internal/models"
	"foodassistant/internal/models/providers"

	"go.uber.org/zap"
)

const recommendSystemPrompt = "You are a food recommendation AI. Provide personalized food suggestions based on user preferences and available menu items. Return recommendations in JSON format."

var recommendOptions = providers.CompletionOptions{Temperature: 0.7, MaxTokens: 1000}

// heuristicLimit is how many menu items the local fallback returns
const heuristicLimit = 3

// DefaultRecommendations is returned when the fallback has nothing to work from
var DefaultRecommendations = []models.Recommendation{
	{
		Name:        "Big Mac",
		Restaurant:  "mcd-001",
		Price:       5.99,
		MatchReason: "Classic American burger with special sauce",
	},
	{
		Name:        "Pepperoni Pizza (Large)",
		Restaurant:  "dom-001",
		Price:       12.99,
		MatchReason: "Perfect for sharing, classic pizza choice",
	},
}

// Recommend ranks items against prefs. An empty item list yields an empty
// result without contacting the provider. Remote failures never surface to
// the caller; the local heuristic answers instead.
func (e *Engine) Recommend(ctx context.Context, prefs models.Preferences, items []models.MenuItem) []models.Recommendation {
	if len(items) == 0 {
		return []models.Recommendation{}
	}

	recs, err := e.remoteRecommend(ctx, prefs, items)
	if err == nil {
		e.answered(OpRecommend, metrics.SourceRemote)
		return recs
	}

	if !errors.Is(err, models.ErrInferenceNotConfigured) {
		e.logger.Warn("remote recommendation failed, using fallback",
			zap.String("operation", OpRecommend),
			zap.Error(err))
	}
	e.answered(OpRecommend, metrics.SourceFallback)
	return HeuristicRecommendations(items)
}

func (e *Engine) remoteRecommend(ctx context.Context, prefs models.Preferences, items []models.MenuItem) ([]models.Recommendation, error) {
	prompt, err := buildRecommendPrompt(prefs, items)
	if err != nil {
		return nil, err
	}

	reply, err := e.complete(ctx, OpRecommend, []providers.Message{
		{Role: providers.RoleSystem, Content: recommendSystemPrompt},
		{Role: providers.RoleUser, Content: prompt},
	}, recommendOptions)
	if err != nil {
		return nil, err
	}

	return ParseRecommendations(reply)
}

func buildRecommendPrompt(prefs models.Preferences, items []models.MenuItem) (string, error) {
	if prefs == nil {
		prefs = map[string]interface{}{}
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return "", fmt.Errorf("encode preferences: %w", err)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode menu items: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Based on these user preferences: ")
	sb.Write(prefsJSON)
	sb.WriteString("\nAnd these available menu items: ")
	sb.Write(itemsJSON)
	sb.WriteString("\n\nRecommend 3-5 food items that best match the user's preferences. Consider:\n")
	sb.WriteString("- Dietary restrictions\n")
	sb.WriteString("- Cuisine preferences\n")
	sb.WriteString("- Price range\n")
	sb.WriteString("- Ingredients they like/dislike\n\n")
	sb.WriteString("Return recommendations as JSON array with: name, restaurant, price, matchReason\n")
	return sb.String(), nil
}

// ParseRecommendations extracts the first JSON array of recommendations
// embedded in free-form text. Every entry must carry a name.
func ParseRecommendations(reply string) ([]models.Recommendation, error) {
	for offset := 0; offset < len(reply); {
		idx := strings.IndexByte(reply[offset:], '[')
		if idx < 0 {
			break
		}
		start := offset + idx
		offset = start + 1

		var recs []models.Recommendation
		dec := json.NewDecoder(strings.NewReader(reply[start:]))
		if err := dec.Decode(&recs); err != nil {
			continue
		}
		if len(recs) == 0 || !allNamed(recs) {
			continue
		}
		return recs, nil
	}
	return nil, models.ErrUnparsableReply
}

func allNamed(recs []models.Recommendation) bool {
	for _, r := range recs {
		if strings.TrimSpace(r.Name) == "" {
			return false
		}
	}
	return true
}

// HeuristicRecommendations builds recommendations from the first few menu
// items. With no items it returns the default set.
func HeuristicRecommendations(items []models.MenuItem) []models.Recommendation {
	if len(items) == 0 {
		return append([]models.Recommendation(nil), DefaultRecommendations...)
	}

	n := len(items)
	if n > heuristicLimit {
		n = heuristicLimit
	}

	recs := make([]models.Recommendation, 0, n)
	for _, item := range items[:n] {
		recs = append(recs, models.Recommendation{
			Name:        item.Name,
			Restaurant:  item.RestaurantID,
			Price:       item.Price,
			MatchReason: matchReason(item),
		})
	}
	return recs
}

func matchReason(item models.MenuItem) string {
	ings := item.Ingredients
	if len(ings) > 2 {
		ings = ings[:2]
	}
	return fmt.Sprintf("Great %s option with %s", strings.ToLower(item.Category), strings.Join(ings, " and "))
}
