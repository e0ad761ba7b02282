package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"foodassistant/internal/metrics"
	"foodassistant/internal/models"
	"foodassistant/internal/models/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider is a mock implementation of providers.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Complete(ctx context.Context, messages []providers.Message, opts providers.CompletionOptions) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

// MockRecorder is a mock implementation of Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordAnswer(operation, source string) {
	m.Called(operation, source)
}

func (m *MockRecorder) RecordInference(operation string, elapsed time.Duration, err error) {
	m.Called(operation, elapsed, err)
}

var menu = []models.MenuItem{
	{RestaurantID: "mcd-001", Name: "Big Mac", Price: 5.99, Ingredients: []string{"beef patty", "lettuce", "cheese", "pickles"}, Category: "Burgers"},
	{RestaurantID: "mcd-001", Name: "Chicken McNuggets (10 pc)", Price: 4.99, Ingredients: []string{"chicken", "breading"}, Category: "Chicken"},
	{RestaurantID: "dom-001", Name: "Pepperoni Pizza (Large)", Price: 12.99, Ingredients: []string{"dough", "tomato sauce", "mozzarella", "pepperoni"}, Category: "Pizza"},
	{RestaurantID: "sub-001", Name: "Veggie Delite", Price: 5.49, Ingredients: []string{"bread", "lettuce"}, Category: "Sandwiches"},
}

func TestRecommendEmptyItems(t *testing.T) {
	provider := new(MockProvider)
	engine := NewEngine(provider)

	recs := engine.Recommend(context.Background(), map[string]interface{}{}, nil)

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendWithoutProvider(t *testing.T) {
	recorder := new(MockRecorder)
	recorder.On("RecordAnswer", OpRecommend, metrics.SourceFallback).Once()
	engine := NewEngine(nil, WithRecorder(recorder))

	recs := engine.Recommend(context.Background(), nil, menu[:1])

	require.Len(t, recs, 1)
	assert.Equal(t, models.Recommendation{
		Name:        "Big Mac",
		Restaurant:  "mcd-001",
		Price:       5.99,
		MatchReason: "Great burgers option with beef patty and lettuce",
	}, recs[0])
	recorder.AssertExpectations(t)
}

func TestRecommendUsesRemoteReply(t *testing.T) {
	provider := new(MockProvider)
	reply := "Here are my picks:\n```json\n[{\"name\":\"Veggie Delite\",\"restaurant\":\"sub-001\",\"price\":5.49,\"matchReason\":\"Light and fresh\"}]\n```"
	provider.On("Complete", mock.Anything, mock.MatchedBy(func(msgs []providers.Message) bool {
		return len(msgs) == 2 &&
			msgs[0].Role == providers.RoleSystem &&
			msgs[1].Role == providers.RoleUser &&
			strings.Contains(msgs[1].Content, `{"diet":"vegetarian"}`) &&
			strings.Contains(msgs[1].Content, `"Veggie Delite"`) &&
			strings.Contains(msgs[1].Content, "3-5 food items")
	}), recommendOptions).Return(reply, nil).Once()

	engine := NewEngine(provider)
	recs := engine.Recommend(context.Background(), map[string]interface{}{"diet": "vegetarian"}, menu)

	require.Len(t, recs, 1)
	assert.Equal(t, "Veggie Delite", recs[0].Name)
	assert.Equal(t, "Light and fresh", recs[0].MatchReason)
	provider.AssertExpectations(t)
}

func TestRecommendPromptKeepsPreferenceShape(t *testing.T) {
	tests := []struct {
		name  string
		prefs models.Preferences
		want  string
	}{
		{name: "missing", prefs: nil, want: "preferences: {}\n"},
		{name: "string", prefs: "vegetarian", want: `preferences: "vegetarian"` + "\n"},
		{name: "array", prefs: []interface{}{"spicy", "cheap"}, want: `preferences: ["spicy","cheap"]` + "\n"},
		{name: "object", prefs: map[string]interface{}{"diet": "vegan"}, want: `preferences: {"diet":"vegan"}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := buildRecommendPrompt(tt.prefs, menu[:1])
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.want)
		})
	}
}

func TestRecommendFallsBackOnRemoteFailure(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "provider error", err: errors.New("connection refused")},
		{name: "no json", reply: "I recommend the Big Mac."},
		{name: "empty array", reply: "[]"},
		{name: "nameless entries", reply: `[{"restaurant":"mcd-001","price":5.99}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockProvider)
			provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			recorder := new(MockRecorder)
			recorder.On("RecordInference", OpRecommend, mock.Anything, tt.err).Once()
			recorder.On("RecordAnswer", OpRecommend, metrics.SourceFallback).Once()

			engine := NewEngine(provider, WithRecorder(recorder))
			recs := engine.Recommend(context.Background(), nil, menu)

			assert.Equal(t, HeuristicRecommendations(menu), recs)
			recorder.AssertExpectations(t)
		})
	}
}

func TestRecommendTimeout(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return("", context.DeadlineExceeded)

	engine := NewEngine(provider, WithTimeout(20*time.Millisecond))

	start := time.Now()
	recs := engine.Recommend(context.Background(), nil, menu)

	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, recs, heuristicLimit)
}

func TestHeuristicRecommendations(t *testing.T) {
	recs := HeuristicRecommendations(menu)
	require.Len(t, recs, 3)
	assert.Equal(t, "Big Mac", recs[0].Name)
	assert.Equal(t, "Great chicken option with chicken and breading", recs[1].MatchReason)
	assert.Equal(t, "dom-001", recs[2].Restaurant)

	single := HeuristicRecommendations([]models.MenuItem{{Name: "Water", Category: "Drinks", Ingredients: []string{"water"}}})
	require.Len(t, single, 1)
	assert.Equal(t, "Great drinks option with water", single[0].MatchReason)

	assert.Equal(t, DefaultRecommendations, HeuristicRecommendations(nil))
}

func TestParseRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    []string
		wantErr bool
	}{
		{
			name:  "bare array",
			reply: `[{"name":"Big Mac","restaurant":"mcd-001","price":5.99,"matchReason":"x"}]`,
			want:  []string{"Big Mac"},
		},
		{
			name:  "skips bracketed prose",
			reply: `Options [see below]: [{"name":"A"},{"name":"B"}] and [{"name":"C"}]`,
			want:  []string{"A", "B"},
		},
		{
			name:    "malformed",
			reply:   `[{"name":"A",}`,
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ParseRecommendations(tt.reply)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrUnparsableReply)
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(recs))
			for _, r := range recs {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestEngineProviderName(t *testing.T) {
	assert.Equal(t, "fallback", NewEngine(nil).ProviderName())
	assert.False(t, NewEngine(nil).RemoteConfigured())
	assert.Equal(t, "mock", NewEngine(new(MockProvider)).ProviderName())
	assert.True(t, NewEngine(new(MockProvider)).RemoteConfigured())
}
