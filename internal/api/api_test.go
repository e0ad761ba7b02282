package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"foodassistant/internal/assistant"
	"foodassistant/internal/catalog"
	"foodassistant/internal/config"
	"foodassistant/internal/models"
	"foodassistant/internal/orders"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	api       *FoodAPI
	clock     *orders.ManualClock
	scheduler *orders.Scheduler
	store     catalog.Store
}

func newTestEnv(t *testing.T, secret string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := orders.NewManualClock(start)
	repo := orders.NewRepository()
	cfg := config.Default().Orders
	sched := orders.NewScheduler(repo, orders.Timeline(cfg), clock, zap.NewNop())
	orderSvc := orders.NewService(repo, sched, clock, cfg.DeliveryETA, nil, zap.NewNop())

	store := catalog.NewFileStore(filepath.Join(t.TempDir(), "restaurants.json"))

	api := NewFoodAPI(Deps{
		Orders:    orderSvc,
		Catalog:   catalog.NewService(store, zap.NewNop()),
		Engine:    assistant.NewEngine(nil),
		Analyzer:  assistant.NewIngredientAnalyzer(assistant.NewPlaceholderEstimator(1)),
		JWTSecret: secret,
	})
	t.Cleanup(api.Tracker.Close)

	return &testEnv{api: api, clock: clock, scheduler: sched, store: store}
}

func (e *testEnv) do(method, path string, body interface{}, header ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	e.api.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodPost, "/api/orders", gin.H{
		"items":        []gin.H{{"name": "Big Mac", "price": 5.99, "quantity": 2}},
		"restaurant":   "mcd-001",
		"customerInfo": gin.H{"name": "Sam"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	decode(t, w, &order)
	assert.Equal(t, "ORD-1000", order.ID)
	assert.Equal(t, 11.98, order.Total)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, start.Add(25*time.Minute), order.EstimatedDelivery)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = env.do(http.MethodGet, "/api/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env.scheduler.Fire(env.clock.Advance(20 * time.Second))

	w = env.do(http.MethodGet, "/api/orders/"+order.ID, nil)
	decode(t, w, &order)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name      string
		body      interface{}
		wantError string
	}{
		{name: "not json", body: "{items:", wantError: "invalid_request_body"},
		{name: "no items", body: gin.H{"restaurant": "mcd-001"}, wantError: "validation_failed"},
		{name: "empty items", body: gin.H{"items": []gin.H{}}, wantError: "validation_failed"},
		{name: "zero quantity", body: gin.H{"items": []gin.H{{"name": "Fries", "price": 1.5, "quantity": 0}}}, wantError: "validation_failed"},
		{name: "negative price", body: gin.H{"items": []gin.H{{"name": "Fries", "price": -1, "quantity": 1}}}, wantError: "validation_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]interface{}
			decode(t, w, &resp)
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}

	w := env.do(http.MethodGet, "/api/orders", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodGet, "/api/orders/ORD-9999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Order not found"}`, w.Body.String())
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t, "")
	for _, name := range []string{"Big Mac", "Veggie Delite"} {
		env.do(http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"name": name, "price": 5, "quantity": 1}}})
	}

	w := env.do(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.Order
	decode(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "ORD-1000", list[0].ID)
	assert.Equal(t, "ORD-1001", list[1].ID)
}

func TestRestaurantsSeedCatalog(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodGet, "/api/restaurants", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restaurants []models.Restaurant
	decode(t, w, &restaurants)
	assert.Len(t, restaurants, 3)

	w = env.do(http.MethodGet, "/api/restaurants/dom-001/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var menu []models.MenuItem
	decode(t, w, &menu)
	require.NotEmpty(t, menu)
	for _, item := range menu {
		assert.Equal(t, "dom-001", item.RestaurantID)
	}
}

func TestMenuWithoutCatalog(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodGet, "/api/restaurants/mcd-001/menu", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No restaurant data available"}`, w.Body.String())
}

func TestScrapeRequiresToken(t *testing.T) {
	env := newTestEnv(t, "s3cret")

	w := env.do(http.MethodPost, "/api/restaurants/scrape", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/restaurants/scrape", nil, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "admin",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	w = env.do(http.MethodPost, "/api/restaurants/scrape", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Restaurant data updated successfully")

	_, err = env.store.Load(context.Background())
	assert.NoError(t, err)
}

func TestScrapeWithoutSecret(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodPost, "/api/restaurants/scrape", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecommend(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodPost, "/api/ai/recommend", gin.H{"preferences": gin.H{"diet": "any"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, env.store.Save(context.Background(), &models.CatalogSnapshot{LastUpdated: start}))
	w = env.do(http.MethodPost, "/api/ai/recommend", gin.H{"preferences": gin.H{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recommendations":[]}`, w.Body.String())

	require.NoError(t, env.store.Save(context.Background(), catalog.SampleSnapshot(start)))
	w = env.do(http.MethodPost, "/api/ai/recommend", gin.H{"preferences": gin.H{}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Recommendations, 3)
}

func TestRecommendAcceptsAnyPreferenceShape(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.store.Save(context.Background(), catalog.SampleSnapshot(start)))

	tests := []struct {
		name string
		body string
	}{
		{name: "object", body: `{"preferences":{"diet":"vegetarian"}}`},
		{name: "string", body: `{"preferences":"vegetarian"}`},
		{name: "array", body: `{"preferences":["spicy","cheap"]}`},
		{name: "null", body: `{"preferences":null}`},
		{name: "missing", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/ai/recommend", tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp struct {
				Recommendations []models.Recommendation `json:"recommendations"`
			}
			decode(t, w, &resp)
			assert.Len(t, resp.Recommendations, 3)
		})
	}
}

func TestAnalyzeIngredients(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodPost, "/api/ai/analyze-ingredients", gin.H{"ingredients": []string{"cheese", "lettuce"}})
	require.Equal(t, http.StatusOK, w.Code)

	var analysis models.DietaryAnalysis
	decode(t, w, &analysis)
	assert.Contains(t, analysis.DietaryFlags, models.FlagContainsDairy)
	assert.GreaterOrEqual(t, analysis.Calories, 200)

	w = env.do(http.MethodPost, "/api/ai/analyze-ingredients", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodPost, "/api/ai/chat", gin.H{
		"message": "I want pizza",
		"history": []gin.H{{"type": "user", "content": "hi"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	decode(t, w, &resp)
	assert.Contains(t, resp.Response, "Domino's")
	assert.Equal(t, assistant.Suggest("", resp.Response), resp.Suggestions)

	w = env.do(http.MethodPost, "/api/ai/chat", gin.H{"history": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodGet, "/api/ai/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decode(t, w, &resp)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, false, resp["remote_capability_configured"])
	assert.Equal(t, "fallback", resp["provider"])
	assert.Contains(t, resp, "uptime_seconds")
	assert.Contains(t, resp, "timestamp")

	w = env.do(http.MethodGet, "/health", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodGet, "/health", nil, "X-Request-ID", "abc-123")

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestTrackOrder(t *testing.T) {
	env := newTestEnv(t, "")
	srv := httptest.NewServer(env.api.Router)
	defer srv.Close()

	w := env.do(http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"name": "Big Mac", "price": 5.99, "quantity": 1}}})
	require.Equal(t, http.StatusCreated, w.Code)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/orders/ORD-1000/track"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readStatus := func() models.OrderStatus {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var order models.Order
		require.NoError(t, conn.ReadJSON(&order))
		return order.Status
	}

	assert.Equal(t, models.OrderStatusPlaced, readStatus())

	env.scheduler.Fire(env.clock.Advance(2 * time.Second))
	assert.Equal(t, models.OrderStatusPreparing, readStatus())

	env.scheduler.Fire(env.clock.Advance(18 * time.Second))
	assert.Equal(t, models.OrderStatusOutForDelivery, readStatus())
	assert.Equal(t, models.OrderStatusDelivered, readStatus())

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
	assert.Equal(t, 0, env.api.Tracker.Subscribers("ORD-1000"))
}

func TestTrackUnknownOrder(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodGet, "/api/orders/ORD-4242/track", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
