package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "http://localhost:3000"

// ApiClient handles requests to the food assistant API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client. FOOD_API_URL overrides the address.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("FOOD_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		BaseURL: baseURL,
	}
}

// Health is the assistant health report
type Health struct {
	Status           string `json:"status"`
	RemoteConfigured bool   `json:"remote_capability_configured"`
	Provider         string `json:"provider"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
	Timestamp        string `json:"timestamp"`
}

// Restaurant is a delivery partner
type Restaurant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime"`
	DeliveryFee  float64 `json:"deliveryFee"`
	MinOrder     float64 `json:"minOrder"`
}

// MenuItem is a dish on a restaurant menu
type MenuItem struct {
	RestaurantID string   `json:"restaurantId"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Ingredients  []string `json:"ingredients"`
	Category     string   `json:"category"`
}

// LineItem is one ordered dish
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order represents a customer order
type Order struct {
	ID                string                 `json:"id,omitempty"`
	Items             []LineItem             `json:"items"`
	Restaurant        string                 `json:"restaurant"`
	CustomerInfo      map[string]interface{} `json:"customerInfo,omitempty"`
	Status            string                 `json:"status,omitempty"`
	OrderTime         time.Time              `json:"orderTime,omitempty"`
	EstimatedDelivery time.Time              `json:"estimatedDelivery,omitempty"`
	Total             float64                `json:"total,omitempty"`
}

// Recommendation is one suggested dish
type Recommendation struct {
	Name        string  `json:"name"`
	Restaurant  string  `json:"restaurant"`
	Price       float64 `json:"price"`
	MatchReason string  `json:"matchReason"`
}

// ChatTurn is one entry of the conversation
type ChatTurn struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ChatReply is the assistant's answer plus follow-up prompts
type ChatReply struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// CheckHealth reports the assistant's health
func (c *ApiClient) CheckHealth() (*Health, error) {
	var health Health
	if err := c.do(http.MethodGet, "/api/ai/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetRestaurants lists the restaurants in the catalog
func (c *ApiClient) GetRestaurants() ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := c.do(http.MethodGet, "/api/restaurants", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// GetMenu lists one restaurant's menu
func (c *ApiClient) GetMenu(restaurantID string) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.do(http.MethodGet, "/api/restaurants/"+restaurantID+"/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetOrders retrieves all orders
func (c *ApiClient) GetOrders() ([]Order, error) {
	var orders []Order
	if err := c.do(http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder retrieves a specific order
func (c *ApiClient) GetOrder(id string) (*Order, error) {
	var order Order
	if err := c.do(http.MethodGet, "/api/orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder places a new order
func (c *ApiClient) CreateOrder(order *Order) (*Order, error) {
	var created Order
	if err := c.do(http.MethodPost, "/api/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Recommend asks for dishes matching preferences
func (c *ApiClient) Recommend(preferences map[string]interface{}) ([]Recommendation, error) {
	var resp struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	body := map[string]interface{}{"preferences": preferences}
	if err := c.do(http.MethodPost, "/api/ai/recommend", body, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// Chat sends one message with the conversation so far
func (c *ApiClient) Chat(message string, history []ChatTurn) (*ChatReply, error) {
	var reply ChatReply
	body := map[string]interface{}{"message": message, "history": history}
	if err := c.do(http.MethodPost, "/api/ai/chat", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *ApiClient) do(method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s failed with status code: %d", method, path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
