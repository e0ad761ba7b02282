package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineItem(t *testing.T) {
	li, restaurant, err := parseLineItem(" Big Mac , 5.99, 2 ,mcd-001")
	require.NoError(t, err)
	assert.Equal(t, LineItem{Name: "Big Mac", Price: 5.99, Quantity: 2}, li)
	assert.Equal(t, "mcd-001", restaurant)

	for _, bad := range []string{"Big Mac", "Big Mac,abc,1", "Big Mac,1,0", ",1,1", "a,-1,1"} {
		_, _, err := parseLineItem(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePreferences(t *testing.T) {
	prefs := parsePreferences("diet=vegetarian, budget=10 ,junk,=x")

	assert.Equal(t, map[string]interface{}{"diet": "vegetarian", "budget": 10.0}, prefs)
}

func TestApiClientChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/chat", r.URL.Path)

		var body struct {
			Message string     `json:"message"`
			History []ChatTurn `json:"history"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pizza?", body.Message)
		assert.Len(t, body.History, 1)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatReply{Response: "Domino's!", Suggestions: []string{"Show me the menu"}})
	}))
	defer srv.Close()

	client := &ApiClient{httpClient: srv.Client(), BaseURL: srv.URL}
	reply, err := client.Chat("pizza?", []ChatTurn{{Type: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "Domino's!", reply.Response)
	assert.Equal(t, []string{"Show me the menu"}, reply.Suggestions)
}

func TestApiClientSurfacesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Order not found"}`))
	}))
	defer srv.Close()

	client := &ApiClient{httpClient: srv.Client(), BaseURL: srv.URL}
	_, err := client.GetOrder("ORD-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Order not found")
}
