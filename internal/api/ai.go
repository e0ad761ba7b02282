package api

import (
	"net/http"
	"time"

	"foodassistant/internal/assistant"
	"foodassistant/internal/models"

	"github.com/gin-gonic/gin"
)

type recommendRequest struct {
	Preferences models.Preferences `json:"preferences"`
}

type analyzeRequest struct {
	Ingredients []string `json:"ingredients" validate:"required"`
}

type chatRequest struct {
	Message string            `json:"message" validate:"required"`
	History []models.ChatTurn `json:"history"`
}

type chatResponse struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// Recommend ranks the catalog's menu items against the caller's preferences.
// A missing catalog is a 404; a catalog without items yields an empty list.
func (f *FoodAPI) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := BindAndValidate(c, &req, f.validate); err != nil {
		return
	}

	snapshot, err := f.Catalog.Snapshot(c.Request.Context())
	if err != nil {
		f.handleError(c, err)
		return
	}

	recs := f.Engine.Recommend(c.Request.Context(), req.Preferences, snapshot.MenuItems)
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (f *FoodAPI) AnalyzeIngredients(c *gin.Context) {
	var req analyzeRequest
	if err := BindAndValidate(c, &req, f.validate); err != nil {
		return
	}

	c.JSON(http.StatusOK, f.Analyzer.Analyze(req.Ingredients))
}

func (f *FoodAPI) Chat(c *gin.Context) {
	var req chatRequest
	if err := BindAndValidate(c, &req, f.validate); err != nil {
		return
	}

	reply := f.Engine.Chat(c.Request.Context(), req.Message, req.History)
	c.JSON(http.StatusOK, chatResponse{
		Response:    reply,
		Suggestions: assistant.Suggest(req.Message, reply),
	})
}

func (f *FoodAPI) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                       "healthy",
		"remote_capability_configured": f.Engine.RemoteConfigured(),
		"provider":                     f.Engine.ProviderName(),
		"uptime_seconds":               int64(time.Since(f.startedAt).Seconds()),
		"timestamp":                    time.Now().UTC().Format(time.RFC3339),
	})
}
