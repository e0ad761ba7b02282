package api

import (
	"net/http"
	"time"

	"foodassistant/internal/assistant"
	"foodassistant/internal/catalog"
	"foodassistant/internal/orders"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FoodAPI represents the HTTP surface of the food assistant
type FoodAPI struct {
	Router   *gin.Engine
	Orders   *orders.Service
	Catalog  *catalog.Service
	Engine   *assistant.Engine
	Analyzer *assistant.IngredientAnalyzer
	Tracker  *Tracker

	validate  *validatorv10.Validate
	jwtSecret string
	startedAt time.Time
	logger    *zap.Logger
}

// Deps are the collaborators the API delegates to
type Deps struct {
	Orders    *orders.Service
	Catalog   *catalog.Service
	Engine    *assistant.Engine
	Analyzer  *assistant.IngredientAnalyzer
	JWTSecret string
	Logger    *zap.Logger
}

// NewFoodAPI creates a new API instance and subscribes order tracking to
// status transitions
func NewFoodAPI(deps Deps) *FoodAPI {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger), gin.Recovery())

	api := &FoodAPI{
		Router:    router,
		Orders:    deps.Orders,
		Catalog:   deps.Catalog,
		Engine:    deps.Engine,
		Analyzer:  deps.Analyzer,
		Tracker:   NewTracker(logger),
		validate:  NewValidator(),
		jwtSecret: deps.JWTSecret,
		startedAt: time.Now(),
		logger:    logger,
	}
	api.Orders.Subscribe(api.Tracker.Publish)

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (f *FoodAPI) setupRoutes() {
	f.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := f.Router.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.POST("", f.CreateOrder)
			orders.GET("", f.ListOrders)
			orders.GET("/:orderId", f.GetOrder)
			orders.GET("/:orderId/track", f.TrackOrder)
		}

		restaurants := api.Group("/restaurants")
		{
			restaurants.GET("", f.ListRestaurants)
			restaurants.GET("/:id/menu", f.GetMenu)
			restaurants.POST("/scrape", JWTAuth(f.jwtSecret), f.ScrapeRestaurants)
		}

		ai := api.Group("/ai")
		{
			ai.POST("/recommend", f.Recommend)
			ai.POST("/analyze-ingredients", f.AnalyzeIngredients)
			ai.POST("/chat", f.Chat)
			ai.GET("/health", f.Health)
		}
	}
}

// ServeHTTP lets the API be mounted directly on an http.Server
func (f *FoodAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.Router.ServeHTTP(w, r)
}
