package orders

import (
	"context"
	"time"

	"foodassistant/internal/models"

	"go.uber.org/zap"
)

// Recorder receives order metrics
type Recorder interface {
	RecordOrderPlaced()
	RecordStatusTransition(status string)
}

// PlaceOrder is the caller-supplied part of a new order
type PlaceOrder struct {
	Items        []models.LineItem      `json:"items" validate:"required,min=1,dive"`
	Restaurant   string                 `json:"restaurant"`
	CustomerInfo map[string]interface{} `json:"customerInfo"`
}

// Service places orders and hands them to the lifecycle scheduler
type Service struct {
	repo        *Repository
	scheduler   *Scheduler
	clock       Clock
	deliveryETA time.Duration
	recorder    Recorder
	logger      *zap.Logger
}

// NewService wires a repository and scheduler together. recorder may be nil.
func NewService(repo *Repository, scheduler *Scheduler, clock Clock, deliveryETA time.Duration, recorder Recorder, logger *zap.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Service{
		repo:        repo,
		scheduler:   scheduler,
		clock:       clock,
		deliveryETA: deliveryETA,
		recorder:    recorder,
		logger:      logger,
	}
	if recorder != nil {
		scheduler.Subscribe(func(order models.Order) {
			recorder.RecordStatusTransition(string(order.Status))
		})
	}
	return s
}

// Place creates the order and schedules its fulfillment
func (s *Service) Place(ctx context.Context, req PlaceOrder) models.Order {
	now := s.clock.Now().UTC()
	order := s.repo.Create(models.Order{
		Items:             req.Items,
		Restaurant:        req.Restaurant,
		CustomerInfo:      req.CustomerInfo,
		OrderTime:         now,
		EstimatedDelivery: now.Add(s.deliveryETA),
	})

	s.scheduler.ScheduleLifecycle(order)
	if s.recorder != nil {
		s.recorder.RecordOrderPlaced()
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("restaurant", order.Restaurant),
		zap.Float64("total", order.Total))

	return order
}

// Get returns a stored order or models.ErrOrderNotFound
func (s *Service) Get(ctx context.Context, id string) (models.Order, error) {
	return s.repo.Get(id)
}

// List returns every order placed since start-up
func (s *Service) List(ctx context.Context) []models.Order {
	return s.repo.List()
}

// Subscribe forwards scheduler transitions to l
func (s *Service) Subscribe(l Listener) {
	s.scheduler.Subscribe(l)
}
