package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodassistant/internal/models"

	"go.uber.org/zap"
)

// Service is the read side of the restaurant catalog plus the refresh hook
type Service struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a catalog service over store
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, now: time.Now, logger: logger}
}

// Snapshot returns the stored dataset or models.ErrCatalogUnavailable
func (s *Service) Snapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	return s.store.Load(ctx)
}

// Refresh regenerates the dataset and persists it
func (s *Service) Refresh(ctx context.Context) (*models.CatalogSnapshot, error) {
	snapshot := SampleSnapshot(s.now())
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}
	s.logger.Info("catalog refreshed",
		zap.Int("restaurants", len(snapshot.Restaurants)),
		zap.Int("menu_items", len(snapshot.MenuItems)))
	return snapshot, nil
}

// Restaurants lists restaurants, seeding the catalog first if it was never created
func (s *Service) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	snapshot, err := s.store.Load(ctx)
	if errors.Is(err, models.ErrCatalogUnavailable) {
		s.logger.Info("no catalog found, seeding")
		snapshot, err = s.Refresh(ctx)
	}
	if err != nil {
		return nil, err
	}
	return snapshot.Restaurants, nil
}

// Menu returns the items of one restaurant
func (s *Service) Menu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.MenuFor(restaurantID), nil
}
