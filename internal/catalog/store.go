package catalog

import (
	"context"
	"fmt"

	"foodassistant/internal/config"
	"foodassistant/internal/database"
	"foodassistant/internal/models"
)

// Store persists the catalog snapshot. Load returns models.ErrCatalogUnavailable
// when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (*models.CatalogSnapshot, error)
	Save(ctx context.Context, snapshot *models.CatalogSnapshot) error
}

// NewStore returns the store selected by cfg.Driver
func NewStore(cfg config.CatalogConfig) (Store, error) {
	switch cfg.Driver {
	case "json":
		return NewFileStore(cfg.Path), nil
	case "sqlite":
		db, err := database.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	default:
		return nil, fmt.Errorf("unsupported catalog driver: %s", cfg.Driver)
	}
}
