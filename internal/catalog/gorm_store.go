package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodassistant/internal/models"

	"github.com/jinzhu/gorm"
)

type restaurantRow struct {
	ID           string `gorm:"primary_key"`
	Position     int
	Name         string
	Cuisine      string
	Rating       float64
	DeliveryTime string
	DeliveryFee  float64
	MinOrder     float64
}

func (restaurantRow) TableName() string { return "restaurants" }

type menuItemRow struct {
	ID           uint `gorm:"primary_key"`
	Position     int
	RestaurantID string `gorm:"index"`
	Name         string
	Price        float64
	Ingredients  string `gorm:"type:text"`
	Category     string
}

func (menuItemRow) TableName() string { return "menu_items" }

type snapshotRow struct {
	ID          uint `gorm:"primary_key"`
	LastUpdated time.Time
}

func (snapshotRow) TableName() string { return "catalog_snapshots" }

// GormStore keeps the snapshot in SQLite tables
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the catalog tables and returns the store
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&restaurantRow{}, &menuItemRow{}, &snapshotRow{}).Error; err != nil {
		return nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Load reads the snapshot, preserving the saved ordering
func (s *GormStore) Load(ctx context.Context) (*models.CatalogSnapshot, error) {
	var meta snapshotRow
	if err := s.db.First(&meta, 1).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, models.ErrCatalogUnavailable
		}
		return nil, fmt.Errorf("failed to load catalog metadata: %w", err)
	}

	var restaurants []restaurantRow
	if err := s.db.Order("position").Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}

	var items []menuItemRow
	if err := s.db.Order("position").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	snapshot := &models.CatalogSnapshot{
		Restaurants: make([]models.Restaurant, 0, len(restaurants)),
		MenuItems:   make([]models.MenuItem, 0, len(items)),
		LastUpdated: meta.LastUpdated,
	}
	for _, r := range restaurants {
		snapshot.Restaurants = append(snapshot.Restaurants, models.Restaurant{
			ID:           r.ID,
			Name:         r.Name,
			Cuisine:      r.Cuisine,
			Rating:       r.Rating,
			DeliveryTime: r.DeliveryTime,
			DeliveryFee:  r.DeliveryFee,
			MinOrder:     r.MinOrder,
		})
	}
	for _, it := range items {
		var ingredients []string
		if err := json.Unmarshal([]byte(it.Ingredients), &ingredients); err != nil {
			return nil, fmt.Errorf("failed to decode ingredients of %q: %w", it.Name, err)
		}
		snapshot.MenuItems = append(snapshot.MenuItems, models.MenuItem{
			RestaurantID: it.RestaurantID,
			Name:         it.Name,
			Price:        it.Price,
			Ingredients:  ingredients,
			Category:     it.Category,
		})
	}
	return snapshot, nil
}

// Save replaces the stored snapshot in a single transaction
func (s *GormStore) Save(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := s.replace(tx, snapshot); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

func (s *GormStore) replace(tx *gorm.DB, snapshot *models.CatalogSnapshot) error {
	for _, table := range []string{"menu_items", "restaurants"} {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, r := range snapshot.Restaurants {
		row := restaurantRow{
			ID:           r.ID,
			Position:     i,
			Name:         r.Name,
			Cuisine:      r.Cuisine,
			Rating:       r.Rating,
			DeliveryTime: r.DeliveryTime,
			DeliveryFee:  r.DeliveryFee,
			MinOrder:     r.MinOrder,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save restaurant %s: %w", r.ID, err)
		}
	}

	for i, it := range snapshot.MenuItems {
		ingredients, err := json.Marshal(it.Ingredients)
		if err != nil {
			return fmt.Errorf("failed to encode ingredients of %q: %w", it.Name, err)
		}
		row := menuItemRow{
			Position:     i,
			RestaurantID: it.RestaurantID,
			Name:         it.Name,
			Price:        it.Price,
			Ingredients:  string(ingredients),
			Category:     it.Category,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save menu item %q: %w", it.Name, err)
		}
	}

	meta := snapshotRow{ID: 1, LastUpdated: snapshot.LastUpdated}
	if err := tx.Save(&meta).Error; err != nil {
		return fmt.Errorf("failed to save catalog metadata: %w", err)
	}
	return nil
}
