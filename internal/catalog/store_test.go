package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"foodassistant/internal/config"
	"foodassistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storesUnderTest(t *testing.T) map[string]Store {
	dir := t.TempDir()

	fileStore, err := NewStore(config.CatalogConfig{Driver: "json", Path: filepath.Join(dir, "data", "restaurants.json")})
	require.NoError(t, err)

	sqliteStore, err := NewStore(config.CatalogConfig{Driver: "sqlite", Path: filepath.Join(dir, "catalog.db")})
	require.NoError(t, err)

	return map[string]Store{"json": fileStore, "sqlite": sqliteStore}
}

func TestStore_LoadBeforeSave(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(context.Background())
			assert.ErrorIs(t, err, models.ErrCatalogUnavailable)
		})
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	want := SampleSnapshot(now)

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, want.Restaurants, got.Restaurants)
			assert.Equal(t, want.MenuItems, got.MenuItems)
			assert.True(t, want.LastUpdated.Equal(got.LastUpdated))
		})
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, SampleSnapshot(time.Now())))

			empty := &models.CatalogSnapshot{
				Restaurants: []models.Restaurant{},
				MenuItems:   []models.MenuItem{},
				LastUpdated: time.Now().UTC(),
			}
			require.NoError(t, store.Save(ctx, empty))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got.Restaurants)
			assert.Empty(t, got.MenuItems)
		})
	}
}

func TestNewStore_UnknownDriver(t *testing.T) {
	_, err := NewStore(config.CatalogConfig{Driver: "postgres"})
	assert.Error(t, err)
}

func TestService_RestaurantsSeedsOnFirstUse(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "restaurants.json"))
	svc := NewService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Menu(ctx, "mcd-001")
	assert.ErrorIs(t, err, models.ErrCatalogUnavailable)

	restaurants, err := svc.Restaurants(ctx)
	require.NoError(t, err)
	assert.Len(t, restaurants, 3)

	menu, err := svc.Menu(ctx, "mcd-001")
	require.NoError(t, err)
	require.Len(t, menu, 3)
	assert.Equal(t, "Big Mac", menu[0].Name)

	menu, err = svc.Menu(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, menu)
}
