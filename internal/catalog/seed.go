package catalog

import (
	"time"

	"foodassistant/internal/models"
)

// SampleSnapshot returns the demo dataset of three delivery restaurants.
// It stands in for a real menu scraper.
func SampleSnapshot(now time.Time) *models.CatalogSnapshot {
	return &models.CatalogSnapshot{
		Restaurants: []models.Restaurant{
			{ID: "mcd-001", Name: "McDonald's", Cuisine: "Fast Food", Rating: 4.2, DeliveryTime: "15-25 min", DeliveryFee: 2.99, MinOrder: 10.00},
			{ID: "dom-001", Name: "Domino's Pizza", Cuisine: "Pizza", Rating: 4.5, DeliveryTime: "20-30 min", DeliveryFee: 3.49, MinOrder: 12.00},
			{ID: "sub-001", Name: "Subway", Cuisine: "Sandwiches", Rating: 4.0, DeliveryTime: "10-20 min", DeliveryFee: 1.99, MinOrder: 8.00},
		},
		MenuItems: []models.MenuItem{
			{RestaurantID: "mcd-001", Name: "Big Mac", Price: 5.99, Category: "Burgers",
				Ingredients: []string{"beef patty", "lettuce", "cheese", "pickles", "onions", "special sauce", "bun"}},
			{RestaurantID: "mcd-001", Name: "Chicken McNuggets (10pc)", Price: 4.99, Category: "Chicken",
				Ingredients: []string{"chicken", "breading", "oil"}},
			{RestaurantID: "mcd-001", Name: "Large Fries", Price: 2.99, Category: "Sides",
				Ingredients: []string{"potatoes", "salt", "oil"}},

			{RestaurantID: "dom-001", Name: "Pepperoni Pizza (Large)", Price: 12.99, Category: "Pizza",
				Ingredients: []string{"pizza dough", "tomato sauce", "mozzarella", "pepperoni"}},
			{RestaurantID: "dom-001", Name: "Chicken Wings (8pc)", Price: 8.99, Category: "Wings",
				Ingredients: []string{"chicken wings", "buffalo sauce", "celery salt"}},

			{RestaurantID: "sub-001", Name: "Italian BMT Footlong", Price: 9.99, Category: "Sandwiches",
				Ingredients: []string{"italian bread", "salami", "pepperoni", "ham", "cheese", "lettuce", "tomatoes"}},
			{RestaurantID: "sub-001", Name: "Chicken Teriyaki", Price: 8.99, Category: "Sandwiches",
				Ingredients: []string{"wheat bread", "chicken breast", "teriyaki sauce", "cheese", "vegetables"}},
		},
		LastUpdated: now.UTC(),
	}
}
