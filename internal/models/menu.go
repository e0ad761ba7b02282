package models

import (
	"strings"
	"time"
)

// Restaurant is a delivery partner listed in the catalog
type Restaurant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime"`
	DeliveryFee  float64 `json:"deliveryFee"`
	MinOrder     float64 `json:"minOrder"`
}

// MenuItem represents a dish on a restaurant menu
type MenuItem struct {
	RestaurantID string   `json:"restaurantId"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Ingredients  []string `json:"ingredients"`
	Category     string   `json:"category"`
}

// CatalogSnapshot is the full restaurant and menu dataset at a point in time
type CatalogSnapshot struct {
	Restaurants []Restaurant `json:"restaurants"`
	MenuItems   []MenuItem   `json:"menuItems"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

// MenuFor returns the menu items belonging to a restaurant, in catalog order
func (cs *CatalogSnapshot) MenuFor(restaurantID string) []MenuItem {
	items := make([]MenuItem, 0)
	for _, item := range cs.MenuItems {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items
}

// HasIngredient checks if the item contains a specific ingredient, ignoring case
func (mi *MenuItem) HasIngredient(ingredient string) bool {
	for _, ing := range mi.Ingredients {
		if strings.EqualFold(ing, ingredient) {
			return true
		}
	}
	return false
}
