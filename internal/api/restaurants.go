package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Catalog handlers

func (f *FoodAPI) ListRestaurants(c *gin.Context) {
	restaurants, err := f.Catalog.Restaurants(c.Request.Context())
	if err != nil {
		f.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

func (f *FoodAPI) GetMenu(c *gin.Context) {
	items, err := f.Catalog.Menu(c.Request.Context(), c.Param("id"))
	if err != nil {
		f.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// ScrapeRestaurants regenerates the catalog snapshot
func (f *FoodAPI) ScrapeRestaurants(c *gin.Context) {
	snapshot, err := f.Catalog.Refresh(c.Request.Context())
	if err != nil {
		f.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurant data updated successfully",
		"data":    snapshot,
	})
}
