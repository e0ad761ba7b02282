package api

import (
	"net/http"

	"foodassistant/internal/orders"

	"github.com/gin-gonic/gin"
)

// Order management handlers

func (f *FoodAPI) CreateOrder(c *gin.Context) {
	var req orders.PlaceOrder
	if err := BindAndValidate(c, &req, f.validate); err != nil {
		return
	}

	order := f.Orders.Place(c.Request.Context(), req)
	c.JSON(http.StatusCreated, order)
}

func (f *FoodAPI) GetOrder(c *gin.Context) {
	order, err := f.Orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		f.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (f *FoodAPI) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, f.Orders.List(c.Request.Context()))
}
