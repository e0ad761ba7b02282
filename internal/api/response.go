package api

import (
	"errors"
	"net/http"

	"foodassistant/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	models.ErrOrderNotFound:      http.StatusNotFound,
	models.ErrCatalogUnavailable: http.StatusNotFound,
	models.ErrUnauthorized:       http.StatusUnauthorized,
}

// client-facing messages
var errorMessages = map[error]string{
	models.ErrOrderNotFound:      "Order not found",
	models.ErrCatalogUnavailable: "No restaurant data available",
	models.ErrUnauthorized:       "Invalid token",
}

func lookupError(err error) (int, string, bool) {
	for sentinel, status := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return status, errorMessages[sentinel], true
		}
	}
	return http.StatusInternalServerError, "Internal server error", false
}

// handleError writes the status and message for err
func (f *FoodAPI) handleError(c *gin.Context, err error) {
	status, msg, known := lookupError(err)
	if !known {
		f.logger.Error("error processing request",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}

// handleAbort is handleError for middleware
func handleAbort(c *gin.Context, err error) {
	status, msg, _ := lookupError(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
