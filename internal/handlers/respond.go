package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/orders"
	"inventory-backend/internal/repository"
)

// respondError maps the error taxonomy onto HTTP statuses. Stock errors
// carry the product name and remaining quantity so the UI can render
// "only N available".
func respondError(c *gin.Context, err error) {
	var (
		validation   *orders.ValidationError
		notFound     *orders.NotFoundError
		insufficient *orders.InsufficientStockError
		conflict     *orders.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":     insufficient.Error(),
			"product":   insufficient.ProductName,
			"available": insufficient.Available,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":     conflict.Error(),
			"product":   conflict.ProductName,
			"available": conflict.Available,
		})
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
