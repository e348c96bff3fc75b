package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"inventory-backend/internal/cache"
	"inventory-backend/internal/middleware"
	"inventory-backend/internal/models"
	"inventory-backend/internal/repository"
)

type ProductHandler struct {
	repo  *repository.ProductRepository
	cache *cache.Cache
}

func NewProductHandler(repo *repository.ProductRepository, cache *cache.Cache) *ProductHandler {
	return &ProductHandler{repo: repo, cache: cache}
}

// CreateProduct creates a product owned by the caller. SKU must be unique
// within the owner's catalog; other owners may reuse the same SKU.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ownerID := middleware.Owner(c)

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if product.Quantity < 0 || product.ReorderLevel < 0 || product.CostCents < 0 || product.PriceCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity, reorder level and prices must not be negative"})
		return
	}

	if product.SKU != "" {
		existing, err := h.repo.FindBySKU(c.Request.Context(), product.SKU, ownerID)
		if err != nil {
			respondError(c, err)
			return
		}
		if existing != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("sku %q already in use", product.SKU)})
			return
		}
	}

	product.CreatedBy = ownerID
	if err := h.repo.Create(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	h.cache.DeleteByPrefix("products:" + ownerID + ":")
	c.JSON(http.StatusCreated, product)
}

// GetProduct returns one owned product.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.repo.FindOwned(c.Request.Context(), c.Param("id"), middleware.Owner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListProducts lists the owner's products with pagination and filters,
// served from the list cache when possible.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	ownerID := middleware.Owner(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	category := c.Query("category")
	sortBy := c.DefaultQuery("sort_by", "created_at")
	sortOrder := c.DefaultQuery("sort_order", "desc")

	cacheKey := fmt.Sprintf("products:%s:p%d_s%d_cat:%s_sort:%s_%s",
		ownerID, page, pageSize, category, sortBy, sortOrder)
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, total, err := h.repo.FindAll(c.Request.Context(), ownerID, page, pageSize, category, sortBy, sortOrder)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"data":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}
	h.cache.Set(cacheKey, response, 2*time.Minute)
	c.JSON(http.StatusOK, response)
}

// UpdateProduct applies a partial update. Quantity here is an absolute
// administrative set; order placement adjusts stock through its own
// conditional decrement and the two paths do not coordinate further.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	ownerID := middleware.Owner(c)
	productID := c.Param("id")

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updateMap := bson.M{}
	if update.SKU != nil {
		updateMap["sku"] = *update.SKU
	}
	if update.Name != nil {
		if *update.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
			return
		}
		updateMap["name"] = *update.Name
	}
	if update.Description != nil {
		updateMap["description"] = *update.Description
	}
	if update.Category != nil {
		updateMap["category"] = *update.Category
	}
	if update.Quantity != nil {
		if *update.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
			return
		}
		updateMap["quantity"] = *update.Quantity
	}
	if update.ReorderLevel != nil {
		if *update.ReorderLevel < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reorder level must not be negative"})
			return
		}
		updateMap["reorder_level"] = *update.ReorderLevel
	}
	if update.CostCents != nil {
		if *update.CostCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cost price must not be negative"})
			return
		}
		updateMap["cost_cents"] = *update.CostCents
	}
	if update.PriceCents != nil {
		if *update.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sell price must not be negative"})
			return
		}
		updateMap["price_cents"] = *update.PriceCents
	}
	if update.Unit != nil {
		updateMap["unit"] = *update.Unit
	}
	if update.Image != nil {
		updateMap["image"] = *update.Image
	}
	if len(updateMap) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
		return
	}

	if err := h.repo.Update(c.Request.Context(), productID, ownerID, updateMap); err != nil {
		respondError(c, err)
		return
	}

	h.cache.DeleteByPrefix("products:" + ownerID + ":")
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

// DeleteProduct hard-deletes a product. Historical orders keep their
// snapshots and are unaffected.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ownerID := middleware.Owner(c)

	if err := h.repo.Delete(c.Request.Context(), c.Param("id"), ownerID); err != nil {
		respondError(c, err)
		return
	}

	h.cache.DeleteByPrefix("products:" + ownerID + ":")
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
