package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/middleware"
	"inventory-backend/internal/models"
	"inventory-backend/internal/orders"
	"inventory-backend/internal/repository"
)

type OrderHandler struct {
	service *orders.Service
	repo    *repository.OrderRepository
}

func NewOrderHandler(service *orders.Service, repo *repository.OrderRepository) *OrderHandler {
	return &OrderHandler{service: service, repo: repo}
}

type createOrderRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail string            `json:"customer_email" binding:"required"`
	Items         []orders.CartItem `json:"items" binding:"required"`
}

type updateStatusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// CreateOrder places an order against live stock.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), middleware.Owner(c), orders.PlaceOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         req.Items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrder returns one owned order.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.repo.FindOwned(c.Request.Context(), c.Param("id"), middleware.Owner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListOrders lists the owner's orders, optionally filtered by status.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := models.Status(c.Query("status"))
	if status != "" && !status.ValidFilter() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized status filter"})
		return
	}

	list, total, err := h.repo.FindAllOwned(c.Request.Context(), middleware.Owner(c), page, pageSize, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      list,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateStatus moves an order to any recognized status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), middleware.Owner(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
