package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/handlers"
	"inventory-backend/internal/metrics"
	"inventory-backend/internal/middleware"
)

type Handlers struct {
	Products      *handlers.ProductHandler
	Orders        *handlers.OrderHandler
	Reports       *handlers.ReportHandler
	Notifications *handlers.NotificationHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers, m *metrics.Registry) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := router.Group("/v1", middleware.RequireOwner())
	{
		v1.POST("/products", h.Products.CreateProduct)
		v1.GET("/products", h.Products.ListProducts)
		v1.GET("/products/:id", h.Products.GetProduct)
		v1.PATCH("/products/:id", h.Products.UpdateProduct)
		v1.DELETE("/products/:id", h.Products.DeleteProduct)

		v1.POST("/orders", h.Orders.CreateOrder)
		v1.GET("/orders", h.Orders.ListOrders)
		v1.GET("/orders/:id", h.Orders.GetOrder)
		v1.PATCH("/orders/:id/status", h.Orders.UpdateStatus)

		v1.GET("/reports/sales", h.Reports.SalesReport)
		v1.GET("/reports/customers", h.Reports.CustomerReport)
		v1.GET("/reports/dashboard", h.Reports.Dashboard)

		v1.GET("/notifications", h.Notifications.ListNotifications)
		v1.PATCH("/notifications/:id/read", h.Notifications.MarkRead)
	}
}
