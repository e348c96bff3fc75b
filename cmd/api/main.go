package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/cache"
	"inventory-backend/internal/config"
	"inventory-backend/internal/database"
	"inventory-backend/internal/handlers"
	"inventory-backend/internal/metrics"
	"inventory-backend/internal/notifications"
	"inventory-backend/internal/orders"
	"inventory-backend/internal/redisx"
	"inventory-backend/internal/repository"
	"inventory-backend/internal/reports"
	"inventory-backend/internal/routes"
)

func main() {
	cfg := config.LoadConfig()

	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	productRepo := repository.NewProductRepository(db.Collection("products"))
	orderRepo := repository.NewOrderRepository(db.Collection("orders"))
	notificationRepo := repository.NewNotificationRepository(db.Collection("notifications"))
	userRepo := repository.NewUserRepository(db.Collection("users"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var producer *notifications.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = notifications.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 256)
		producer.Start(ctx)
	}
	gateway := notifications.NewGateway(notificationRepo, producer, cfg.ServiceName)

	registry := metrics.NewRegistry()
	orderService := orders.NewService(productRepo, orderRepo, gateway, userRepo, registry)
	reportService := reports.NewService(orderRepo, productRepo)

	listCache := cache.New(5 * time.Minute)
	redisClient := redisx.New(cfg.RedisAddr)

	router := gin.Default()
	routes.RegisterRoutes(router, routes.Handlers{
		Products:      handlers.NewProductHandler(productRepo, listCache),
		Orders:        handlers.NewOrderHandler(orderService, orderRepo),
		Reports:       handlers.NewReportHandler(reportService, redisClient),
		Notifications: handlers.NewNotificationHandler(notificationRepo),
	}, registry)

	log.Println("server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
