package main

import (
	"log"
	"time"

	"fruitstore/internal/cache"
	"fruitstore/internal/config"
	"fruitstore/internal/database"
	"fruitstore/internal/handlers"
	"fruitstore/internal/migrations"
	"fruitstore/internal/repository"
	"fruitstore/internal/services"
	"fruitstore/pkg/midtrans"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	cacheClient, err := cache.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer cacheClient.Close()

	// Initialize payment gateway client
	gateway := midtrans.NewClient(cfg.MidtransServerKey, cfg.MidtransClientKey, cfg.MidtransProduction)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	fruitRepo := repository.NewFruitRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockHistoryRepo := repository.NewStockHistoryRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	customerService := services.NewCustomerService(customerRepo)
	fruitService := services.NewFruitService(fruitRepo)
	stockService := services.NewStockService(fruitRepo, stockHistoryRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)
	orderService := services.NewOrderService(orderRepo, customerService, stockService, analyticsService, cacheClient)
	paymentService := services.NewPaymentService(orderRepo, customerService, stockService, analyticsService, gateway, cacheClient, cfg.BaseURL)

	// Seed default data
	if err := migrations.SeedDefaultData(authService, fruitRepo); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	fruitHandler := handlers.NewFruitHandler(fruitService, cacheClient, cacheTTL)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	stockHandler := handlers.NewStockHandler(stockService, cacheClient)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService, customerService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		// Storefront
		api.GET("/fruits", fruitHandler.GetFruits)
		api.GET("/fruits/:id", fruitHandler.GetFruit)
		api.POST("/orders", orderHandler.CreateOrder)

		// Payment gateway
		api.POST("/payments/token", paymentHandler.CreateToken)
		api.POST("/payments/notification", paymentHandler.HandleNotification)
		api.GET("/payments/:orderNumber/status", paymentHandler.CheckStatus)

		// Auth
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Admin dashboard
		dashboard := api.Group("/dashboard", authHandler.RequireAdmin())
		{
			dashboard.POST("/fruits", fruitHandler.CreateFruit)
			dashboard.PUT("/fruits/:id", fruitHandler.UpdateFruit)
			dashboard.POST("/stock", stockHandler.AddStock)
			dashboard.GET("/stock/:fruitId/history", stockHandler.GetStockHistory)
			dashboard.GET("/orders", orderHandler.GetOrders)
			dashboard.GET("/orders/:id", orderHandler.GetOrder)
			dashboard.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
			dashboard.GET("/customers", dashboardHandler.GetCustomers)
			dashboard.GET("/analytics", dashboardHandler.GetAnalytics)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
