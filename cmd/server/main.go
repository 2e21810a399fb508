package main

import (
	"log"
	"time"

	"pathxpress/internal/config"
	"pathxpress/internal/database"
	"pathxpress/internal/handlers"
	"pathxpress/internal/redis"
	"pathxpress/internal/repository"
	"pathxpress/internal/services"

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
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	rateTierRepo := repository.NewRateTierRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	codRepo := repository.NewCODRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	remittanceRepo := repository.NewRemittanceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	driverRepo := repository.NewDriverRepository(db)

	// Initialize services
	settingsService := services.NewSettingsService(settingsRepo, redisClient, time.Duration(cfg.SettingsTTL)*time.Second)
	rateService := services.NewRateService(clientRepo, rateTierRepo, settingsService)
	rateTierService := services.NewRateTierService(rateTierRepo)
	clientService := services.NewClientService(clientRepo, rateTierRepo)
	shipmentService := services.NewShipmentService(shipmentRepo, clientRepo, codRepo, driverRepo, rateService)
	invoiceService := services.NewInvoiceService(invoiceRepo, shipmentRepo, rateService, settingsService)
	remittanceService := services.NewRemittanceService(remittanceRepo, codRepo, clientRepo, rateService)
	userService := services.NewUserService(userRepo, redisClient, time.Duration(cfg.SessionTTL)*time.Second)
	driverService := services.NewDriverService(driverRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	rateHandler := handlers.NewRateHandler(rateService)
	shipmentHandler := handlers.NewShipmentHandler(shipmentService, cfg.LabelQRSize)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	remittanceHandler := handlers.NewRemittanceHandler(remittanceService)
	adminHandler := handlers.NewAdminHandler(rateTierService, clientService, driverService, settingsService)

	// Setup routes
	if cfg.GinReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Public endpoints
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/track/:waybill", shipmentHandler.Track)

	// Authenticated portal endpoints (admin and client)
	api := router.Group("/api", handlers.RequireAuth(userService))
	{
		api.POST("/auth/logout", authHandler.Logout)

		api.POST("/rates/calculate", rateHandler.CalculateRate)
		api.POST("/rates/cod-fee", rateHandler.CalculateCODFee)

		api.POST("/shipments", shipmentHandler.Create)
		api.GET("/shipments/:id", shipmentHandler.Get)
		api.GET("/shipments/:id/label", shipmentHandler.Label)
		api.GET("/clients/:client_id/shipments", shipmentHandler.ListByClient)

		api.GET("/invoices/:id", invoiceHandler.Get)
		api.GET("/invoices/:id/items", invoiceHandler.Items)
		api.GET("/clients/:client_id/invoices", invoiceHandler.ListByClient)

		api.GET("/remittances/:id", remittanceHandler.Get)
		api.GET("/remittances/:id/items", remittanceHandler.Items)
		api.GET("/clients/:client_id/remittances", remittanceHandler.ListByClient)
		api.GET("/clients/:client_id/cod-records", remittanceHandler.ListCollectedRecords)
	}

	// Admin-portal endpoints
	admin := api.Group("", handlers.RequireAdmin())
	{
		admin.POST("/auth/users", authHandler.CreateUser)

		admin.PUT("/shipments/:id/status", shipmentHandler.UpdateStatus)
		admin.PUT("/shipments/:id/route", shipmentHandler.AssignRoute)

		admin.POST("/invoices/generate", invoiceHandler.Generate)
		admin.PUT("/invoices/:id", invoiceHandler.Adjust)
		admin.PUT("/invoices/:id/status", invoiceHandler.SetStatus)
		admin.POST("/invoices/:id/payments", invoiceHandler.RecordPayment)

		admin.POST("/remittances", remittanceHandler.Create)
		admin.PUT("/remittances/:id/status", remittanceHandler.AdvanceStatus)

		admin.POST("/rate-tiers", adminHandler.CreateRateTier)
		admin.GET("/rate-tiers", adminHandler.ListRateTiers)
		admin.PUT("/rate-tiers/:id", adminHandler.UpdateRateTier)

		admin.POST("/clients", adminHandler.CreateClient)
		admin.GET("/clients", adminHandler.ListClients)
		admin.GET("/clients/:client_id", adminHandler.GetClient)
		admin.PUT("/clients/:client_id", adminHandler.UpdateClient)

		admin.POST("/drivers", adminHandler.CreateDriver)
		admin.GET("/drivers", adminHandler.ListDrivers)
		admin.PUT("/drivers/:id", adminHandler.UpdateDriver)
		admin.POST("/routes", adminHandler.CreateRoute)
		admin.GET("/routes", adminHandler.ListRoutes)
		admin.PUT("/routes/:id/driver", adminHandler.AssignDriverToRoute)

		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSetting)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
