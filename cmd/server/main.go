package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/WNVissie/Shiftroster/internal/adapters/http/middleware"
	"github.com/WNVissie/Shiftroster/internal/adapters/http/routes"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/config"
	"github.com/WNVissie/Shiftroster/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed roles, areas, skills and shift types
	if err := config.SeedReferenceData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed reference data: %v", err)
	}

	// Seed sample employees in development mode only
	if cfg.IsDev() {
		if err := config.SeedDevData(db); err != nil {
			log.Printf("⚠️ Warning: Failed to seed dev data: %v", err)
		}
	}

	// Start reminder service (pending approvals digest, 08:30 daily)
	reminderService := services.NewReminderService(db)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("❌ Failed to start reminder service: %v", err)
	}
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Shiftroster API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
