package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawtrail/pawtrail-server/internal/api"
	"github.com/pawtrail/pawtrail-server/internal/config"
	"github.com/pawtrail/pawtrail-server/internal/repository"
	"github.com/pawtrail/pawtrail-server/internal/service"
	"github.com/pawtrail/pawtrail-server/internal/utils"
)

func main() {
	logger := utils.NewLogger()

	// Load configuration
	cfg := config.LoadConfig()

	// Set up database connection and run migrations
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to set up database: %v", err)
	}
	defer db.Close()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret, cfg.Events.UndoWindow)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
