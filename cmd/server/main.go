package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gradhub/research-assistant/pkg/archive"
	"github.com/gradhub/research-assistant/pkg/config"
	"github.com/gradhub/research-assistant/pkg/research"
	"github.com/gradhub/research-assistant/pkg/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Missing credentials are a fatal startup condition; halt before serving.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Report archive is optional; without a DATABASE_URL the artifact file is
	// the only persistence.
	var store *archive.Store
	if cfg.DatabaseURL != "" {
		db, err := archive.NewPostgresDB(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(context.Background()); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = archive.NewStore(db)
	} else {
		log.Println("DATABASE_URL not set, report archive disabled")
	}

	orchestrator := research.NewOrchestrator(cfg)

	// Initialize Service & Handler
	svc := server.NewService(cfg, orchestrator, store)
	handler := server.NewHandler(svc)

	// Web Server Setup
	r := gin.Default()

	// CORS Setup
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all for dev
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-Id"},
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(r)

	fmt.Printf("Server starting on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
