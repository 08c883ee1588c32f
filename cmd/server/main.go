package main

import (
	"context"
	"log"

	"go-jobapply-automation/internal/config"
	"go-jobapply-automation/internal/database"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("❌ DATABASE_URL is required")
	}

	repo, err := database.ConnectDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer repo.Close()

	r := newRouter(repo)
	log.Printf("Server listening on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Printf("Failed to start server: %v", err)
	}
}
