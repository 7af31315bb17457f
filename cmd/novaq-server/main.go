package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8422"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		home, _ := os.UserHomeDir()
		dir := filepath.Join(home, ".novaq")
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		dbURL = filepath.Join(dir, "novaq.db")
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(os.Getenv("NOVAQ_LOG_LEVEL"))
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	srv, err := server.New(dbURL)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("Novaq server starting on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
