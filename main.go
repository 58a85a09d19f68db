package main

import (
	"log"

	"cogdash/internal/config"
	"cogdash/internal/container"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer := container.New(appConfig)
	appContainer.Logger.Info("Serving %s (columns %s, %s, %s)", appConfig.Data.File,
		appConfig.Columns.Gender, appConfig.Columns.Memory, appConfig.Columns.Concentration)

	if err := appContainer.Serve(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
