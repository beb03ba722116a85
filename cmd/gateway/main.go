package main

import (
	"log"

	"github.com/tomraj007/txnportal/internal/app"
	"github.com/tomraj007/txnportal/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file found, relying on system env vars")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	srv := app.NewServer(config.Load(), logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("gateway failed to start", zap.Error(err))
	}
}
