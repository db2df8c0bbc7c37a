package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/farellandr/esports-hub/config"
	"github.com/farellandr/esports-hub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := server.Start(cfg, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
