package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"idextract/cmd"
	"idextract/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Logger setup uses env directly; full config validation happens per
	// command since serve and process need different things.
	if err := logger.Setup(logger.ConfigFromEnv()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLog := logger.WithComponent("main")
	appLog.Info().Msg("Starting idextract")

	cmd.Execute()

	appLog.Info().Msg("idextract shutdown")
	os.Exit(0)
}
