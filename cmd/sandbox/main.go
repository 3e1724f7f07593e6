package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
	"github.com/savioruz/eupago/config"
	"github.com/savioruz/eupago/internal/app"
)

func main() {
	// Configuration
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	if len(cfg.Sandbox.APIKeys) == 0 {
		log.Fatal("Config error: SANDBOX_API_KEY is required")
	}

	// Run
	app.RunSandbox(cfg)
}
