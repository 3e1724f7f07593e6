package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run
	if err := app.RunPayByLink(ctx, cfg, os.Stdout); err != nil {
		stop()
		log.Fatalf("Pay by link error: %s", err)
	}
}
