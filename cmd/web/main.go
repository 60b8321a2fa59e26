package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"taskNotes/internal/app"
	"taskNotes/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// A local .env may supply DATABASE_URL and friends; missing file is fine.
	godotenv.Load()

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		log.Fatalf("init app: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run app: %v", err)
	}
}
