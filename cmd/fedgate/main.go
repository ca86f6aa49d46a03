package main

import (
	"context"
	"log"

	"github.com/fedgate/fedgate/internal/fedgate/app"
	"github.com/fedgate/fedgate/internal/fedgate/obs"
)

func main() {
	cfg := app.LoadConfig()

	obs.Init()

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
