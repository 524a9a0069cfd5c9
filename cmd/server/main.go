package main

import (
	"context"
	"log"

	"github.com/ledgerkeeper/ledgerkeeper/internal/server"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	app.Run(context.Background())
}
