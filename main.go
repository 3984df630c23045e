package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/impactcrypto/dashboard/config"
	"github.com/impactcrypto/dashboard/core"
)

func main() {
	// Load .env overrides if present; absence is fine
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Printf("Config: %v, using defaults", err)
		cfg = config.Default()
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	app := core.Setup(cfg)

	if err := app.Registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}
	defer app.Registry.StopAll()

	// Log refreshes so a headless run shows the poll loop is alive
	updates := app.Dashboard.SubscribeUpdates()
	defer app.Dashboard.Unsubscribe(updates)

	go func() {
		for range updates {
			coins := app.Dashboard.Coins()
			if len(coins) > 0 {
				log.Printf("Markets updated: %d coins, top is %s (%s)",
					len(coins), coins[0].Name, app.State.Fiat())
			}
		}
	}()

	<-ctx.Done()
}
