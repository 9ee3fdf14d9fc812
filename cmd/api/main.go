package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gumroad-relay/internal/cache"
	"gumroad-relay/internal/client"
	"gumroad-relay/internal/config"
	"gumroad-relay/internal/repository"
	"gumroad-relay/internal/server"
	"gumroad-relay/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	gumroadClient := client.NewGumroadClient(&cfg.Gumroad)
	verdictCache := cache.New(cache.DefaultTTL)

	var historyRepo repository.CheckHistoryRepository
	if cfg.DatabasePath != "" {
		db := client.InitSqliteClient(cfg.DatabasePath)
		historyRepo = repository.NewCheckHistoryRepository(db)
	}

	subscriptionService := service.NewSubscriptionService(gumroadClient, verdictCache, historyRepo, &cfg.Gumroad)
	adminService := service.NewAdminService(gumroadClient, verdictCache, historyRepo, &cfg.Gumroad)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(subscriptionService, adminService, cfg.Log.Level)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
