package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shikshamitra/platform/internal/api"
	"github.com/shikshamitra/platform/internal/auth"
	"github.com/shikshamitra/platform/internal/config"
	"github.com/shikshamitra/platform/internal/core"
	"github.com/shikshamitra/platform/internal/site"
	"github.com/shikshamitra/platform/internal/store"
)

func main() {
	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	seedBrand := flag.String("seed-brand", "", "write a built-in brand preset (shikshamitra or maa) to -brand-out and exit")
	brandOut := flag.String("brand-out", "brand.yml", "output path for -seed-brand")
	flag.Parse()

	// Seed mode writes a preset YAML to customize from and exits; it needs
	// no auth or chat configuration.
	if *seedBrand != "" {
		preset, ok := site.PresetBrand(*seedBrand)
		if !ok {
			log.Fatalf("Unknown brand preset %q", *seedBrand)
		}
		if err := preset.Save(*brandOut); err != nil {
			log.Fatalf("Failed to write brand file: %v", err)
		}
		log.Printf("Wrote %s preset to %s", preset.Name, *brandOut)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	brand, err := site.LoadBrand(cfg.BrandFile)
	if err != nil {
		log.Fatalf("Failed to load brand config: %v", err)
	}
	log.Printf("Serving brand %q", brand.Name)

	renderer, err := site.NewRenderer(brand)
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	// Contact persistence is an optional enhancement; without a database
	// the contact form stays display-only.
	var contacts api.ContactStore
	if cfg.DatabaseURL != "" {
		dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer dbStore.Close()
		contacts = dbStore
	}

	collab := auth.NewHTTPCollaborator(cfg.AuthServiceURL, cfg.AuthAnonKey)
	bridge := auth.NewBridge(collab)

	completer := core.NewOpenAICompatible(cfg.ChatAPIBaseURL, cfg.ChatModel)
	sessions := core.NewSessionRegistry(completer, core.DefaultSessionTTL)

	handler := api.NewHandler(cfg, bridge, sessions, renderer, contacts)
	router := api.NewRouter(handler)

	serverAddr := ":" + cfg.HTTPPort

	srv := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// No write timeout: the support-chat exchange has no deadline and
		// a slow completion must not sever the response.
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
