package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/chris/onboarding-funnel/pkg/activation"
	"github.com/chris/onboarding-funnel/pkg/anchor"
	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/config"
	"github.com/chris/onboarding-funnel/pkg/feed"
	"github.com/chris/onboarding-funnel/pkg/handlers"
	"github.com/chris/onboarding-funnel/pkg/ledger"
	"github.com/chris/onboarding-funnel/pkg/middleware"
	"github.com/chris/onboarding-funnel/pkg/registry"
	"github.com/chris/onboarding-funnel/pkg/storage/sqlite"
	"github.com/chris/onboarding-funnel/pkg/workflow"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Open the durable store backing every component.
	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open store at %s: %v", cfg.DatabasePath, err)
	}
	defer store.Close()

	// Wire the components. The broadcaster carries the live transaction feed
	// to any in-process observers.
	broadcaster := feed.NewBroadcaster()
	reg := registry.New(store)
	issuer := activation.New(store)
	countdown := anchor.New(store)
	simulator := ledger.New(store, broadcaster, ledger.Config{CommissionRate: cfg.CommissionRate})
	machine := workflow.New(store, reg, issuer, countdown, simulator, workflow.Config{
		Mode:       workflow.ActivationMode(cfg.ActivationMode),
		UpgradeFee: cfg.UpgradeFee,
	})

	// Create our handler
	handler := handlers.NewApiHandler(store, reg, machine, simulator, countdown)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))

	api.HandlerFromMux(handler, router)

	log.Printf("Starting server on port %s", cfg.HTTPPort)

	// Start the server
	err = http.ListenAndServe(":"+cfg.HTTPPort, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
