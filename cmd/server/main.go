/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the scheduling engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML configuration (flags override file values)
  3. Initialize the catalog store (sqlite or csv)
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config file path (default: config.yaml; missing file
           falls back to built-in defaults)
  -listen  HTTP listen address (overrides config)
  -db      SQLite database path (overrides config)
           Use ":memory:" for an in-memory database

STORAGE DRIVERS:
  sqlite   Production default. The database is created and seeded with a
           small sample catalog on first run.
  csv      Reads the catalog from the two CSV files the original system
           kept on disk. Missing files read as empty tables.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/catalog.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run against CSV files
  ./server -config="./csv-config.yaml"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Configuration schema
  - store/sqlite/sqlite.go: Database implementation
*/
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

	"github.com/warp/scheduling-engine/api"
	"github.com/warp/scheduling-engine/catalog"
	"github.com/warp/scheduling-engine/config"
	"github.com/warp/scheduling-engine/store/csvfile"
	"github.com/warp/scheduling-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "config.yaml", "YAML config file path")
	listen := flag.String("listen", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dbPath != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.DBPath = *dbPath
	}

	// Initialize store
	var source catalog.Source
	switch cfg.Store.Driver {
	case "csv":
		source = csvfile.New(cfg.Store.ServiceTypesCSV, cfg.Store.ServiceRatesCSV)
		log.Printf("Using CSV catalog: %s, %s",
			cfg.Store.ServiceTypesCSV, cfg.Store.ServiceRatesCSV)
	default:
		store, err := sqlite.New(cfg.Store.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		if err := store.Seed(context.Background()); err != nil {
			log.Printf("Warning: Failed to seed catalog: %v", err)
		}
		source = store
		log.Printf("Using SQLite catalog: %s", cfg.Store.DBPath)
	}

	// Initialize handler and router
	handler := api.NewHandler(source, cfg.Currency)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://%s", cfg.Listen)
		log.Printf("📊 API available at http://%s/api", cfg.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
