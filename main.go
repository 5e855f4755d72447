package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/jibarix/map-viz/adapters/postgres"
	"github.com/jibarix/map-viz/internal/config"
	"github.com/jibarix/map-viz/ports"
	"github.com/jibarix/map-viz/ui"
)

func main() {
	// Load .env file if present (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	catalog := initCatalog(cfg)

	app, err := ui.NewApp(*cfg, catalog)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	addr := ":" + cfg.Server.Port
	log.Printf("[Server] Property transaction dashboard listening on %s", addr)
	if err := http.ListenAndServe(addr, app.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initCatalog connects the optional upload catalog. The dashboard is
// fully functional without a database; failures here degrade to
// in-memory operation.
func initCatalog(cfg *config.Config) ports.Catalog {
	if cfg.Database.URL == "" {
		log.Println("[Server] DATABASE_URL not set, upload history disabled")
		return nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Printf("[Server] Failed to connect to database, upload history disabled: %v", err)
		return nil
	}

	catalog, err := postgres.NewCatalog(db)
	if err != nil {
		log.Printf("[Server] Failed to initialize upload catalog: %v", err)
		return nil
	}
	log.Println("[Server] Upload catalog connected")
	return catalog
}
