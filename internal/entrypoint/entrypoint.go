package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rsoares/deckvault/internal/config"
	"github.com/rsoares/deckvault/internal/database"
	"github.com/rsoares/deckvault/internal/database/cards"
	"github.com/rsoares/deckvault/internal/database/decks"
	http_controllers "github.com/rsoares/deckvault/internal/http"
	"github.com/rsoares/deckvault/internal/importer"
	"github.com/rsoares/deckvault/internal/scryfall"
)

// Serve runs the HTTP server until an interrupt arrives, then shuts it
// down within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting deckvault v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	deckRepo := decks.NewRepository(db.DB, cfg.Decks.DefaultMaxCards)
	cardRepo := cards.NewRepository(db.DB)

	scryfallClient := scryfall.NewClient(
		scryfall.WithBaseURL(cfg.Scryfall.BaseURL),
		scryfall.WithTimeout(cfg.Scryfall.Timeout),
	)

	bulkImporter := importer.New(cardRepo, scryfallClient, cfg.Import.RequireImages)
	if cfg.Import.RequireImages {
		log.Printf("Strict image mode enabled: imports fail when artwork lookups fail")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database: db,
		Decks:    deckRepo,
		Cards:    cardRepo,
		Checker:  scryfallClient,
		Importer: bulkImporter,
		Version:  version,
	})

	Serve(router, cfg)
}
