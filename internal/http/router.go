package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries every dependency the router needs. Fields are
// interfaces so handler tests can pass fakes.
type RouterConfig struct {
	Database Pinger
	Decks    DeckStore
	Cards    CardStore
	Checker  CardChecker
	Importer BulkImporter
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	decksController := NewDecksController(cfg.Decks)
	cardsController := NewCardsController(cfg.Cards, cfg.Checker)
	importsController := NewImportsController(cfg.Importer)

	router.GET("/health", health.Status)

	api := router.Group("/api")

	api.GET("/decks", decksController.List)
	api.POST("/decks", decksController.Create)
	api.GET("/decks/:deckId", decksController.Get)
	api.PATCH("/decks/:deckId", decksController.Update)
	api.DELETE("/decks/:deckId", decksController.Delete)
	api.GET("/decks/:deckId/cards", cardsController.ListByDeck)
	api.POST("/decks/:deckId/cards/bulk", importsController.BulkImport)
	api.POST("/decks/:deckId/commander/:cardId", decksController.SetCommander)

	api.GET("/cards", cardsController.List)
	api.GET("/cards/search", cardsController.Search)
	api.POST("/cards", cardsController.Create)
	api.PUT("/cards/:id", cardsController.UpdateOwnership)
	api.DELETE("/cards/:id", cardsController.Delete)

	return router
}
