package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rsoares/deckvault/internal/database"
	"github.com/rsoares/deckvault/internal/importer"
	"github.com/rsoares/deckvault/internal/scryfall"
)

// BulkImporter runs the bulk deck-import pipeline.
type BulkImporter interface {
	BulkImport(ctx context.Context, deckID, text string, opts importer.Options) (*importer.Result, error)
}

// ImportsController handles the bulk deck-list import endpoint.
type ImportsController struct {
	importer BulkImporter
}

func NewImportsController(imp BulkImporter) *ImportsController {
	return &ImportsController{importer: imp}
}

type bulkImportRequest struct {
	Text        string `json:"text" binding:"required"`
	OwnDefault  bool   `json:"own_default"`
	FetchImages *bool  `json:"fetch_images"`
}

// BulkImport ingests a raw deck list into the deck named in the URL.
// The deck identifier is validated before any parsing happens.
func (ctrl *ImportsController) BulkImport(c *gin.Context) {
	deckID, ok := parseUUIDParam(c, "deckId")
	if !ok {
		return
	}

	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "text is required")
		return
	}

	opts := importer.Options{
		OwnDefault:  req.OwnDefault,
		FetchImages: req.FetchImages == nil || *req.FetchImages,
	}

	result, err := ctrl.importer.BulkImport(c.Request.Context(), deckID, req.Text, opts)
	if err != nil {
		var limitErr *database.DeckLimitExceededError
		var apiErr *scryfall.APIError
		switch {
		case errors.Is(err, database.ErrDeckNotFound):
			respondNotFound(c, "deck")
		case errors.As(err, &limitErr):
			respondDeckLimitExceeded(c, limitErr)
		case errors.As(err, &apiErr):
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:   "card data service is unavailable",
				Details: gin.H{"status": apiErr.StatusCode},
			})
		default:
			respondInternalError(c, err, "bulk import")
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// respondDeckLimitExceeded renders the structured capacity failure so
// callers can display exact numbers.
func respondDeckLimitExceeded(c *gin.Context, err *database.DeckLimitExceededError) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error: "deck card limit exceeded",
		Details: gin.H{
			"max_cards":       err.MaxCards,
			"current_cards":   err.CurrentCards,
			"attempted_count": err.AttemptedCount,
		},
	})
}
