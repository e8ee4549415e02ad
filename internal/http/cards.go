package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rsoares/deckvault/internal/database"
	"github.com/rsoares/deckvault/internal/database/cards"
	"github.com/rsoares/deckvault/internal/entities"
	"github.com/rsoares/deckvault/internal/scryfall"
)

// CardStore is the subset of the cards repository the controller uses.
type CardStore interface {
	ListCards() ([]entities.Card, error)
	GetCardByID(id string) (*entities.Card, error)
	FindByName(name string) ([]entities.Card, error)
	FindByFilter(deckID, name string, filter cards.OwnershipFilter) ([]entities.Card, error)
	ListCardsInDeck(deckID string) ([]entities.Card, error)
	CreateCard(card *entities.Card) (*entities.Card, error)
	UpdateOwnership(id string, own bool) (*entities.Card, error)
	DeleteCard(id string) error
}

// CardChecker validates a card name against the external card-data
// service and resolves its artwork. Implemented by *scryfall.Client.
type CardChecker interface {
	NamedCard(ctx context.Context, name string) (*scryfall.Card, error)
}

// CardsController handles single-card CRUD and searches.
type CardsController struct {
	store   CardStore
	checker CardChecker
}

func NewCardsController(store CardStore, checker CardChecker) *CardsController {
	return &CardsController{store: store, checker: checker}
}

func (ctrl *CardsController) List(c *gin.Context) {
	cardList, err := ctrl.store.ListCards()
	if err != nil {
		respondInternalError(c, err, "list cards")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(cardList),
		"cards": cardList,
	})
}

func (ctrl *CardsController) ListByDeck(c *gin.Context) {
	deckID, ok := parseUUIDParam(c, "deckId")
	if !ok {
		return
	}

	cardList, err := ctrl.store.ListCardsInDeck(deckID)
	if err != nil {
		if errors.Is(err, database.ErrDeckNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "list deck cards")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deck_id": deckID,
		"count":   len(cardList),
		"cards":   cardList,
	})
}

func (ctrl *CardsController) Search(c *gin.Context) {
	deckID := c.Query("deck_id")
	name := c.Query("name")
	filter := cards.OwnershipFilter(c.DefaultQuery("filter", string(cards.FilterAll)))

	switch filter {
	case cards.FilterAll, cards.FilterOwn, cards.FilterMissing:
	default:
		respondBadRequest(c, "use ?deck_id=...&name=...&filter=all|own|missing")
		return
	}

	// Without a deck the search falls back to a global name lookup.
	if deckID == "" {
		if name == "" {
			respondBadRequest(c, "use ?deck_id=...&name=...&filter=all|own|missing")
			return
		}
		found, err := ctrl.store.FindByName(name)
		if err != nil {
			respondInternalError(c, err, "search cards")
			return
		}
		c.JSON(http.StatusOK, found)
		return
	}

	if _, err := uuid.Parse(deckID); err != nil {
		respondBadRequest(c, "invalid deck_id format")
		return
	}

	found, err := ctrl.store.FindByFilter(deckID, name, filter)
	if err != nil {
		if errors.Is(err, database.ErrDeckNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "search cards")
		return
	}

	c.JSON(http.StatusOK, found)
}

type createCardRequest struct {
	DeckID string `json:"deck_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Set    string `json:"set" binding:"required"`
	Own    bool   `json:"own"`
}

// Create registers a single card after validating its name against the
// card-data service. An unknown name is rejected; a lookup transport
// failure degrades to a card without artwork, matching the bulk
// import's default policy.
func (ctrl *CardsController) Create(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "deck_id, name and set are required")
		return
	}
	if _, err := uuid.Parse(req.DeckID); err != nil {
		respondBadRequest(c, "invalid deck_id format")
		return
	}

	var imageURL *string
	found, err := ctrl.checker.NamedCard(c.Request.Context(), req.Name)
	if err != nil {
		log.Printf("Card lookup failed for %q, creating without image: %v", req.Name, err)
	} else if found == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "no card was found matching the provided name",
		})
		return
	} else if url := found.ImageURL(); url != "" {
		imageURL = &url
	}

	card, err := ctrl.store.CreateCard(&entities.Card{
		DeckID:   req.DeckID,
		Name:     req.Name,
		SetCode:  req.Set,
		Own:      req.Own,
		ImageURL: imageURL,
	})
	if err != nil {
		var limitErr *database.DeckLimitExceededError
		switch {
		case errors.Is(err, database.ErrDeckNotFound):
			respondNotFound(c, "deck")
		case errors.As(err, &limitErr):
			respondDeckLimitExceeded(c, limitErr)
		default:
			respondInternalError(c, err, "create card")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"card_created": card,
	})
}

type updateOwnershipRequest struct {
	Own *bool `json:"own" binding:"required"`
}

func (ctrl *CardsController) UpdateOwnership(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "own is required")
		return
	}

	card, err := ctrl.store.UpdateOwnership(cardID, *req.Own)
	if err != nil {
		if errors.Is(err, database.ErrCardNotFound) {
			respondNotFound(c, "card")
			return
		}
		respondInternalError(c, err, "update ownership")
		return
	}

	c.JSON(http.StatusOK, card)
}

func (ctrl *CardsController) Delete(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.store.DeleteCard(cardID); err != nil {
		if errors.Is(err, database.ErrCardNotFound) {
			respondNotFound(c, "card")
			return
		}
		respondInternalError(c, err, "delete card")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "card deleted"})
}
