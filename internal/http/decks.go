package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rsoares/deckvault/internal/database"
	"github.com/rsoares/deckvault/internal/database/decks"
	"github.com/rsoares/deckvault/internal/entities"
)

// DeckStore is the subset of the decks repository the controller uses.
type DeckStore interface {
	ListDecks() ([]entities.Deck, error)
	CreateDeck(name string, cardsMax int) (*entities.Deck, error)
	GetDeckWithCount(id string) (*entities.Deck, int64, error)
	UpdateDeck(id string, fields decks.DeckUpdateFields) (*entities.Deck, error)
	DeleteDeck(id string) error
	SetCommander(deckID, cardID string) (*entities.Deck, error)
}

// DecksController handles deck CRUD and the commander designation.
type DecksController struct {
	store DeckStore
}

func NewDecksController(store DeckStore) *DecksController {
	return &DecksController{store: store}
}

func (ctrl *DecksController) List(c *gin.Context) {
	deckList, err := ctrl.store.ListDecks()
	if err != nil {
		respondInternalError(c, err, "list decks")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(deckList),
		"decks": deckList,
	})
}

type createDeckRequest struct {
	Name     string `json:"name" binding:"required"`
	CardsMax int    `json:"cards_max"`
}

func (ctrl *DecksController) Create(c *gin.Context) {
	var req createDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	deck, err := ctrl.store.CreateDeck(req.Name, req.CardsMax)
	if err != nil {
		if errors.Is(err, database.ErrDeckNameTaken) {
			respondBadRequest(c, "deck "+req.Name+" already exists")
			return
		}
		respondInternalError(c, err, "create deck")
		return
	}

	c.JSON(http.StatusCreated, deck)
}

func (ctrl *DecksController) Get(c *gin.Context) {
	deckID, ok := parseUUIDParam(c, "deckId")
	if !ok {
		return
	}

	deck, count, err := ctrl.store.GetDeckWithCount(deckID)
	if err != nil {
		if errors.Is(err, database.ErrDeckNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "get deck")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deck":          deck,
		"current_cards": count,
	})
}

type updateDeckRequest struct {
	Name     *string `json:"name"`
	CardsMax *int    `json:"cards_max"`
}

func (ctrl *DecksController) Update(c *gin.Context) {
	deckID, ok := parseUUIDParam(c, "deckId")
	if !ok {
		return
	}

	var req updateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == nil && req.CardsMax == nil {
		respondBadRequest(c, "send at least name or cards_max")
		return
	}
	if req.CardsMax != nil && *req.CardsMax <= 0 {
		respondBadRequest(c, "cards_max must be positive")
		return
	}

	deck, err := ctrl.store.UpdateDeck(deckID, decks.DeckUpdateFields{
		Name:     req.Name,
		CardsMax: req.CardsMax,
	})
	if err != nil {
		if errors.Is(err, database.ErrDeckNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "update deck")
		return
	}

	c.JSON(http.StatusOK, deck)
}

func (ctrl *DecksController) Delete(c *gin.Context) {
	deckID, ok := parseUUIDParam(c, "deckId")
	if !ok {
		return
	}

	if err := ctrl.store.DeleteDeck(deckID); err != nil {
		if errors.Is(err, database.ErrDeckNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "delete deck")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "deck deleted"})
}

func (ctrl *DecksController) SetCommander(c *gin.Context) {
	deckID, ok := parseUUIDParam(c, "deckId")
	if !ok {
		return
	}
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}

	deck, err := ctrl.store.SetCommander(deckID, cardID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDeckNotFound):
			respondNotFound(c, "deck")
		case errors.Is(err, database.ErrCardNotFound):
			respondNotFound(c, "card")
		case errors.Is(err, database.ErrCardNotInDeck):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "a card can only be promoted to commander of its own deck",
			})
		default:
			respondInternalError(c, err, "set commander")
		}
		return
	}

	c.JSON(http.StatusOK, deck)
}
