// Package decks provides database operations for deck management,
// including the commander designation state transition.
package decks

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rsoares/deckvault/internal/database"
	"github.com/rsoares/deckvault/internal/entities"
)

// Repository handles all deck database operations.
type Repository struct {
	db              *gorm.DB
	defaultMaxCards int
}

// NewRepository creates a new decks repository. defaultMaxCards is
// applied when a deck is created without an explicit limit.
func NewRepository(db *gorm.DB, defaultMaxCards int) *Repository {
	return &Repository{db: db, defaultMaxCards: defaultMaxCards}
}

// ListDecks returns all decks, most recently updated first.
func (r *Repository) ListDecks() ([]entities.Deck, error) {
	var decks []entities.Deck
	err := r.db.Order("updated_at DESC").Find(&decks).Error
	return decks, err
}

// CreateDeck creates a deck with a unique name. cardsMax <= 0 falls
// back to the repository default.
func (r *Repository) CreateDeck(name string, cardsMax int) (*entities.Deck, error) {
	if cardsMax <= 0 {
		cardsMax = r.defaultMaxCards
	}

	var count int64
	if err := r.db.Model(&entities.Deck{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, database.ErrDeckNameTaken
	}

	deck := &entities.Deck{
		Name:     name,
		CardsMax: cardsMax,
	}
	if err := r.db.Create(deck).Error; err != nil {
		return nil, err
	}
	return deck, nil
}

// GetDeckByID retrieves a deck by ID.
func (r *Repository) GetDeckByID(id string) (*entities.Deck, error) {
	var deck entities.Deck
	err := r.db.First(&deck, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// GetDeckWithCount retrieves a deck together with its stored card count.
func (r *Repository) GetDeckWithCount(id string) (*entities.Deck, int64, error) {
	deck, err := r.GetDeckByID(id)
	if err != nil {
		return nil, 0, err
	}

	var count int64
	if err := r.db.Model(&entities.Card{}).Where("deck_id = ?", id).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	return deck, count, nil
}

// DeckUpdateFields contains the deck fields that may be changed after
// creation. Nil fields are left untouched.
type DeckUpdateFields struct {
	Name     *string
	CardsMax *int
}

// UpdateDeck applies the given field updates to a deck.
func (r *Repository) UpdateDeck(id string, fields DeckUpdateFields) (*entities.Deck, error) {
	deck, err := r.GetDeckByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.CardsMax != nil {
		updates["cards_max"] = *fields.CardsMax
	}
	if len(updates) == 0 {
		return deck, nil
	}

	if err := r.db.Model(deck).Updates(updates).Error; err != nil {
		return nil, err
	}
	return deck, nil
}

// DeleteDeck removes a deck and all of its cards in one transaction.
func (r *Repository) DeleteDeck(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var deck entities.Deck
		if err := tx.First(&deck, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.ErrDeckNotFound
			}
			return err
		}
		if err := tx.Where("deck_id = ?", id).Delete(&entities.Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deck).Error
	})
}

// SetCommander promotes a card to commander of the deck it belongs to.
// A card from another deck is rejected with ErrCardNotInDeck; a deck
// holds at most one commander at a time.
func (r *Repository) SetCommander(deckID, cardID string) (*entities.Deck, error) {
	var deck *entities.Deck
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var d entities.Deck
		if err := tx.First(&d, "id = ?", deckID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.ErrDeckNotFound
			}
			return err
		}

		var card entities.Card
		if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.ErrCardNotFound
			}
			return err
		}

		if card.DeckID != d.ID {
			return database.ErrCardNotInDeck
		}

		if err := tx.Model(&d).Update("commander_card_id", card.ID).Error; err != nil {
			return err
		}
		deck = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deck, nil
}
