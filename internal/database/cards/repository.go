// Package cards provides database operations for cards, including the
// transactional batch insert that enforces a deck's capacity limit.
package cards

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rsoares/deckvault/internal/database"
	"github.com/rsoares/deckvault/internal/entities"
)

// OwnershipFilter narrows card searches by ownership status.
type OwnershipFilter string

const (
	FilterAll     OwnershipFilter = "all"
	FilterOwn     OwnershipFilter = "own"
	FilterMissing OwnershipFilter = "missing"
)

// Repository handles all card database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cards repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCards returns all cards, newest first.
func (r *Repository) ListCards() ([]entities.Card, error) {
	var cards []entities.Card
	err := r.db.Order("created_at DESC").Find(&cards).Error
	return cards, err
}

// GetCardByID retrieves a card by ID.
func (r *Repository) GetCardByID(id string) (*entities.Card, error) {
	var card entities.Card
	err := r.db.First(&card, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByName searches cards by name, case-insensitive partial match.
func (r *Repository) FindByName(name string) ([]entities.Card, error) {
	var cards []entities.Card
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").Find(&cards).Error
	return cards, err
}

// FindByFilter searches a deck's cards by name and ownership status.
func (r *Repository) FindByFilter(deckID, name string, filter OwnershipFilter) ([]entities.Card, error) {
	if _, err := r.deckExists(r.db, deckID); err != nil {
		return nil, err
	}

	query := r.db.Where("deck_id = ?", deckID)
	if name != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}
	switch filter {
	case FilterOwn:
		query = query.Where("own = ?", true)
	case FilterMissing:
		query = query.Where("own = ?", false)
	}

	var cards []entities.Card
	err := query.Order("name ASC").Find(&cards).Error
	return cards, err
}

// ListCardsInDeck returns all cards of a deck. The deck must exist.
func (r *Repository) ListCardsInDeck(deckID string) ([]entities.Card, error) {
	if _, err := r.deckExists(r.db, deckID); err != nil {
		return nil, err
	}

	var cards []entities.Card
	err := r.db.Where("deck_id = ?", deckID).Order("name ASC").Find(&cards).Error
	return cards, err
}

// UpdateOwnership flips the own flag of a card.
func (r *Repository) UpdateOwnership(id string, own bool) (*entities.Card, error) {
	card, err := r.GetCardByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(card).Update("own", own).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard removes a card by ID.
func (r *Repository) DeleteCard(id string) error {
	card, err := r.GetCardByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(card).Error
}

// CreateCard inserts a single card. It runs through the same capacity
// check as bulk inserts so a direct create cannot overflow a deck that
// a concurrent import is filling.
func (r *Repository) CreateCard(card *entities.Card) (*entities.Card, error) {
	rows := []entities.Card{*card}
	if _, err := r.CreateCardsInDeck(card.DeckID, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// CreateCardsInDeck inserts rows into a deck as one atomic batch.
// The capacity check and the insert run in a single transaction: the
// deck's current count and maximum are read, compared against the
// batch size, and only a batch that fits is written. Concurrent
// writers against the same deck are serialized by the store, so two
// imports can never jointly overflow the limit. Returns the number of
// rows created; on any failure nothing is committed.
func (r *Repository) CreateCardsInDeck(deckID string, rows []entities.Card) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var created int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		deck, err := r.deckExists(tx, deckID)
		if err != nil {
			return err
		}

		var current int64
		if err := tx.Model(&entities.Card{}).Where("deck_id = ?", deckID).Count(&current).Error; err != nil {
			return err
		}

		if int(current)+len(rows) > deck.CardsMax {
			return &database.DeckLimitExceededError{
				MaxCards:       deck.CardsMax,
				CurrentCards:   int(current),
				AttemptedCount: len(rows),
			}
		}

		for i := range rows {
			rows[i].DeckID = deckID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		created = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *Repository) deckExists(tx *gorm.DB, deckID string) (*entities.Deck, error) {
	var deck entities.Deck
	err := tx.First(&deck, "id = ?", deckID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}
