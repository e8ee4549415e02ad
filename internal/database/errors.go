package database

import (
	"errors"
	"fmt"
)

// Domain errors shared by the deck and card repositories. Handlers map
// these onto HTTP statuses; nothing below the HTTP layer knows about
// status codes.
var (
	ErrDeckNotFound  = errors.New("deck not found")
	ErrCardNotFound  = errors.New("card not found")
	ErrCardNotInDeck = errors.New("card does not belong to this deck")
	ErrDeckNameTaken = errors.New("a deck with this name already exists")
)

// DeckLimitExceededError reports a rejected batch insert with enough
// detail for the caller to render a precise message.
type DeckLimitExceededError struct {
	MaxCards       int
	CurrentCards   int
	AttemptedCount int
}

func (e *DeckLimitExceededError) Error() string {
	return fmt.Sprintf(
		"deck limit exceeded: %d cards stored, adding %d would pass the maximum of %d",
		e.CurrentCards, e.AttemptedCount, e.MaxCards,
	)
}
