package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deck groups cards and carries the capacity limit enforced on every
// write that adds cards to it.
type Deck struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Name            string    `gorm:"uniqueIndex;size:256" json:"name"`
	CardsMax        int       `gorm:"not null" json:"cards_max"`
	CommanderCardID *string   `gorm:"size:36" json:"commander_card_id,omitempty"`
	Cards           []Card    `gorm:"foreignKey:DeckID" json:"cards,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Card is a single physical copy tracked inside a deck. Quantity is
// modeled as one row per copy, so counting rows counts copies.
type Card struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DeckID    string    `gorm:"index;size:36" json:"deck_id"`
	Name      string    `gorm:"index;size:256" json:"name"`
	SetCode   string    `gorm:"size:10" json:"set"`
	ImageURL  *string   `gorm:"size:2048" json:"image_url"`
	Own       bool      `gorm:"default:false" json:"own"`
	Deck      Deck      `gorm:"foreignKey:DeckID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Deck) TableName() string {
	return "decks"
}

func (Card) TableName() string {
	return "cards"
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
