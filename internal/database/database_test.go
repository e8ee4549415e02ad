package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/deckvault/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assert.True(t, db.DB.Migrator().HasTable(&entities.Deck{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Card{}))
}

func TestDatabase_Ping(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, db.Ping())
}

func TestCreate_AssignsUUIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	deck := &entities.Deck{Name: "Mono Red Burn", CardsMax: 60}
	require.NoError(t, db.DB.Create(deck).Error)
	assert.Len(t, deck.ID, 36)

	card := &entities.Card{DeckID: deck.ID, Name: "Lightning Bolt"}
	require.NoError(t, db.DB.Create(card).Error)
	assert.Len(t, card.ID, 36)
	assert.NotEqual(t, deck.ID, card.ID)
}

func TestCreate_DeckNameUnique(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.Deck{Name: "Mono Red Burn", CardsMax: 60}).Error)

	err := db.DB.Create(&entities.Deck{Name: "Mono Red Burn", CardsMax: 40}).Error
	assert.Error(t, err)
}

func TestDeckLimitExceededError_Message(t *testing.T) {
	err := &DeckLimitExceededError{MaxCards: 100, CurrentCards: 98, AttemptedCount: 4}

	assert.Equal(t,
		"deck limit exceeded: 98 cards stored, adding 4 would pass the maximum of 100",
		err.Error(),
	)
}
