// Package importer orchestrates the bulk deck-import pipeline:
// parse the raw deck list, merge duplicate lines, expand each line
// into one row per copy, optionally annotate rows with artwork from
// the card-data service, and commit the batch through the capacity
// guard of the card store.
package importer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rsoares/deckvault/internal/decklist"
	"github.com/rsoares/deckvault/internal/entities"
)

// CardStore persists card rows. CreateCardsInDeck must be atomic:
// either every row is inserted or none, with the deck's capacity
// checked in the same unit of work.
type CardStore interface {
	CreateCardsInDeck(deckID string, rows []entities.Card) (int, error)
}

// Options control a single bulk import.
type Options struct {
	// OwnDefault is applied as the ownership flag of every created row.
	OwnDefault bool
	// FetchImages toggles artwork enrichment. Off, every row keeps a
	// null image.
	FetchImages bool
}

// Result summarizes a finished bulk import.
type Result struct {
	// CreatedCount is the number of card rows written to the store.
	CreatedCount int `json:"created_count"`
	// ParsedLineCount is the number of distinct merged deck-list
	// lines, not the expanded row count.
	ParsedLineCount int `json:"parsed_line_count"`
	// Warnings lists every skipped or ambiguous input line, in input
	// order, plus enrichment degradations.
	Warnings []string `json:"warnings"`
	// ImagesNotFound lists card names the card-data service did not
	// recognize; their rows were created with a null image.
	ImagesNotFound []string `json:"images_not_found,omitempty"`
}

// Importer runs bulk imports. It is stateless between calls; the card
// store is the only shared resource.
type Importer struct {
	store    CardStore
	resolver CardResolver
	// requireImages escalates a failed artwork batch from a warning to
	// a failed import. The default is to degrade: rows are committed
	// with null images.
	requireImages bool
}

// New creates an Importer. resolver may be nil only if every import
// disables image fetching.
func New(store CardStore, resolver CardResolver, requireImages bool) *Importer {
	return &Importer{
		store:         store,
		resolver:      resolver,
		requireImages: requireImages,
	}
}

// BulkImport ingests a raw deck list into the given deck. Parsing is
// best-effort; the commit is all-or-nothing. Errors surface unwrapped
// domain failures from the store (deck missing, capacity exceeded) or,
// in strict image mode, the failed batch lookup.
func (i *Importer) BulkImport(ctx context.Context, deckID, text string, opts Options) (*Result, error) {
	parsed := decklist.Parse(text)
	merged := decklist.Merge(parsed.Items)

	result := &Result{
		ParsedLineCount: len(merged),
		Warnings:        parsed.Warnings,
	}

	if len(merged) == 0 {
		if len(result.Warnings) == 0 {
			result.Warnings = []string{"No valid card lines found."}
		}
		return result, nil
	}

	rows := expandRows(deckID, merged, opts.OwnDefault)

	if opts.FetchImages {
		enrichment, err := resolveImages(ctx, i.resolver, merged)
		if err != nil {
			if i.requireImages {
				return nil, fmt.Errorf("image lookup failed: %w", err)
			}
			log.Printf("Image lookup failed, importing without images: %v", err)
			result.Warnings = append(result.Warnings,
				"Image lookup failed; cards were imported without images.")
		} else {
			attachImages(rows, enrichment)
			result.ImagesNotFound = enrichment.NotFound
		}
	}

	created, err := i.store.CreateCardsInDeck(deckID, rows)
	if err != nil {
		return nil, err
	}
	result.CreatedCount = created

	return result, nil
}

// expandRows turns each merged line into Quantity persistence-ready
// rows. The board only participates in merging; stored rows carry no
// board column.
func expandRows(deckID string, merged []decklist.CardLine, ownDefault bool) []entities.Card {
	var rows []entities.Card
	for _, line := range merged {
		for n := 0; n < line.Quantity; n++ {
			rows = append(rows, entities.Card{
				DeckID:  deckID,
				Name:    line.Name,
				SetCode: line.SetCode,
				Own:     ownDefault,
			})
		}
	}
	return rows
}

func attachImages(rows []entities.Card, enrichment *Enrichment) {
	for idx := range rows {
		if url, ok := enrichment.Images[strings.ToLower(rows[idx].Name)]; ok {
			u := url
			rows[idx].ImageURL = &u
		}
	}
}
