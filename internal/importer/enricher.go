package importer

import (
	"context"
	"strings"

	"github.com/rsoares/deckvault/internal/decklist"
	"github.com/rsoares/deckvault/internal/scryfall"
)

// CardResolver resolves card identifiers to card records in batches.
// Implemented by *scryfall.Client.
type CardResolver interface {
	GetCardsByIdentifiers(ctx context.Context, identifiers []scryfall.CardIdentifier) ([]scryfall.Card, []scryfall.CardIdentifier, error)
}

// Enrichment maps lower-cased card names to artwork URLs. Names the
// card-data service does not know end up in NotFound, never in an
// error: enrichment is annotation, not validation.
type Enrichment struct {
	Images   map[string]string
	NotFound []string
}

// resolveImages looks up artwork for every distinct (name, set) pair in
// the merged lines. A batch-level failure is returned untouched; the
// caller decides whether that aborts the import.
func resolveImages(ctx context.Context, resolver CardResolver, lines []decklist.CardLine) (*Enrichment, error) {
	identifiers := uniqueIdentifiers(lines)
	if len(identifiers) == 0 {
		return &Enrichment{Images: map[string]string{}}, nil
	}

	cards, missing, err := resolver.GetCardsByIdentifiers(ctx, identifiers)
	if err != nil {
		return nil, err
	}

	enrichment := &Enrichment{Images: make(map[string]string, len(cards))}
	for _, card := range cards {
		url := card.ImageURL()
		if url == "" {
			continue
		}
		name := strings.ToLower(card.Name)
		enrichment.Images[name] = url
		// Multi-faced cards come back under their full "Front // Back"
		// name while deck lists reference the front face.
		if front, _, ok := strings.Cut(name, " // "); ok {
			if _, taken := enrichment.Images[front]; !taken {
				enrichment.Images[front] = url
			}
		}
	}

	for _, id := range missing {
		enrichment.NotFound = append(enrichment.NotFound, id.Name)
	}

	return enrichment, nil
}

// uniqueIdentifiers builds one (name, set) identifier per distinct
// card, collapsing the same card appearing on both boards or as foil
// and non-foil printings.
func uniqueIdentifiers(lines []decklist.CardLine) []scryfall.CardIdentifier {
	seen := make(map[string]bool, len(lines))
	identifiers := make([]scryfall.CardIdentifier, 0, len(lines))

	for _, line := range lines {
		key := strings.ToLower(line.Name) + "|" + strings.ToLower(line.SetCode)
		if seen[key] {
			continue
		}
		seen[key] = true
		identifiers = append(identifiers, scryfall.CardIdentifier{
			Name: line.Name,
			Set:  strings.ToLower(line.SetCode),
		})
	}

	return identifiers
}
