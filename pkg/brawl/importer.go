package brawl

import (
	"context"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/config"
)

// Importer defines the interface for the card import lifecycle. A run
// downloads a Scryfall bulk file, filters it to Brawl-legal Arena
// cards, deduplicates printings to one record per oracle ID, and saves
// cards with their search terms in batches.
//
// Only one import may run at a time. Starting a second import while one
// is in progress returns an error immediately instead of queueing.
type Importer interface {
	// Import runs the full import pipeline and returns a summary of
	// the run. Per-record failures are recorded in the result and do
	// not abort the run; infrastructure failures (download, database)
	// do.
	Import(ctx context.Context, cfg *config.Config, progress cards.ProgressFunc) (*cards.ImportResult, error)

	// InProgress reports whether an import is currently running.
	InProgress() bool
}
