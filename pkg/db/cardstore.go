package db

import (
	"context"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
)

// CardFilter selects a subset of stored cards for counting.
type CardFilter int

const (
	// FilterAll counts every stored card.
	FilterAll CardFilter = iota
	// FilterCommanders counts cards that can lead a deck.
	FilterCommanders
	// FilterCompanions counts cards with a companion restriction.
	FilterCompanions
)

// TermMatch is a search term joined with the oracle ID of the card it
// resolves to. The Exact flag records whether the term equals the
// normalized query; the search resolver assigns it and uses it to
// order results.
type TermMatch struct {
	OracleID  string
	Term      string
	IsPrimary bool
	Exact     bool
}

// CardStore is the data-access gateway for canonical cards and their
// search terms. The import orchestrator writes through it in batches
// and the search resolver reads from it; both are tested against
// in-memory implementations.
type CardStore interface {
	// ClearAll removes every card and search term. Truncates both
	// tables so a fresh import starts from an empty state.
	ClearAll(ctx context.Context) error

	// InsertCards writes a batch of canonical cards and returns the
	// number of rows actually inserted.
	InsertCards(ctx context.Context, batch []cards.CanonicalCard) (int, error)

	// InsertSearchTerms writes a batch of search terms.
	InsertSearchTerms(ctx context.Context, batch []cards.SearchTerm) (int, error)

	// DeleteSearchTerms removes every search term belonging to the
	// given oracle IDs. Used to regenerate terms in place when an
	// import keeps existing rows instead of clearing the tables.
	DeleteSearchTerms(ctx context.Context, oracleIDs []string) error

	// CountCards returns the number of stored cards matching the
	// filter.
	CountCards(ctx context.Context, filter CardFilter) (int, error)

	// CountOrphanTerms returns the number of search terms whose
	// oracle ID has no corresponding card row.
	CountOrphanTerms(ctx context.Context) (int, error)

	// TermsByEquality returns matches for terms exactly equal to any
	// of the given search keys.
	TermsByEquality(ctx context.Context, keys []string) ([]TermMatch, error)

	// TermsByPrefix returns matches for terms that start with the
	// given search key.
	TermsByPrefix(ctx context.Context, key string) ([]TermMatch, error)

	// CardsByOracleIDs loads full card records for the given oracle
	// IDs. The result order is unspecified.
	CardsByOracleIDs(ctx context.Context, oracleIDs []string) ([]cards.CanonicalCard, error)

	// LatestCardTimestamp returns the most recent updated_at value
	// among stored cards, or the zero time when no cards exist.
	LatestCardTimestamp(ctx context.Context) (time.Time, error)
}
