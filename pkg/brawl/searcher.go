package brawl

import (
	"context"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
)

// SearchOptions controls how a query resolves against stored cards.
type SearchOptions struct {
	// Exact restricts matching to term equality, skipping the prefix
	// fallback. Wrapping the query in double quotes has the same
	// effect.
	Exact bool

	// Limit caps the number of returned cards. Zero means no limit.
	Limit int
}

// SearchResult is one card matched by a query, with a flag recording
// whether the match was exact or found by prefix fallback.
type SearchResult struct {
	Card  cards.CanonicalCard
	Exact bool
}

// SearchResponse carries the matched cards together with the
// normalized form of the query they were matched against.
type SearchResponse struct {
	// NormalizedQuery is the search key the query reduced to, after
	// the same normalization the import applied to card names.
	NormalizedQuery string

	Results []SearchResult
}

// Searcher defines the interface for resolving user queries against
// the search_terms table. Queries are normalized with the same rules
// used during import, expanded into separator variants, and matched
// first by equality, then by prefix when nothing matched exactly.
type Searcher interface {
	// Search resolves a query to matching cards. A blank query
	// returns an empty response without touching the database.
	Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
}
