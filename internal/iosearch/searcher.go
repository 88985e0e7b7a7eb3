// Package iosearch implements query resolution against the stored
// search terms. Queries go through the same normalization the import
// applied, so a user can type any variant that produced a term.
package iosearch

import (
	"context"
	"sort"
	"strings"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/brawl"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/db"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/names"
)

// resolver implements brawl.Searcher. It holds no per-query state and
// is safe for concurrent use.
type resolver struct {
	store db.CardStore
}

// NewResolver creates a searcher over the given card store.
func NewResolver(store db.CardStore) brawl.Searcher {
	return &resolver{store: store}
}

// Search resolves a query to matching cards. Equality matches are
// tried first; the prefix fallback runs only when nothing matched
// exactly, so a short query cannot drown an exact hit in noise.
func (r *resolver) Search(
	ctx context.Context,
	query string,
	opts brawl.SearchOptions,
) (*brawl.SearchResponse, error) {
	query = strings.TrimSpace(query)

	// Double quotes express exact intent inline.
	if len(query) >= 2 &&
		strings.HasPrefix(query, `"`) && strings.HasSuffix(query, `"`) {
		query = strings.TrimSpace(query[1 : len(query)-1])
		opts.Exact = true
	}

	if query == "" {
		return &brawl.SearchResponse{}, nil
	}

	key := names.ForSearch(query)
	resp := &brawl.SearchResponse{NormalizedQuery: key}
	if key == "" {
		return resp, nil
	}

	var matches []db.TermMatch
	var err error

	if opts.Exact {
		// Probe every variant a stored term could take.
		matches, err = r.store.TermsByEquality(ctx, names.Variations(query))
		if err != nil {
			return nil, QueryError(query, err)
		}
	} else {
		matches, err = r.store.TermsByEquality(ctx, []string{key})
		if err != nil {
			return nil, QueryError(query, err)
		}
		if len(matches) == 0 {
			matches, err = r.store.TermsByPrefix(ctx, key)
			if err != nil {
				return nil, QueryError(query, err)
			}
		}
	}

	if len(matches) == 0 {
		return resp, nil
	}

	// A term hit counts as exact only when it equals the normalized
	// query itself; prefix hits and variant hits stay non-exact.
	for i := range matches {
		matches[i].Exact = matches[i].Term == key
	}

	// Dedupe by oracle id; an identity is an exact hit when any of its
	// terms matched exactly.
	exactByOracle := make(map[string]bool)
	var oracleIDs []string
	for _, m := range matches {
		if _, ok := exactByOracle[m.OracleID]; !ok {
			oracleIDs = append(oracleIDs, m.OracleID)
		}
		exactByOracle[m.OracleID] = exactByOracle[m.OracleID] || m.Exact
	}

	recs, err := r.store.CardsByOracleIDs(ctx, oracleIDs)
	if err != nil {
		return nil, QueryError(query, err)
	}

	res := make([]brawl.SearchResult, 0, len(recs))
	for _, rec := range recs {
		res = append(res, brawl.SearchResult{
			Card:  rec,
			Exact: exactByOracle[rec.OracleID],
		})
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Exact != res[j].Exact {
			return res[i].Exact
		}
		return res[i].Card.DisplayName < res[j].Card.DisplayName
	})

	if opts.Limit > 0 && len(res) > opts.Limit {
		res = res[:opts.Limit]
	}

	resp.Results = res
	return resp, nil
}
