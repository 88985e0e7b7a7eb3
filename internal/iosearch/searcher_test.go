package iosearch_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/internal/iosearch"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/brawl"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves canned terms and cards and records which lookups
// ran, so tests can assert the equality-then-prefix asymmetry.
type fakeStore struct {
	terms map[string][]db.TermMatch // term → matches
	cards map[string]cards.CanonicalCard

	equalityCalls int
	prefixCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		terms: make(map[string][]db.TermMatch),
		cards: make(map[string]cards.CanonicalCard),
	}
}

func (f *fakeStore) addCard(oracleID, displayName string, terms ...string) {
	f.cards[oracleID] = cards.CanonicalCard{
		OracleID:    oracleID,
		DisplayName: displayName,
	}
	for _, term := range terms {
		f.terms[term] = append(f.terms[term], db.TermMatch{
			OracleID: oracleID,
			Term:     term,
		})
	}
}

func (f *fakeStore) ClearAll(ctx context.Context) error { return nil }

func (f *fakeStore) InsertCards(
	ctx context.Context, batch []cards.CanonicalCard,
) (int, error) {
	return 0, nil
}

func (f *fakeStore) InsertSearchTerms(
	ctx context.Context, batch []cards.SearchTerm,
) (int, error) {
	return 0, nil
}

func (f *fakeStore) DeleteSearchTerms(
	ctx context.Context, oracleIDs []string,
) error {
	return nil
}

func (f *fakeStore) CountCards(
	ctx context.Context, filter db.CardFilter,
) (int, error) {
	return len(f.cards), nil
}

func (f *fakeStore) CountOrphanTerms(ctx context.Context) (int, error) {
	return 0, nil
}

func (f *fakeStore) TermsByEquality(
	ctx context.Context, keys []string,
) ([]db.TermMatch, error) {
	f.equalityCalls++
	var res []db.TermMatch
	for _, key := range keys {
		res = append(res, f.terms[key]...)
	}
	return res, nil
}

func (f *fakeStore) TermsByPrefix(
	ctx context.Context, key string,
) ([]db.TermMatch, error) {
	f.prefixCalls++
	var res []db.TermMatch
	for term, matches := range f.terms {
		if strings.HasPrefix(term, key) {
			res = append(res, matches...)
		}
	}
	return res, nil
}

func (f *fakeStore) CardsByOracleIDs(
	ctx context.Context, oracleIDs []string,
) ([]cards.CanonicalCard, error) {
	var res []cards.CanonicalCard
	for _, id := range oracleIDs {
		if rec, ok := f.cards[id]; ok {
			res = append(res, rec)
		}
	}
	return res, nil
}

func (f *fakeStore) LatestCardTimestamp(
	ctx context.Context,
) (time.Time, error) {
	return time.Time{}, nil
}

func TestSearchBlankQuery(t *testing.T) {
	store := newFakeStore()
	s := iosearch.NewResolver(store)

	for _, query := range []string{"", "   ", `""`} {
		resp, err := s.Search(
			context.Background(), query, brawl.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
	}
	assert.Zero(t, store.equalityCalls)
	assert.Zero(t, store.prefixCalls)
}

func TestSearchExactHitSkipsPrefix(t *testing.T) {
	store := newFakeStore()
	store.addCard("oracle-1", "Lightning Bolt", "lightningbolt")
	s := iosearch.NewResolver(store)

	resp, err := s.Search(
		context.Background(), "Lightning Bolt", brawl.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, "lightningbolt", resp.NormalizedQuery)
	res := resp.Results
	require.Len(t, res, 1)
	assert.Equal(t, "Lightning Bolt", res[0].Card.DisplayName)
	assert.True(t, res[0].Exact)
	assert.Equal(t, 1, store.equalityCalls)
	assert.Zero(t, store.prefixCalls)
}

func TestSearchPrefixFallback(t *testing.T) {
	store := newFakeStore()
	store.addCard("oracle-1", "Lightning Bolt", "lightningbolt")
	store.addCard("oracle-2", "Lightning Helix", "lightninghelix")
	s := iosearch.NewResolver(store)

	resp, err := s.Search(
		context.Background(), "Lightning", brawl.SearchOptions{})
	require.NoError(t, err)

	res := resp.Results
	require.Len(t, res, 2)
	// Prefix hits sort by display name and are never exact.
	assert.Equal(t, "Lightning Bolt", res[0].Card.DisplayName)
	assert.Equal(t, "Lightning Helix", res[1].Card.DisplayName)
	assert.False(t, res[0].Exact)
	assert.False(t, res[1].Exact)
	assert.Equal(t, 1, store.prefixCalls)
}

func TestSearchQuotedMeansExact(t *testing.T) {
	store := newFakeStore()
	store.addCard("oracle-1", "Lightning Bolt", "lightningbolt")
	s := iosearch.NewResolver(store)

	// A quoted partial name finds nothing: no prefix fallback.
	resp, err := s.Search(
		context.Background(), `"Lightning"`, brawl.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Zero(t, store.prefixCalls)

	// The quoted full name still resolves.
	resp, err = s.Search(
		context.Background(), `"Lightning Bolt"`, brawl.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
}

func TestSearchExactModeMatchesVariants(t *testing.T) {
	store := newFakeStore()
	// A split card stored under its full search key and face keys.
	store.addCard("oracle-1", "Fire // Ice", "fire//ice", "fire", "ice")
	store.addCard("oracle-2", "Fire Elemental", "fireelemental", "fire")
	s := iosearch.NewResolver(store)

	resp, err := s.Search(context.Background(),
		"Fire // Ice", brawl.SearchOptions{Exact: true})
	require.NoError(t, err)

	// Both resolve through the variation set, the full-key match
	// sorts first.
	res := resp.Results
	require.Len(t, res, 2)
	assert.Equal(t, "Fire // Ice", res[0].Card.DisplayName)
	assert.True(t, res[0].Exact)
	assert.Equal(t, "Fire Elemental", res[1].Card.DisplayName)
	assert.False(t, res[1].Exact)
}

func TestSearchSeparatorVariantsResolve(t *testing.T) {
	store := newFakeStore()
	store.addCard("oracle-1", "Fire // Ice", "fire//ice")
	s := iosearch.NewResolver(store)

	// Any separator spelling normalizes to the stored key.
	for _, query := range []string{"Fire // Ice", "fire / ice", "FIRE/ICE"} {
		resp, err := s.Search(
			context.Background(), query, brawl.SearchOptions{})
		require.NoError(t, err, query)
		assert.Equal(t, "fire//ice", resp.NormalizedQuery, query)
		require.Len(t, resp.Results, 1, query)
		assert.True(t, resp.Results[0].Exact, query)
	}
}

func TestSearchLimit(t *testing.T) {
	store := newFakeStore()
	store.addCard("oracle-1", "Lightning Bolt", "lightningbolt")
	store.addCard("oracle-2", "Lightning Helix", "lightninghelix")
	store.addCard("oracle-3", "Lightning Strike", "lightningstrike")
	s := iosearch.NewResolver(store)

	resp, err := s.Search(context.Background(),
		"Lightning", brawl.SearchOptions{Limit: 2})
	require.NoError(t, err)

	res := resp.Results
	require.Len(t, res, 2)
	assert.Equal(t, "Lightning Bolt", res[0].Card.DisplayName)
	assert.Equal(t, "Lightning Helix", res[1].Card.DisplayName)
}
