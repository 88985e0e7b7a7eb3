// Package pipeline contains the pure processing stages of a card
// import: eligibility filtering, canonical-version selection among
// printings, and transformation of raw records into their persisted
// shape. Nothing here performs I/O; the orchestrator in
// internal/ioimport sequences these stages around the bulk source and
// the store.
package pipeline

import (
	"strings"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
)

// legalStatus is the only legality value that makes a printing
// eligible; "banned" and "restricted" printings are excluded.
const legalStatus = "legal"

// FilterSpec names the eligibility criteria for raw records.
type FilterSpec struct {
	// Format is the legality table key, e.g. "brawl".
	Format string
	// Platform must appear in the record's games list, e.g. "arena".
	Platform string
	// Language is the canonical language code, e.g. "en".
	Language string
}

// Eligible reports whether one raw record passes the filter: legal in
// the target format, available on the target platform, and in the
// canonical language.
func Eligible(rec cards.RawCard, spec FilterSpec) bool {
	if rec.Legalities[spec.Format] != legalStatus {
		return false
	}
	onPlatform := false
	for _, game := range rec.Games {
		if strings.EqualFold(game, spec.Platform) {
			onPlatform = true
			break
		}
	}
	if !onPlatform {
		return false
	}
	return strings.EqualFold(rec.Lang, spec.Language)
}

// Filter returns the eligible subset of records, preserving order. The
// input slice is not mutated.
func Filter(recs []cards.RawCard, spec FilterSpec) []cards.RawCard {
	var res []cards.RawCard
	for _, rec := range recs {
		if Eligible(rec, spec) {
			res = append(res, rec)
		}
	}
	return res
}
