package pipeline

import (
	"sort"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
)

// epochDate sorts before any real release date; printings from sets
// with no known date lose every "latest release" comparison.
const epochDate = "1993-01-01"

// rarityRank orders rarities from most to least common. Unknown
// rarities rank after mythic so they are only selected when nothing
// else exists.
var rarityRank = map[string]int{
	"common":   1,
	"uncommon": 2,
	"rare":     3,
	"mythic":   4,
}

// IdentityGroup holds every eligible printing of one card identity, in
// encounter order.
type IdentityGroup struct {
	OracleID  string
	Printings []cards.RawCard
}

// Groups buckets records by oracle id, preserving the order in which
// identities were first encountered. Tie-breaks downstream depend on
// this order being stable.
func Groups(recs []cards.RawCard) []IdentityGroup {
	idx := make(map[string]int, len(recs))
	var res []IdentityGroup
	for _, rec := range recs {
		i, ok := idx[rec.OracleID]
		if !ok {
			i = len(res)
			idx[rec.OracleID] = i
			res = append(res, IdentityGroup{OracleID: rec.OracleID})
		}
		res[i].Printings = append(res[i].Printings, rec)
	}
	return res
}

// ReleaseDates derives a set-code → release-date map from the filtered
// record set. The first non-empty date seen for a set wins.
func ReleaseDates(recs []cards.RawCard) map[string]string {
	res := make(map[string]string)
	for _, rec := range recs {
		if rec.SetCode == "" || rec.ReleasedAt == "" {
			continue
		}
		if _, ok := res[rec.SetCode]; !ok {
			res[rec.SetCode] = rec.ReleasedAt
		}
	}
	return res
}

// Select picks the canonical printing of one identity and the complete
// sorted set of set codes its eligible printings appeared in.
//
// With a single printing the choice is trivial. Otherwise candidates
// are restricted to the lowest rarity rank present (the most
// reprint-common, generally most recognizable version), and among those
// the printing from the set with the latest release date wins (current
// templating and imagery). Ties keep the first encountered. Dates
// compare as ISO strings; an unknown date falls back to an epoch
// sentinel older than any real release.
func Select(
	printings []cards.RawCard,
	releaseDates map[string]string,
) (cards.RawCard, []string) {
	if len(printings) == 1 {
		only := printings[0]
		return only, []string{only.SetCode}
	}

	legalSets := distinctSets(printings)

	lowest := 0
	for _, p := range printings {
		r := rank(p.Rarity)
		if lowest == 0 || r < lowest {
			lowest = r
		}
	}

	var selected cards.RawCard
	bestDate := ""
	for _, p := range printings {
		if rank(p.Rarity) != lowest {
			continue
		}
		date := releaseDates[p.SetCode]
		if date == "" {
			date = epochDate
		}
		if bestDate == "" || date > bestDate {
			selected = p
			bestDate = date
		}
	}

	return selected, legalSets
}

func rank(rarity string) int {
	if r, ok := rarityRank[rarity]; ok {
		return r
	}
	return len(rarityRank) + 1
}

func distinctSets(printings []cards.RawCard) []string {
	seen := make(map[string]struct{}, len(printings))
	var res []string
	for _, p := range printings {
		if p.SetCode == "" {
			continue
		}
		if _, ok := seen[p.SetCode]; ok {
			continue
		}
		seen[p.SetCode] = struct{}{}
		res = append(res, p.SetCode)
	}
	sort.Strings(res)
	return res
}
