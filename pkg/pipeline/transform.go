package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/names"
)

// companionClause captures the reminder text following the companion
// keyword, e.g. "Companion — Each creature card in your starting deck
// (has ...)".
var companionClause = regexp.MustCompile(`(?i)companion[^(]*\(([^)]+)\)`)

// landscapeLayouts are card layouts displayed rotated by convention.
var landscapeLayouts = map[string]struct{}{
	"split":  {},
	"planar": {},
	"battle": {},
}

// ValidationError reports a raw record that fails required-field checks
// after selection. It is an expected per-record failure: collected by
// the orchestrator, never thrown.
type ValidationError struct {
	ScryfallID string
	Field      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"record %q is missing required field %s",
		e.ScryfallID, e.Field,
	)
}

// Transform converts one selected raw printing (plus the legal-set list
// attached by Select) into its persisted canonical shape. It derives
// commander and companion eligibility, resolves image fallbacks, builds
// the three-tier name representation, and generates search terms.
//
// The debug sink, when non-nil, receives normalization diagnostics; it
// never affects the result.
func Transform(
	raw cards.RawCard,
	legalSets []string,
	debug cards.DebugFunc,
) (cards.CanonicalCard, error) {
	if raw.OracleID == "" {
		return cards.CanonicalCard{},
			&ValidationError{ScryfallID: raw.ID, Field: "oracle_id"}
	}
	if raw.Name == "" {
		return cards.CanonicalCard{},
			&ValidationError{ScryfallID: raw.ID, Field: "name"}
	}

	if debug != nil {
		info := names.Modifications(raw.Name)
		debug("transforming %q: prefix=%t special=%t sep=%t ws=%t key=%q",
			raw.Name, info.HasVariantPrefix, info.HasSpecialChars,
			info.HasNonCanonicalSep, info.HasExtraWhitespace,
			info.SearchKey)
	}

	res := cards.CanonicalCard{
		OracleID:      raw.OracleID,
		ScryfallID:    raw.ID,
		OriginalName:  raw.Name,
		DisplayName:   names.ForDisplay(raw.Name),
		SearchKey:     names.ForSearch(raw.Name),
		ManaCost:      raw.ManaCost,
		ManaValue:     raw.CMC,
		TypeLine:      raw.TypeLine,
		RulesText:     raw.OracleText,
		Colors:        raw.Colors,
		ColorIdentity: raw.ColorIdentity,
		Rarity:        raw.Rarity,
		SetCode:       raw.SetCode,
		LegalSets:     legalSets,
		UpdatedAt:     time.Now().UTC(),
	}

	res.CanBeCommander = canBeCommander(raw.TypeLine)
	res.CanBeCompanion, res.CompanionRestriction =
		companionInfo(raw.OracleText)

	res.ImageURIs = firstPresent(raw.ImageURIs, faceImages(raw, 0))
	res.BackImageURIs = faceImages(raw, 1)

	res.DisplayHints = cards.DisplayHints{
		PreferredOrientation: orientation(raw.Layout),
		HasBackFace:          res.BackImageURIs != nil,
		// MeldPartner stays empty: partner detection is not
		// implemented, the column is a stable placeholder.
	}

	res.SearchTerms = searchTerms(raw)

	return res, nil
}

// canBeCommander reports commander eligibility: a legendary creature or
// planeswalker, by case-insensitive type-line substring checks.
func canBeCommander(typeLine string) bool {
	tl := strings.ToLower(typeLine)
	if !strings.Contains(tl, "legendary") {
		return false
	}
	return strings.Contains(tl, "creature") ||
		strings.Contains(tl, "planeswalker")
}

// companionInfo reports companion eligibility and, when eligible, the
// parenthesized deck-building restriction following the keyword.
func companionInfo(rulesText string) (bool, string) {
	if !strings.Contains(strings.ToLower(rulesText), "companion") {
		return false, ""
	}
	m := companionClause.FindStringSubmatch(rulesText)
	if m == nil {
		return true, ""
	}
	return true, m[1]
}

// firstPresent returns the first non-nil image bundle from an ordered
// list of sources. Keeping the fallback order in one place makes the
// image-resolution rule auditable.
func firstPresent(sources ...*cards.ImageURIs) *cards.ImageURIs {
	for _, s := range sources {
		if s != nil {
			return s
		}
	}
	return nil
}

func faceImages(raw cards.RawCard, i int) *cards.ImageURIs {
	if i >= len(raw.CardFaces) {
		return nil
	}
	return raw.CardFaces[i].ImageURIs
}

func orientation(layout string) string {
	if _, ok := landscapeLayouts[layout]; ok {
		return "landscape"
	}
	return "portrait"
}

// searchTerms generates the lookup variants for a record from its name
// and any sub-face names.
func searchTerms(raw cards.RawCard) []cards.SearchTerm {
	faceNames := make([]string, 0, len(raw.CardFaces))
	for _, f := range raw.CardFaces {
		faceNames = append(faceNames, f.Name)
	}

	terms := names.Generate(raw.Name, faceNames)
	res := make([]cards.SearchTerm, 0, len(terms))
	for _, t := range terms {
		res = append(res, cards.SearchTerm{
			OracleID:  raw.OracleID,
			Term:      t.Value,
			IsPrimary: t.IsPrimary,
		})
	}
	return res
}
