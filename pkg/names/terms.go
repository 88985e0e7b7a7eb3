package names

import (
	"strings"
)

// Term is one candidate lookup entry for a card name. The Value is
// always in search-key form; IsPrimary marks the card's true primary
// name and is set on at most one term.
type Term struct {
	Value     string
	IsPrimary bool
}

// alternateSeparators are the join tokens users plausibly type between
// the components of a multi-part card name.
var alternateSeparators = []string{" ", " / ", " // ", " /// "}

// Generate builds the candidate lookup set for a raw card name and the
// names of its explicit sub-faces. All variants are normalized to
// search-key form and deduplicated; only the first occurrence of the
// primary name keeps IsPrimary=true.
func Generate(rawName string, faceNames []string) []Term {
	if strings.TrimSpace(rawName) == "" {
		return nil
	}

	c := newTermCollector()
	c.add(rawName, true)
	c.addPrefixAlternate(rawName)

	display := ForDisplay(rawName)
	if strings.Contains(display, FaceSeparator) {
		parts := strings.Split(display, FaceSeparator)
		for _, part := range parts {
			c.add(part, false)
			c.addPrefixAlternate(part)
		}
		c.addJoinedVariants(parts)
	}

	var distinctFaces []string
	for _, face := range faceNames {
		if face == "" || face == rawName {
			continue
		}
		c.add(face, false)
		c.addPrefixAlternate(face)
		distinctFaces = append(distinctFaces, face)
	}
	if len(distinctFaces) > 1 {
		c.addJoinedVariants(distinctFaces)
	}

	return c.terms
}

// Variations returns the lookup variants of a query string in
// search-key form, in generation order. Used by exact-match search to
// probe every plausible stored term.
func Variations(query string) []string {
	terms := Generate(query, nil)
	res := make([]string, 0, len(terms))
	for _, t := range terms {
		res = append(res, t.Value)
	}
	return res
}

// termCollector accumulates terms, deduplicating by normalized form.
type termCollector struct {
	terms []Term
	seen  map[string]struct{}
}

func newTermCollector() *termCollector {
	return &termCollector{seen: make(map[string]struct{})}
}

// add normalizes a candidate and appends it unless the normalized form
// was already collected.
func (c *termCollector) add(raw string, primary bool) {
	key := ForSearch(raw)
	if key == "" {
		return
	}
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.terms = append(c.terms, Term{Value: key, IsPrimary: primary})
}

// addPrefixAlternate adds the opposite digital-variant form: unprefixed
// for a prefixed name, prefixed otherwise.
func (c *termCollector) addPrefixAlternate(name string) {
	if strings.HasPrefix(name, VariantPrefix) {
		c.add(strings.TrimPrefix(name, VariantPrefix), false)
		return
	}
	c.add(VariantPrefix+name, false)
}

// addJoinedVariants rejoins multi-part name components under each
// alternate separator, plus prefix-mixed forms of every rejoined
// variant.
func (c *termCollector) addJoinedVariants(parts []string) {
	prefixed := make([]string, len(parts))
	for i, part := range parts {
		prefixed[i] = VariantPrefix + strings.TrimPrefix(part, VariantPrefix)
	}

	for _, sep := range alternateSeparators {
		joined := strings.Join(parts, sep)
		c.add(joined, false)
		c.add(VariantPrefix+joined, false)
		c.add(strings.Join(prefixed, sep), false)
	}
}
