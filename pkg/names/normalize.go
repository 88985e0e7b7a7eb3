// Package names implements the normalization contract shared by the
// import pipeline and the search resolver. Card names exist in three
// tiers: the original string as delivered by the bulk source, a
// human-readable display form, and an aggressively normalized search
// key used for equality and prefix matching.
//
// All functions are pure string transforms with no shared mutable
// state.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// VariantPrefix marks digital-only (Alchemy) editions of a card,
	// e.g. "A-Lightning Bolt".
	VariantPrefix = "A-"

	// FaceSeparator is the canonical token joining the names of a
	// multi-part card's components.
	FaceSeparator = " // "

	// sepMarker protects the face separator while non-alphanumeric
	// characters are stripped from search keys.
	sepMarker = "\x01"
)

var (
	// slashRun matches any run of slashes together with surrounding
	// whitespace; it is replaced by the canonical face separator.
	slashRun = regexp.MustCompile(`\s*/+\s*`)

	// spaceRun collapses internal whitespace runs.
	spaceRun = regexp.MustCompile(`\s+`)

	// nonAlnum strips everything that is not a letter, digit or the
	// separator marker from a search key.
	nonAlnum = regexp.MustCompile("[^a-z0-9\x01]+")
)

// ligatures maps precomposed characters that Unicode decomposition
// alone does not reduce to ASCII.
var ligatures = strings.NewReplacer(
	"Æ", "AE",
	"æ", "ae",
	"Œ", "OE",
	"œ", "oe",
	"ß", "ss",
	"Ð", "D",
	"ð", "d",
	"Þ", "Th",
	"þ", "th",
	"Ø", "O",
	"ø", "o",
	"Ł", "L",
	"ł", "l",
)

// ForDisplay normalizes a raw card name into its human-readable form:
// the digital-variant prefix is stripped (from the whole name and from
// each face around the separator), slash runs become the canonical
// " // " separator, accents and ligatures fold to ASCII, and whitespace
// runs collapse to single spaces. Case is preserved.
func ForDisplay(name string) string {
	if name == "" {
		return ""
	}

	s := slashRun.ReplaceAllString(name, FaceSeparator)
	s = stripVariantPrefix(s)
	s = foldAccents(s)
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ForSearch normalizes a raw card name into its search key: the same
// transformations as ForDisplay, then lowercasing, then removal of
// every character that is not alphanumeric. The face separator is
// protected during stripping so split-card keys keep their "//" token.
func ForSearch(name string) string {
	if name == "" {
		return ""
	}

	s := strings.ToLower(ForDisplay(name))
	s = strings.ReplaceAll(s, strings.ToLower(FaceSeparator), sepMarker)
	s = nonAlnum.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, sepMarker, "//")
}

// stripVariantPrefix removes the digital-variant prefix from a name and
// from each face of a multi-part name.
func stripVariantPrefix(name string) string {
	if !strings.Contains(name, VariantPrefix) {
		return name
	}
	faces := strings.Split(name, FaceSeparator)
	for i, face := range faces {
		faces[i] = strings.TrimPrefix(face, VariantPrefix)
	}
	return strings.Join(faces, FaceSeparator)
}

// foldAccents reduces accented Latin letters and known ligatures to
// their closest unaccented ASCII letters: a fixed substitution table
// first, then Unicode decomposition with combining marks dropped.
func foldAccents(s string) string {
	s = ligatures.Replace(s)
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
