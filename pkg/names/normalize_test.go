package names_test

import (
	"testing"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/names"
	"github.com/stretchr/testify/assert"
)

func TestForDisplay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain name", "Lightning Bolt", "Lightning Bolt"},
		{"variant prefix", "A-Lightning Bolt", "Lightning Bolt"},
		{"prefix on both faces", "A-Fire // A-Ice", "Fire // Ice"},
		{"single slash", "Fire / Ice", "Fire // Ice"},
		{"slash run", "Fire///Ice", "Fire // Ice"},
		{"tight slashes", "Fire/Ice", "Fire // Ice"},
		{"canonical separator kept", "Fire // Ice", "Fire // Ice"},
		{"ligature", "Æther Vial", "AEther Vial"},
		{"accents", "Lörièn", "Lorien"},
		{"case preserved", "JÖTUN Grunt", "JOTUN Grunt"},
		{"whitespace collapsed", "  Serra   Angel  ", "Serra Angel"},
		{"apostrophe kept for display", "Gaea's Cradle", "Gaea's Cradle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names.ForDisplay(tt.input))
		})
	}
}

func TestForSearch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain name", "Lightning Bolt", "lightningbolt"},
		{"punctuation stripped", "Gaea's Cradle", "gaeascradle"},
		{"ligature folded", "Æther Vial", "aethervial"},
		{"accents folded", "Lörièn", "lorien"},
		{"variant prefix stripped", "A-Lightning Bolt", "lightningbolt"},
		{"separator protected", "Fire // Ice", "fire//ice"},
		{"slash run canonicalized", "Fire///Ice", "fire//ice"},
		{"comma and hyphen", "Borborygmos, Enraged", "borborygmosenraged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names.ForSearch(tt.input))
		})
	}
}

// The search key is a fixed point: re-feeding it through the
// normalizers yields the same key.
func TestSearchKeyIdempotent(t *testing.T) {
	inputs := []string{
		"Lightning Bolt",
		"A-Fire // A-Ice",
		"Æther Vial",
		"Lörièn",
		"Wear // Tear",
	}
	for _, in := range inputs {
		once := names.ForSearch(in)
		again := names.ForSearch(names.ForDisplay(once))
		assert.Equal(t, once, again, "input %q", in)
		assert.Equal(t, once, names.ForSearch(once), "input %q", in)
	}
}

// The variant prefix is fully removed: a prefixed name yields the same
// key as the bare one.
func TestVariantPrefixRoundTrip(t *testing.T) {
	bare := []string{"Lightning Bolt", "Serra Angel", "Fire // Ice"}
	for _, n := range bare {
		assert.Equal(t,
			names.ForSearch(n),
			names.ForSearch("A-"+n),
			"name %q", n)
	}
}

func TestSeparatorCanonicalization(t *testing.T) {
	want := "Fire // Ice"
	for _, in := range []string{"Fire / Ice", "Fire///Ice", "Fire // Ice"} {
		assert.Equal(t, want, names.ForDisplay(in), "input %q", in)
	}
}

func TestModifications(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  names.ModificationInfo
	}{
		{
			name:  "plain",
			input: "Serra Angel",
			want: names.ModificationInfo{
				SearchKey: "serraangel",
			},
		},
		{
			name:  "prefixed",
			input: "A-Serra Angel",
			want: names.ModificationInfo{
				HasVariantPrefix: true,
				HasSpecialChars:  true,
				SearchKey:        "serraangel",
			},
		},
		{
			name:  "non-canonical separator",
			input: "Fire/Ice",
			want: names.ModificationInfo{
				HasNonCanonicalSep: true,
				SearchKey:          "fire//ice",
			},
		},
		{
			name:  "extra whitespace",
			input: "Serra  Angel",
			want: names.ModificationInfo{
				HasExtraWhitespace: true,
				SearchKey:          "serraangel",
			},
		},
		{
			name:  "empty",
			input: "",
			want:  names.ModificationInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names.Modifications(tt.input))
		})
	}
}
