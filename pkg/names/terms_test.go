package names_test

import (
	"testing"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/names"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termValues(terms []names.Term) []string {
	res := make([]string, 0, len(terms))
	for _, t := range terms {
		res = append(res, t.Value)
	}
	return res
}

func TestGenerateSimpleName(t *testing.T) {
	terms := names.Generate("Lightning Bolt", nil)
	require.NotEmpty(t, terms)

	// Primary first, and only once.
	assert.Equal(t, "lightningbolt", terms[0].Value)
	assert.True(t, terms[0].IsPrimary)

	primaries := 0
	for _, tm := range terms {
		if tm.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)

	// The prefixed alternate normalizes to the same key, so a simple
	// name collapses to a single term.
	assert.Len(t, terms, 1)
}

func TestGenerateSplitCard(t *testing.T) {
	terms := names.Generate("Fire // Ice", nil)
	values := termValues(terms)

	assert.Contains(t, values, "fire//ice")
	assert.Contains(t, values, "fire")
	assert.Contains(t, values, "ice")
	// Single-space rejoin produces the concatenated form.
	assert.Contains(t, values, "fireice")

	// No duplicates after normalization.
	seen := map[string]bool{}
	for _, v := range values {
		assert.False(t, seen[v], "duplicate term %q", v)
		seen[v] = true
	}

	assert.Equal(t, "fire//ice", terms[0].Value)
	assert.True(t, terms[0].IsPrimary)
}

func TestGenerateWithFaces(t *testing.T) {
	terms := names.Generate(
		"Delver of Secrets // Insectile Aberration",
		[]string{"Delver of Secrets", "Insectile Aberration"},
	)
	values := termValues(terms)

	assert.Contains(t, values, "delverofsecrets//insectileaberration")
	assert.Contains(t, values, "delverofsecrets")
	assert.Contains(t, values, "insectileaberration")
	assert.Contains(t, values, "delverofsecretsinsectileaberration")
}

func TestGeneratePrefixedName(t *testing.T) {
	terms := names.Generate("A-Lightning Bolt", nil)
	require.NotEmpty(t, terms)
	assert.Equal(t, "lightningbolt", terms[0].Value)
	assert.True(t, terms[0].IsPrimary)
}

func TestGenerateBlankName(t *testing.T) {
	assert.Nil(t, names.Generate("", nil))
	assert.Nil(t, names.Generate("   ", nil))
}

func TestVariations(t *testing.T) {
	vals := names.Variations("Wear // Tear")
	assert.Contains(t, vals, "wear//tear")
	assert.Contains(t, vals, "wear")
	assert.Contains(t, vals, "tear")
	assert.Contains(t, vals, "weartear")
}
