package schema_test

import (
	"testing"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "cards", schema.Card{}.TableName())
	assert.Equal(t, "search_terms", schema.SearchTerm{}.TableName())
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 2)
	assert.IsType(t, &schema.Card{}, models[0])
	assert.IsType(t, &schema.SearchTerm{}, models[1])
}

func TestListColumns(t *testing.T) {
	tests := []struct {
		msg    string
		slice  []string
		joined string
	}{
		{"empty", nil, ""},
		{"single", []string{"W"}, "W"},
		{"multi", []string{"W", "U", "B"}, "W,U,B"},
		{"sets", []string{"m21", "sta", "dmu"}, "m21,sta,dmu"},
	}

	for _, v := range tests {
		assert.Equal(t, v.joined, schema.JoinList(v.slice), v.msg)
		assert.Equal(t, v.slice, schema.SplitList(v.joined), v.msg)
	}
}
