package pipeline_test

import (
	"fmt"
	"testing"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformBasicFields(t *testing.T) {
	raw := cards.RawCard{
		ID:            "scry-1",
		OracleID:      "oracle-1",
		Name:          "A-Kiora, the Tide's Fury",
		ManaCost:      "{2}{U}",
		CMC:           3,
		TypeLine:      "Legendary Creature — Merfolk Wizard",
		OracleText:    "Flash",
		Colors:        []string{"U"},
		ColorIdentity: []string{"U"},
		Rarity:        "rare",
		SetCode:       "y22",
	}

	got, err := pipeline.Transform(raw, []string{"y22"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "oracle-1", got.OracleID)
	assert.Equal(t, "scry-1", got.ScryfallID)
	assert.Equal(t, "A-Kiora, the Tide's Fury", got.OriginalName)
	assert.Equal(t, "Kiora, the Tide's Fury", got.DisplayName)
	assert.Equal(t, "kiorathetidesfury", got.SearchKey)
	assert.Equal(t, []string{"y22"}, got.LegalSets)
	assert.True(t, got.CanBeCommander)
	assert.False(t, got.CanBeCompanion)
	assert.Empty(t, got.CompanionRestriction)
}

func TestTransformCommanderEligibility(t *testing.T) {
	tests := []struct {
		typeLine string
		want     bool
	}{
		{"Legendary Creature — Human Wizard", true},
		{"Legendary Planeswalker — Teferi", true},
		{"Legendary Enchantment", false},
		{"Creature — Bear", false},
		{"LEGENDARY CREATURE", true},
	}

	for _, tt := range tests {
		raw := cards.RawCard{
			ID:       "scry-1",
			OracleID: "oracle-1",
			Name:     "Test Card",
			TypeLine: tt.typeLine,
		}
		got, err := pipeline.Transform(raw, []string{"set"}, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.CanBeCommander,
			"type line %q", tt.typeLine)
	}
}

func TestTransformCompanionRestriction(t *testing.T) {
	raw := cards.RawCard{
		ID:       "scry-1",
		OracleID: "oracle-1",
		Name:     "Lurrus of the Dream-Den",
		TypeLine: "Legendary Creature — Cat Nightmare",
		OracleText: "Companion — Each permanent card in your starting " +
			"deck has mana value 2 or less. (If this card is your " +
			"chosen companion, you may put it into your hand.)\n" +
			"Lifelink",
	}

	got, err := pipeline.Transform(raw, []string{"iko"}, nil)
	require.NoError(t, err)

	assert.True(t, got.CanBeCompanion)
	assert.Contains(t, got.CompanionRestriction, "chosen companion")
}

func TestTransformImageFallback(t *testing.T) {
	own := &cards.ImageURIs{Normal: "own.jpg"}
	front := &cards.ImageURIs{Normal: "front.jpg"}
	back := &cards.ImageURIs{Normal: "back.jpg"}

	tests := []struct {
		name      string
		raw       cards.RawCard
		wantFront string
		wantBack  string
		backFace  bool
	}{
		{
			name: "own images preferred",
			raw: cards.RawCard{
				ID: "1", OracleID: "o1", Name: "Single",
				ImageURIs: own,
				CardFaces: []cards.CardFace{{Name: "Single", ImageURIs: front}},
			},
			wantFront: "own.jpg",
		},
		{
			name: "first face fallback and back face",
			raw: cards.RawCard{
				ID: "2", OracleID: "o2", Name: "Front // Back",
				CardFaces: []cards.CardFace{
					{Name: "Front", ImageURIs: front},
					{Name: "Back", ImageURIs: back},
				},
			},
			wantFront: "front.jpg",
			wantBack:  "back.jpg",
			backFace:  true,
		},
		{
			name: "no images anywhere",
			raw: cards.RawCard{
				ID: "3", OracleID: "o3", Name: "Plain",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.Transform(tt.raw, []string{"set"}, nil)
			require.NoError(t, err)

			if tt.wantFront == "" {
				assert.Nil(t, got.ImageURIs)
			} else {
				require.NotNil(t, got.ImageURIs)
				assert.Equal(t, tt.wantFront, got.ImageURIs.Normal)
			}
			if tt.wantBack == "" {
				assert.Nil(t, got.BackImageURIs)
			} else {
				require.NotNil(t, got.BackImageURIs)
				assert.Equal(t, tt.wantBack, got.BackImageURIs.Normal)
			}
			assert.Equal(t, tt.backFace, got.DisplayHints.HasBackFace)
			assert.Empty(t, got.DisplayHints.MeldPartner)
		})
	}
}

func TestTransformValidation(t *testing.T) {
	_, err := pipeline.Transform(
		cards.RawCard{ID: "scry-1", Name: "No Oracle"}, nil, nil)
	var verr *pipeline.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "oracle_id", verr.Field)

	_, err = pipeline.Transform(
		cards.RawCard{ID: "scry-2", OracleID: "o1"}, nil, nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestTransformSearchTerms(t *testing.T) {
	raw := cards.RawCard{
		ID:       "scry-1",
		OracleID: "oracle-1",
		Name:     "Fire // Ice",
		CardFaces: []cards.CardFace{
			{Name: "Fire"},
			{Name: "Ice"},
		},
	}

	got, err := pipeline.Transform(raw, []string{"apc"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, got.SearchTerms)

	assert.Equal(t, "fire//ice", got.SearchTerms[0].Term)
	assert.True(t, got.SearchTerms[0].IsPrimary)

	primaries := 0
	values := make([]string, 0, len(got.SearchTerms))
	for _, st := range got.SearchTerms {
		assert.Equal(t, "oracle-1", st.OracleID)
		values = append(values, st.Term)
		if st.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
	assert.Contains(t, values, "fire")
	assert.Contains(t, values, "ice")
}

func TestTransformDebugSinkDoesNotAffectResult(t *testing.T) {
	raw := cards.RawCard{
		ID:       "scry-1",
		OracleID: "oracle-1",
		Name:     "Serra Angel",
	}

	var msgs []string
	debug := func(format string, args ...any) {
		msgs = append(msgs, fmt.Sprintf(format, args...))
	}

	plain, err := pipeline.Transform(raw, []string{"set"}, nil)
	require.NoError(t, err)
	debugged, err := pipeline.Transform(raw, []string{"set"}, debug)
	require.NoError(t, err)

	assert.NotEmpty(t, msgs)
	assert.Equal(t, plain.SearchKey, debugged.SearchKey)
	assert.Equal(t, plain.SearchTerms, debugged.SearchTerms)
}
