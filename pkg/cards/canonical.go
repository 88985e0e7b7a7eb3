package cards

import "time"

// CanonicalCard is the persisted record for one card identity. Exactly
// one canonical printing represents the identity in the store; the full
// set of eligible printings is retained only as LegalSets. A re-import
// replaces rows wholesale, it never patches them.
type CanonicalCard struct {
	// OracleID is the stable cross-printing identity. Unique across
	// the table; uniqueness is enforced by deduplication before write.
	OracleID string

	// ScryfallID is the id of the selected canonical printing.
	ScryfallID string

	// Three-tier name representation.
	OriginalName string
	DisplayName  string
	SearchKey    string

	ManaCost      string
	ManaValue     float64
	TypeLine      string
	RulesText     string
	Colors        []string
	ColorIdentity []string
	Rarity        string
	SetCode       string

	// LegalSets holds every set code (of eligible printings) the
	// identity appeared in, sorted. Non-empty whenever the record
	// exists.
	LegalSets []string

	CanBeCommander       bool
	CanBeCompanion       bool
	CompanionRestriction string

	ImageURIs     *ImageURIs
	BackImageURIs *ImageURIs

	DisplayHints DisplayHints

	// SearchTerms are the lookup variants generated for this card.
	// Persisted to the search_terms table alongside the record.
	SearchTerms []SearchTerm

	UpdatedAt time.Time
}

// DisplayHints carries presentation metadata derived during transform.
type DisplayHints struct {
	PreferredOrientation string

	// HasBackFace is true when a second card face supplies its own
	// image set.
	HasBackFace bool

	// MeldPartner is reserved; detection is not implemented and the
	// field is always empty. Kept so the persisted shape is stable.
	MeldPartner string
}

// SearchTerm is one lookup variant for a canonical card. Many terms map
// to one card; terms are deleted and regenerated on re-import.
type SearchTerm struct {
	OracleID  string
	Term      string
	IsPrimary bool
}
