// Package schema provides the database schema models for the deck
// builder. GORM AutoMigrate owns table creation and migration; data
// access itself goes through pgx (see internal/iodb).
package schema

import (
	"database/sql"
	"time"
)

// Card is one persisted row per card identity. The oracle id is unique
// by construction: deduplication happens before write, a re-import
// replaces rows wholesale.
type Card struct {
	// OracleID is the stable cross-printing identity.
	OracleID string `gorm:"column:oracle_id;type:uuid;primaryKey"`

	// ScryfallID is the id of the selected canonical printing.
	ScryfallID string `gorm:"column:scryfall_id;type:uuid;not null"`

	// Three-tier name representation: verbatim source name, folded
	// human-readable form, and the aggressively normalized search key.
	OriginalName string `gorm:"column:original_name;not null"`
	DisplayName  string `gorm:"column:display_name;not null;index"`
	SearchKey    string `gorm:"column:search_key;not null;index"`

	ManaCost  string  `gorm:"column:mana_cost"`
	ManaValue float64 `gorm:"column:mana_value"`
	TypeLine  string  `gorm:"column:type_line"`
	RulesText string  `gorm:"column:rules_text;type:text"`

	// Colors and ColorIdentity are comma-joined single-letter codes.
	Colors        string `gorm:"column:colors"`
	ColorIdentity string `gorm:"column:color_identity"`

	Rarity  string `gorm:"column:rarity"`
	SetCode string `gorm:"column:set_code"`

	// LegalSets is the comma-joined, sorted list of every set code the
	// identity legally appeared in. Non-empty whenever the row exists.
	LegalSets string `gorm:"column:legal_sets;not null"`

	CanBeCommander       bool           `gorm:"column:can_be_commander;index"`
	CanBeCompanion       bool           `gorm:"column:can_be_companion"`
	CompanionRestriction sql.NullString `gorm:"column:companion_restriction"`

	// Image bundles serialized as JSON; NULL when absent.
	ImageURIs     sql.NullString `gorm:"column:image_uris;type:jsonb"`
	BackImageURIs sql.NullString `gorm:"column:back_image_uris;type:jsonb"`

	PreferredOrientation string `gorm:"column:preferred_orientation"`
	HasBackFace          bool   `gorm:"column:has_back_face"`

	// MeldPartner is a reserved placeholder; always NULL.
	MeldPartner sql.NullString `gorm:"column:meld_partner"`

	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the PostgreSQL table name for Card.
func (Card) TableName() string { return "cards" }

// SearchTerm is one lookup variant owned by a card row. Terms are
// deleted and regenerated together with their parent on re-import.
type SearchTerm struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	OracleID  string `gorm:"column:oracle_id;type:uuid;not null;index"`
	Term      string `gorm:"column:term;not null;index"`
	IsPrimary bool   `gorm:"column:is_primary"`
}

// TableName returns the PostgreSQL table name for SearchTerm.
func (SearchTerm) TableName() string { return "search_terms" }
