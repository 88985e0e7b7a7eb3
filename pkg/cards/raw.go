// Package cards provides the domain types shared by the import pipeline
// and the search resolver: raw bulk records as delivered by Scryfall,
// canonical per-identity records as persisted, and the transient
// progress/result values of an import run.
package cards

// RawCard is a card record as delivered by the Scryfall bulk dataset.
// One RawCard describes one printing; printings of the same underlying
// card share an OracleID. Immutable once decoded; its lifetime is one
// import run.
type RawCard struct {
	// ID is the per-printing Scryfall identifier.
	ID string `json:"id"`

	// OracleID is stable across every printing of the same card.
	OracleID string `json:"oracle_id"`

	Name          string     `json:"name"`
	Lang          string     `json:"lang"`
	ReleasedAt    string     `json:"released_at"`
	Layout        string     `json:"layout"`
	ImageURIs     *ImageURIs `json:"image_uris,omitempty"`
	ManaCost      string     `json:"mana_cost,omitempty"`
	CMC           float64    `json:"cmc"`
	TypeLine      string     `json:"type_line"`
	OracleText    string     `json:"oracle_text,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	ColorIdentity []string   `json:"color_identity"`

	// Print details
	SetCode string `json:"set"`
	SetName string `json:"set_name"`
	Rarity  string `json:"rarity"`

	// CardFaces holds the sub-faces of split, adventure and
	// double-faced cards.
	CardFaces []CardFace `json:"card_faces,omitempty"`

	// Legalities maps format name to legality status ("legal",
	// "not_legal", "banned", "restricted").
	Legalities map[string]string `json:"legalities"`

	// Games lists the platforms the printing is available on
	// ("paper", "arena", "mtgo").
	Games []string `json:"games,omitempty"`
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost,omitempty"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small      string `json:"small,omitempty"`
	Normal     string `json:"normal,omitempty"`
	Large      string `json:"large,omitempty"`
	PNG        string `json:"png,omitempty"`
	ArtCrop    string `json:"art_crop,omitempty"`
	BorderCrop string `json:"border_crop,omitempty"`
}
