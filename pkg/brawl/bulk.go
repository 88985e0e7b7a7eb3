package brawl

import (
	"context"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
)

// BulkDescriptor describes a Scryfall bulk data file: where to download
// it, how large it is, and when Scryfall last regenerated it. The
// UpdatedAt timestamp is compared against the newest stored card to
// decide whether a fresh import would change anything.
type BulkDescriptor struct {
	DownloadURI string
	Size        int64
	UpdatedAt   time.Time
}

// BulkSource defines the interface for fetching Scryfall bulk card
// data. Implementations handle rate limiting, gzip decoding, and local
// caching of downloaded files.
type BulkSource interface {
	// Descriptor fetches metadata for the configured bulk data type.
	Descriptor(ctx context.Context) (*BulkDescriptor, error)

	// StreamCards downloads the bulk file described by desc and
	// decodes it one card at a time, calling yield for each. Decoding
	// stops when yield returns an error or the context is canceled.
	// onBytes, when non-nil, receives the cumulative number of bytes
	// read from the network for progress reporting.
	StreamCards(ctx context.Context, desc *BulkDescriptor, onBytes func(int64), yield func(cards.RawCard) error) error
}
