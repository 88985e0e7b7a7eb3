package iobulk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/brawl"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulkJSON = `[
  {"id": "print-1", "oracle_id": "oracle-1", "name": "Lightning Bolt"},
  {"id": "print-2", "oracle_id": "oracle-2", "name": "Fire // Ice"}
]`

func TestDecodeCards(t *testing.T) {
	var got []cards.RawCard
	err := decodeCards(
		context.Background(),
		strings.NewReader(bulkJSON),
		func(rec cards.RawCard) error {
			got = append(got, rec)
			return nil
		},
	)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Lightning Bolt", got[0].Name)
	assert.Equal(t, "oracle-2", got[1].OracleID)
}

func TestDecodeCardsYieldError(t *testing.T) {
	boom := errors.New("boom")
	err := decodeCards(
		context.Background(),
		strings.NewReader(bulkJSON),
		func(cards.RawCard) error { return boom },
	)
	assert.ErrorIs(t, err, boom)
}

func TestDecodeCardsBadJSON(t *testing.T) {
	err := decodeCards(
		context.Background(),
		strings.NewReader(`{"not": "an array"`),
		func(cards.RawCard) error { return nil },
	)
	assert.Error(t, err)
}

func TestStreamCardsReusesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(bulkJSON))
		}))
	defer srv.Close()

	cfg := config.New()
	source := NewClient(t.TempDir(), &cfg.Import)

	desc := &brawl.BulkDescriptor{
		DownloadURI: srv.URL + "/default-cards.json",
		Size:        int64(len(bulkJSON)),
		UpdatedAt:   time.Now(),
	}

	var bytesSeen int64
	var count int
	yield := func(cards.RawCard) error {
		count++
		return nil
	}
	onBytes := func(n int64) { bytesSeen = n }

	require.NoError(t, source.StreamCards(
		context.Background(), desc, onBytes, yield))
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(len(bulkJSON)), bytesSeen)

	// The second run decodes the cached file without re-downloading.
	require.NoError(t, source.StreamCards(
		context.Background(), desc, nil, yield))
	assert.Equal(t, 4, count)
	assert.Equal(t, int32(1), hits.Load())
}

func TestStreamCardsForceRedownloads(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(bulkJSON))
		}))
	defer srv.Close()

	cfg := config.New()
	cfg.Update([]config.Option{config.OptImportForceDownload(true)})
	source := NewClient(t.TempDir(), &cfg.Import)

	desc := &brawl.BulkDescriptor{
		DownloadURI: srv.URL + "/default-cards.json",
		Size:        int64(len(bulkJSON)),
		UpdatedAt:   time.Now(),
	}
	yield := func(cards.RawCard) error { return nil }

	require.NoError(t, source.StreamCards(
		context.Background(), desc, nil, yield))
	require.NoError(t, source.StreamCards(
		context.Background(), desc, nil, yield))
	assert.Equal(t, int32(2), hits.Load())
}

func TestStreamCardsDownloadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
	defer srv.Close()

	cfg := config.New()
	source := NewClient(t.TempDir(), &cfg.Import)

	desc := &brawl.BulkDescriptor{
		DownloadURI: srv.URL + "/default-cards.json",
		UpdatedAt:   time.Now(),
	}
	err := source.StreamCards(context.Background(), desc, nil,
		func(cards.RawCard) error { return nil })
	assert.Error(t, err)
}
