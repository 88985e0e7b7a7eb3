// Package iobulk implements the BulkSource contract against the
// Scryfall bulk data API. This is an impure I/O package: it talks to
// the network and caches downloads on disk.
package iobulk

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/brawl"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/config"
	"golang.org/x/time/rate"
)

const (
	baseURL        = "https://api.scryfall.com"
	bulkType       = "default_cards"
	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
	userAgent      = "brawldeck/1.0"
)

// bulkEntry is one item of the /bulk-data list response.
type bulkEntry struct {
	Type        string    `json:"type"`
	DownloadURI string    `json:"download_uri"`
	Size        int64     `json:"size"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type bulkList struct {
	Data []bulkEntry `json:"data"`
}

// client implements brawl.BulkSource with rate limiting and a local
// download cache.
type client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cacheDir    string
	maxAge      time.Duration
	force       bool
}

// NewClient creates a bulk source that caches downloads in cacheDir.
func NewClient(cacheDir string, cfg *config.ImportConfig) brawl.BulkSource {
	return &client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// 1 request per 100ms, the limit Scryfall asks clients to
		// stay under
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		cacheDir:    cacheDir,
		maxAge:      time.Duration(cfg.MaxAgeHours) * time.Hour,
		force:       cfg.ForceDownload,
	}
}

// Descriptor fetches the bulk data catalog and returns the entry for
// the default cards file, which carries every printing.
func (c *client) Descriptor(
	ctx context.Context,
) (*brawl.BulkDescriptor, error) {
	url := baseURL + "/bulk-data"

	var list bulkList
	if err := c.doRequest(ctx, url, &list); err != nil {
		return nil, DescriptorError(err)
	}

	for _, entry := range list.Data {
		if entry.Type == bulkType {
			return &brawl.BulkDescriptor{
				DownloadURI: entry.DownloadURI,
				Size:        entry.Size,
				UpdatedAt:   entry.UpdatedAt,
			}, nil
		}
	}

	return nil, DescriptorMissingError(bulkType)
}

// StreamCards downloads the bulk file (or reuses a fresh cached copy)
// and decodes it one card at a time.
func (c *client) StreamCards(
	ctx context.Context,
	desc *brawl.BulkDescriptor,
	onBytes func(int64),
	yield func(cards.RawCard) error,
) error {
	path, err := c.ensureFile(ctx, desc, onBytes)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return DownloadError(desc.DownloadURI, err)
	}
	defer file.Close()

	return decodeCards(ctx, bufio.NewReaderSize(file, 64*1024), yield)
}

// ensureFile returns the path of a usable local copy of the bulk file,
// downloading it when the cached copy is missing or stale.
func (c *client) ensureFile(
	ctx context.Context,
	desc *brawl.BulkDescriptor,
	onBytes func(int64),
) (string, error) {
	fileName := filepath.Base(desc.DownloadURI)
	filePath := filepath.Join(c.cacheDir, fileName)

	if !c.force {
		if info, err := os.Stat(filePath); err == nil {
			if time.Since(info.ModTime()) < c.maxAge {
				return filePath, nil
			}
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", DownloadError(desc.DownloadURI, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, desc.DownloadURI, nil)
	if err != nil {
		return "", DownloadError(desc.DownloadURI, err)
	}
	req.Header.Set("User-Agent", userAgent)

	// No client timeout here; bulk files run to hundreds of MB and
	// the context controls cancellation.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", DownloadError(desc.DownloadURI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", DownloadStatusError(desc.DownloadURI, resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(c.cacheDir, "bulk-*.tmp")
	if err != nil {
		return "", DownloadError(desc.DownloadURI, err)
	}
	tmpPath := tmpFile.Name()

	src := io.Reader(resp.Body)
	if onBytes != nil {
		src = &countingReader{r: resp.Body, onBytes: onBytes}
	}

	if _, err := io.Copy(tmpFile, src); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", DownloadError(desc.DownloadURI, err)
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return "", DownloadError(desc.DownloadURI, err)
	}

	return filePath, nil
}

// decodeCards streams a JSON array of card objects, calling yield for
// each element. The whole file is never held in memory.
func decodeCards(
	ctx context.Context,
	r io.Reader,
	yield func(cards.RawCard) error,
) error {
	dec := json.NewDecoder(r)

	// Opening bracket of the array.
	if _, err := dec.Token(); err != nil {
		return DecodeError(err)
	}

	for dec.More() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var rec cards.RawCard
		if err := dec.Decode(&rec); err != nil {
			return DecodeError(err)
		}
		if err := yield(rec); err != nil {
			return err
		}
	}

	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return DecodeError(err)
	}

	return nil
}

// countingReader reports the cumulative number of bytes read.
type countingReader struct {
	r       io.Reader
	n       int64
	onBytes func(int64)
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	cr.onBytes(cr.n)
	return n, err
}

// doRequest performs a GET with rate limiting and retry logic.
func (c *client) doRequest(
	ctx context.Context,
	url string,
	result any,
) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(
			ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return err
			}
			return json.Unmarshal(body, result)

		case http.StatusTooManyRequests:
			resp.Body.Close()
			lastErr = DownloadStatusError(url, resp.StatusCode)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		default:
			resp.Body.Close()
			return DownloadStatusError(url, resp.StatusCode)
		}
	}

	return lastErr
}
