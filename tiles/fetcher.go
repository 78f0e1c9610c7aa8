package tiles

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const DefaultUserAgent = "gio-basemaps/2.0 (+https://github.com/olablt/gio-basemaps)"

// MaxTileBytes bounds the response body read for a single tile.
const MaxTileBytes = 4 << 20

// Fetcher downloads and decodes a single tile.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// StatusError reports a tile server answering with a non-200 status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tile %s: unexpected status %d", e.URL, e.Code)
}

type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewHTTPFetcher returns a fetcher using client, or http.DefaultClient when nil.
func NewHTTPFetcher(client *http.Client, userAgent string) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: userAgent,
		maxBytes:  MaxTileBytes,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "create request for tile %s", url)
	}
	// Tile usage policies require an identifying User-Agent.
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/png,image/jpeg,image/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch tile %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "decode tile %s", url)
	}
	return img, nil
}
