// Package basemap describes slippy-map tile sources and resolves tile
// addresses to fetch URLs.
package basemap

import (
	"fmt"
)

const DefaultTileSize = 256

// Source is an immutable description of a tile provider.
type Source struct {
	Name        string
	MinZoom     int
	MaxZoom     int
	TileSize    int
	URL         string // base URL or template, interpreted by Dialect
	Dialect     Dialect
	Attribution string
}

// TileAddress identifies a tile at a display zoom level.
type TileAddress struct {
	X         int
	Y         int
	ZoomLevel int
}

func (a TileAddress) String() string {
	return fmt.Sprintf("%d/%d/%d", a.ZoomLevel, a.X, a.Y)
}

// ProviderZoom converts a display zoom level into the zoom requested from
// the provider. Display levels run the other way round: MaxZoom is the whole
// world, MinZoom the most detailed level.
func (s Source) ProviderZoom(zoomLevel int) int {
	return s.MaxZoom - zoomLevel
}

// TileURL returns the fetch URL for addr.
func (s Source) TileURL(addr TileAddress) string {
	return s.Dialect.TileURL(s.URL, addr.X, addr.Y, s.ProviderZoom(addr.ZoomLevel))
}

// ClampZoom limits zoomLevel to [MinZoom, MaxZoom].
func (s Source) ClampZoom(zoomLevel int) int {
	return max(s.MinZoom, min(zoomLevel, s.MaxZoom))
}

func (s Source) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSource)
	}
	if s.MinZoom > s.MaxZoom {
		return fmt.Errorf("%w: %s: min zoom %d above max zoom %d", ErrInvalidSource, s.Name, s.MinZoom, s.MaxZoom)
	}
	if s.TileSize <= 0 {
		return fmt.Errorf("%w: %s: tile size %d", ErrInvalidSource, s.Name, s.TileSize)
	}
	if s.URL == "" {
		return fmt.Errorf("%w: %s: empty url", ErrInvalidSource, s.Name)
	}
	switch s.Dialect.(type) {
	case nil:
		return fmt.Errorf("%w: %s: no dialect", ErrInvalidSource, s.Name)
	case PlaceholderDialect, *PlaceholderDialect:
		return validatePlaceholders(s.URL)
	}
	return nil
}
