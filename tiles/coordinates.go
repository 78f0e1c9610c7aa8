package tiles

import (
	"image"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"github.com/olablt/gio-basemaps/basemap"
)

const (
	// TileSize is the edge of a tile when the source does not say otherwise.
	TileSize = basemap.DefaultTileSize
	// maxZoom keeps 1<<zoom within int range on every platform.
	maxZoom = 30
)

// Tile represents provider tile coordinates.
type Tile struct {
	X, Y, Zoom int
}

// GeoPosition represents a geographical point.
type GeoPosition struct {
	Latitude, Longitude float64
}

func (p GeoPosition) Point() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// GeoToWorld converts a position to world pixel coordinates at zoom.
func GeoToWorld(pos GeoPosition, zoom, tileSize int) (float64, float64) {
	f := maptile.Fraction(pos.Point(), maptile.Zoom(zoom))
	return f.X() * float64(tileSize), f.Y() * float64(tileSize)
}

// WorldToGeo converts world pixel coordinates back to a geographical position.
func WorldToGeo(worldX, worldY float64, zoom, tileSize int) GeoPosition {
	size := float64(tileSize) * math.Exp2(float64(zoom))
	lng := worldX/size*360 - 180
	latRad := math.Pi * (1 - 2*worldY/size)
	lat := 180 / math.Pi * math.Atan(math.Sinh(latRad))
	return GeoPosition{Latitude: lat, Longitude: lng}
}

// Placement is a tile and the screen position of its top-left corner.
type Placement struct {
	Tile   Tile
	Offset image.Point
}

// VisibleTiles lists the tiles covering a screen centered on world pixel
// (centerX, centerY). Columns wrap around the antimeridian; rows outside the
// world are skipped.
func VisibleTiles(centerX, centerY float64, zoom, tileSize int, screen image.Point) []Placement {
	if zoom < 0 || zoom > maxZoom || tileSize <= 0 || screen.X <= 0 || screen.Y <= 0 {
		return nil
	}
	ts := float64(tileSize)
	left := centerX - float64(screen.X)/2
	top := centerY - float64(screen.Y)/2

	firstCol := int(math.Floor(left / ts))
	lastCol := int(math.Floor((left + float64(screen.X) - 1) / ts))
	firstRow := int(math.Floor(top / ts))
	lastRow := int(math.Floor((top + float64(screen.Y) - 1) / ts))

	n := 1 << zoom
	firstRow = max(firstRow, 0)
	lastRow = min(lastRow, n-1)
	if firstRow > lastRow {
		return nil
	}

	visible := make([]Placement, 0, (lastCol-firstCol+1)*(lastRow-firstRow+1))
	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			visible = append(visible, Placement{
				Tile: Tile{X: wrap(col, n), Y: row, Zoom: zoom},
				Offset: image.Point{
					X: int(math.Round(float64(col)*ts - left)),
					Y: int(math.Round(float64(row)*ts - top)),
				},
			})
		}
	}
	return visible
}

func wrap(x, n int) int {
	return ((x % n) + n) % n
}
