package tiles_test

import (
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/olablt/gio-basemaps/basemap"
	"github.com/olablt/gio-basemaps/tiles"
)

func TestTileSizeMatchesBasemaps(t *testing.T) {
	if tiles.TileSize != basemap.DefaultTileSize {
		t.Errorf("TileSize = %d, want %d", tiles.TileSize, basemap.DefaultTileSize)
	}
	for _, src := range basemap.Defaults() {
		if src.TileSize != tiles.TileSize {
			t.Errorf("%s tile size = %d, want %d", src.Name, src.TileSize, tiles.TileSize)
		}
	}
}

func TestGeoToWorld(t *testing.T) {
	x, y := tiles.GeoToWorld(tiles.GeoPosition{}, 0, tiles.TileSize)
	if math.Abs(x-128) > 1e-9 || math.Abs(y-128) > 1e-9 {
		t.Errorf("GeoToWorld(0,0 @0) = %v, %v, want 128, 128", x, y)
	}

	frankfurt := tiles.GeoPosition{Latitude: 50.11, Longitude: 8.68}
	x, y = tiles.GeoToWorld(frankfurt, 10, tiles.TileSize)
	if got, want := int(x)/tiles.TileSize, 536; got != want {
		t.Errorf("tile column = %d, want %d", got, want)
	}
	if got, want := int(y)/tiles.TileSize, 346; got != want {
		t.Errorf("tile row = %d, want %d", got, want)
	}

	back := tiles.WorldToGeo(x, y, 10, tiles.TileSize)
	if diff := cmp.Diff(frankfurt, back, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("WorldToGeo(GeoToWorld()) mismatch (-want+got):\n%v", diff)
	}
}

func TestVisibleTiles(t *testing.T) {
	// Screen of exactly one tile, centered on the middle of tile (1, 1).
	got := tiles.VisibleTiles(384, 384, 2, 256, image.Pt(256, 256))
	want := []tiles.Placement{{Tile: tiles.Tile{X: 1, Y: 1, Zoom: 2}, Offset: image.Pt(0, 0)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("VisibleTiles mismatch (-want+got):\n%v", diff)
	}

	// Shifted by half a tile the screen straddles four tiles.
	got = tiles.VisibleTiles(256, 256, 2, 256, image.Pt(256, 256))
	want = []tiles.Placement{
		{Tile: tiles.Tile{X: 0, Y: 0, Zoom: 2}, Offset: image.Pt(-128, -128)},
		{Tile: tiles.Tile{X: 1, Y: 0, Zoom: 2}, Offset: image.Pt(128, -128)},
		{Tile: tiles.Tile{X: 0, Y: 1, Zoom: 2}, Offset: image.Pt(-128, 128)},
		{Tile: tiles.Tile{X: 1, Y: 1, Zoom: 2}, Offset: image.Pt(128, 128)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("VisibleTiles mismatch (-want+got):\n%v", diff)
	}
}

func TestVisibleTilesWrapsColumns(t *testing.T) {
	// World at zoom 1 is 512 px wide; a center at x=0 shows the last column on the left.
	got := tiles.VisibleTiles(0, 128, 1, 256, image.Pt(256, 256))
	var cols []int
	for _, p := range got {
		cols = append(cols, p.Tile.X)
	}
	if diff := cmp.Diff([]int{1, 0}, cols); diff != "" {
		t.Errorf("columns mismatch (-want+got):\n%v", diff)
	}
}

func TestVisibleTilesSkipsRowsOutsideWorld(t *testing.T) {
	got := tiles.VisibleTiles(128, -1000, 0, 256, image.Pt(256, 256))
	if len(got) != 0 {
		t.Errorf("VisibleTiles above the world = %v, want none", got)
	}
	if got := tiles.VisibleTiles(128, 128, -1, 256, image.Pt(256, 256)); got != nil {
		t.Errorf("VisibleTiles at negative zoom = %v, want nil", got)
	}
	if got := tiles.VisibleTiles(128, 128, 3, 256, image.Point{}); got != nil {
		t.Errorf("VisibleTiles on empty screen = %v, want nil", got)
	}
}
