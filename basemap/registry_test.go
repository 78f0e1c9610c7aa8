package basemap_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olablt/gio-basemaps/basemap"
)

func TestResolveURLPathStyle(t *testing.T) {
	r := basemap.NewDefaultRegistry()
	for _, name := range []string{basemap.OpenStreetMap, basemap.OpenTopoMap} {
		src, ok := r.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		for z := src.MinZoom; z <= src.MaxZoom; z++ {
			addr := basemap.TileAddress{X: 3, Y: 11, ZoomLevel: z}
			got := r.ResolveURL(src, addr)
			want := fmt.Sprintf("/%d/%d/%d.png", src.MaxZoom-z, addr.X, addr.Y)
			if !strings.HasSuffix(got, want) {
				t.Errorf("ResolveURL(%s, %v) = %q, want suffix %q", name, addr, got, want)
			}
			if !strings.HasPrefix(got, src.URL+"/") {
				t.Errorf("ResolveURL(%s, %v) = %q, want prefix %q", name, addr, got, src.URL)
			}
		}
	}
}

func TestResolveURLPlaceholderStyle(t *testing.T) {
	r := basemap.NewDefaultRegistry()
	src, ok := r.Lookup(basemap.Satellite)
	if !ok {
		t.Fatal("satellite source not registered")
	}
	got := r.ResolveURL(src, basemap.TileAddress{X: 5, Y: 9, ZoomLevel: 7})
	want := "https://mt1.google.com/vt/lyrs=s&x=5&y=9&z=10"
	if got != want {
		t.Errorf("ResolveURL = %q, want %q", got, want)
	}

	reordered := src
	reordered.URL = "https://example.com/{z}/{y}/{x}.jpg"
	if got, want := reordered.TileURL(basemap.TileAddress{X: 5, Y: 9, ZoomLevel: 7}), "https://example.com/10/9/5.jpg"; got != want {
		t.Errorf("TileURL = %q, want %q", got, want)
	}
}

func TestNames(t *testing.T) {
	r := basemap.NewDefaultRegistry()
	want := []string{basemap.OpenStreetMap, basemap.OpenTopoMap, basemap.Satellite}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want+got):\n%v", diff)
	}

	topo, _ := r.Lookup(basemap.OpenTopoMap)
	topo.URL = "https://b.tile.opentopomap.org"
	if err := r.Register(topo); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() after overwrite mismatch (-want+got):\n%v", diff)
	}
	if got, _ := r.Lookup(basemap.OpenTopoMap); got.URL != topo.URL {
		t.Errorf("Lookup after overwrite URL = %q, want %q", got.URL, topo.URL)
	}
}

func TestActivate(t *testing.T) {
	r := basemap.NewDefaultRegistry()
	active, ok := r.Active()
	if !ok || active.Name != basemap.OpenStreetMap {
		t.Fatalf("Active() = %v, %v, want %v", active.Name, ok, basemap.OpenStreetMap)
	}

	src, err := r.Activate(basemap.Satellite)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if src.Name != basemap.Satellite {
		t.Errorf("Activate returned %q", src.Name)
	}

	_, err = r.Activate("Bing")
	var unknown *basemap.UnknownSourceError
	if !errors.As(err, &unknown) || unknown.Name != "Bing" {
		t.Errorf("Activate(missing) err = %v, want UnknownSourceError", err)
	}
	if !errors.Is(err, basemap.ErrUnknownSource) {
		t.Errorf("Activate(missing) err = %v, want ErrUnknownSource", err)
	}
	if active, _ := r.Active(); active.Name != basemap.Satellite {
		t.Errorf("Active() after failed activate = %q, want %q", active.Name, basemap.Satellite)
	}
}

func TestActiveEmpty(t *testing.T) {
	if _, ok := basemap.NewRegistry().Active(); ok {
		t.Error("Active() on empty registry reported a source")
	}
}

func TestRegisterInvalid(t *testing.T) {
	valid := basemap.Source{
		Name:     "x",
		MinZoom:  1,
		MaxZoom:  17,
		TileSize: 256,
		URL:      "https://example.com",
		Dialect:  basemap.PathDialect{},
	}
	tests := []struct {
		name   string
		modify func(*basemap.Source)
	}{
		{"empty name", func(s *basemap.Source) { s.Name = "" }},
		{"inverted zoom", func(s *basemap.Source) { s.MinZoom, s.MaxZoom = 10, 2 }},
		{"zero tile size", func(s *basemap.Source) { s.TileSize = 0 }},
		{"no dialect", func(s *basemap.Source) { s.Dialect = nil }},
		{"no url", func(s *basemap.Source) { s.URL = "" }},
		{"missing placeholder", func(s *basemap.Source) {
			s.Dialect = basemap.PlaceholderDialect{}
			s.URL = "https://example.com/{z}/{x}.png"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := valid
			tt.modify(&src)
			r := basemap.NewRegistry()
			if err := r.Register(src); !errors.Is(err, basemap.ErrInvalidSource) {
				t.Errorf("Register err = %v, want ErrInvalidSource", err)
			}
			if len(r.Names()) != 0 {
				t.Errorf("invalid source was registered")
			}
		})
	}
	if err := basemap.NewRegistry().Register(valid); err != nil {
		t.Errorf("Register(valid) failed: %v", err)
	}
}

func TestClampZoom(t *testing.T) {
	src := basemap.Defaults()[0]
	for _, tc := range []struct{ in, want int }{{-3, 1}, {1, 1}, {7, 7}, {17, 17}, {40, 17}} {
		if got := src.ClampZoom(tc.in); got != tc.want {
			t.Errorf("ClampZoom(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
