package basemap

const (
	OpenStreetMap = "OpenStreetMap"
	OpenTopoMap   = "OpenTopoMap"
	Satellite     = "Satellite"

	defaultMinZoom = 1
	defaultMaxZoom = 17
)

// Defaults returns the built-in basemaps.
func Defaults() []Source {
	return []Source{
		{
			Name:        OpenStreetMap,
			MinZoom:     defaultMinZoom,
			MaxZoom:     defaultMaxZoom,
			TileSize:    DefaultTileSize,
			URL:         "https://tile.openstreetmap.org",
			Dialect:     PathDialect{},
			Attribution: "© OpenStreetMap contributors",
		},
		{
			Name:        OpenTopoMap,
			MinZoom:     defaultMinZoom,
			MaxZoom:     defaultMaxZoom,
			TileSize:    DefaultTileSize,
			URL:         "https://tile.opentopomap.org",
			Dialect:     PathDialect{},
			Attribution: "© OpenTopoMap (CC-BY-SA), © OpenStreetMap contributors",
		},
		{
			Name:     Satellite,
			MinZoom:  defaultMinZoom,
			MaxZoom:  defaultMaxZoom,
			TileSize: DefaultTileSize,
			URL:      "https://mt1.google.com/vt/lyrs=s&x={x}&y={y}&z={z}",
			Dialect:  PlaceholderDialect{},
		},
	}
}

// NewDefaultRegistry returns a registry holding Defaults with OpenStreetMap active.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, src := range Defaults() {
		if err := r.Register(src); err != nil {
			panic(err)
		}
	}
	if _, err := r.Activate(OpenStreetMap); err != nil {
		panic(err)
	}
	return r
}
