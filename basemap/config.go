package basemap

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the YAML document holding additional basemaps:
//
//	sources:
//	  - name: CyclOSM
//	    dialect: placeholder
//	    url: https://a.tile-cyclosm.openstreetmap.fr/cyclosm/{z}/{x}/{y}.png
//	    maxZoom: 17
type Config struct {
	Sources []SourceConfig `yaml:"sources"`
}

type SourceConfig struct {
	Name        string `yaml:"name"`
	Dialect     string `yaml:"dialect"`
	URL         string `yaml:"url"`
	Ext         string `yaml:"ext,omitempty"`
	MinZoom     *int   `yaml:"minZoom,omitempty"`
	MaxZoom     *int   `yaml:"maxZoom,omitempty"`
	TileSize    int    `yaml:"tileSize,omitempty"`
	Attribution string `yaml:"attribution,omitempty"`
}

// Source converts the entry, filling in defaults, and validates the result.
func (c SourceConfig) Source() (Source, error) {
	dialect, err := ParseDialect(c.Dialect)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", c.Name, err)
	}
	if pd, ok := dialect.(PathDialect); ok && c.Ext != "" {
		pd.Ext = c.Ext
		dialect = pd
	}
	src := Source{
		Name:        c.Name,
		MinZoom:     defaultMinZoom,
		MaxZoom:     defaultMaxZoom,
		TileSize:    c.TileSize,
		URL:         c.URL,
		Dialect:     dialect,
		Attribution: c.Attribution,
	}
	if c.MinZoom != nil {
		src.MinZoom = *c.MinZoom
	}
	if c.MaxZoom != nil {
		src.MaxZoom = *c.MaxZoom
	}
	if src.TileSize == 0 {
		src.TileSize = DefaultTileSize
	}
	if err := src.Validate(); err != nil {
		return Source{}, err
	}
	return src, nil
}

// LoadConfig decodes a YAML basemap document.
func LoadConfig(r io.Reader) ([]Source, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("basemap: decode config: %w", err)
	}
	sources := make([]Source, 0, len(cfg.Sources))
	for i, sc := range cfg.Sources {
		src, err := sc.Source()
		if err != nil {
			return nil, fmt.Errorf("basemap: source #%d: %w", i, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}
