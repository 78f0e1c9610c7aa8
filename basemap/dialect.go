package basemap

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect assembles a tile URL from a source URL and a provider tile address.
type Dialect interface {
	TileURL(base string, x, y, z int) string
}

// PathDialect appends "/z/x/y.ext" to the base URL.
type PathDialect struct {
	Ext string // defaults to ".png"
}

func (d PathDialect) TileURL(base string, x, y, z int) string {
	ext := d.Ext
	if ext == "" {
		ext = ".png"
	}
	return base + "/" + strconv.Itoa(z) + "/" + strconv.Itoa(x) + "/" + strconv.Itoa(y) + ext
}

// PlaceholderDialect substitutes the {x}, {y} and {z} placeholders of the base URL.
type PlaceholderDialect struct{}

func (PlaceholderDialect) TileURL(base string, x, y, z int) string {
	return placeholderReplacer(x, y, z).Replace(base)
}

func placeholderReplacer(x, y, z int) *strings.Replacer {
	return strings.NewReplacer(
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
		"{z}", strconv.Itoa(z),
	)
}

func validatePlaceholders(template string) error {
	for _, p := range []string{"{x}", "{y}", "{z}"} {
		if !strings.Contains(template, p) {
			return fmt.Errorf("%w: placeholder %v not found in %q", ErrInvalidSource, p, template)
		}
	}
	return nil
}

// ParseDialect maps a configuration keyword to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "path":
		return PathDialect{}, nil
	case "placeholder", "template":
		return PlaceholderDialect{}, nil
	}
	return nil, fmt.Errorf("%w: unknown dialect %q", ErrInvalidSource, name)
}
