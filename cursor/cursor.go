// Package cursor loads the hand images shown while hovering and dragging the map.
package cursor

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"log/slog"
)

var ErrResourceLoad = errors.New("cursor: resource load failed")

// ResourceLoadError reports a cursor image that is missing or cannot be decoded.
type ResourceLoadError struct {
	Name string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrResourceLoad, e.Name, e.Err)
}

func (e *ResourceLoadError) Unwrap() []error {
	return []error{ErrResourceLoad, e.Err}
}

// Load decodes the image name from fsys.
func Load(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, &ResourceLoadError{Name: name, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &ResourceLoadError{Name: name, Err: fmt.Errorf("decode: %w", err)}
	}
	return img, nil
}

// Hands holds the cursor images. A nil image means the system default
// pointer is used instead.
type Hands struct {
	Open    image.Image
	Grabbed image.Image
}

// LoadHands loads both cursors. Failures are logged and leave the
// corresponding image nil.
func LoadHands(fsys fs.FS, openName, grabbedName string, logger *slog.Logger) Hands {
	if logger == nil {
		logger = slog.Default()
	}
	var h Hands
	var err error
	if h.Open, err = Load(fsys, openName); err != nil {
		logger.Warn("using default cursor", "cursor", "open-hand", "err", err)
	}
	if h.Grabbed, err = Load(fsys, grabbedName); err != nil {
		logger.Warn("using default cursor", "cursor", "grabbed-hand", "err", err)
	}
	return h
}

// Image returns the image for the current gesture, or nil for the default pointer.
func (h Hands) Image(grabbing bool) image.Image {
	if grabbing {
		return h.Grabbed
	}
	return h.Open
}
