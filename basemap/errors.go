package basemap

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSource = errors.New("basemap: unknown source")
	ErrInvalidSource = errors.New("basemap: invalid source")
)

// UnknownSourceError is returned when a basemap name is not registered.
type UnknownSourceError struct {
	Name string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownSource, e.Name)
}

func (e *UnknownSourceError) Unwrap() error {
	return ErrUnknownSource
}
