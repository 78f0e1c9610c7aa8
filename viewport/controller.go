// Package viewport tracks the map center and zoom level and applies pan and
// zoom gestures to them.
//
// A Controller is not safe for concurrent use; it is meant to be driven from
// the UI event goroutine that also renders the map.
package viewport

import (
	"math"
)

// State is the visible part of the map. The center is in world pixels at the
// provider zoom of ZoomLevel.
type State struct {
	CenterX   float64
	CenterY   float64
	ZoomLevel int
}

type Controller struct {
	state   State
	minZoom int
	maxZoom int

	anchor  Point
	panning bool
}

// New returns a controller starting at state, limited to [minZoom, maxZoom].
func New(state State, minZoom, maxZoom int) *Controller {
	c := &Controller{state: state}
	c.SetZoomRange(minZoom, maxZoom)
	return c
}

func (c *Controller) State() State {
	return c.state
}

// SetState replaces the state without clamping.
func (c *Controller) SetState(s State) {
	c.state = s
}

// SetZoomRange changes the limits applied by the next zoom. The current
// state is kept as is.
func (c *Controller) SetZoomRange(minZoom, maxZoom int) {
	if minZoom > maxZoom {
		minZoom, maxZoom = maxZoom, minZoom
	}
	c.minZoom, c.maxZoom = minZoom, maxZoom
}

func (c *Controller) ZoomRange() (int, int) {
	return c.minZoom, c.maxZoom
}

// Panning reports whether a drag is in progress.
func (c *Controller) Panning() bool {
	return c.panning
}

// Handle applies ev and reports whether the state changed.
func (c *Controller) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case PressEvent:
		c.beginPan(ev)
	case MoveEvent:
		return c.pan(ev.Position)
	case ReleaseEvent:
		if ev.Button == ButtonPrimary {
			c.endPan()
		}
	case CancelEvent:
		c.endPan()
	case ScrollEvent:
		return c.zoom(ev.Delta)
	}
	return false
}

func (c *Controller) beginPan(ev PressEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	c.anchor = ev.Position
	c.panning = true
}

func (c *Controller) pan(pos Point) bool {
	if !c.panning {
		return false
	}
	delta := c.anchor.Sub(pos)
	c.anchor = pos
	if delta == (Point{}) {
		return false
	}
	c.state.CenterX += delta.X
	c.state.CenterY += delta.Y
	return true
}

func (c *Controller) endPan() {
	c.panning = false
	c.anchor = Point{}
}

func (c *Controller) zoom(delta float64) bool {
	var step int
	switch {
	case delta < 0:
		step = 1
	case delta > 0:
		step = -1
	default:
		return false
	}
	return c.SetZoom(c.state.ZoomLevel + step)
}

// SetZoom moves to level, clamped to the zoom range, keeping the same
// geographic point at the center. Each level up halves the world size.
func (c *Controller) SetZoom(level int) bool {
	level = max(c.minZoom, min(level, c.maxZoom))
	old := c.state.ZoomLevel
	if level == old {
		return false
	}
	scale := math.Exp2(float64(old - level))
	c.state.CenterX *= scale
	c.state.CenterY *= scale
	c.state.ZoomLevel = level
	return true
}
