package viewport

// Point is a pointer position in widget pixels.
type Point struct {
	X, Y float64
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// Event is an input event understood by Controller.
type Event interface {
	isEvent()
}

// PressEvent is a pointer button going down.
type PressEvent struct {
	Position Point
	Button   Button
}

// MoveEvent is pointer motion, with or without a button held.
type MoveEvent struct {
	Position Point
}

// ReleaseEvent is a pointer button going up.
type ReleaseEvent struct {
	Button Button
}

// CancelEvent aborts any gesture in progress, for example when the window
// loses the pointer grab.
type CancelEvent struct{}

// ScrollEvent is a wheel step. Negative Delta scrolls away from the user.
type ScrollEvent struct {
	Delta float64
}

func (PressEvent) isEvent()   {}
func (MoveEvent) isEvent()    {}
func (ReleaseEvent) isEvent() {}
func (CancelEvent) isEvent()  {}
func (ScrollEvent) isEvent()  {}
