// Package selection tracks the drag-to-select rectangle gesture.
package selection

import "speedmap/internal/geom"

// State is the gesture lifecycle state. Committed is transient: End reports
// it to the caller and the gesture is Idle again on return.
type State int

const (
	Idle State = iota
	Dragging
	Committed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	}
	return "unknown"
}

// Gesture is the pointer-down / move / up state machine behind rectangular
// selection. Committed rectangles accumulate in Drawn until Clear or until
// selection mode is switched off.
type Gesture struct {
	enabled bool
	state   State
	anchor  geom.LatLng
	current geom.LatLng
	drawn   []geom.Region
}

// Enabled reports whether selection mode is on.
func (g *Gesture) Enabled() bool { return g.enabled }

// State returns the current lifecycle state.
func (g *Gesture) State() State { return g.state }

// Tracking reports whether pointer-move events should be delivered. It is
// true only between Begin and End.
func (g *Gesture) Tracking() bool { return g.state == Dragging }

// SetEnabled switches selection mode. Switching it off drops an in-flight
// drag and clears every drawn rectangle.
func (g *Gesture) SetEnabled(on bool) {
	g.enabled = on
	if !on {
		g.state = Idle
		g.Clear()
	}
}

// Toggle flips selection mode and returns the new value.
func (g *Gesture) Toggle() bool {
	g.SetEnabled(!g.enabled)
	return g.enabled
}

// Begin handles pointer-down. It starts a degenerate rectangle at p and
// returns false when selection mode is off or p is not a valid coordinate.
// A Begin while already dragging restarts the drag at p.
func (g *Gesture) Begin(p geom.LatLng) bool {
	if !g.enabled || !p.Valid() {
		return false
	}
	g.state = Dragging
	g.anchor = p
	g.current = p
	return true
}

// Move handles pointer-move; the anchor stays fixed and p becomes the
// opposite corner. It is ignored unless a drag is in progress.
func (g *Gesture) Move(p geom.LatLng) bool {
	if g.state != Dragging || !p.Valid() {
		return false
	}
	g.current = p
	return true
}

// End handles pointer-up. It freezes the rectangle, keeps it in Drawn and
// returns it; without a preceding Begin it is a no-op returning false.
func (g *Gesture) End() (geom.Region, bool) {
	if g.state != Dragging {
		return geom.Region{}, false
	}
	g.state = Committed
	r := geom.NewRegion(g.anchor, g.current)
	g.drawn = append(g.drawn, r)
	g.state = Idle
	return r, true
}

// Active returns the rectangle of the drag in progress.
func (g *Gesture) Active() (geom.Region, bool) {
	if g.state != Dragging {
		return geom.Region{}, false
	}
	return geom.NewRegion(g.anchor, g.current), true
}

// Drawn returns the committed rectangles still on display, oldest first.
func (g *Gesture) Drawn() []geom.Region {
	return append([]geom.Region(nil), g.drawn...)
}

// Clear removes the committed rectangles. A drag in progress is kept.
func (g *Gesture) Clear() { g.drawn = nil }

// Reset returns the gesture to its zero state, keeping selection mode.
func (g *Gesture) Reset() {
	on := g.enabled
	*g = Gesture{enabled: on}
}
