package editor

import "VectorBoard/internal/state"

// Button is the pointer button an event came from.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
)

// dragTracker tracks a primary-button drag.
type dragTracker struct {
	active   bool
	button   Button
	startPos state.Point
	current  state.Point
}

func (t *dragTracker) start(pos state.Point, button Button) {
	t.active = true
	t.button = button
	t.startPos = pos
	t.current = pos
}

func (t *dragTracker) update(pos state.Point) {
	if t.active {
		t.current = pos
	}
}

func (t *dragTracker) end() {
	*t = dragTracker{}
}

// curveBuffer holds the clicked points of a curve gesture. Slots past
// count are always zero.
type curveBuffer struct {
	points [3]state.Point
	count  int
}

func (b *curveBuffer) full() bool { return b.count == len(b.points) }

func (b *curveBuffer) push(p state.Point) {
	if b.full() {
		return
	}
	b.points[b.count] = p
	b.count++
}

// setLast overwrites the third point while it is being dragged.
func (b *curveBuffer) setLast(p state.Point) {
	if b.full() {
		b.points[2] = p
	}
}

func (b *curveBuffer) curve() *state.Curve {
	return &state.Curve{P0: b.points[0], P1: b.points[1], P2: b.points[2]}
}

func (b *curveBuffer) reset() {
	*b = curveBuffer{}
}

// polylineChain remembers where the next polyline segment starts.
type polylineChain struct {
	started bool
	last    state.Point
	shape   *state.Shape
}

func (c *polylineChain) reset() {
	*c = polylineChain{}
}
