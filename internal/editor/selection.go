package editor

import "VectorBoard/internal/state"

// Selection tracks the two roles a picked shape can play. MoveTarget is
// armed only while the secondary button is held and is what move, rotate
// and copy act on. DeleteTarget is the highlighted shape and survives the
// button release.
type Selection struct {
	MoveTarget   *state.Shape
	DeleteTarget *state.Shape

	anchor   state.Point
	anchored bool
}

// Highlight is the selection rectangle, nil when nothing is selected.
func (s *Selection) Highlight() *state.Rect {
	if s.DeleteTarget == nil {
		return nil
	}
	b := s.DeleteTarget.Bounds()
	return &b
}

func (s *Selection) arm(target *state.Shape, at state.Point) {
	s.MoveTarget = target
	s.anchor = at
	s.anchored = true
}

func (s *Selection) disarm() {
	s.MoveTarget = nil
	s.anchored = false
	s.anchor = state.Point{}
}

// forget drops every reference to shape.
func (s *Selection) forget(shape *state.Shape) (highlightLost bool) {
	if s.MoveTarget == shape {
		s.disarm()
	}
	if s.DeleteTarget == shape {
		s.DeleteTarget = nil
		return true
	}
	return false
}

func (s *Selection) clear() {
	s.disarm()
	s.DeleteTarget = nil
}
