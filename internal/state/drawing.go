package state

import (
	"log"
	"sync"
)

type historyKind int

const (
	historyCommit historyKind = iota
	historySegment
	historyPaste
)

type historyEntry struct {
	kind  historyKind
	shape *Shape
}

// DrawingList holds the committed shapes in paint order, later on top,
// together with the undo history of the commits that produced them.
type DrawingList struct {
	shapes  []*Shape
	history []historyEntry
	mu      sync.RWMutex
}

// NewDrawingList creates an empty list.
func NewDrawingList() *DrawingList {
	return &DrawingList{}
}

// Append commits a new shape on top of the drawing.
func (dl *DrawingList) Append(s *Shape) {
	if s == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()

	dl.shapes = append(dl.shapes, s)
	dl.history = append(dl.history, historyEntry{historyCommit, s})
	log.Printf("[DRAWING] Committed %s", s)
}

// AppendSegment extends a committed polyline. Each segment is its own undo step.
func (dl *DrawingList) AppendSegment(s *Shape, seg Segment) bool {
	pl, ok := s.Geometry.(*Polyline)
	if !ok {
		return false
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if dl.indexOf(s) < 0 {
		return false
	}
	pl.Segments = append(pl.Segments, seg)
	dl.history = append(dl.history, historyEntry{historySegment, s})
	log.Printf("[DRAWING] Segment %d added to %s", len(pl.Segments), s)
	return true
}

// Readd registers s again after a paste. The same shape value is reused,
// so the list holds it once, on top.
func (dl *DrawingList) Readd(s *Shape) {
	if s == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if i := dl.indexOf(s); i >= 0 {
		dl.shapes = append(dl.shapes[:i], dl.shapes[i+1:]...)
	}
	dl.shapes = append(dl.shapes, s)
	dl.history = append(dl.history, historyEntry{historyPaste, s})
	log.Printf("[DRAWING] Pasted %s", s)
}

// UndoLast reverts the most recent commit. A chained polyline segment is
// dropped from its polyline and removed is false. Any other commit takes
// the whole shape off the drawing, every placement included. It returns
// nil when there is nothing to undo.
func (dl *DrawingList) UndoLast() (s *Shape, removed bool) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if len(dl.history) == 0 {
		return nil, false
	}
	last := dl.history[len(dl.history)-1]
	dl.history = dl.history[:len(dl.history)-1]

	if last.kind == historySegment {
		pl := last.shape.Geometry.(*Polyline)
		if len(pl.Segments) > 1 {
			pl.Segments = pl.Segments[:len(pl.Segments)-1]
			log.Printf("[DRAWING] Undo segment of %s", last.shape)
			return last.shape, false
		}
	}
	dl.remove(last.shape)
	log.Printf("[DRAWING] Undo %s", last.shape)
	return last.shape, true
}

// Remove takes s off the drawing. It is a no-op when s is absent.
func (dl *DrawingList) Remove(s *Shape) bool {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if dl.indexOf(s) < 0 {
		return false
	}
	dl.remove(s)
	log.Printf("[DRAWING] Removed %s", s)
	return true
}

func (dl *DrawingList) remove(s *Shape) {
	if i := dl.indexOf(s); i >= 0 {
		dl.shapes = append(dl.shapes[:i], dl.shapes[i+1:]...)
	}
	kept := dl.history[:0]
	for _, h := range dl.history {
		if h.shape != s {
			kept = append(kept, h)
		}
	}
	dl.history = kept
}

func (dl *DrawingList) indexOf(s *Shape) int {
	for i, existing := range dl.shapes {
		if existing == s {
			return i
		}
	}
	return -1
}

// Contains reports whether s is on the drawing.
func (dl *DrawingList) Contains(s *Shape) bool {
	dl.mu.RLock()
	defer dl.mu.RUnlock()
	return dl.indexOf(s) >= 0
}

// Shapes returns the shapes in paint order.
func (dl *DrawingList) Shapes() []*Shape {
	dl.mu.RLock()
	defer dl.mu.RUnlock()

	shapes := make([]*Shape, len(dl.shapes))
	copy(shapes, dl.shapes)
	return shapes
}

// Len returns the number of shapes on the drawing.
func (dl *DrawingList) Len() int {
	dl.mu.RLock()
	defer dl.mu.RUnlock()
	return len(dl.shapes)
}

// Clear empties the drawing and its history.
func (dl *DrawingList) Clear() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.shapes = nil
	dl.history = nil
	log.Printf("[DRAWING] Cleared")
}

// TopmostAt returns the highest shape containing p, or nil.
func (dl *DrawingList) TopmostAt(p Point) *Shape {
	dl.mu.RLock()
	defer dl.mu.RUnlock()

	for i := len(dl.shapes) - 1; i >= 0; i-- {
		if dl.shapes[i].Contains(p) {
			return dl.shapes[i]
		}
	}
	return nil
}
