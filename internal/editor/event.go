package editor

import "VectorBoard/internal/state"

// EventKind says what changed in the editor.
type EventKind int

const (
	// PreviewUpdated replaces the preview with Shape.
	PreviewUpdated EventKind = iota
	// PreviewCleared removes the preview.
	PreviewCleared
	// Committed adds Shape to the drawing.
	Committed
	// Removed takes Shape off the drawing.
	Removed
	// Changed means Shape moved, rotated or gained/lost a segment.
	Changed
	// SelectionChanged carries the new highlight, nil when cleared.
	SelectionChanged
	// CursorChanged carries the pointer glyph to show.
	CursorChanged
	// StatusMessage carries a transient message for the status bar.
	StatusMessage
)

var eventNames = []string{
	"PreviewUpdated", "PreviewCleared", "Committed", "Removed",
	"Changed", "SelectionChanged", "CursorChanged", "StatusMessage",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "EventKind(?)"
	}
	return eventNames[k]
}

// Cursor is the pointer glyph hint.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorPointer
)

// Event is one change the host must reflect, in the order returned.
type Event struct {
	Kind    EventKind
	Shape   *state.Shape
	Bounds  *state.Rect
	Cursor  Cursor
	Message string
}

const (
	msgCopied = "Item copied to clipboard"
	msgPasted = "Item pasted from clipboard"
)

func previewUpdated(s *state.Shape) Event { return Event{Kind: PreviewUpdated, Shape: s} }
func committed(s *state.Shape) Event      { return Event{Kind: Committed, Shape: s} }
func removed(s *state.Shape) Event        { return Event{Kind: Removed, Shape: s} }
func changed(s *state.Shape) Event        { return Event{Kind: Changed, Shape: s} }
func status(msg string) Event             { return Event{Kind: StatusMessage, Message: msg} }

func selectionChanged(b *state.Rect) Event {
	return Event{Kind: SelectionChanged, Bounds: b}
}
