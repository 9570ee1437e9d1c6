package editor

import (
	"log"

	"VectorBoard/internal/state"
)

// Editor is the interaction state machine. It turns pointer and key input
// into changes to the drawing and reports them as events. It is not safe
// for concurrent use; the host calls it from its UI goroutine.
type Editor struct {
	cfg       Config
	drawing   *state.DrawingList
	clipboard state.Clipboard
	preview   *state.Shape
	selection Selection

	drag  dragTracker
	curve curveBuffer
	chain polylineChain

	textArmed bool
	text      string

	cursor Cursor
}

// New creates an editor with an empty drawing.
func New(cfg Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Editor{cfg: cfg, drawing: state.NewDrawingList()}, nil
}

// Config returns the active configuration.
func (e *Editor) Config() Config { return e.cfg }

// Configure replaces the configuration. Switching tools abandons any curve
// or polyline in progress.
func (e *Editor) Configure(cfg Config) ([]Event, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var events []Event
	if cfg.Tool != e.cfg.Tool {
		log.Printf("[EDITOR] Tool %s -> %s", e.cfg.Tool, cfg.Tool)
		e.curve.reset()
		e.chain.reset()
		e.drag.end()
		events = e.clearPreview(events)
	}
	e.cfg = cfg
	return events, nil
}

// Shapes returns the committed shapes in paint order.
func (e *Editor) Shapes() []*state.Shape { return e.drawing.Shapes() }

// Preview returns the rubber-band shape, or nil.
func (e *Editor) Preview() *state.Shape { return e.preview }

// Selection returns the current selection roles.
func (e *Editor) Selection() Selection { return e.selection }

// Highlight returns the selection rectangle, or nil.
func (e *Editor) Highlight() *state.Rect { return e.selection.Highlight() }

// TextArmed reports whether the next primary press places text.
func (e *Editor) TextArmed() (bool, string) { return e.textArmed, e.text }

// ArmText makes the next primary press place content. Empty text is ignored.
func (e *Editor) ArmText(content string) bool {
	if content == "" {
		return false
	}
	e.textArmed = true
	e.text = content
	return true
}

// CancelText disarms text placement.
func (e *Editor) CancelText() {
	e.textArmed = false
	e.text = ""
}

// Press handles a button going down at p.
func (e *Editor) Press(p state.Point, button Button) []Event {
	switch button {
	case ButtonPrimary:
		return e.pressPrimary(p)
	case ButtonSecondary:
		return e.pressSecondary(p)
	}
	return nil
}

func (e *Editor) pressPrimary(p state.Point) []Event {
	if e.textArmed {
		txt := &state.Text{
			Content: e.text,
			Anchor:  p,
			Font:    e.cfg.Font,
			Color:   e.cfg.Style.Color,
		}
		e.CancelText()
		return []Event{e.commit(state.NewShape(e.cfg.Style, txt))}
	}
	e.drag.start(p, ButtonPrimary)
	if e.cfg.Tool == ToolCurve {
		e.curve.push(e.cfg.Grid.Apply(p))
	}
	return nil
}

func (e *Editor) pressSecondary(p state.Point) []Event {
	hit := e.drawing.TopmostAt(p)
	if hit == nil {
		hadHighlight := e.selection.DeleteTarget != nil
		e.selection.clear()
		if hadHighlight {
			return []Event{selectionChanged(nil)}
		}
		return nil
	}

	e.selection.arm(hit, p)
	if e.selection.DeleteTarget == hit {
		e.selection.DeleteTarget = nil
		return []Event{selectionChanged(nil)}
	}
	e.selection.DeleteTarget = hit
	return []Event{selectionChanged(e.selection.Highlight())}
}

// Move handles pointer motion to p, with or without a button held.
func (e *Editor) Move(p state.Point) []Event {
	var events []Event
	if e.drag.active {
		e.drag.update(p)
		if preview := e.previewShape(p); preview != nil {
			e.preview = preview
			events = append(events, previewUpdated(preview))
		}
	}
	if e.selection.MoveTarget != nil && e.selection.anchored {
		events = e.moveTarget(p, events)
	}
	return e.hover(p, events)
}

// previewShape builds the rubber-band shape for a drag currently at p.
func (e *Editor) previewShape(p state.Point) *state.Shape {
	start := e.cfg.Grid.Apply(e.drag.startPos)
	end := e.cfg.Grid.Apply(p)
	pen := state.PreviewStyle(e.cfg.Style.Width)

	switch e.cfg.Tool {
	case ToolLine:
		return state.NewPreview(pen, &state.Line{Start: start, End: end})
	case ToolRectangle:
		return state.NewPreview(pen, &state.Rectangle{TopLeft: start, BottomRight: end})
	case ToolCircle:
		return state.NewPreview(pen, state.NewCircle(start, end))
	case ToolCurve:
		if !e.curve.full() {
			return nil
		}
		e.curve.setLast(end)
		return state.NewPreview(pen, e.curve.curve())
	case ToolPolyline:
		if e.chain.started {
			start = e.cfg.Grid.Apply(e.chain.last)
		}
		return state.NewPreview(pen, &state.Line{Start: start, End: end})
	}
	return nil
}

// moveTarget drags the armed shape to follow the pointer.
func (e *Editor) moveTarget(p state.Point, events []Event) []Event {
	delta := e.moveDelta(e.selection.anchor, p)
	e.selection.anchor = p
	if delta == (state.Point{}) {
		return events
	}
	target := e.selection.MoveTarget
	target.Translate(delta)
	e.selection.DeleteTarget = target
	return append(events, changed(target), selectionChanged(e.selection.Highlight()))
}

// moveDelta snaps both ends before subtracting when the grid is on.
func (e *Editor) moveDelta(from, to state.Point) state.Point {
	if e.cfg.Grid.Enabled {
		return e.cfg.Grid.Apply(to).Sub(e.cfg.Grid.Apply(from))
	}
	return to.Sub(from)
}

func (e *Editor) hover(p state.Point, events []Event) []Event {
	cursor := CursorCrosshair
	if e.drawing.TopmostAt(p) != nil {
		cursor = CursorPointer
	}
	return e.setCursor(cursor, events)
}

// Leave resets the cursor hint once the pointer is off the canvas.
func (e *Editor) Leave() []Event {
	return e.setCursor(CursorDefault, nil)
}

// Cursor returns the last cursor hint.
func (e *Editor) Cursor() Cursor { return e.cursor }

func (e *Editor) setCursor(c Cursor, events []Event) []Event {
	if c == e.cursor {
		return events
	}
	e.cursor = c
	return append(events, Event{Kind: CursorChanged, Cursor: c})
}

// Release handles a button coming up at p.
func (e *Editor) Release(p state.Point, button Button) []Event {
	switch button {
	case ButtonPrimary:
		return e.releasePrimary(p)
	case ButtonSecondary:
		return e.releaseSecondary(p)
	}
	return nil
}

func (e *Editor) releasePrimary(p state.Point) []Event {
	if !e.drag.active || e.drag.button != ButtonPrimary {
		return nil
	}
	startRaw := e.drag.startPos
	e.drag.end()

	events := e.clearPreview(nil)
	start := e.cfg.Grid.Apply(startRaw)
	end := e.cfg.Grid.Apply(p)

	switch e.cfg.Tool {
	case ToolLine:
		events = append(events, e.commit(state.NewShape(e.cfg.Style, &state.Line{Start: start, End: end})))
	case ToolRectangle:
		r := &state.Rectangle{TopLeft: start, BottomRight: end}
		r.Normalize()
		events = append(events, e.commit(state.NewShape(e.cfg.Style, r)))
	case ToolCircle:
		events = append(events, e.commit(state.NewShape(e.cfg.Style, state.NewCircle(start, end))))
	case ToolCurve:
		events = e.releaseCurve(end, events)
	case ToolPolyline:
		events = e.releasePolyline(startRaw, p, events)
	}
	return events
}

func (e *Editor) releaseCurve(end state.Point, events []Event) []Event {
	switch e.curve.count {
	case 3:
		e.curve.setLast(end)
		s := state.NewShape(e.cfg.Style, e.curve.curve())
		e.curve.reset()
		events = append(events, e.commit(s))
	case 2:
		guide := &state.Line{Start: e.curve.points[0], End: e.curve.points[1]}
		e.preview = state.NewPreview(state.PreviewStyle(e.cfg.Style.Width), guide)
		events = append(events, previewUpdated(e.preview))
	}
	return events
}

func (e *Editor) releasePolyline(startRaw, endRaw state.Point, events []Event) []Event {
	if e.chain.started {
		startRaw = e.chain.last
	}
	seg := state.Segment{Start: e.cfg.Grid.Apply(startRaw), End: e.cfg.Grid.Apply(endRaw)}
	e.chain.last = endRaw

	if e.chain.started && e.chain.shape != nil && e.drawing.AppendSegment(e.chain.shape, toLocal(e.chain.shape, seg)) {
		events = append(events, changed(e.chain.shape))
		if e.selection.DeleteTarget == e.chain.shape {
			events = append(events, selectionChanged(e.selection.Highlight()))
		}
		return events
	}
	s := state.NewShape(e.cfg.Style, &state.Polyline{Segments: []state.Segment{seg}})
	e.chain.started = true
	e.chain.shape = s
	return append(events, e.commit(s))
}

// toLocal maps a canvas-space segment into the geometry space of s.
func toLocal(s *state.Shape, seg state.Segment) state.Segment {
	if s.Transform.IsIdentity() {
		return seg
	}
	inv := s.Transform.Invert()
	return state.Segment{Start: inv.Apply(seg.Start), End: inv.Apply(seg.End)}
}

func (e *Editor) releaseSecondary(p state.Point) []Event {
	var events []Event
	if e.selection.MoveTarget != nil && e.selection.anchored {
		events = e.moveTarget(p, events)
	}
	e.selection.disarm()
	e.chain.reset()
	return events
}

func (e *Editor) commit(s *state.Shape) Event {
	e.drawing.Append(s)
	log.Printf("[EDITOR] Committed %s", s)
	return committed(s)
}

func (e *Editor) clearPreview(events []Event) []Event {
	if e.preview == nil {
		return events
	}
	e.preview = nil
	return append(events, Event{Kind: PreviewCleared})
}

// Undo reverts the most recent commit.
func (e *Editor) Undo() []Event {
	s, gone := e.drawing.UndoLast()
	if s == nil {
		return nil
	}
	if gone {
		return e.dropped(s)
	}
	if e.chain.shape == s {
		e.rewindChain()
	}
	events := []Event{changed(s)}
	if e.selection.DeleteTarget == s {
		events = append(events, selectionChanged(e.selection.Highlight()))
	}
	return events
}

// Delete removes the highlighted shape.
func (e *Editor) Delete() []Event {
	target := e.selection.DeleteTarget
	if target == nil {
		return nil
	}
	e.drawing.Remove(target)
	return e.dropped(target)
}

func (e *Editor) dropped(s *state.Shape) []Event {
	events := []Event{removed(s)}
	if e.selection.forget(s) {
		events = append(events, selectionChanged(nil))
	}
	if e.chain.shape == s {
		e.chain.reset()
	}
	return events
}

// rewindChain continues the chain from the end of its remaining last
// segment.
func (e *Editor) rewindChain() {
	pl, ok := e.chain.shape.Geometry.(*state.Polyline)
	if !ok || len(pl.Segments) == 0 {
		e.chain.reset()
		return
	}
	e.chain.last = e.chain.shape.Transform.Apply(pl.Segments[len(pl.Segments)-1].End)
}

// Copy puts the move target on the clipboard.
func (e *Editor) Copy() []Event {
	if !e.clipboard.Copy(e.selection.MoveTarget) {
		return nil
	}
	log.Printf("[EDITOR] Copied %s", e.selection.MoveTarget)
	return []Event{status(msgCopied)}
}

// Copied returns the move target a Copy would store, or nil.
func (e *Editor) Copied() *state.Shape { return e.selection.MoveTarget }

// Paste places the clipboard shape centred on cursor.
func (e *Editor) Paste(cursor state.Point) []Event {
	s := e.clipboard.Paste(cursor)
	if s == nil {
		return nil
	}
	e.drawing.Readd(s)
	events := []Event{committed(s)}
	if e.selection.DeleteTarget == s {
		events = append(events, selectionChanged(e.selection.Highlight()))
	}
	return append(events, status(msgPasted))
}

// Rotate turns the move target 5 degrees about its centre.
func (e *Editor) Rotate(clockwise bool) []Event {
	target := e.selection.MoveTarget
	if target == nil {
		return nil
	}
	deg := -5.0
	if clockwise {
		deg = 5
	}
	target.RotateInPlace(deg)
	events := []Event{changed(target)}
	if e.selection.DeleteTarget == target {
		events = append(events, selectionChanged(e.selection.Highlight()))
	}
	return events
}

// ResetPolyline ends the current polyline chain.
func (e *Editor) ResetPolyline() {
	e.chain.reset()
}

// Clear empties the drawing and every gesture in progress.
func (e *Editor) Clear() []Event {
	var events []Event
	for _, s := range e.drawing.Shapes() {
		events = append(events, removed(s))
	}
	e.drawing.Clear()
	if e.selection.DeleteTarget != nil {
		events = append(events, selectionChanged(nil))
	}
	e.selection.clear()
	e.curve.reset()
	e.chain.reset()
	e.drag.end()
	log.Printf("[EDITOR] Drawing cleared")
	return e.clearPreview(events)
}

// NewDrawing clears the drawing and restores the black pen, the line tool
// and unarmed text.
func (e *Editor) NewDrawing() []Event {
	events := e.Clear()
	e.CancelText()
	e.cfg.Tool = ToolLine
	e.cfg.Style.Color = state.Black
	return events
}

// Import commits shapes read from a file, in order.
func (e *Editor) Import(shapes []*state.Shape) []Event {
	events := make([]Event, 0, len(shapes))
	for _, s := range shapes {
		if s == nil {
			continue
		}
		events = append(events, e.commit(s))
	}
	log.Printf("[EDITOR] Imported %d shapes", len(events))
	return events
}
