package ui

import (
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/editor"
	"VectorBoard/internal/state"
)

// BoardWidget is the drawing canvas. It forwards pointer input to the
// editor and repaints the scene from the events it returns.
type BoardWidget struct {
	widget.BaseWidget
	mu      sync.Mutex
	editor  *editor.Editor
	raster  *canvas.Raster
	minSize fyne.Size

	hovering bool
	pointer  state.Point
	dragPos  state.Point

	OnStatus  func(msg string)
	OnPointer func(p state.Point)
	OnChange  func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

func NewBoardWidget(cfg editor.Config) (*BoardWidget, error) {
	ed, err := editor.New(cfg)
	if err != nil {
		return nil, err
	}
	b := &BoardWidget{
		editor:  ed,
		minSize: fyne.NewSize(300, 300),
	}
	b.raster = canvas.NewRaster(b.draw)
	b.ExtendBaseWidget(b)
	return b, nil
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

// Do runs op against the editor and applies the events it returns.
func (b *BoardWidget) Do(op func(*editor.Editor) []editor.Event) {
	b.mu.Lock()
	events := op(b.editor)
	b.mu.Unlock()
	b.apply(events)
}

// Config returns the editor configuration.
func (b *BoardWidget) Config() editor.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editor.Config()
}

// Configure edits a copy of the editor configuration and pushes it back.
func (b *BoardWidget) Configure(update func(*editor.Config)) error {
	b.mu.Lock()
	cfg := b.editor.Config()
	update(&cfg)
	events, err := b.editor.Configure(cfg)
	b.mu.Unlock()
	if err != nil {
		log.Printf("[UI] Rejected configuration: %v", err)
		return err
	}
	b.apply(events)
	return nil
}

// TextArmed reports whether the next click places text.
func (b *BoardWidget) TextArmed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	armed, _ := b.editor.TextArmed()
	return armed
}

// Pointer is the last pointer position over the canvas.
func (b *BoardWidget) Pointer() state.Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pointer
}

// Hovering reports whether the pointer is over the canvas.
func (b *BoardWidget) Hovering() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hovering
}

func (b *BoardWidget) apply(events []editor.Event) {
	if len(events) == 0 {
		return
	}
	repaint := false
	for _, ev := range events {
		switch ev.Kind {
		case editor.StatusMessage:
			if b.OnStatus != nil {
				b.OnStatus(ev.Message)
			}
		case editor.CursorChanged:
		default:
			repaint = true
		}
	}
	if repaint {
		b.raster.Refresh()
	}
	if b.OnChange != nil {
		b.OnChange()
	}
}

func button(e *desktop.MouseEvent) editor.Button {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		return editor.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return editor.ButtonSecondary
	}
	return editor.ButtonNone
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	p, btn := toPoint(e.Position), button(e)
	b.dragPos = p
	b.Do(func(ed *editor.Editor) []editor.Event { return ed.Press(p, btn) })
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	p, btn := toPoint(e.Position), button(e)
	b.Do(func(ed *editor.Editor) []editor.Event { return ed.Release(p, btn) })
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	p := toPoint(e.Position)
	b.dragPos = p
	b.moved(p)
}

// DragEnd finishes a drag released outside the canvas, where MouseUp
// never arrives. A release already handled makes this a no-op.
func (b *BoardWidget) DragEnd() {
	p := b.dragPos
	b.Do(func(ed *editor.Editor) []editor.Event { return ed.Release(p, editor.ButtonPrimary) })
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.mu.Lock()
	b.hovering = true
	b.mu.Unlock()
	b.moved(toPoint(e.Position))
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.moved(toPoint(e.Position))
}

func (b *BoardWidget) MouseOut() {
	b.mu.Lock()
	b.hovering = false
	b.mu.Unlock()
}

func (b *BoardWidget) moved(p state.Point) {
	b.mu.Lock()
	b.pointer = p
	b.mu.Unlock()
	if b.OnPointer != nil {
		b.OnPointer(p)
	}
	b.Do(func(ed *editor.Editor) []editor.Event { return ed.Move(p) })
}

// Cursor maps the editor's hint to a desktop cursor.
func (b *BoardWidget) Cursor() desktop.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.editor.Cursor() {
	case editor.CursorPointer:
		return desktop.PointerCursor
	case editor.CursorCrosshair:
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}
