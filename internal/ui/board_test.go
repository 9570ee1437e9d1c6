package ui

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/config"
	"VectorBoard/internal/editor"
	"VectorBoard/internal/state"
)

func newTestBoard(t *testing.T) *BoardWidget {
	t.Helper()
	test.NewTempApp(t)
	b, err := NewBoardWidget(editor.DefaultConfig())
	require.NoError(t, err)
	b.Resize(fyne.NewSize(400, 300))
	return b
}

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     button,
	}
}

func drag(b *BoardWidget, x1, y1, x2, y2 float32) {
	b.MouseDown(mouse(x1, y1, desktop.MouseButtonPrimary))
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x2, y2)}})
	b.MouseUp(mouse(x2, y2, desktop.MouseButtonPrimary))
}

func TestBoardCommitsDraggedLine(t *testing.T) {
	b := newTestBoard(t)
	changes := 0
	b.OnChange = func() { changes++ }

	drag(b, 10, 10, 60, 40)

	scene := b.Scene()
	require.Len(t, scene.Shapes, 1)
	line, ok := scene.Shapes[0].Geometry.(*state.Line)
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 10, Y: 10}, line.Start)
	assert.Equal(t, state.Point{X: 60, Y: 40}, line.End)
	assert.Nil(t, scene.Preview)
	assert.Positive(t, changes)
}

func TestBoardDragEndWithoutMouseUp(t *testing.T) {
	b := newTestBoard(t)
	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(80, 20)}})
	b.DragEnd()
	require.Len(t, b.Scene().Shapes, 1)

	// A late MouseUp must not commit a second shape.
	b.MouseUp(mouse(80, 20, desktop.MouseButtonPrimary))
	assert.Len(t, b.Scene().Shapes, 1)
}

func TestBoardSecondaryClickSelects(t *testing.T) {
	b := newTestBoard(t)
	drag(b, 10, 10, 100, 10)

	b.MouseDown(mouse(50, 10, desktop.MouseButtonSecondary))
	b.MouseUp(mouse(50, 10, desktop.MouseButtonSecondary))
	assert.NotNil(t, b.Scene().Highlight)
	assert.Nil(t, b.ExportScene().Highlight)

	b.MouseDown(mouse(300, 200, desktop.MouseButtonSecondary))
	b.MouseUp(mouse(300, 200, desktop.MouseButtonSecondary))
	assert.Nil(t, b.Scene().Highlight)
}

func TestBoardHoverTracksPointerAndCursor(t *testing.T) {
	b := newTestBoard(t)
	var last state.Point
	b.OnPointer = func(p state.Point) { last = p }

	b.MouseIn(mouse(5, 5, 0))
	assert.True(t, b.Hovering())
	assert.Equal(t, desktop.CrosshairCursor, b.Cursor())

	b.MouseMoved(mouse(20, 30, 0))
	assert.Equal(t, state.Point{X: 20, Y: 30}, last)
	assert.Equal(t, last, b.Pointer())

	b.MouseOut()
	assert.False(t, b.Hovering())
}

func TestBoardConfigureRejectsInvalid(t *testing.T) {
	b := newTestBoard(t)
	err := b.Configure(func(c *editor.Config) { c.Style.Width = 0 })
	require.ErrorIs(t, err, editor.ErrInvalidConfiguration)
	assert.Equal(t, 3, b.Config().Style.Width)

	require.NoError(t, b.Configure(func(c *editor.Config) { c.Tool = editor.ToolCircle }))
	assert.Equal(t, editor.ToolCircle, b.Config().Tool)
}

func TestToolbarFollowsEditor(t *testing.T) {
	b := newTestBoard(t)
	w := test.NewWindow(b)
	defer w.Close()
	tb := NewToolbar(b, w)
	assert.Equal(t, "Line", tb.tools.Selected)

	require.NoError(t, b.Configure(func(c *editor.Config) {
		c.Tool = editor.ToolRectangle
		c.Grid.Enabled = true
	}))
	tb.Sync()
	assert.Equal(t, "Rectangle", tb.tools.Selected)
	assert.True(t, tb.grid.Checked)

	b.Do(func(e *editor.Editor) []editor.Event { return e.NewDrawing() })
	tb.Sync()
	assert.Equal(t, "Line", tb.tools.Selected)
}

func TestToolbarPlaceTextNeedsContent(t *testing.T) {
	b := newTestBoard(t)
	w := test.NewWindow(b)
	defer w.Close()
	tb := NewToolbar(b, w)

	tb.place.SetChecked(true)
	assert.False(t, b.TextArmed())
	assert.False(t, tb.place.Checked)

	tb.text.SetText("hello")
	tb.place.SetChecked(true)
	assert.True(t, b.TextArmed())

	b.MouseDown(mouse(40, 40, desktop.MouseButtonPrimary))
	b.MouseUp(mouse(40, 40, desktop.MouseButtonPrimary))
	tb.Sync()
	assert.False(t, b.TextArmed())
	assert.False(t, tb.place.Checked)
	require.Len(t, b.Scene().Shapes, 1)
	assert.Equal(t, state.KindText, b.Scene().Shapes[0].Kind())
}

func TestToolbarSizeSlider(t *testing.T) {
	b := newTestBoard(t)
	w := test.NewWindow(b)
	defer w.Close()
	tb := NewToolbar(b, w)
	assert.Equal(t, 3.0, tb.size.Value)
	assert.Equal(t, 12.0, tb.fontSize.Value)

	tb.size.SetValue(8)
	assert.Equal(t, 8, b.Config().Style.Width)

	tb.dash.SetSelected(state.DashDot.String())
	assert.Equal(t, state.DashDot, b.Config().Style.Dash)
}

func TestStatusBarPointer(t *testing.T) {
	test.NewTempApp(t)
	s := newStatusBar()
	s.SetPointer(state.Point{X: 12.7, Y: 40.2})
	assert.Equal(t, "x: 12, y: 40", s.pointer.Text)
}

func TestPlaceTextReleasesEntryFocus(t *testing.T) {
	b := newTestBoard(t)
	tb := NewToolbar(b, nil)
	w := test.NewWindow(tb.Object())
	defer w.Close()
	tb.window = w

	w.Canvas().Focus(tb.text)
	test.Type(tb.text, "label")
	require.Equal(t, tb.text, w.Canvas().Focused())

	tb.place.SetChecked(true)
	assert.True(t, b.TextArmed())
	assert.Nil(t, w.Canvas().Focused())
}

func TestSubmittingTextArmsPlacement(t *testing.T) {
	b := newTestBoard(t)
	tb := NewToolbar(b, nil)
	w := test.NewWindow(tb.Object())
	defer w.Close()
	tb.window = w

	w.Canvas().Focus(tb.text)
	test.Type(tb.text, "note")
	tb.text.OnSubmitted(tb.text.Text)

	assert.True(t, tb.place.Checked)
	assert.True(t, b.TextArmed())
	assert.Nil(t, w.Canvas().Focused())
}

func TestRestoreViewportOnlyReads(t *testing.T) {
	b := newTestBoard(t)
	path := filepath.Join(t.TempDir(), "vectorboard.json")

	a := &boardApp{opts: Options{ConfigPath: path}, board: b}
	a.restoreViewport()
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, config.Save(path, &config.Config{MaxViewportSize: [2]int{800, 600}}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	a.opts.AutoConfigure = true
	a.restoreViewport()
	assert.Equal(t, fyne.NewSize(300, 300), b.minSize)

	a.opts.AutoConfigure = false
	a.restoreViewport()
	assert.Equal(t, fyne.NewSize(800, 600), b.minSize)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadImageCommitsAtOrigin(t *testing.T) {
	b := newTestBoard(t)
	a := &boardApp{board: b}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 12, 8))))
	require.NoError(t, a.loadImage(&buf))

	shapes := b.Scene().Shapes
	require.Len(t, shapes, 1)
	pic, ok := shapes[0].Geometry.(*state.Image)
	require.True(t, ok)
	assert.Equal(t, state.Point{}, pic.Anchor)
	assert.Equal(t, 12.0, pic.Width)

	b.Do((*editor.Editor).Undo)
	assert.Empty(t, b.Scene().Shapes)

	assert.Error(t, a.loadImage(bytes.NewReader([]byte("junk"))))
	assert.Empty(t, b.Scene().Shapes)
}
