package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/editor"
	"VectorBoard/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
	rect     *canvas.Rectangle
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	s.rect = canvas.NewRectangle(s.Color)
	s.rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

// SetColor repaints the swatch.
func (s *colorSwatch) SetColor(c color.Color) {
	if s.Color != nil && state.ToNRGBA(s.Color) == state.ToNRGBA(c) {
		return
	}
	s.Color = c
	if s.rect != nil {
		s.rect.FillColor = c
		s.rect.Refresh()
	}
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// palette is the quick-pick row next to the current pen swatch.
var palette = []string{"#000000", "#ea353e", "#2e9e44", "#2073e8", "#f2c12e", "#8e44ad"}

// Toolbar holds the controls that edit the editor configuration. Sync
// pulls the configuration back so the controls follow changes made
// elsewhere, such as File > New.
type Toolbar struct {
	board   *BoardWidget
	window  fyne.Window
	syncing bool

	tools    *widget.RadioGroup
	current  *colorSwatch
	size     *widget.Slider
	dash     *widget.Select
	family   *widget.Select
	fontSize *widget.Slider
	text     *widget.Entry
	place    *widget.Check
	grid     *widget.Check

	// OnGridChanged lets the host keep its menu item in step.
	OnGridChanged func(enabled bool)
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, w fyne.Window) *Toolbar {
	t := &Toolbar{board: board, window: w}

	t.tools = widget.NewRadioGroup(editor.ToolNames(), func(name string) {
		if tool, ok := editor.ParseTool(name); ok {
			t.configure(func(c *editor.Config) { c.Tool = tool })
		}
	})
	t.tools.Horizontal = true
	t.tools.Required = true

	t.current = newColorSwatch(color.Black, func(color.Color) { t.pickColor() })

	t.size = widget.NewSlider(1, 50)
	t.size.OnChanged = func(val float64) {
		t.configure(func(c *editor.Config) { c.Style.Width = int(val) })
	}

	t.dash = widget.NewSelect(state.DashStyles(), func(name string) {
		if d, ok := state.ParseDashStyle(name); ok {
			t.configure(func(c *editor.Config) { c.Style.Dash = d })
		}
	})

	t.family = widget.NewSelect(state.FontFamilies(), func(family string) {
		t.configure(func(c *editor.Config) { c.Font.Family = family })
	})

	t.fontSize = widget.NewSlider(6, 72)
	t.fontSize.OnChanged = func(val float64) {
		t.configure(func(c *editor.Config) { c.Font.Size = int(val) })
	}

	t.text = widget.NewEntry()
	t.text.SetPlaceHolder("Text")
	t.place = widget.NewCheck("Place text", func(on bool) {
		if t.syncing {
			return
		}
		if !on {
			board.Do(func(e *editor.Editor) []editor.Event { e.CancelText(); return nil })
			return
		}
		var armed bool
		board.Do(func(e *editor.Editor) []editor.Event { armed = e.ArmText(t.text.Text); return nil })
		if !armed {
			t.Sync()
			return
		}
		t.releaseFocus()
	})
	t.text.OnSubmitted = func(string) { t.place.SetChecked(true) }

	t.grid = widget.NewCheck("Grid", func(on bool) { t.SetGrid(on) })

	t.Sync()
	return t
}

// releaseFocus takes keyboard focus away from the text entry so Delete
// and the arrow keys reach the canvas again.
func (t *Toolbar) releaseFocus() {
	if t.window != nil {
		t.window.Canvas().Unfocus()
	}
}

// Object lays the controls out in two rows.
func (t *Toolbar) Object() fyne.CanvasObject {
	swatches := container.NewHBox()
	for _, hex := range palette {
		swatches.Add(newColorSwatch(state.MustParseColor(hex), t.setColor))
	}
	wrap := func(o fyne.CanvasObject) fyne.CanvasObject {
		return container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), o)
	}

	pen := container.NewHBox(
		widget.NewLabel("Tool:"),
		t.tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		t.current,
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		wrap(t.size),
		widget.NewLabel("Style:"),
		t.dash,
		layout.NewSpacer(),
	)
	text := container.NewHBox(
		widget.NewLabel("Font:"),
		t.family,
		widget.NewLabel("Size:"),
		wrap(t.fontSize),
		wrap(t.text),
		t.place,
		widget.NewSeparator(),
		t.grid,
		layout.NewSpacer(),
	)
	return container.NewVBox(pen, text)
}

func (t *Toolbar) configure(update func(*editor.Config)) {
	if t.syncing {
		return
	}
	if err := t.board.Configure(update); err != nil {
		t.Sync()
	}
}

func (t *Toolbar) setColor(c color.Color) {
	t.configure(func(cfg *editor.Config) { cfg.Style.Color = state.ToNRGBA(c) })
	t.current.SetColor(c)
}

func (t *Toolbar) pickColor() {
	picker := dialog.NewColorPicker("Pen Color", "Choose the pen color", t.setColor, t.window)
	picker.Advanced = true
	picker.SetColor(t.board.Config().Style.Color)
	picker.Show()
}

// SetGrid turns grid snapping and drawing on or off.
func (t *Toolbar) SetGrid(on bool) {
	t.configure(func(c *editor.Config) { c.Grid.Enabled = on })
	if t.OnGridChanged != nil {
		t.OnGridChanged(on)
	}
}

// Sync copies the editor configuration into the controls without
// feeding the changes back.
func (t *Toolbar) Sync() {
	if t.syncing {
		return
	}
	t.syncing = true
	defer func() { t.syncing = false }()

	cfg := t.board.Config()
	t.tools.SetSelected(cfg.Tool.String())
	t.current.SetColor(cfg.Style.Color)
	t.size.SetValue(float64(cfg.Style.Width))
	t.dash.SetSelected(cfg.Style.Dash.String())
	t.family.SetSelected(cfg.Font.Family)
	t.fontSize.SetValue(float64(cfg.Font.Size))
	t.place.SetChecked(t.board.TextArmed())
	t.grid.SetChecked(cfg.Grid.Enabled)
}
