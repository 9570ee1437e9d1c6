// Package render rasterises a drawing with gg. The same pass feeds the
// on-screen canvas and raster export.
package render

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/fogleman/gg"

	"VectorBoard/internal/state"
)

var (
	GridColor      = state.MustParseColor("#999999")
	HighlightColor = state.MustParseColor("#2073e8")
)

// HighlightWidth is the pen width of the selection rectangle.
const HighlightWidth = 3

// Scene is everything visible on the canvas, painted in field order.
type Scene struct {
	Shapes     []*state.Shape
	Preview    *state.Shape
	Highlight  *state.Rect
	Grid       state.GridConfig
	Background color.Color
}

// Render paints scene onto a width x height image. Scene coordinates are
// multiplied by scale, so a HiDPI canvas stays sharp.
func Render(width, height int, scale float64, scene Scene) image.Image {
	return NewContext(width, height, scale, scene).Image()
}

// NewContext paints scene onto a fresh gg context.
func NewContext(width, height int, scale float64, scene Scene) *gg.Context {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(width, height)
	bg := scene.Background
	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Clear()

	dc.Scale(scale, scale)
	Draw(dc, scale, scene)
	return dc
}

// Draw paints scene on dc, whose matrix already maps scene coordinates.
func Draw(dc *gg.Context, scale float64, scene Scene) {
	if scene.Grid.Enabled && scene.Grid.CellSize > 0 {
		drawGrid(dc, scale, scene.Grid.CellSize)
	}
	for _, s := range scene.Shapes {
		DrawShape(dc, scale, s)
	}
	if scene.Preview != nil {
		DrawShape(dc, scale, scene.Preview)
	}
	if scene.Highlight != nil {
		drawHighlight(dc, scale, *scene.Highlight)
	}
}

func drawGrid(dc *gg.Context, scale float64, cell int) {
	w := float64(dc.Width()) / scale
	h := float64(dc.Height()) / scale
	step := float64(cell)

	dc.Push()
	defer dc.Pop()
	dc.SetColor(GridColor)
	dc.SetLineWidth(1)
	dc.SetDash()
	for x := 0.0; x <= w; x += step {
		dc.DrawLine(x, 0, x, h)
	}
	for y := 0.0; y <= h; y += step {
		dc.DrawLine(0, y, w, y)
	}
	dc.Stroke()
}

func drawHighlight(dc *gg.Context, scale float64, r state.Rect) {
	dc.Push()
	defer dc.Pop()
	setPen(dc, scale, state.Style{Color: HighlightColor, Width: HighlightWidth, Dash: state.DashDash})
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.Stroke()
}

// setPen applies style. gg strokes in device space, so width and dashes
// are scaled here rather than by the context matrix.
func setPen(dc *gg.Context, scale float64, style state.Style) {
	width := float64(style.Width)
	dc.SetColor(style.Color)
	dc.SetLineWidth(width * scale)
	dc.SetLineCapSquare()
	dc.SetLineJoinBevel()

	pattern := style.Dash.Pattern(width)
	for i := range pattern {
		pattern[i] *= scale
	}
	dc.SetDash(pattern...)
}

// DrawShape paints one shape with its pen and transform.
func DrawShape(dc *gg.Context, scale float64, s *state.Shape) {
	if s == nil || s.Geometry == nil {
		return
	}
	dc.Push()
	defer dc.Pop()

	tx, ty := s.Transform.Translation()
	dc.Translate(tx, ty)
	dc.Rotate(s.Transform.Angle() * math.Pi / 180)
	setPen(dc, scale, s.Style)

	switch g := s.Geometry.(type) {
	case *state.Line:
		dc.DrawLine(g.Start.X, g.Start.Y, g.End.X, g.End.Y)
		dc.Stroke()
	case *state.Rectangle:
		r := g.Rect()
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.Stroke()
	case *state.Circle:
		dc.DrawCircle(g.Center.X, g.Center.Y, g.Radius)
		dc.Stroke()
	case *state.Curve:
		start, c1, c2, end := g.Controls()
		dc.MoveTo(start.X, start.Y)
		dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		dc.Stroke()
	case *state.Polyline:
		drawPolyline(dc, g)
	case *state.Text:
		drawText(dc, g)
	case *state.Image:
		drawImage(dc, g)
	}
}

// drawImage stretches the picture over its box.
func drawImage(dc *gg.Context, im *state.Image) {
	if im.Source == nil {
		return
	}
	b := im.Source.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	dc.Push()
	defer dc.Pop()
	dc.Translate(im.Anchor.X, im.Anchor.Y)
	dc.Scale(im.Width/float64(b.Dx()), im.Height/float64(b.Dy()))
	dc.DrawImage(im.Source, -b.Min.X, -b.Min.Y)
}

func drawPolyline(dc *gg.Context, pl *state.Polyline) {
	var prev state.Point
	for i, seg := range pl.Segments {
		if i == 0 || seg.Start != prev {
			dc.MoveTo(seg.Start.X, seg.Start.Y)
		}
		dc.LineTo(seg.End.X, seg.End.Y)
		prev = seg.End
	}
	dc.Stroke()
}

func drawText(dc *gg.Context, t *state.Text) {
	face, err := t.Font.Face(1)
	if err != nil {
		log.Printf("[RENDER] Skipping text %q: %v", t.Content, err)
		return
	}
	base := t.Baseline()
	dc.SetFontFace(face)
	dc.SetColor(t.Color)
	dc.DrawString(t.Content, base.X, base.Y)
}
