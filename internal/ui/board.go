package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"VectorBoard/internal/render"
)

// Scene is what the canvas shows right now.
func (b *BoardWidget) Scene() render.Scene {
	b.mu.Lock()
	defer b.mu.Unlock()
	return render.Scene{
		Shapes:     b.editor.Shapes(),
		Preview:    b.editor.Preview(),
		Highlight:  b.editor.Highlight(),
		Grid:       b.editor.Config().Grid,
		Background: color.White,
	}
}

// ExportScene is the committed drawing without grid, preview or highlight.
func (b *BoardWidget) ExportScene() render.Scene {
	b.mu.Lock()
	defer b.mu.Unlock()
	return render.Scene{Shapes: b.editor.Shapes(), Background: color.White}
}

// CanvasSize is the canvas size in scene units.
func (b *BoardWidget) CanvasSize() (int, int) {
	size := b.Size()
	return int(size.Width), int(size.Height)
}

// SetMinCanvasSize fixes the smallest size the canvas lays out at.
func (b *BoardWidget) SetMinCanvasSize(w, h int) {
	b.minSize = fyne.NewSize(float32(w), float32(h))
	b.Refresh()
}

// draw paints the scene at the raster's pixel size. Scene coordinates are
// fyne units, so the pixel ratio becomes the render scale.
func (b *BoardWidget) draw(w, h int) image.Image {
	scale := 1.0
	if width := b.Size().Width; width > 0 {
		scale = float64(w) / float64(width)
	}
	return render.Render(w, h, scale, b.Scene())
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return r.board.minSize
}
