package export

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"VectorBoard/internal/render"
	"VectorBoard/internal/state"
)

func pt(x, y float64) state.Point { return state.Point{X: x, Y: y} }

func sampleShapes() []*state.Shape {
	dashed := state.DefaultStyle()
	dashed.Dash = state.DashDash
	dashed.Color = state.MustParseColor("#1e90ff")

	rotated := state.NewShape(state.DefaultStyle(), &state.Rectangle{TopLeft: pt(100, 100), BottomRight: pt(150, 130)})
	rotated.RotateInPlace(15)

	red := state.DefaultStyle()
	red.Color = state.MustParseColor("#ff0000")

	return []*state.Shape{
		state.NewShape(dashed, &state.Line{Start: pt(10, 10), End: pt(90, 40)}),
		rotated,
		state.NewShape(state.DefaultStyle(), state.NewCircle(pt(200, 50), pt(240, 50))),
		state.NewShape(state.DefaultStyle(), &state.Curve{P0: pt(10, 200), P1: pt(120, 200), P2: pt(60, 150)}),
		state.NewShape(state.DefaultStyle(), &state.Polyline{Segments: []state.Segment{
			{Start: pt(300, 10), End: pt(320, 40)},
			{Start: pt(320, 40), End: pt(350, 10)},
		}}),
		state.NewShape(red, &state.Text{
			Content: "a < b",
			Anchor:  pt(20, 250),
			Font:    state.Font{Family: "Go Mono", Size: 12},
			Color:   red.Color,
		}),
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, ".png", Format("drawing"))
	assert.Equal(t, ".jpg", Format("drawing.JPG"))
	assert.Equal(t, ".svg", Format("/tmp/x.svg"))
}

func TestSaveDefaultsToPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing")

	written, err := Save(path, 64, 48, render.Scene{Shapes: sampleShapes()})
	require.NoError(t, err)
	assert.Equal(t, path+".png", written)

	f, err := os.Open(written)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestSaveUnsupported(t *testing.T) {
	_, err := Save(filepath.Join(t.TempDir(), "drawing.gif"), 10, 10, render.Scene{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = Encode(&bytes.Buffer{}, ".tiff", 10, 10, render.Scene{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, ".jpeg", 32, 16, render.Scene{Shapes: sampleShapes()}))

	img, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, 400, 300, sampleShapes()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.pdf")
	written, err := Save(path, 400, 300, render.Scene{Shapes: sampleShapes()})
	require.NoError(t, err)

	info, err := os.Stat(written)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, 400, 300, sampleShapes()))
	out := buf.String()

	assert.Contains(t, out, `width="400" height="300"`)
	assert.Contains(t, out, `<line x1="10" y1="10" x2="90" y2="40"`)
	assert.Contains(t, out, `stroke="#1e90ff" stroke-width="3" stroke-dasharray="12 6"`)
	assert.Contains(t, out, `<circle cx="220" cy="50" r="20"`)
	assert.Contains(t, out, `<path d="M 10 200 C 10 200 60 150 120 200"`)
	assert.Contains(t, out, `<polyline points="300,10 320,40 350,10"`)
	assert.Contains(t, out, `transform="matrix(`)
	assert.Contains(t, out, "a &lt; b")
}

func TestSVGRoundTrip(t *testing.T) {
	original := sampleShapes()
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, 400, 300, original))

	shapes, err := ReadSVG(&buf)
	require.NoError(t, err)
	require.Len(t, shapes, len(original))

	for i, s := range shapes {
		want := original[i]
		assert.Equal(t, want.Kind(), s.Kind(), "shape %d", i)
		assert.Equal(t, want.Style.Color, s.Style.Color, "shape %d", i)
		assert.Equal(t, want.Style.Dash, s.Style.Dash, "shape %d", i)

		wb, gb := want.Bounds(), s.Bounds()
		assert.InDelta(t, wb.X, gb.X, 0.5, "shape %d", i)
		assert.InDelta(t, wb.Y, gb.Y, 0.5, "shape %d", i)
		assert.InDelta(t, wb.Width, gb.Width, 0.5, "shape %d", i)
		assert.InDelta(t, wb.Height, gb.Height, 0.5, "shape %d", i)
	}

	curve := shapes[3].Geometry.(*state.Curve)
	assert.Equal(t, pt(10, 200), curve.P0)
	assert.Equal(t, pt(120, 200), curve.P1)
	assert.Equal(t, pt(60, 150), curve.P2)

	txt := shapes[5].Geometry.(*state.Text)
	assert.Equal(t, "a < b", txt.Content)
	assert.Equal(t, state.Font{Family: "Go Mono", Size: 12}, txt.Font)
}

func TestReadSVGElements(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <g>
    <ellipse cx="50" cy="60" rx="20" ry="10" style="stroke:#00ff00;stroke-width:5"/>
    <rect width="10" height="10"/>
    <rect x="5" y="6" width="10" height="20" stroke="#123456"/>
    <polyline points="0,0 10,0 10,10"/>
    <path d="M10,10 C20,20 30,-5 40,10"/>
    <path d="M0 0 L10 10"/>
    <text x="1" y="20" font-size="12pt">hello</text>
  </g>
</svg>`
	shapes, err := ReadSVG(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, shapes, 5)

	circle := shapes[0].Geometry.(*state.Circle)
	assert.Equal(t, pt(50, 60), circle.Center)
	assert.Equal(t, 20.0, circle.Radius)
	assert.Equal(t, 5, shapes[0].Style.Width)
	assert.Equal(t, state.MustParseColor("#00ff00"), shapes[0].Style.Color)

	rect := shapes[1].Geometry.(*state.Rectangle)
	assert.Equal(t, pt(5, 6), rect.TopLeft)
	assert.Equal(t, pt(15, 26), rect.BottomRight)

	pl := shapes[2].Geometry.(*state.Polyline)
	assert.Len(t, pl.Segments, 2)

	curve := shapes[3].Geometry.(*state.Curve)
	assert.Equal(t, pt(10, 10), curve.P0)
	assert.Equal(t, pt(30, -5), curve.P2)
	assert.Equal(t, pt(40, 10), curve.P1)

	txt := shapes[4].Geometry.(*state.Text)
	assert.Equal(t, "hello", txt.Content)
	assert.Equal(t, 12, txt.Font.Size)
	assert.Equal(t, state.DefaultFont().Family, txt.Font.Family)
}

func TestReadSVGMalformed(t *testing.T) {
	_, err := ReadSVG(strings.NewReader(`<svg><line x1="0"`))
	assert.Error(t, err)
}

func TestParseTransform(t *testing.T) {
	m := parseTransform("translate(10 20) rotate(90)")
	p := m.Apply(pt(1, 0))

	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 21, p.Y, 1e-9)
	assert.Equal(t, state.Identity(), parseTransform("skewX(30)"))
}

func TestSaveBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.bmp")
	written, err := Save(path, 40, 30, render.Scene{Shapes: sampleShapes()})
	require.NoError(t, err)
	assert.Equal(t, path, written)

	f, err := os.Open(written)
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, ".BMP", 8, 8, render.Scene{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("BM")))
	assert.Contains(t, Extensions(), ".bmp")
}

func TestReadSVGCompactPathData(t *testing.T) {
	tests := []struct {
		name string
		d    string
		p0   state.Point
		p2   state.Point
		p1   state.Point
	}{
		{"packed decimals", "M0 0C0 0 .5.5 2 2", pt(0, 0), pt(0.5, 0.5), pt(2, 2)},
		{"signs as separators", "M10-10C10-10 20-5 30-10", pt(10, -10), pt(20, -5), pt(30, -10)},
		{"exponent", "M1e1,0 C0,0 1e-1,2 3,4", pt(10, 0), pt(0.1, 2), pt(3, 4)},
		{"relative cubic", "m5 5c0 0 5 5 10 0", pt(5, 5), pt(10, 10), pt(15, 5)},
		{"trailing segments ignored", "M0 0C1 1 2 2 3 3L9 9Z", pt(0, 0), pt(2, 2), pt(3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<svg><path d="` + tt.d + `"/></svg>`
			shapes, err := ReadSVG(strings.NewReader(doc))
			require.NoError(t, err)
			require.Len(t, shapes, 1)
			curve := shapes[0].Geometry.(*state.Curve)
			assert.InDelta(t, tt.p0.X, curve.P0.X, 1e-9)
			assert.InDelta(t, tt.p0.Y, curve.P0.Y, 1e-9)
			assert.InDelta(t, tt.p2.X, curve.P2.X, 1e-9)
			assert.InDelta(t, tt.p2.Y, curve.P2.Y, 1e-9)
			assert.InDelta(t, tt.p1.X, curve.P1.X, 1e-9)
			assert.InDelta(t, tt.p1.Y, curve.P1.Y, 1e-9)
		})
	}

	for _, d := range []string{"M0 0 L10 10", "C0 0 1 1 2 2", "M0 0 C1 1 2", "M0 0 Cx 1 2 3 4 5"} {
		shapes, err := ReadSVG(strings.NewReader(`<svg><path d="` + d + `"/></svg>`))
		require.NoError(t, err)
		assert.Empty(t, shapes, d)
	}
}

func TestReadSVGScaledTransformIsBaked(t *testing.T) {
	doc := `<svg><rect x="0" y="0" width="10" height="10" transform="matrix(4 0 0 4 0 0)"/></svg>`
	shapes, err := ReadSVG(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	s := shapes[0]

	assert.True(t, s.Transform.IsRigid())
	rect := s.Geometry.(*state.Rectangle)
	assert.Equal(t, pt(40, 40), rect.BottomRight)
	assert.True(t, s.Contains(pt(40, 20)))

	img := render.Render(60, 60, 1, render.Scene{Shapes: shapes})
	r, _, _, _ := img.At(40, 20).RGBA()
	assert.Less(t, r, uint32(0xffff))
}

func redImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func TestReadImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, redImage(6, 4)))

	s, err := ReadImage(&buf, pt(0, 0))
	require.NoError(t, err)
	pic := s.Geometry.(*state.Image)
	assert.Equal(t, 6.0, pic.Width)
	assert.Equal(t, 4.0, pic.Height)
	assert.Equal(t, state.KindImage, s.Kind())
	assert.Equal(t, state.Rect{X: 0, Y: 0, Width: 6, Height: 4}, s.Bounds())

	_, err = ReadImage(strings.NewReader("not an image"), pt(0, 0))
	assert.Error(t, err)
}

func TestImageSVGRoundTrip(t *testing.T) {
	pic := state.NewImage(redImage(3, 3), pt(5, 7))
	s := state.NewShape(state.DefaultStyle(), pic)

	el := ShapeSVG(s)
	assert.True(t, strings.HasPrefix(el, `<image x="5" y="7" width="3" height="3"`))
	assert.Contains(t, el, `href="data:image/png;base64,`)

	shapes, err := ReadSVG(strings.NewReader("<svg>" + el + "</svg>"))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	got := shapes[0].Geometry.(*state.Image)
	assert.Equal(t, pt(5, 7), got.Anchor)
	assert.Equal(t, 3, got.Source.Bounds().Dx())

	var pdf bytes.Buffer
	require.NoError(t, WritePDF(&pdf, 20, 20, []*state.Shape{s}))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))

	_, err = base64.StdEncoding.DecodeString(strings.TrimSuffix(strings.SplitN(el, "base64,", 2)[1], `"/>`))
	assert.NoError(t, err)
}
