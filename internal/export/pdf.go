package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"VectorBoard/internal/state"
)

// WritePDF writes shapes as a single vector page the size of the canvas.
// One canvas pixel maps to one PDF point.
func WritePDF(w io.Writer, width, height int, shapes []*state.Shape) error {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("square")

	fonts := map[string]bool{}
	for _, s := range shapes {
		if s == nil || s.Geometry == nil {
			continue
		}
		pdfShape(p, s, fonts)
	}
	if err := p.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SavePDF writes the PDF to path.
func SavePDF(path string, width, height int, shapes []*state.Shape) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePDF(f, width, height, shapes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("[EXPORT] Saved PDF %s (%d shapes)", path, len(shapes))
	return nil
}

func pdfShape(p *gofpdf.Fpdf, s *state.Shape, fonts map[string]bool) {
	c := s.Style.Color
	p.SetDrawColor(int(c.R), int(c.G), int(c.B))
	width := float64(s.Style.Width)
	p.SetLineWidth(width)
	dash := s.Style.Dash.Pattern(width)
	if dash == nil {
		dash = []float64{}
	}
	p.SetDashPattern(dash, 0)

	at := s.MapPoint
	switch g := s.Geometry.(type) {
	case *state.Line:
		a, b := at(g.Start), at(g.End)
		p.Line(a.X, a.Y, b.X, b.Y)
	case *state.Rectangle:
		var pts []gofpdf.PointType
		for _, corner := range g.Rect().Corners() {
			m := at(corner)
			pts = append(pts, gofpdf.PointType{X: m.X, Y: m.Y})
		}
		p.Polygon(pts, "D")
	case *state.Circle:
		m := at(g.Center)
		p.Circle(m.X, m.Y, g.Radius, "D")
	case *state.Curve:
		start, c1, c2, end := g.Controls()
		s0, s1, s2, s3 := at(start), at(c1), at(c2), at(end)
		p.CurveBezierCubic(s0.X, s0.Y, s1.X, s1.Y, s2.X, s2.Y, s3.X, s3.Y, "D")
	case *state.Polyline:
		for _, seg := range g.Segments {
			a, b := at(seg.Start), at(seg.End)
			p.Line(a.X, a.Y, b.X, b.Y)
		}
	case *state.Text:
		pdfText(p, s, g, fonts)
	case *state.Image:
		pdfImage(p, s, g)
	}
}

func pdfImage(p *gofpdf.Fpdf, s *state.Shape, im *state.Image) {
	if im.Source == nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, im.Source); err != nil {
		p.SetError(fmt.Errorf("encode image %s: %w", s.ID, err))
		return
	}
	name := "image-" + s.ID
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(name, opt, &buf)

	at := s.MapPoint(im.Anchor)
	angle := s.Transform.Angle()
	if angle != 0 {
		p.TransformBegin()
		p.TransformRotate(-angle, at.X, at.Y)
	}
	p.ImageOptions(name, at.X, at.Y, im.Width, im.Height, false, opt, 0, "")
	if angle != 0 {
		p.TransformEnd()
	}
}

func pdfFontKey(family string) string {
	return strings.ToLower(strings.ReplaceAll(family, " ", ""))
}

func pdfText(p *gofpdf.Fpdf, s *state.Shape, t *state.Text, fonts map[string]bool) {
	key := pdfFontKey(t.Font.Family)
	if !fonts[key] {
		p.AddUTF8FontFromBytes(key, "", t.Font.TTF())
		fonts[key] = true
	}
	p.SetFont(key, "", t.Font.PixelSize())
	p.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))

	base := s.MapPoint(t.Baseline())
	angle := s.Transform.Angle()
	if angle != 0 {
		p.TransformBegin()
		// PDF angles turn counterclockwise.
		p.TransformRotate(-angle, base.X, base.Y)
	}
	p.Text(base.X, base.Y, t.Content)
	if angle != 0 {
		p.TransformEnd()
	}
}
