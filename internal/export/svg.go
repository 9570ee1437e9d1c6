package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"VectorBoard/internal/state"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteSVG writes shapes as an SVG document of the given canvas size.
func WriteSVG(w io.Writer, width, height int, shapes []*state.Shape) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		width, height, width, height)
	for _, s := range shapes {
		if s == nil || s.Geometry == nil {
			continue
		}
		if el := ShapeSVG(s); el != "" {
			fmt.Fprintf(bw, "  %s\n", el)
		}
	}
	fmt.Fprintf(bw, "</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// SaveSVG writes shapes to path as SVG.
func SaveSVG(path string, width, height int, shapes []*state.Shape) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSVG(f, width, height, shapes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("[EXPORT] Saved SVG %s (%d shapes)", path, len(shapes))
	return nil
}

// ShapeSVG returns the single SVG element for s, or "" when s cannot be
// written.
func ShapeSVG(s *state.Shape) string {
	var b strings.Builder
	switch g := s.Geometry.(type) {
	case *state.Line:
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s"`,
			num(g.Start.X), num(g.Start.Y), num(g.End.X), num(g.End.Y))
	case *state.Rectangle:
		r := g.Rect()
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s"`,
			num(r.X), num(r.Y), num(r.Width), num(r.Height))
	case *state.Circle:
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s"`,
			num(g.Center.X), num(g.Center.Y), num(g.Radius))
	case *state.Curve:
		start, c1, c2, end := g.Controls()
		fmt.Fprintf(&b, `<path d="M %s %s C %s %s %s %s %s %s"`,
			num(start.X), num(start.Y), num(c1.X), num(c1.Y),
			num(c2.X), num(c2.Y), num(end.X), num(end.Y))
	case *state.Polyline:
		pts := make([]string, 0, len(g.Segments)+1)
		for _, p := range g.Points() {
			pts = append(pts, num(p.X)+","+num(p.Y))
		}
		fmt.Fprintf(&b, `<polyline points="%s"`, strings.Join(pts, " "))
	case *state.Text:
		return textSVG(s, g)
	case *state.Image:
		return imageSVG(s, g)
	}
	b.WriteString(strokeAttrs(s.Style))
	b.WriteString(transformAttr(s.Transform))
	b.WriteString("/>")
	return b.String()
}

func strokeAttrs(style state.Style) string {
	attrs := fmt.Sprintf(` fill="none" stroke="%s" stroke-width="%d"`, state.ColorHex(style.Color), style.Width)
	if pattern := style.Dash.Pattern(float64(style.Width)); pattern != nil {
		parts := make([]string, len(pattern))
		for i, v := range pattern {
			parts[i] = num(v)
		}
		attrs += fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	return attrs
}

func transformAttr(m state.Matrix) string {
	if m.IsIdentity() {
		return ""
	}
	return fmt.Sprintf(` transform="matrix(%s %s %s %s %s %s)"`,
		num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5]))
}

func textSVG(s *state.Shape, t *state.Text) string {
	var content strings.Builder
	if err := xml.EscapeText(&content, []byte(t.Content)); err != nil {
		content.Reset()
	}
	base := t.Baseline()
	return fmt.Sprintf(`<text x="%s" y="%s" font-family="%s" font-size="%spx" fill="%s"%s>%s</text>`,
		num(base.X), num(base.Y), t.Font.Family, num(t.Font.PixelSize()),
		state.ColorHex(t.Color), transformAttr(s.Transform), content.String())
}

func imageSVG(s *state.Shape, im *state.Image) string {
	if im.Source == nil {
		return ""
	}
	href, err := imageDataURI(im.Source)
	if err != nil {
		log.Printf("[EXPORT] Skipping image %s: %v", s.ID, err)
		return ""
	}
	return fmt.Sprintf(`<image x="%s" y="%s" width="%s" height="%s"%s href="%s"/>`,
		num(im.Anchor.X), num(im.Anchor.Y), num(im.Width), num(im.Height),
		transformAttr(s.Transform), href)
}
