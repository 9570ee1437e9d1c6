package export

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"unicode"

	pstrconv "github.com/tdewolff/parse/v2/strconv"

	"VectorBoard/internal/state"
)

// svgElement is one drawable element with its attributes flattened,
// inline style declarations included.
type svgElement struct {
	name  string
	attrs map[string]string
	text  string
}

func newSVGElement(se xml.StartElement) *svgElement {
	el := &svgElement{name: se.Name.Local, attrs: map[string]string{}}
	for _, a := range se.Attr {
		el.attrs[a.Name.Local] = strings.TrimSpace(a.Value)
	}
	// Inline style declarations override presentation attributes.
	for _, decl := range strings.Split(el.attrs["style"], ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok {
			el.attrs[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return el
}

func (el *svgElement) has(key string) bool {
	_, ok := el.attrs[key]
	return ok
}

func (el *svgElement) float(key string) float64 {
	v, _ := parseLength(el.attrs[key])
	return v
}

// ReadSVGFile imports the shapes of the SVG file at path.
func ReadSVGFile(path string) ([]*state.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	shapes, err := ReadSVG(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[EXPORT] Loaded %d shapes from %s", len(shapes), path)
	return shapes, nil
}

// ReadSVG imports line, polyline, circle, ellipse, rect, text, cubic path
// and embedded image elements in document order. Elements it cannot
// express are skipped.
func ReadSVG(r io.Reader) ([]*state.Shape, error) {
	dec := xml.NewDecoder(r)
	var (
		shapes []*state.Shape
		open   *svgElement
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := newSVGElement(t)
			if el.name == "text" {
				open = el
				continue
			}
			if s := svgShape(el); s != nil {
				shapes = append(shapes, s)
			}
		case xml.CharData:
			if open != nil {
				open.text += string(t)
			}
		case xml.EndElement:
			if t.Name.Local == "text" && open != nil {
				if s := svgText(open); s != nil {
					shapes = append(shapes, s)
				}
				open = nil
			}
		}
	}
	return shapes, nil
}

func svgShape(el *svgElement) *state.Shape {
	var g state.Geometry
	switch el.name {
	case "line":
		g = &state.Line{
			Start: state.Point{X: el.float("x1"), Y: el.float("y1")},
			End:   state.Point{X: el.float("x2"), Y: el.float("y2")},
		}
	case "polyline":
		pts := parsePoints(el.attrs["points"])
		if len(pts) < 2 {
			return nil
		}
		pl := &state.Polyline{}
		for i := 1; i < len(pts); i++ {
			pl.Segments = append(pl.Segments, state.Segment{Start: pts[i-1], End: pts[i]})
		}
		g = pl
	case "circle":
		g = &state.Circle{Center: state.Point{X: el.float("cx"), Y: el.float("cy")}, Radius: el.float("r")}
	case "ellipse":
		g = &state.Circle{Center: state.Point{X: el.float("cx"), Y: el.float("cy")}, Radius: el.float("rx")}
	case "rect":
		if !el.has("x") {
			return nil
		}
		x, y := el.float("x"), el.float("y")
		g = &state.Rectangle{
			TopLeft:     state.Point{X: x, Y: y},
			BottomRight: state.Point{X: x + el.float("width"), Y: y + el.float("height")},
		}
	case "path":
		c, ok := parseCubicPath(el.attrs["d"])
		if !ok {
			return nil
		}
		g = c
	case "image":
		pic, ok := svgImage(el)
		if !ok {
			return nil
		}
		g = pic
	default:
		return nil
	}
	s := state.NewShape(svgStyle(el), g)
	s.SetTransform(parseTransform(el.attrs["transform"]))
	return s
}

func svgText(el *svgElement) *state.Shape {
	content := strings.TrimSpace(el.text)
	if content == "" {
		return nil
	}
	f := state.DefaultFont()
	if fam := strings.Trim(el.attrs["font-family"], `"'`); state.KnownFamily(fam) {
		f.Family = fam
	}
	if size, ok := parseFontSize(el.attrs["font-size"]); ok {
		f.Size = size
	}
	fill := state.Black
	for _, key := range []string{"fill", "stroke"} {
		if c, err := state.ParseColor(el.attrs[key]); err == nil {
			fill = c
			break
		}
	}
	_, ascent, _ := state.TextMetrics(content, f)
	txt := &state.Text{
		Content: content,
		Anchor:  state.Point{X: el.float("x"), Y: el.float("y") - ascent},
		Font:    f,
		Color:   fill,
	}
	style := state.DefaultStyle()
	style.Color = fill
	s := state.NewShape(style, txt)
	s.SetTransform(parseTransform(el.attrs["transform"]))
	return s
}

func svgStyle(el *svgElement) state.Style {
	style := state.DefaultStyle()
	if c, err := state.ParseColor(el.attrs["stroke"]); err == nil {
		style.Color = c
	}
	if w, ok := parseLength(el.attrs["stroke-width"]); ok && w > 0 {
		style.Width = int(math.Max(1, math.Round(w)))
	}
	if dash := parseNumbers(el.attrs["stroke-dasharray"]); len(dash) > 0 {
		style.Dash = state.DashStyleFromPattern(dash, float64(style.Width))
	}
	return style
}

// parseLength reads a number with an optional px unit.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, n := pstrconv.ParseFloat([]byte(s))
	return v, n > 0 && n == len(s)
}

// parseFontSize returns a point size. Bare numbers and px are pixels.
func parseFontSize(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if pt, ok := strings.CutSuffix(s, "pt"); ok {
		v, ok := parseLength(pt)
		if !ok || v <= 0 {
			return 0, false
		}
		return int(math.Round(v)), true
	}
	v, ok := parseLength(s)
	if !ok || v <= 0 {
		return 0, false
	}
	return int(math.Max(1, math.Round(v*72/state.FontDPI))), true
}

// parseNumbers reads a list of numbers separated by commas, whitespace or
// nothing at all, as in "1-2.5.5". Any other character voids the list.
func parseNumbers(s string) []float64 {
	sc := &pathScanner{d: []byte(s)}
	var out []float64
	for !sc.done() {
		v, ok := sc.number()
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}

func parsePoints(s string) []state.Point {
	nums := parseNumbers(s)
	pts := make([]state.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, state.Point{X: nums[i], Y: nums[i+1]})
	}
	return pts
}

// pathScanner walks SVG path data one command letter or number at a time.
type pathScanner struct {
	d   []byte
	pos int
}

func (sc *pathScanner) skip() {
	for sc.pos < len(sc.d) && (sc.d[sc.pos] == ',' || unicode.IsSpace(rune(sc.d[sc.pos]))) {
		sc.pos++
	}
}

func (sc *pathScanner) done() bool {
	sc.skip()
	return sc.pos >= len(sc.d)
}

func (sc *pathScanner) command() (byte, bool) {
	if sc.done() {
		return 0, false
	}
	c := sc.d[sc.pos]
	if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return 0, false
	}
	sc.pos++
	return c, true
}

func (sc *pathScanner) number() (float64, bool) {
	if sc.done() {
		return 0, false
	}
	v, n := pstrconv.ParseFloat(sc.d[sc.pos:])
	if n == 0 {
		return 0, false
	}
	sc.pos += n
	return v, true
}

func (sc *pathScanner) point() (state.Point, bool) {
	x, ok := sc.number()
	if !ok {
		return state.Point{}, false
	}
	y, ok := sc.number()
	return state.Point{X: x, Y: y}, ok
}

// parseCubicPath reads the first moveto and the cubic that follows it,
// "M x y C x1 y1 x2 y2 x y". The start becomes P0, the second control point
// P2 and the end P1. Anything after the cubic is ignored.
func parseCubicPath(d string) (*state.Curve, bool) {
	sc := &pathScanner{d: []byte(d)}
	if cmd, ok := sc.command(); !ok || (cmd != 'M' && cmd != 'm') {
		return nil, false
	}
	// A leading relative moveto is absolute.
	start, ok := sc.point()
	if !ok {
		return nil, false
	}
	cmd, ok := sc.command()
	if !ok || (cmd != 'C' && cmd != 'c') {
		return nil, false
	}
	var pts [3]state.Point
	for i := range pts {
		if pts[i], ok = sc.point(); !ok {
			return nil, false
		}
		if cmd == 'c' {
			pts[i] = pts[i].Add(start)
		}
	}
	return &state.Curve{P0: start, P1: pts[2], P2: pts[1]}, true
}

// parseTransform reads a transform list of matrix, translate and rotate
// functions. Anything else leaves the identity.
func parseTransform(s string) state.Matrix {
	m := state.Identity()
	s = strings.TrimSpace(s)
	for s != "" {
		open := strings.IndexByte(s, '(')
		closing := strings.IndexByte(s, ')')
		if open < 0 || closing < open {
			break
		}
		name := strings.TrimSpace(s[:open])
		args := parseNumbers(s[open+1 : closing])
		s = strings.TrimLeft(s[closing+1:], " ,")

		var step state.Matrix
		switch {
		case name == "matrix" && len(args) == 6:
			copy(step[:], args)
		case name == "translate" && len(args) == 1:
			step = state.Translate(args[0], 0)
		case name == "translate" && len(args) == 2:
			step = state.Translate(args[0], args[1])
		case name == "rotate" && len(args) == 1:
			step = state.RotateDeg(args[0])
		case name == "rotate" && len(args) == 3:
			step = state.RotateAbout(args[0], state.Point{X: args[1], Y: args[2]})
		default:
			continue
		}
		// The rightmost function in a list applies first.
		m = step.Multiply(m)
	}
	return m
}
