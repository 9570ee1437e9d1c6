package state

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Kind names the geometry variant of a shape.
type Kind int

const (
	KindLine Kind = iota
	KindRectangle
	KindCircle
	KindCurve
	KindPolyline
	KindText
	KindImage
)

var kindNames = []string{"line", "rectangle", "circle", "curve", "polyline", "text", "image"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Geometry is the untransformed outline of a shape.
type Geometry interface {
	Kind() Kind
	// outline returns the points whose hull bounds the geometry.
	outline() []Point
	// hit reports whether local point p lies on the geometry within tol.
	hit(p Point, tol float64) bool
}

// Line is a straight segment.
type Line struct {
	Start, End Point
}

func (*Line) Kind() Kind         { return KindLine }
func (l *Line) outline() []Point { return []Point{l.Start, l.End} }
func (l *Line) hit(p Point, tol float64) bool {
	return distanceToSegment(p, l.Start, l.End) <= tol
}

// Rectangle is spanned by two opposite corners.
type Rectangle struct {
	TopLeft, BottomRight Point
}

// Normalize orders the corners so TopLeft is the minimum.
func (r *Rectangle) Normalize() {
	b := RectFromPoints(r.TopLeft, r.BottomRight)
	r.TopLeft, r.BottomRight = b.Min(), b.Max()
}

// Rect returns the area of the rectangle.
func (r *Rectangle) Rect() Rect { return RectFromPoints(r.TopLeft, r.BottomRight) }

func (*Rectangle) Kind() Kind         { return KindRectangle }
func (r *Rectangle) outline() []Point { return r.Rect().Corners() }
func (r *Rectangle) hit(p Point, tol float64) bool {
	return r.Rect().Expand(tol).Contains(p)
}

// Circle is centred between the two drag points.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle builds the circle whose diameter runs from a to b.
func NewCircle(a, b Point) *Circle {
	return &Circle{Center: a.Mid(b), Radius: a.Distance(b) / 2}
}

func (*Circle) Kind() Kind { return KindCircle }
func (c *Circle) outline() []Point {
	return []Point{
		{c.Center.X - c.Radius, c.Center.Y - c.Radius},
		{c.Center.X + c.Radius, c.Center.Y + c.Radius},
	}
}
func (c *Circle) hit(p Point, tol float64) bool {
	return p.Distance(c.Center) <= c.Radius+tol
}

// Curve is a cubic Bézier starting at P0 and ending at P1. Its control
// points are P0 and P2, in that order.
type Curve struct {
	P0, P1, P2 Point
}

const curveSteps = 32

// Controls returns start, first control, second control and end.
func (c *Curve) Controls() (start, c1, c2, end Point) {
	return c.P0, c.P0, c.P2, c.P1
}

// Flatten samples the curve into a polyline.
func (c *Curve) Flatten() []Point {
	s, c1, c2, e := c.Controls()
	pts := make([]Point, 0, curveSteps+1)
	for i := 0; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		mt := 1 - t
		a, b, cc, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		pts = append(pts, Point{
			X: a*s.X + b*c1.X + cc*c2.X + d*e.X,
			Y: a*s.Y + b*c1.Y + cc*c2.Y + d*e.Y,
		})
	}
	return pts
}

func (*Curve) Kind() Kind         { return KindCurve }
func (c *Curve) outline() []Point { return c.Flatten() }
func (c *Curve) hit(p Point, tol float64) bool {
	pts := c.Flatten()
	for i := 1; i < len(pts); i++ {
		if distanceToSegment(p, pts[i-1], pts[i]) <= tol {
			return true
		}
	}
	// The area closed by the chord counts, as for a filled path.
	return pointInPolygon(p, pts)
}

// Segment is one straight piece of a polyline.
type Segment struct {
	Start, End Point
}

// Polyline is a chain of segments drawn one drag at a time.
type Polyline struct {
	Segments []Segment
}

// Points returns the vertices in drawing order.
func (pl *Polyline) Points() []Point {
	if len(pl.Segments) == 0 {
		return nil
	}
	pts := []Point{pl.Segments[0].Start}
	for _, s := range pl.Segments {
		pts = append(pts, s.End)
	}
	return pts
}

func (*Polyline) Kind() Kind { return KindPolyline }
func (pl *Polyline) outline() []Point {
	pts := make([]Point, 0, 2*len(pl.Segments))
	for _, s := range pl.Segments {
		pts = append(pts, s.Start, s.End)
	}
	return pts
}
func (pl *Polyline) hit(p Point, tol float64) bool {
	for _, s := range pl.Segments {
		if distanceToSegment(p, s.Start, s.End) <= tol {
			return true
		}
	}
	return false
}

// Text is a single line of text whose box has its top left corner at Anchor.
type Text struct {
	Content string
	Anchor  Point
	Font    Font
	Color   color.NRGBA
}

// Box is the area the text occupies.
func (t *Text) Box() Rect {
	w, asc, desc := TextMetrics(t.Content, t.Font)
	return Rect{X: t.Anchor.X, Y: t.Anchor.Y, Width: w, Height: asc + desc}
}

// Baseline is where the first glyph's origin sits.
func (t *Text) Baseline() Point {
	_, asc, _ := TextMetrics(t.Content, t.Font)
	return Point{t.Anchor.X, t.Anchor.Y + asc}
}

func (*Text) Kind() Kind         { return KindText }
func (t *Text) outline() []Point { return t.Box().Corners() }
func (t *Text) hit(p Point, _ float64) bool {
	return t.Box().Contains(p)
}

// Image is a raster picture whose top left corner sits at Anchor. It is
// drawn stretched to Width x Height.
type Image struct {
	Anchor        Point
	Width, Height float64
	Source        image.Image
}

// NewImage places src at anchor at its natural size.
func NewImage(src image.Image, anchor Point) *Image {
	size := src.Bounds().Size()
	return &Image{Anchor: anchor, Width: float64(size.X), Height: float64(size.Y), Source: src}
}

// Box is the area the picture covers.
func (im *Image) Box() Rect {
	return Rect{X: im.Anchor.X, Y: im.Anchor.Y, Width: im.Width, Height: im.Height}
}

func (*Image) Kind() Kind          { return KindImage }
func (im *Image) outline() []Point { return im.Box().Corners() }
func (im *Image) hit(p Point, _ float64) bool {
	return im.Box().Contains(p)
}

// Shape is a drawable item: geometry, the pen it was drawn with and a
// rigid transform placing it on the canvas.
type Shape struct {
	ID        string
	Seq       uint64
	Style     Style
	Geometry  Geometry
	Transform Matrix
}

// NewShape creates a committed shape with a fresh identity.
func NewShape(style Style, g Geometry) *Shape {
	return &Shape{
		ID:        newShapeID(),
		Seq:       nextSeq(),
		Style:     style,
		Geometry:  g,
		Transform: Identity(),
	}
}

// NewPreview creates an ephemeral shape. Previews carry no identity.
func NewPreview(style Style, g Geometry) *Shape {
	return &Shape{Style: style, Geometry: g, Transform: Identity()}
}

func (s *Shape) Kind() Kind { return s.Geometry.Kind() }

func (s *Shape) String() string {
	return fmt.Sprintf("%s %s", s.Kind(), s.ID)
}

// padding is how far the stroke reaches past the geometry.
func (s *Shape) padding() float64 {
	if k := s.Kind(); k == KindText || k == KindImage {
		return 0
	}
	return s.Style.HalfWidth()
}

// LocalBounds is the bounding rect before the transform is applied.
func (s *Shape) LocalBounds() Rect {
	return boundsOf(s.Geometry.outline(), s.padding())
}

// Bounds is the scene bounding rect including half the stroke width.
func (s *Shape) Bounds() Rect {
	local := s.LocalBounds()
	if s.Transform.IsIdentity() {
		return local
	}
	corners := local.Corners()
	for i, c := range corners {
		corners[i] = s.Transform.Apply(c)
	}
	return boundsOf(corners, 0)
}

// Contains hit-tests the scene point p against the shape.
func (s *Shape) Contains(p Point) bool {
	local := s.Transform.Invert().Apply(p)
	tol := math.Max(s.Style.HalfWidth(), 2)
	return s.Geometry.hit(local, tol)
}

// MapPoint maps a local geometry point into scene coordinates.
func (s *Shape) MapPoint(p Point) Point {
	return s.Transform.Apply(p)
}

// Translate moves the shape by d.
func (s *Shape) Translate(d Point) {
	s.Transform = s.Transform.Multiply(Translate(d.X, d.Y))
}

// RotateInPlace rotates the shape by deg degrees about its bounds centre
// and then moves it so the new bounds share the old centre.
func (s *Shape) RotateInPlace(deg float64) {
	center := s.Bounds().Center()
	s.Transform = s.Transform.Multiply(RotateAbout(deg, center))
	drift := center.Sub(s.Bounds().Center())
	s.Translate(drift)
}

// SetTransform places the shape with m. Scale, shear and reflection are
// baked into the geometry so the stored transform stays rigid.
func (s *Shape) SetTransform(m Matrix) {
	residual, rigid := m.Split()
	if !residual.IsIdentity() {
		s.Geometry = bake(s.Geometry, residual)
	}
	s.Transform = rigid
}

// bake maps g through m. Rectangles that m shears turn into closed
// polylines. Circles, text and sheared images scale by the mean factor of m.
func bake(g Geometry, m Matrix) Geometry {
	factor := math.Sqrt(math.Abs(m.determinant()))
	switch g := g.(type) {
	case *Line:
		return &Line{Start: m.Apply(g.Start), End: m.Apply(g.End)}
	case *Rectangle:
		corners := g.Rect().Corners()
		if near(m[1], 0) && near(m[2], 0) {
			r := &Rectangle{TopLeft: m.Apply(corners[0]), BottomRight: m.Apply(corners[2])}
			r.Normalize()
			return r
		}
		pl := &Polyline{}
		for i, c := range corners {
			next := corners[(i+1)%len(corners)]
			pl.Segments = append(pl.Segments, Segment{Start: m.Apply(c), End: m.Apply(next)})
		}
		return pl
	case *Circle:
		return &Circle{Center: m.Apply(g.Center), Radius: g.Radius * factor}
	case *Curve:
		return &Curve{P0: m.Apply(g.P0), P1: m.Apply(g.P1), P2: m.Apply(g.P2)}
	case *Polyline:
		pl := &Polyline{Segments: make([]Segment, len(g.Segments))}
		for i, seg := range g.Segments {
			pl.Segments[i] = Segment{Start: m.Apply(seg.Start), End: m.Apply(seg.End)}
		}
		return pl
	case *Text:
		t := *g
		t.Anchor = m.Apply(g.Anchor)
		t.Font.Size = int(math.Max(1, math.Round(float64(g.Font.Size)*factor)))
		return &t
	case *Image:
		if near(m[1], 0) && near(m[2], 0) {
			box := g.Box().Corners()
			r := RectFromPoints(m.Apply(box[0]), m.Apply(box[2]))
			return &Image{Anchor: r.Min(), Width: r.Width, Height: r.Height, Source: g.Source}
		}
		return &Image{
			Anchor: m.Apply(g.Anchor),
			Width:  g.Width * factor,
			Height: g.Height * factor,
			Source: g.Source,
		}
	}
	return g
}
