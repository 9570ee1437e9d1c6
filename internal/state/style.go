package state

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DashStyle is the stroke pattern of a pen.
type DashStyle int

const (
	DashSolid DashStyle = iota
	DashDash
	DashDashDot
	DashDot
)

var dashNames = []string{"Solid", "Dash", "DashDot", "Dot"}

// DashStyles lists the pen styles in toolbar order.
func DashStyles() []string {
	return append([]string(nil), dashNames...)
}

func (d DashStyle) String() string {
	if d < 0 || int(d) >= len(dashNames) {
		return fmt.Sprintf("DashStyle(%d)", int(d))
	}
	return dashNames[d]
}

// Valid reports whether d is one of the known styles.
func (d DashStyle) Valid() bool {
	return d >= DashSolid && d <= DashDot
}

// ParseDashStyle maps a toolbar label back to a DashStyle.
func ParseDashStyle(s string) (DashStyle, bool) {
	for i, name := range dashNames {
		if strings.EqualFold(name, s) {
			return DashStyle(i), true
		}
	}
	return DashSolid, false
}

// Pattern returns the on/off lengths for a pen of the given width.
// Solid pens return nil.
func (d DashStyle) Pattern(width float64) []float64 {
	var unit []float64
	switch d {
	case DashDash:
		unit = []float64{4, 2}
	case DashDashDot:
		unit = []float64{4, 2, 1, 2}
	case DashDot:
		unit = []float64{1, 2}
	default:
		return nil
	}
	if width < 1 {
		width = 1
	}
	out := make([]float64, len(unit))
	for i, u := range unit {
		out[i] = u * width
	}
	return out
}

// DashStyleFromPattern recovers the style that produced pattern at width.
func DashStyleFromPattern(pattern []float64, width float64) DashStyle {
	for _, d := range []DashStyle{DashDash, DashDashDot, DashDot} {
		want := d.Pattern(width)
		if len(want) != len(pattern) {
			continue
		}
		match := true
		for i := range want {
			if math.Abs(want[i]-pattern[i]) > 0.5 {
				match = false
				break
			}
		}
		if match {
			return d
		}
	}
	return DashSolid
}

// Style is the pen a shape is stroked with.
type Style struct {
	Color color.NRGBA
	Width int
	Dash  DashStyle
}

var (
	Black        = color.NRGBA{A: 0xff}
	PreviewColor = MustParseColor("#ea353e")
)

// DefaultStyle is the pen the editor starts with.
func DefaultStyle() Style {
	return Style{Color: Black, Width: 3, Dash: DashSolid}
}

// PreviewStyle is the dotted red pen used for rubber-band previews.
func PreviewStyle(width int) Style {
	return Style{Color: PreviewColor, Width: width, Dash: DashDot}
}

// HalfWidth is half the stroke width, the padding a stroke adds to geometry.
func (s Style) HalfWidth() float64 {
	return float64(s.Width) / 2
}

// ParseColor reads a "#rrggbb" colour.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParseColor is ParseColor for package-level literals.
func MustParseColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorHex formats c as "#rrggbb", dropping alpha.
func ColorHex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}

// ToNRGBA converts any colour to a non-premultiplied opaque-aware NRGBA.
func ToNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
