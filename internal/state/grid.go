package state

import "math"

// DefaultCellSize is the grid spacing used when none is configured.
const DefaultCellSize = 10

// GridConfig controls coordinate snapping and the grid background.
type GridConfig struct {
	Enabled  bool
	CellSize int
}

// DefaultGrid returns a disabled grid with the default spacing.
func DefaultGrid() GridConfig {
	return GridConfig{CellSize: DefaultCellSize}
}

// Snap rounds v to the nearest multiple of cell. Values exactly halfway
// round up. The modulo is floored so negative values snap the same way.
// cell must be positive.
func Snap(v float64, cell int) float64 {
	c := float64(cell)
	base := math.Floor(v/c) * c
	if v-base < c/2 {
		return base
	}
	return base + c
}

// SnapPoint snaps both axes of p.
func SnapPoint(p Point, cell int) Point {
	return Point{Snap(p.X, cell), Snap(p.Y, cell)}
}

// Apply snaps p when the grid is enabled and returns it unchanged otherwise.
func (g GridConfig) Apply(p Point) Point {
	if !g.Enabled || g.CellSize <= 0 {
		return p
	}
	return SnapPoint(p, g.CellSize)
}
