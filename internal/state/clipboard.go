package state

// Clipboard holds at most one copied shape. The shape is kept by
// reference: pasting places that same shape again rather than a clone.
type Clipboard struct {
	shape  *Shape
	center Point
}

// Copy stores s and the centre of its bounds. A nil shape is ignored.
func (c *Clipboard) Copy(s *Shape) bool {
	if s == nil {
		return false
	}
	c.shape = s
	c.center = s.Bounds().Center()
	return true
}

// Paste moves the stored shape so its copy-time centre lands on cursor,
// empties the clipboard and returns the shape. It returns nil when empty.
func (c *Clipboard) Paste(cursor Point) *Shape {
	if c.shape == nil {
		return nil
	}
	s := c.shape
	s.Translate(cursor.Sub(c.center))
	c.Clear()
	return s
}

// Empty reports whether nothing is stored.
func (c *Clipboard) Empty() bool { return c.shape == nil }

// Clear drops the stored shape.
func (c *Clipboard) Clear() {
	c.shape = nil
	c.center = Point{}
}
