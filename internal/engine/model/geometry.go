package model

// Geometry describes a cell's position and size.
// Coordinates are relative to the parent cell's origin. When Relative is
// set, X and Y are interpreted as fractions of the parent's width and
// height instead of absolute offsets (used for edge labels and ports).
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	Relative bool
}

// NewGeometry creates a geometry with the given position and size.
func NewGeometry(x, y, width, height float64) *Geometry {
	return &Geometry{X: x, Y: y, Width: width, Height: height}
}

// Clone creates a copy of the geometry. Clone of nil is nil.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}

// Equal reports whether two geometries describe the same placement.
// Both nil compares true.
func (g *Geometry) Equal(other *Geometry) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.X == other.X &&
		g.Y == other.Y &&
		g.Width == other.Width &&
		g.Height == other.Height &&
		g.Relative == other.Relative
}

// Translate moves the geometry by the given delta.
// Relative geometries are not translated.
func (g *Geometry) Translate(dx, dy float64) {
	if g == nil || g.Relative {
		return
	}
	g.X += dx
	g.Y += dy
}
