// Package geom provides the small geometry vocabulary shared by the
// pan/zoom engine: screen points and content-box rectangles.
package geom

// Point is a position in screen (CSS pixel) coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle, as reported by DOM measurement
// APIs (getBoundingClientRect, client box).
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Scaled returns the rectangle with both dimensions multiplied by s,
// keeping the origin fixed.
func (r Rect) Scaled(s float64) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width * s, Height: r.Height * s}
}
