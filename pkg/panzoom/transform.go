package panzoom

import (
	"fmt"

	"github.com/diagramlab/svgpan/pkg/geom"
)

// Transform is the complete visual state of a surface: a uniform scale
// followed by a translation, with the origin pinned at the surface's
// top-left corner. A point at local coordinates (x, y) is displayed at
// (X + x*Scale, Y + y*Scale).
type Transform struct {
	Scale float64
	X     float64
	Y     float64
}

// Identity returns the untransformed state.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Apply maps a surface-local point to screen coordinates.
func (t Transform) Apply(p geom.Point) geom.Point {
	return geom.Point{
		X: t.X + p.X*t.Scale,
		Y: t.Y + p.Y*t.Scale,
	}
}

// ToLocal maps a screen point back into surface-local coordinates.
func (t Transform) ToLocal(p geom.Point) geom.Point {
	return geom.Point{
		X: (p.X - t.X) / t.Scale,
		Y: (p.Y - t.Y) / t.Scale,
	}
}

// CSS returns the transform as a CSS matrix() expression.
func (t Transform) CSS() string {
	return fmt.Sprintf("matrix(%g, 0, 0, %g, %g, %g)", t.Scale, t.Scale, t.X, t.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
