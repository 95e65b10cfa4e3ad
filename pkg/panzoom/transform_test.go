package panzoom_test

import (
	"math"
	"testing"

	"github.com/diagramlab/svgpan/pkg/geom"
	"github.com/diagramlab/svgpan/pkg/panzoom"
)

func TestIdentity(t *testing.T) {
	id := panzoom.Identity()
	if id.Scale != 1 || id.X != 0 || id.Y != 0 {
		t.Errorf("Identity() = %+v, want scale 1 and zero translation", id)
	}
}

func TestTransform_Apply(t *testing.T) {
	tr := panzoom.Transform{Scale: 2, X: 10, Y: -5}
	got := tr.Apply(geom.Point{X: 3, Y: 4})
	if got.X != 16 || got.Y != 3 {
		t.Errorf("Apply = (%v,%v), want (16,3)", got.X, got.Y)
	}
}

func TestTransform_ApplyToLocalRoundtrip(t *testing.T) {
	transforms := []panzoom.Transform{
		{Scale: 1},
		{Scale: 0.25, X: 40, Y: 80},
		{Scale: 3.7, X: -120.5, Y: 9.25},
	}
	points := []geom.Point{{X: 0, Y: 0}, {X: 17, Y: -3}, {X: 1000.25, Y: 512}}
	for _, tr := range transforms {
		for _, p := range points {
			back := tr.ToLocal(tr.Apply(p))
			if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
				t.Errorf("roundtrip through %+v moved %+v to %+v", tr, p, back)
			}
		}
	}
}

func TestTransform_CSS(t *testing.T) {
	tr := panzoom.Transform{Scale: 1.5, X: 10, Y: -20.5}
	want := "matrix(1.5, 0, 0, 1.5, 10, -20.5)"
	if got := tr.CSS(); got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}
