package panzoom_test

import (
	"testing"
	"time"

	"github.com/diagramlab/svgpan/internal/harness"
	"github.com/diagramlab/svgpan/pkg/geom"
	"github.com/diagramlab/svgpan/pkg/panzoom"
)

func TestOptions_DefaultBounds(t *testing.T) {
	// Nil options resolve to the documented clamps: [0.1, 10].
	surface := harness.NewSurface(
		geom.Rect{Width: 100, Height: 100},
		geom.Rect{Width: 100, Height: 100},
	)
	c := panzoom.New(surface, &panzoom.Options{NoFitOnLoad: true})
	defer c.Destroy()

	c.SetZoom(1e6)
	if got := c.Transform().Scale; got != 10 {
		t.Errorf("scale = %v, want default max 10", got)
	}
	c.SetZoom(1e-6)
	if got := c.Transform().Scale; got != 0.1 {
		t.Errorf("scale = %v, want default min 0.1", got)
	}
}

func TestOptions_ZeroValueEnablesGestures(t *testing.T) {
	surface := harness.NewSurface(
		geom.Rect{Width: 100, Height: 100},
		geom.Rect{Width: 100, Height: 100},
	)
	c := panzoom.New(surface, &panzoom.Options{NoFitOnLoad: true})
	defer c.Destroy()

	if !c.ZoomIn() {
		t.Error("zoom must be enabled by default")
	}
	if !c.PanBy(1, 1) {
		t.Error("pan must be enabled by default")
	}
}

func TestOptions_NilUsesDefaults(t *testing.T) {
	// A nil Options pointer must behave like the zero value, including
	// the deferred fit (so New(surface, nil) is a complete call).
	surface := harness.NewSurface(
		geom.Rect{Width: 200, Height: 100},
		geom.Rect{Width: 100, Height: 100},
	)
	c := panzoom.New(surface, nil)
	defer c.Destroy()

	if !c.IsInitialized() {
		t.Fatal("controller must initialize with nil options")
	}

	// The deferred fit uses a real timer with nil options; give it room.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tr, ok := surface.LastTransform(); ok && tr.Scale == 0.5 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	tr, _ := surface.LastTransform()
	t.Errorf("deferred fit never produced scale 0.5, last transform %+v", tr)
}

func TestOptions_CustomBoundsRespected(t *testing.T) {
	surface := harness.NewSurface(
		geom.Rect{Width: 100, Height: 100},
		geom.Rect{Width: 100, Height: 100},
	)
	c := panzoom.New(surface, &panzoom.Options{NoFitOnLoad: true, MinZoom: 0.5, MaxZoom: 2})
	defer c.Destroy()

	c.SetZoom(100)
	if got := c.Transform().Scale; got != 2 {
		t.Errorf("scale = %v, want custom max 2", got)
	}
	c.SetZoom(0.001)
	if got := c.Transform().Scale; got != 0.5 {
		t.Errorf("scale = %v, want custom min 0.5", got)
	}
}
