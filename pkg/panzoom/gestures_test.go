package panzoom_test

import (
	"math"
	"testing"

	"github.com/diagramlab/svgpan/internal/harness"
	"github.com/diagramlab/svgpan/pkg/events"
	"github.com/diagramlab/svgpan/pkg/geom"
	"github.com/diagramlab/svgpan/pkg/panzoom"
)

func TestWheel_Direction(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	// Scroll down zooms out by 0.9.
	if !surface.Wheel(120, 0, 0) {
		t.Error("wheel handler must prevent the native scroll")
	}
	if got := c.Transform().Scale; math.Abs(got-0.9) > 1e-9 {
		t.Errorf("scale after scroll down = %v, want 0.9", got)
	}

	// Scroll up zooms in by 1.1.
	surface.Wheel(-120, 0, 0)
	if got := c.Transform().Scale; math.Abs(got-0.99) > 1e-9 {
		t.Errorf("scale after scroll up = %v, want 0.99", got)
	}
}

func TestWheel_ZoomsTowardCursor(t *testing.T) {
	opts := &panzoom.Options{NoFitOnLoad: true}
	surface := harness.NewSurface(
		geom.Rect{Width: 800, Height: 600},
		// Container offset from the viewport origin: the fixed point must
		// be computed in container space, not raw client space.
		geom.Rect{X: 50, Y: 40, Width: 400, Height: 300},
	)
	c := panzoom.New(surface, opts)
	defer c.Destroy()

	clientX, clientY := 250.0, 190.0
	center := geom.Point{X: clientX - 50, Y: clientY - 40}
	local := c.Transform().ToLocal(center)

	surface.Wheel(-1, clientX, clientY)

	screen := c.Transform().Apply(local)
	if math.Abs(screen.X-center.X) > 1e-9 || math.Abs(screen.Y-center.Y) > 1e-9 {
		t.Errorf("content under cursor drifted to (%v,%v), want (%v,%v)",
			screen.X, screen.Y, center.X, center.Y)
	}
}

func TestWheel_ZeroDeltaIgnored(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()
	surface.Wheel(0, 10, 10)
	if c.Transform().Scale != 1 {
		t.Errorf("scale = %v after zero-delta wheel, want 1", c.Transform().Scale)
	}
}

func TestWheel_RuntimeDisabled(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	c.DisableZoom()
	if surface.Wheel(1, 0, 0) {
		t.Error("disabled wheel handler must not prevent the native scroll")
	}
	if c.Transform().Scale != 1 {
		t.Error("disabled wheel handler must not zoom")
	}
}

func TestWheel_NotBoundWhenConfiguredOff(t *testing.T) {
	c, surface := newTestController(&panzoom.Options{NoWheelZoom: true})
	defer c.Destroy()
	surface.Wheel(-1, 0, 0)
	if c.Transform().Scale != 1 {
		t.Error("NoWheelZoom must leave wheel events unhandled")
	}
}

func TestMouseDrag_Pans(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	surface.MouseDown(events.ButtonPrimary, 100, 100)
	if surface.Cursor() != panzoom.CursorGrabbing {
		t.Errorf("cursor during drag = %q, want grabbing", surface.Cursor())
	}

	surface.MouseMove(130, 115)
	surface.MouseMove(140, 110)
	got := c.Transform()
	if got.X != 40 || got.Y != 10 {
		t.Errorf("translation after drag = (%v,%v), want (40,10)", got.X, got.Y)
	}

	surface.MouseUp(140, 110)
	if surface.Cursor() != panzoom.CursorGrab {
		t.Errorf("cursor after drag = %q, want grab", surface.Cursor())
	}

	// Movement without a held button must not pan.
	surface.MouseMove(200, 200)
	if c.Transform() != got {
		t.Error("mousemove without dragging must not pan")
	}
}

func TestMouseDrag_SecondaryButtonIgnored(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	surface.MouseDown(events.ButtonSecondary, 100, 100)
	surface.MouseMove(150, 150)
	if tr := c.Transform(); tr.X != 0 || tr.Y != 0 {
		t.Errorf("right-button drag panned to (%v,%v), want (0,0)", tr.X, tr.Y)
	}
}

func TestMouseDrag_LeaveEndsPan(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	surface.MouseDown(events.ButtonPrimary, 0, 0)
	surface.MouseMove(10, 10)
	surface.MouseLeave()
	surface.MouseMove(100, 100)
	got := c.Transform()
	if got.X != 10 || got.Y != 10 {
		t.Errorf("translation = (%v,%v), want drag to stop at (10,10)", got.X, got.Y)
	}
	if surface.Cursor() != panzoom.CursorGrab {
		t.Errorf("cursor after leave = %q, want grab", surface.Cursor())
	}
}

func TestDblClick_FitNear100Percent(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	// Within the 0.1 tolerance band the toggle fits.
	c.SetZoom(1.05)
	if !surface.DblClick(10, 10) {
		t.Error("double-click handler must prevent the native action")
	}
	if got := c.Transform().Scale; got != 0.5 {
		t.Errorf("scale after toggle = %v, want fitted 0.5", got)
	}
}

func TestDblClick_ReturnsTo100Percent(t *testing.T) {
	c, _ := newTestController(nil)
	defer c.Destroy()

	c.SetZoom(2.5)
	clickX, clickY := 120.0, 90.0
	before := c.Transform()
	local := before.ToLocal(geom.Point{X: clickX, Y: clickY})

	surface := c.Surface().(*harness.Surface)
	surface.DblClick(clickX, clickY)

	after := c.Transform()
	if after.Scale != 1 {
		t.Fatalf("scale after toggle = %v, want 1", after.Scale)
	}
	screen := after.Apply(local)
	if math.Abs(screen.X-clickX) > 1e-9 || math.Abs(screen.Y-clickY) > 1e-9 {
		t.Errorf("clicked point drifted to (%v,%v), want (%v,%v)", screen.X, screen.Y, clickX, clickY)
	}
}

func TestDblClick_NotBoundWhenConfiguredOff(t *testing.T) {
	c, surface := newTestController(&panzoom.Options{NoDblClickZoom: true})
	defer c.Destroy()
	c.SetZoom(2.5)
	if surface.DblClick(0, 0) {
		t.Error("NoDblClickZoom must leave double clicks unhandled")
	}
	if c.Transform().Scale != 2.5 {
		t.Error("NoDblClickZoom must not change scale on double click")
	}
}

func TestTouch_SingleFingerPan(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	if !surface.TouchStart(events.Touch{Identifier: 1, ClientX: 50, ClientY: 50}) {
		t.Error("consumed single-touch start must prevent default")
	}
	surface.TouchMove(events.Touch{Identifier: 1, ClientX: 80, ClientY: 45})
	got := c.Transform()
	if got.X != 30 || got.Y != -5 {
		t.Errorf("translation = (%v,%v), want (30,-5)", got.X, got.Y)
	}

	surface.TouchEnd()
	surface.TouchMove(events.Touch{Identifier: 1, ClientX: 200, ClientY: 200})
	if c.Transform() != got {
		t.Error("touchmove after touchend must not pan")
	}
}

func TestTouch_PanDisabledNotConsumed(t *testing.T) {
	c, surface := newTestController(&panzoom.Options{PanDisabled: true})
	defer c.Destroy()

	// With pan off, a single touch is not ours; page scroll must keep
	// working, so no preventDefault.
	if surface.TouchStart(events.Touch{Identifier: 1, ClientX: 50, ClientY: 50}) {
		t.Error("single touch with pan disabled must not prevent default")
	}
	surface.TouchMove(events.Touch{Identifier: 1, ClientX: 80, ClientY: 45})
	if tr := c.Transform(); tr.X != 0 || tr.Y != 0 {
		t.Error("single touch with pan disabled must not pan")
	}
}

func TestPinch_BaselineRelativeScale(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	// Two fingers 100px apart.
	a := events.Touch{Identifier: 1, ClientX: 100, ClientY: 100}
	b := events.Touch{Identifier: 2, ClientX: 200, ClientY: 100}
	if !surface.TouchStart(a, b) {
		t.Error("pinch start must prevent default")
	}

	// Spread to 200px: scale doubles relative to the 1.0 baseline.
	b.ClientX = 300
	surface.TouchMove(a, b)
	if got := c.Transform().Scale; math.Abs(got-2) > 1e-9 {
		t.Errorf("scale at 200px = %v, want 2", got)
	}

	// Close to 50px from the original start: 0.5 relative to the same
	// baseline, not relative to the 200px state.
	b.ClientX = 150
	surface.TouchMove(a, b)
	if got := c.Transform().Scale; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("scale at 50px = %v, want baseline-relative 0.5", got)
	}
}

func TestPinch_ClampsToMaxZoom(t *testing.T) {
	c, surface := newTestController(&panzoom.Options{MaxZoom: 1.5})
	defer c.Destroy()

	a := events.Touch{Identifier: 1, ClientX: 100, ClientY: 100}
	b := events.Touch{Identifier: 2, ClientX: 200, ClientY: 100}
	surface.TouchStart(a, b)
	b.ClientX = 500
	surface.TouchMove(a, b)
	if got := c.Transform().Scale; got != 1.5 {
		t.Errorf("scale = %v, want clamped 1.5", got)
	}
}

func TestPinch_EndsGesture(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	a := events.Touch{Identifier: 1, ClientX: 100, ClientY: 100}
	b := events.Touch{Identifier: 2, ClientX: 200, ClientY: 100}
	surface.TouchStart(a, b)
	surface.TouchEnd(a) // one finger lifted

	// Without a fresh baseline, further two-finger moves do nothing.
	b.ClientX = 400
	surface.TouchMove(a, b)
	if got := c.Transform().Scale; got != 1 {
		t.Errorf("scale = %v after ended pinch, want 1", got)
	}
}

func TestPinch_ZoomDisabledNotConsumed(t *testing.T) {
	c, surface := newTestController(&panzoom.Options{ZoomDisabled: true})
	defer c.Destroy()

	a := events.Touch{Identifier: 1, ClientX: 100, ClientY: 100}
	b := events.Touch{Identifier: 2, ClientX: 200, ClientY: 100}
	if surface.TouchStart(a, b) {
		t.Error("two-finger touch with zoom disabled must not prevent default")
	}
	b.ClientX = 300
	surface.TouchMove(a, b)
	if c.Transform().Scale != 1 {
		t.Error("pinch with zoom disabled must not zoom")
	}
}

func TestTouchStart_TwoFingersCancelPan(t *testing.T) {
	c, surface := newTestController(nil)
	defer c.Destroy()

	a := events.Touch{Identifier: 1, ClientX: 100, ClientY: 100}
	surface.TouchStart(a)
	b := events.Touch{Identifier: 2, ClientX: 200, ClientY: 100}
	surface.TouchStart(a, b)

	// Single-finger movement bookkeeping must have been abandoned in
	// favor of the pinch.
	before := c.Transform()
	a.ClientX = 150
	b.ClientX = 250 // same distance, pure translation of the pinch
	surface.TouchMove(a, b)
	if c.Transform() != before {
		t.Error("two-finger move at constant distance must neither pan nor zoom")
	}
}
