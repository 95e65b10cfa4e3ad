// Package panzoom implements the direct-manipulation layer over a
// rendered SVG surface: mouse drag and touch panning, wheel and pinch
// zooming, a double-click fit / 100% toggle, and the programmatic
// zoom/pan/fit/reset API behind the viewer toolbar.
//
// The controller owns a single Transform (scale plus translation) for a
// single Surface and converts raw input events into transform updates.
// It is a best-effort enhancement layer: it never panics from a gesture
// path and reports failure through boolean returns and logged warnings,
// so a rendering race degrades to a static diagram instead of breaking
// the surrounding editor.
package panzoom

import (
	"math"
	"sync"

	"github.com/diagramlab/svgpan/pkg/debug"
	"github.com/diagramlab/svgpan/pkg/geom"
)

// Controller owns the pan/zoom state for one Surface. Construct with
// New; a destroyed or inert controller is safe to call, every mutator
// just returns false.
//
// All state access is serialized by an internal mutex, so a deferred fit
// timer firing concurrently with an event handler cannot interleave.
type Controller struct {
	mu sync.Mutex

	surface Surface // nil when inert or destroyed
	opts    Options

	// runtime enablement, mutable via Enable*/Disable*
	zoomEnabled bool
	panEnabled  bool

	t Transform

	// interaction state
	dragging        bool
	lastPointer     geom.Point
	pinchStartDist  float64 // 0 when not pinching
	pinchStartScale float64

	subs []Subscription
}

// New attaches a controller to surface. A nil surface is tolerated: the
// diagram may have been re-rendered after the controller was requested,
// so attach failure logs a warning and yields an inert instance rather
// than an error.
func New(surface Surface, opts *Options) *Controller {
	resolved := opts.withDefaults()
	c := &Controller{
		opts:        resolved,
		zoomEnabled: !resolved.ZoomDisabled,
		panEnabled:  !resolved.PanDisabled,
		t:           Identity(),
	}
	if surface == nil {
		debug.Warnf("panzoom: no surface to attach; controller is inert")
		return c
	}
	c.surface = surface

	surface.Normalize()
	if c.panEnabled {
		surface.SetCursor(CursorGrab)
	} else {
		surface.SetCursor(CursorDefault)
	}

	c.bindGestures()
	c.bindControls()

	if !resolved.NoFitOnLoad {
		// Let layout settle before measuring. The callback re-checks the
		// surface because Destroy may have run before the timer fired.
		resolved.scheduleFunc()(resolved.FitOnLoadDelay, func() {
			c.Fit()
		})
	}
	return c
}

// IsInitialized reports whether the controller is attached to a live
// surface. It is false for inert instances and after Destroy.
func (c *Controller) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface != nil
}

// Surface returns the attached surface, or nil once destroyed.
func (c *Controller) Surface() Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface
}

// Transform returns the current visual state.
func (c *Controller) Transform() Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// ZoomIn zooms in by one 20% step around the current origin.
func (c *Controller) ZoomIn() bool { return c.ZoomBy(zoomInStep) }

// ZoomOut zooms out by one 20% step around the current origin.
func (c *Controller) ZoomOut() bool { return c.ZoomBy(zoomOutStep) }

// ZoomBy multiplies the current scale by factor, clamped to the
// configured bounds. It reports false when zooming is disabled, the
// controller is inert, or clamping left the scale unchanged.
func (c *Controller) ZoomBy(factor float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoomTo(c.t.Scale*factor, nil)
}

// ZoomAbout is ZoomBy with a fixed point: the surface content under the
// screen-space center stays put while the scale changes. Wheel zoom uses
// this so the content under the cursor does not drift.
func (c *Controller) ZoomAbout(factor, centerX, centerY float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := geom.Point{X: centerX, Y: centerY}
	return c.zoomTo(c.t.Scale*factor, &p)
}

// SetZoom sets the scale directly, honoring the same gate and clamps as
// the gesture paths.
func (c *Controller) SetZoom(scale float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoomTo(scale, nil)
}

// PanBy shifts the translation by the given screen-space deltas. There
// is no translation clamping: panning fully out of view is allowed, Fit
// and Reset are the recovery paths.
func (c *Controller) PanBy(dx, dy float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panBy(dx, dy)
}

// SetPan sets the translation directly.
func (c *Controller) SetPan(x, y float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.panEnabled {
		return false
	}
	c.t.X = x
	c.t.Y = y
	c.apply()
	return true
}

// Fit scales the surface down (never up past 100%) until it is fully
// visible inside its container, and centers it. It reports false when no
// container is resolvable or the surface has no measurable extent.
func (c *Controller) Fit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fit()
}

// Reset restores scale 1 and zero translation. It is an escape hatch and
// ignores the zoom/pan enablement gates.
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return false
	}
	c.t = Identity()
	c.apply()
	return true
}

// Resize is the hook callers invoke when the container size changes.
// The transform is expressed relative to the surface's own box, so no
// recomputation is structurally required; the current transform is
// simply re-applied. Callers that want refitting call Fit instead.
func (c *Controller) Resize() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return false
	}
	c.apply()
	return true
}

// EnableZoom re-enables all zoom input and API paths.
func (c *Controller) EnableZoom() { c.setZoomEnabled(true) }

// DisableZoom disables all zoom input and API paths.
func (c *Controller) DisableZoom() { c.setZoomEnabled(false) }

// EnablePan re-enables panning and restores the grab affordance.
func (c *Controller) EnablePan() { c.setPanEnabled(true) }

// DisablePan disables panning and clears the grab affordance.
func (c *Controller) DisablePan() { c.setPanEnabled(false) }

// Destroy releases every listener and the surface reference. It is
// idempotent, and any operation invoked after Destroy is a no-op
// returning false.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.subs {
		s.Release()
	}
	c.subs = nil
	c.surface = nil
	c.dragging = false
	c.pinchStartDist = 0
}

func (c *Controller) setZoomEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoomEnabled = enabled
}

func (c *Controller) setPanEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panEnabled = enabled
	if c.surface == nil {
		return
	}
	if enabled {
		c.surface.SetCursor(CursorGrab)
	} else {
		c.surface.SetCursor(CursorDefault)
	}
}

// zoomTo moves the scale to target (pre-clamp), keeping the surface
// point under center fixed on screen when center is non-nil. Lock held.
func (c *Controller) zoomTo(target float64, center *geom.Point) bool {
	if c.surface == nil || !c.zoomEnabled {
		return false
	}
	clamped := clamp(target, c.opts.MinZoom, c.opts.MaxZoom)
	if clamped == c.t.Scale {
		return false
	}
	if center != nil {
		local := c.t.ToLocal(*center)
		c.t.X = center.X - local.X*clamped
		c.t.Y = center.Y - local.Y*clamped
	}
	c.t.Scale = clamped
	c.apply()
	return true
}

func (c *Controller) panBy(dx, dy float64) bool {
	if c.surface == nil || !c.panEnabled {
		return false
	}
	c.t.X += dx
	c.t.Y += dy
	c.apply()
	return true
}

func (c *Controller) fit() bool {
	if c.surface == nil {
		return false
	}
	container := c.surface.Container()
	if container == nil {
		debug.Warnf("panzoom: fit requested but no container is resolvable")
		return false
	}
	box := container.Rect()
	surf := c.surface.Rect()
	if box.Empty() || surf.Empty() {
		debug.Warnf("panzoom: fit requested with unmeasurable geometry (container %gx%g, surface %gx%g)",
			box.Width, box.Height, surf.Width, surf.Height)
		return false
	}

	// Shrink to fit, never upscale past native size. The configured
	// bounds still apply so the clamp invariant survives a fit.
	scale := math.Min(box.Width/surf.Width, box.Height/surf.Height)
	if scale > 1 {
		scale = 1
	}
	scale = clamp(scale, c.opts.MinZoom, c.opts.MaxZoom)
	c.t.Scale = scale
	c.t.X = (box.Width - surf.Width*scale) / 2
	c.t.Y = (box.Height - surf.Height*scale) / 2
	c.apply()
	return true
}

// apply pushes the transform onto the surface. Lock held.
func (c *Controller) apply() {
	c.surface.ApplyTransform(c.t)
	if c.opts.OnTransform != nil {
		c.opts.OnTransform(c.t)
	}
}
