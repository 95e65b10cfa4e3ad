package panzoom

import (
	"math"

	"github.com/diagramlab/svgpan/pkg/events"
	"github.com/diagramlab/svgpan/pkg/geom"
)

// bindGestures attaches the input listeners the options call for. Called
// once from New; listeners live until Destroy releases them. Runtime
// Enable/Disable toggles are re-checked inside each handler, attachment
// only reflects the construction-time flags.
func (c *Controller) bindGestures() {
	s := c.surface

	if !c.opts.ZoomDisabled && !c.opts.NoWheelZoom {
		c.subs = append(c.subs, s.OnWheel(c.handleWheel))
	}
	if !c.opts.ZoomDisabled && !c.opts.NoDblClickZoom {
		c.subs = append(c.subs, s.OnDblClick(c.handleDblClick))
	}
	if !c.opts.PanDisabled {
		c.subs = append(c.subs,
			s.OnMouseDown(c.handleMouseDown),
			s.OnMouseMove(c.handleMouseMove),
			s.OnMouseUp(c.handleMouseEnd),
			s.OnMouseLeave(c.handleMouseEnd),
		)
	}
	if !c.opts.PanDisabled || !c.opts.ZoomDisabled {
		c.subs = append(c.subs,
			s.OnTouchStart(c.handleTouchStart),
			s.OnTouchMove(c.handleTouchMove),
			s.OnTouchEnd(c.handleTouchEnd),
		)
	}
}

// bindControls wires the optional external buttons to their operations.
func (c *Controller) bindControls() {
	controls := c.opts.Controls
	if controls == nil {
		return
	}
	if controls.ZoomIn != nil {
		c.subs = append(c.subs, controls.ZoomIn.OnClick(func() { c.ZoomIn() }))
	}
	if controls.ZoomOut != nil {
		c.subs = append(c.subs, controls.ZoomOut.OnClick(func() { c.ZoomOut() }))
	}
	if controls.Fit != nil {
		c.subs = append(c.subs, controls.Fit.OnClick(func() { c.Fit() }))
	}
	if controls.Reset != nil {
		c.subs = append(c.subs, controls.Reset.OnClick(func() { c.Reset() }))
	}
}

// toSurfaceSpace converts viewport coordinates into the coordinate space
// the translation lives in, which is anchored at the container's content
// box origin. Lock held.
func (c *Controller) toSurfaceSpace(clientX, clientY float64) geom.Point {
	if container := c.surface.Container(); container != nil {
		box := container.Rect()
		return geom.Point{X: clientX - box.X, Y: clientY - box.Y}
	}
	return geom.Point{X: clientX, Y: clientY}
}

func (c *Controller) handleWheel(e *events.WheelEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.zoomEnabled {
		return
	}
	// Keep the browser from scrolling the page under the diagram.
	e.PreventDefault()

	var factor float64
	switch {
	case e.DeltaY > 0:
		factor = wheelZoomOutStep
	case e.DeltaY < 0:
		factor = wheelZoomInStep
	default:
		return
	}
	center := c.toSurfaceSpace(e.ClientX, e.ClientY)
	c.zoomTo(c.t.Scale*factor, &center)
}

func (c *Controller) handleDblClick(e *events.MouseEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.zoomEnabled {
		return
	}
	e.PreventDefault()

	// Near 100% the toggle fits; otherwise it returns to 100% keeping
	// the clicked point stationary.
	if math.Abs(c.t.Scale-1) < dblClickFitTolerance {
		c.fit()
		return
	}
	center := c.toSurfaceSpace(e.ClientX, e.ClientY)
	c.zoomTo(1, &center)
}

func (c *Controller) handleMouseDown(e *events.MouseEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.panEnabled {
		return
	}
	// Only the primary button initiates a pan.
	if e.Button != events.ButtonPrimary {
		return
	}
	c.dragging = true
	c.lastPointer = geom.Point{X: e.ClientX, Y: e.ClientY}
	c.surface.SetCursor(CursorGrabbing)
}

func (c *Controller) handleMouseMove(e *events.MouseEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.dragging {
		return
	}
	dx := e.ClientX - c.lastPointer.X
	dy := e.ClientY - c.lastPointer.Y
	c.lastPointer = geom.Point{X: e.ClientX, Y: e.ClientY}
	c.panBy(dx, dy)
}

func (c *Controller) handleMouseEnd(e *events.MouseEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.dragging {
		return
	}
	c.dragging = false
	if c.panEnabled {
		c.surface.SetCursor(CursorGrab)
	}
}

func (c *Controller) handleTouchStart(e *events.TouchEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return
	}
	switch len(e.Touches) {
	case 1:
		if !c.panEnabled {
			return
		}
		t := e.Touches[0]
		c.dragging = true
		c.pinchStartDist = 0
		c.lastPointer = geom.Point{X: t.ClientX, Y: t.ClientY}
		e.PreventDefault()
	case 2:
		if !c.zoomEnabled {
			return
		}
		// Pinch baseline: all subsequent ratios are computed against the
		// distance and scale captured here, never incrementally, so
		// rounding cannot compound across touchmove events.
		c.dragging = false
		c.pinchStartDist = events.Distance(e.Touches[0], e.Touches[1])
		c.pinchStartScale = c.t.Scale
		e.PreventDefault()
	}
}

func (c *Controller) handleTouchMove(e *events.TouchEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return
	}
	switch {
	case len(e.Touches) >= 2 && c.pinchStartDist > 0:
		if !c.zoomEnabled {
			return
		}
		dist := events.Distance(e.Touches[0], e.Touches[1])
		if dist <= 0 {
			return
		}
		ratio := dist / c.pinchStartDist
		c.zoomTo(c.pinchStartScale*ratio, nil)
		e.PreventDefault()
	case len(e.Touches) == 1 && c.dragging:
		if !c.panEnabled {
			return
		}
		t := e.Touches[0]
		dx := t.ClientX - c.lastPointer.X
		dy := t.ClientY - c.lastPointer.Y
		c.lastPointer = geom.Point{X: t.ClientX, Y: t.ClientY}
		c.panBy(dx, dy)
		e.PreventDefault()
	}
}

func (c *Controller) handleTouchEnd(e *events.TouchEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return
	}
	// Lifting any finger ends the current gesture entirely; a remaining
	// finger starts fresh on its next touchstart.
	c.dragging = false
	c.pinchStartDist = 0
	c.pinchStartScale = 0
}
