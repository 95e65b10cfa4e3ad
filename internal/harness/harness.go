// Package harness provides in-memory stand-ins for the DOM-facing
// interfaces of pkg/panzoom, so controller behavior can be exercised
// without a browser. The fakes record every applied transform and
// cursor change and let tests synthesize mouse, wheel and touch events.
// They are safe for concurrent use; deferred-fit timers fire on their
// own goroutine.
package harness

import (
	"sync"

	"github.com/diagramlab/svgpan/pkg/events"
	"github.com/diagramlab/svgpan/pkg/geom"
	"github.com/diagramlab/svgpan/pkg/panzoom"
)

// Container is a fake container with a fixed content box.
type Container struct {
	Box geom.Rect
}

// Rect returns the configured content box.
func (c *Container) Rect() geom.Rect { return c.Box }

// Surface is a fake rendered surface. Construct with NewSurface.
type Surface struct {
	// Size is the surface's extent at scale 1.
	Size geom.Rect

	// Parent is returned by Container; nil simulates a detached surface.
	Parent *Container

	// Applied records every transform pushed by the controller, in
	// order. Guard access with the surface's own methods when the
	// controller may still be live.
	Applied []panzoom.Transform

	// Cursors records every cursor change, in order.
	Cursors []panzoom.Cursor

	// Normalized counts Normalize calls.
	Normalized int

	mu        sync.Mutex
	listeners map[string][]any
	released  int
}

// NewSurface returns a surface of the given intrinsic size nested in a
// container with the given content box.
func NewSurface(size, containerBox geom.Rect) *Surface {
	return &Surface{
		Size:      size,
		Parent:    &Container{Box: containerBox},
		listeners: map[string][]any{},
	}
}

// Rect returns the surface's untransformed extent.
func (s *Surface) Rect() geom.Rect { return s.Size }

// Container returns the fake parent, or nil when detached.
func (s *Surface) Container() panzoom.Container {
	if s.Parent == nil {
		return nil
	}
	return s.Parent
}

// ApplyTransform records the transform.
func (s *Surface) ApplyTransform(t panzoom.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Applied = append(s.Applied, t)
}

// SetCursor records the cursor change.
func (s *Surface) SetCursor(c panzoom.Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cursors = append(s.Cursors, c)
}

// Normalize records the call.
func (s *Surface) Normalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Normalized++
}

// Cursor returns the most recently set cursor, or CursorDefault.
func (s *Surface) Cursor() panzoom.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Cursors) == 0 {
		return panzoom.CursorDefault
	}
	return s.Cursors[len(s.Cursors)-1]
}

// AppliedCount returns how many transforms have been applied.
func (s *Surface) AppliedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Applied)
}

// LastTransform returns the most recently applied transform and whether
// any transform was applied at all.
func (s *Surface) LastTransform() (panzoom.Transform, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Applied) == 0 {
		return panzoom.Transform{}, false
	}
	return s.Applied[len(s.Applied)-1], true
}

// ListenerCount returns the number of live (unreleased) listeners.
func (s *Surface) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, hs := range s.listeners {
		n += len(hs)
	}
	return n - s.released
}

type subscription struct {
	surface *Surface
	event   string
	index   int
}

func (sub *subscription) Release() {
	sub.surface.mu.Lock()
	defer sub.surface.mu.Unlock()
	hs := sub.surface.listeners[sub.event]
	if sub.index < len(hs) && hs[sub.index] != nil {
		hs[sub.index] = nil
		sub.surface.released++
	}
}

func (s *Surface) add(event string, fn any) panzoom.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], fn)
	return &subscription{surface: s, event: event, index: len(s.listeners[event]) - 1}
}

// handlers snapshots the live listeners for event so dispatch can run
// without holding the lock (handlers call back into the surface).
func (s *Surface) handlers(event string) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	hs := s.listeners[event]
	out := make([]any, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

func (s *Surface) OnWheel(fn func(*events.WheelEvent)) panzoom.Subscription {
	return s.add("wheel", fn)
}
func (s *Surface) OnMouseDown(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.add("mousedown", fn)
}
func (s *Surface) OnMouseMove(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.add("mousemove", fn)
}
func (s *Surface) OnMouseUp(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.add("mouseup", fn)
}
func (s *Surface) OnMouseLeave(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.add("mouseleave", fn)
}
func (s *Surface) OnDblClick(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.add("dblclick", fn)
}
func (s *Surface) OnTouchStart(fn func(*events.TouchEvent)) panzoom.Subscription {
	return s.add("touchstart", fn)
}
func (s *Surface) OnTouchMove(fn func(*events.TouchEvent)) panzoom.Subscription {
	return s.add("touchmove", fn)
}
func (s *Surface) OnTouchEnd(fn func(*events.TouchEvent)) panzoom.Subscription {
	return s.add("touchend", fn)
}

// Wheel dispatches a wheel event at the given viewport position and
// reports whether any handler called PreventDefault.
func (s *Surface) Wheel(deltaY, clientX, clientY float64) bool {
	prevented := false
	e := &events.WheelEvent{DeltaY: deltaY, ClientX: clientX, ClientY: clientY}
	e.SetPreventDefault(func() { prevented = true })
	for _, fn := range s.handlers("wheel") {
		fn.(func(*events.WheelEvent))(e)
	}
	return prevented
}

// MouseDown dispatches a mousedown with the given button.
func (s *Surface) MouseDown(button int, clientX, clientY float64) {
	s.dispatchMouse("mousedown", button, clientX, clientY)
}

// MouseMove dispatches a mousemove.
func (s *Surface) MouseMove(clientX, clientY float64) {
	s.dispatchMouse("mousemove", events.ButtonPrimary, clientX, clientY)
}

// MouseUp dispatches a mouseup.
func (s *Surface) MouseUp(clientX, clientY float64) {
	s.dispatchMouse("mouseup", events.ButtonPrimary, clientX, clientY)
}

// MouseLeave dispatches a mouseleave.
func (s *Surface) MouseLeave() {
	s.dispatchMouse("mouseleave", events.ButtonPrimary, 0, 0)
}

// DblClick dispatches a double click and reports whether any handler
// called PreventDefault.
func (s *Surface) DblClick(clientX, clientY float64) bool {
	prevented := false
	e := &events.MouseEvent{Button: events.ButtonPrimary, ClientX: clientX, ClientY: clientY}
	e.SetPreventDefault(func() { prevented = true })
	for _, fn := range s.handlers("dblclick") {
		fn.(func(*events.MouseEvent))(e)
	}
	return prevented
}

func (s *Surface) dispatchMouse(event string, button int, clientX, clientY float64) {
	e := &events.MouseEvent{Button: button, ClientX: clientX, ClientY: clientY}
	for _, fn := range s.handlers(event) {
		fn.(func(*events.MouseEvent))(e)
	}
}

// TouchStart dispatches a touchstart carrying the given active touches
// and reports whether any handler called PreventDefault.
func (s *Surface) TouchStart(touches ...events.Touch) bool {
	return s.dispatchTouch("touchstart", touches)
}

// TouchMove dispatches a touchmove carrying the given active touches
// and reports whether any handler called PreventDefault.
func (s *Surface) TouchMove(touches ...events.Touch) bool {
	return s.dispatchTouch("touchmove", touches)
}

// TouchEnd dispatches a touchend; touches are the points still on the
// surface after the lift.
func (s *Surface) TouchEnd(touches ...events.Touch) bool {
	return s.dispatchTouch("touchend", touches)
}

func (s *Surface) dispatchTouch(event string, touches []events.Touch) bool {
	prevented := false
	e := &events.TouchEvent{Touches: touches}
	e.SetPreventDefault(func() { prevented = true })
	for _, fn := range s.handlers(event) {
		fn.(func(*events.TouchEvent))(e)
	}
	return prevented
}

// Trigger is a fake external button.
type Trigger struct {
	mu       sync.Mutex
	handlers []func()
}

// OnClick registers a click handler.
func (t *Trigger) OnClick(fn func()) panzoom.Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = append(t.handlers, fn)
	return &triggerSub{trigger: t, index: len(t.handlers) - 1}
}

// Click invokes every live handler.
func (t *Trigger) Click() {
	t.mu.Lock()
	live := make([]func(), 0, len(t.handlers))
	for _, fn := range t.handlers {
		if fn != nil {
			live = append(live, fn)
		}
	}
	t.mu.Unlock()
	for _, fn := range live {
		fn()
	}
}

type triggerSub struct {
	trigger *Trigger
	index   int
}

func (s *triggerSub) Release() {
	s.trigger.mu.Lock()
	defer s.trigger.mu.Unlock()
	if s.index < len(s.trigger.handlers) {
		s.trigger.handlers[s.index] = nil
	}
}
