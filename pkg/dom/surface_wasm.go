//go:build js && wasm
// +build js,wasm

package dom

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/diagramlab/svgpan/pkg/events"
	"github.com/diagramlab/svgpan/pkg/geom"
	"github.com/diagramlab/svgpan/pkg/panzoom"
)

// Surface adapts a live DOM element (typically the root <svg> of a
// rendered diagram) to the panzoom.Surface interface.
type Surface struct {
	el js.Value

	mu      sync.Mutex
	applied panzoom.Transform
}

// Wrap adapts el. It returns an error when el is not a live element so
// the caller can fall back to an inert controller.
func Wrap(el js.Value) (*Surface, error) {
	if !el.Truthy() {
		return nil, fmt.Errorf("dom: element is null or undefined")
	}
	return &Surface{el: el, applied: panzoom.Identity()}, nil
}

// WrapID adapts the element with the given id.
func WrapID(id string) (*Surface, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if !el.Truthy() {
		return nil, fmt.Errorf("dom: no element with id %q", id)
	}
	return Wrap(el)
}

// Element returns the wrapped DOM element.
func (s *Surface) Element() js.Value { return s.el }

// Rect returns the element's rendered bounding box with the currently
// applied scale factored back out, so the controller always sees the
// scale-1 extent.
func (s *Surface) Rect() geom.Rect {
	r := s.el.Call("getBoundingClientRect")
	s.mu.Lock()
	scale := s.applied.Scale
	s.mu.Unlock()
	if scale <= 0 {
		scale = 1
	}
	return geom.Rect{
		X:      r.Get("left").Float(),
		Y:      r.Get("top").Float(),
		Width:  r.Get("width").Float() / scale,
		Height: r.Get("height").Float() / scale,
	}
}

// Container resolves the parent element's content box, or nil when the
// element is detached.
func (s *Surface) Container() panzoom.Container {
	parent := s.el.Get("parentElement")
	if !parent.Truthy() {
		return nil
	}
	return &container{el: parent}
}

// ApplyTransform writes the transform to the element's style with the
// origin pinned at the top-left corner.
func (s *Surface) ApplyTransform(t panzoom.Transform) {
	style := s.el.Get("style")
	style.Call("setProperty", "transform-origin", "0 0")
	style.Call("setProperty", "transform", t.CSS())
	s.mu.Lock()
	s.applied = t
	s.mu.Unlock()
}

// SetCursor updates the pointer affordance.
func (s *Surface) SetCursor(c panzoom.Cursor) {
	s.el.Get("style").Call("setProperty", "cursor", string(c))
}

// Normalize strips the explicit width/height attributes the renderer
// left on the SVG so it sizes from its content box, and makes it a
// block-level box so there is no inline baseline gap.
func (s *Surface) Normalize() {
	s.el.Call("removeAttribute", "width")
	s.el.Call("removeAttribute", "height")
	s.el.Get("style").Call("setProperty", "display", "block")
}

type container struct {
	el js.Value
}

// Rect returns the content box: position from the bounding rect, size
// from the client box so borders and scrollbars are excluded.
func (c *container) Rect() geom.Rect {
	r := c.el.Call("getBoundingClientRect")
	return geom.Rect{
		X:      r.Get("left").Float(),
		Y:      r.Get("top").Float(),
		Width:  c.el.Get("clientWidth").Float(),
		Height: c.el.Get("clientHeight").Float(),
	}
}

// subscription is a registered DOM listener; Release detaches it and
// frees the js callback.
type subscription struct {
	el    js.Value
	event string
	fn    js.Func
	opts  js.Value

	once sync.Once
}

func (s *subscription) Release() {
	s.once.Do(func() {
		if s.opts.Truthy() {
			s.el.Call("removeEventListener", s.event, s.fn, s.opts)
		} else {
			s.el.Call("removeEventListener", s.event, s.fn)
		}
		s.fn.Release()
	})
}

// listen registers a raw listener. Wheel and touch listeners are
// registered non-passive, otherwise the browser ignores
// preventDefault from the handler.
func (s *Surface) listen(event string, handler func(js.Value)) panzoom.Subscription {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			handler(args[0])
		}
		return nil
	})
	sub := &subscription{el: s.el, event: event, fn: fn}
	switch event {
	case "wheel", "touchstart", "touchmove", "touchend":
		sub.opts = js.ValueOf(map[string]any{"passive": false})
		s.el.Call("addEventListener", event, fn, sub.opts)
	default:
		s.el.Call("addEventListener", event, fn)
	}
	return sub
}

func (s *Surface) OnWheel(fn func(*events.WheelEvent)) panzoom.Subscription {
	return s.listen("wheel", func(raw js.Value) { fn(decodeWheel(raw)) })
}

func (s *Surface) OnMouseDown(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.listen("mousedown", func(raw js.Value) { fn(decodeMouse(raw)) })
}

func (s *Surface) OnMouseMove(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.listen("mousemove", func(raw js.Value) { fn(decodeMouse(raw)) })
}

func (s *Surface) OnMouseUp(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.listen("mouseup", func(raw js.Value) { fn(decodeMouse(raw)) })
}

func (s *Surface) OnMouseLeave(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.listen("mouseleave", func(raw js.Value) { fn(decodeMouse(raw)) })
}

func (s *Surface) OnDblClick(fn func(*events.MouseEvent)) panzoom.Subscription {
	return s.listen("dblclick", func(raw js.Value) { fn(decodeMouse(raw)) })
}

func (s *Surface) OnTouchStart(fn func(*events.TouchEvent)) panzoom.Subscription {
	return s.listen("touchstart", func(raw js.Value) { fn(decodeTouch(raw)) })
}

func (s *Surface) OnTouchMove(fn func(*events.TouchEvent)) panzoom.Subscription {
	return s.listen("touchmove", func(raw js.Value) { fn(decodeTouch(raw)) })
}

func (s *Surface) OnTouchEnd(fn func(*events.TouchEvent)) panzoom.Subscription {
	return s.listen("touchend", func(raw js.Value) { fn(decodeTouch(raw)) })
}

func decodeMouse(raw js.Value) *events.MouseEvent {
	e := &events.MouseEvent{
		ClientX:  raw.Get("clientX").Float(),
		ClientY:  raw.Get("clientY").Float(),
		Button:   raw.Get("button").Int(),
		Buttons:  raw.Get("buttons").Int(),
		CtrlKey:  raw.Get("ctrlKey").Bool(),
		ShiftKey: raw.Get("shiftKey").Bool(),
		AltKey:   raw.Get("altKey").Bool(),
		MetaKey:  raw.Get("metaKey").Bool(),
	}
	e.SetPreventDefault(func() { raw.Call("preventDefault") })
	return e
}

func decodeWheel(raw js.Value) *events.WheelEvent {
	e := &events.WheelEvent{
		DeltaX:    raw.Get("deltaX").Float(),
		DeltaY:    raw.Get("deltaY").Float(),
		DeltaMode: raw.Get("deltaMode").Int(),
		ClientX:   raw.Get("clientX").Float(),
		ClientY:   raw.Get("clientY").Float(),
		CtrlKey:   raw.Get("ctrlKey").Bool(),
	}
	e.SetPreventDefault(func() { raw.Call("preventDefault") })
	return e
}

func decodeTouch(raw js.Value) *events.TouchEvent {
	e := &events.TouchEvent{
		Touches:        decodeTouchList(raw.Get("touches")),
		ChangedTouches: decodeTouchList(raw.Get("changedTouches")),
	}
	e.SetPreventDefault(func() { raw.Call("preventDefault") })
	return e
}

func decodeTouchList(list js.Value) []events.Touch {
	if !list.Truthy() {
		return nil
	}
	n := list.Get("length").Int()
	out := make([]events.Touch, 0, n)
	for i := 0; i < n; i++ {
		t := list.Index(i)
		out = append(out, events.Touch{
			Identifier: t.Get("identifier").Int(),
			ClientX:    t.Get("clientX").Float(),
			ClientY:    t.Get("clientY").Float(),
		})
	}
	return out
}

// Button adapts a DOM element (a toolbar button) to panzoom.Trigger.
type Button struct {
	el js.Value
}

// ButtonID wraps the clickable element with the given id.
func ButtonID(id string) (*Button, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if !el.Truthy() {
		return nil, fmt.Errorf("dom: no element with id %q", id)
	}
	return &Button{el: el}, nil
}

// OnClick attaches a click listener.
func (b *Button) OnClick(fn func()) panzoom.Subscription {
	jsFn := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	b.el.Call("addEventListener", "click", jsFn)
	return &subscription{el: b.el, event: "click", fn: jsFn}
}

// OnWindowResize attaches a window resize listener; diagram views use it
// to trigger a refit when the container changes size.
func OnWindowResize(fn func(events.ResizeEvent)) panzoom.Subscription {
	window := js.Global().Get("window")
	jsFn := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(events.ResizeEvent{
			Width:  window.Get("innerWidth").Float(),
			Height: window.Get("innerHeight").Float(),
		})
		return nil
	})
	window.Call("addEventListener", "resize", jsFn)
	return &subscription{el: window, event: "resize", fn: jsFn}
}
