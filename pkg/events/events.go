// Package events defines the typed input events consumed by the pan/zoom
// engine. Bindings (the WASM DOM binding, the test harness) construct these
// from their native event representation; handlers never see a raw DOM event.
package events

import "math"

// Mouse button values as reported by DOM MouseEvent.button.
const (
	ButtonPrimary   = 0
	ButtonAuxiliary = 1
	ButtonSecondary = 2
)

// base carries the cancellation hook shared by all event types. Bindings
// that can suppress the browser's default action install it with
// SetPreventDefault; handlers call PreventDefault when they consume the
// gesture.
type base struct {
	preventDefault func()
}

// PreventDefault suppresses the native default action for this event,
// if the originating binding supports it.
func (b *base) PreventDefault() {
	if b.preventDefault != nil {
		b.preventDefault()
	}
}

// SetPreventDefault installs the cancellation hook. Intended for bindings,
// not handlers.
func (b *base) SetPreventDefault(fn func()) {
	b.preventDefault = fn
}

// MouseEvent represents a mouse event with position and button state.
type MouseEvent struct {
	base

	// Position relative to viewport
	ClientX float64
	ClientY float64

	// Button that triggered the event (0=left, 1=middle, 2=right)
	Button int

	// Bitmask of currently pressed buttons
	Buttons int

	// Modifier keys
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
	MetaKey  bool
}

// WheelEvent represents a mouse wheel event.
type WheelEvent struct {
	base

	// Scroll amounts
	DeltaX float64
	DeltaY float64

	// Delta mode: 0=pixels, 1=lines, 2=pages
	DeltaMode int

	// Position relative to viewport
	ClientX float64
	ClientY float64

	CtrlKey bool
}

// Touch represents a single touch point.
type Touch struct {
	// Unique identifier for the touch point
	Identifier int

	// Position relative to viewport
	ClientX float64
	ClientY float64
}

// TouchEvent represents a touch event.
type TouchEvent struct {
	base

	// All current touches on the surface
	Touches []Touch

	// Touches that changed in this event
	ChangedTouches []Touch
}

// ResizeEvent represents a container resize.
type ResizeEvent struct {
	// New content-box size in pixels
	Width  float64
	Height float64
}

// Distance returns the straight-line distance between two touch points.
func Distance(a, b Touch) float64 {
	dx := b.ClientX - a.ClientX
	dy := b.ClientY - a.ClientY
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between two touch points.
func Midpoint(a, b Touch) (x, y float64) {
	return (a.ClientX + b.ClientX) / 2, (a.ClientY + b.ClientY) / 2
}
