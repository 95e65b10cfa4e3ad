package panzoom

import (
	"github.com/diagramlab/svgpan/pkg/events"
	"github.com/diagramlab/svgpan/pkg/geom"
)

// Cursor is the pointer affordance shown over the surface.
type Cursor string

const (
	CursorDefault  Cursor = ""
	CursorGrab     Cursor = "grab"
	CursorGrabbing Cursor = "grabbing"
)

// Subscription is a registered event listener. Releasing it detaches the
// listener from the underlying event source.
type Subscription interface {
	Release()
}

// Container supplies the content box the surface is fitted and centered
// within. It is typically the surface's parent element.
type Container interface {
	// Rect returns the container's content box in viewport coordinates.
	Rect() geom.Rect
}

// Surface is the rendered element the controller manipulates. The DOM
// binding in pkg/dom implements it over a live SVG element; the test
// harness implements it in memory. The controller holds exactly one
// Surface and never reaches past it into ambient state.
type Surface interface {
	// Rect returns the surface's rendered bounding box in viewport
	// coordinates, with the current transform factored back out (that is,
	// the size the surface occupies at scale 1).
	Rect() geom.Rect

	// Container resolves the surrounding container, or nil if the surface
	// is not attached to one.
	Container() Container

	// ApplyTransform displays the surface under t, with the transform
	// origin pinned at the surface's top-left corner.
	ApplyTransform(t Transform)

	// SetCursor updates the pointer affordance.
	SetCursor(c Cursor)

	// Normalize strips explicit sizing from the surface so it lays out
	// from its content box, and makes it a block-level box. Called once
	// at attach.
	Normalize()

	OnWheel(fn func(*events.WheelEvent)) Subscription
	OnMouseDown(fn func(*events.MouseEvent)) Subscription
	OnMouseMove(fn func(*events.MouseEvent)) Subscription
	OnMouseUp(fn func(*events.MouseEvent)) Subscription
	OnMouseLeave(fn func(*events.MouseEvent)) Subscription
	OnDblClick(fn func(*events.MouseEvent)) Subscription
	OnTouchStart(fn func(*events.TouchEvent)) Subscription
	OnTouchMove(fn func(*events.TouchEvent)) Subscription
	OnTouchEnd(fn func(*events.TouchEvent)) Subscription
}

// Trigger is an external click surface (a toolbar button) the controller
// can bind a zoom-in/zoom-out/fit/reset action to.
type Trigger interface {
	OnClick(fn func()) Subscription
}
