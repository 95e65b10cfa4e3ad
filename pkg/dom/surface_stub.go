//go:build !js || !wasm
// +build !js !wasm

// Package dom binds the pan/zoom engine to live browser elements over
// syscall/js. Outside WASM builds the constructors fail, mirroring the
// runtime soft-failure path: callers pass the resulting nil surface to
// panzoom.New and get an inert controller.
package dom

import (
	"fmt"

	"github.com/diagramlab/svgpan/pkg/events"
	"github.com/diagramlab/svgpan/pkg/geom"
	"github.com/diagramlab/svgpan/pkg/panzoom"
)

// Surface adapts a DOM element to panzoom.Surface (WASM only).
type Surface struct{}

// WrapID adapts the element with the given id (stub).
func WrapID(id string) (*Surface, error) {
	return nil, fmt.Errorf("dom: surface binding is only available in WASM builds")
}

func (s *Surface) Rect() geom.Rect                  { return geom.Rect{} }
func (s *Surface) Container() panzoom.Container     { return nil }
func (s *Surface) ApplyTransform(panzoom.Transform) {}
func (s *Surface) SetCursor(panzoom.Cursor)         {}
func (s *Surface) Normalize()                       {}

func (s *Surface) OnWheel(func(*events.WheelEvent)) panzoom.Subscription      { return noopSub{} }
func (s *Surface) OnMouseDown(func(*events.MouseEvent)) panzoom.Subscription  { return noopSub{} }
func (s *Surface) OnMouseMove(func(*events.MouseEvent)) panzoom.Subscription  { return noopSub{} }
func (s *Surface) OnMouseUp(func(*events.MouseEvent)) panzoom.Subscription    { return noopSub{} }
func (s *Surface) OnMouseLeave(func(*events.MouseEvent)) panzoom.Subscription { return noopSub{} }
func (s *Surface) OnDblClick(func(*events.MouseEvent)) panzoom.Subscription   { return noopSub{} }
func (s *Surface) OnTouchStart(func(*events.TouchEvent)) panzoom.Subscription { return noopSub{} }
func (s *Surface) OnTouchMove(func(*events.TouchEvent)) panzoom.Subscription  { return noopSub{} }
func (s *Surface) OnTouchEnd(func(*events.TouchEvent)) panzoom.Subscription   { return noopSub{} }

// Button adapts a clickable element to panzoom.Trigger (WASM only).
type Button struct{}

// ButtonID wraps the clickable element with the given id (stub).
func ButtonID(id string) (*Button, error) {
	return nil, fmt.Errorf("dom: button binding is only available in WASM builds")
}

// OnClick attaches a click listener (stub).
func (b *Button) OnClick(func()) panzoom.Subscription { return noopSub{} }

type noopSub struct{}

func (noopSub) Release() {}
