//go:build js && wasm
// +build js,wasm

// Demo client: binds the pan/zoom controller to the statically rendered
// diagram in public/index.html and wires the viewer toolbar.
package main

import (
	"fmt"
	"syscall/js"

	"github.com/diagramlab/svgpan/pkg/debug"
	"github.com/diagramlab/svgpan/pkg/dom"
	"github.com/diagramlab/svgpan/pkg/events"
	"github.com/diagramlab/svgpan/pkg/panzoom"
)

var document js.Value

func main() {
	document = js.Global().Get("document")

	if document.Get("readyState").String() != "loading" {
		onReady()
	} else {
		document.Call("addEventListener", "DOMContentLoaded", js.FuncOf(func(this js.Value, args []js.Value) any {
			onReady()
			return nil
		}))
	}

	// Keep the WASM runtime alive
	select {}
}

func onReady() {
	ctrl := attachViewer()
	if !ctrl.IsInitialized() {
		debug.Warnf("viewer: diagram not found, pan/zoom disabled")
		return
	}
	debug.Log("viewer: pan/zoom attached")

	// Refit when the window changes size so the diagram stays visible.
	dom.OnWindowResize(func(events.ResizeEvent) {
		ctrl.Fit()
	})
}

func attachViewer() *panzoom.Controller {
	var surface panzoom.Surface
	if s, err := dom.WrapID("diagram"); err != nil {
		debug.Warnf("viewer: %v", err)
	} else {
		surface = s
	}

	return panzoom.New(surface, &panzoom.Options{
		Controls:    toolbar(),
		OnTransform: updateZoomLabel,
	})
}

// toolbar resolves the four optional toolbar buttons. Missing buttons
// are fine; the page may render a chrome-less embed.
func toolbar() *panzoom.Controls {
	controls := &panzoom.Controls{}
	if b, err := dom.ButtonID("zoom-in"); err == nil {
		controls.ZoomIn = b
	}
	if b, err := dom.ButtonID("zoom-out"); err == nil {
		controls.ZoomOut = b
	}
	if b, err := dom.ButtonID("zoom-fit"); err == nil {
		controls.Fit = b
	}
	if b, err := dom.ButtonID("zoom-reset"); err == nil {
		controls.Reset = b
	}
	return controls
}

func updateZoomLabel(t panzoom.Transform) {
	label := document.Call("getElementById", "zoom-level")
	if !label.Truthy() {
		return
	}
	label.Set("textContent", fmt.Sprintf("%.0f%%", t.Scale*100))
}
