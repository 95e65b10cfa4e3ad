package panzoom

import "time"

// Tuning constants carried over from the behavior the controller
// replicates. The double-click tolerance is an absolute band around 100%
// regardless of scale magnitude.
const (
	defaultMinZoom              = 0.1
	defaultMaxZoom              = 10
	defaultZoomScaleSensitivity = 0.2
	defaultFitOnLoadDelay       = 120 * time.Millisecond

	zoomInStep  = 1.2
	zoomOutStep = 0.8

	wheelZoomInStep  = 1.1
	wheelZoomOutStep = 0.9

	dblClickFitTolerance = 0.1
)

// Controls holds optional external click surfaces the controller binds
// at construction. Any field may be nil. Binding is a convenience; the
// same operations are available directly on the Controller.
type Controls struct {
	ZoomIn  Trigger
	ZoomOut Trigger
	Fit     Trigger
	Reset   Trigger
}

// Options configures a Controller. The zero value enables every gesture
// with the documented default bounds, so callers only set what they want
// to change.
type Options struct {
	// ZoomDisabled turns off wheel, double-click, pinch and API-driven
	// zooming. Default: zoom enabled.
	ZoomDisabled bool

	// PanDisabled turns off drag and single-touch panning.
	// Default: pan enabled.
	PanDisabled bool

	// MinZoom is the lower clamp for scale. Values <= 0 default to 0.1.
	MinZoom float64

	// MaxZoom is the upper clamp for scale. Values <= 0 default to 10.
	MaxZoom float64

	// ZoomScaleSensitivity is a reserved tuning knob for the wheel step
	// size. It is accepted for compatibility but the wheel step is fixed
	// at 0.9 / 1.1. Values <= 0 default to 0.2.
	ZoomScaleSensitivity float64

	// NoDblClickZoom disables the double-click fit / 100% toggle.
	NoDblClickZoom bool

	// NoWheelZoom disables mouse wheel zooming.
	NoWheelZoom bool

	// NoFitOnLoad skips the deferred fit scheduled shortly after attach.
	NoFitOnLoad bool

	// FitOnLoadDelay is how long after attach the automatic fit runs.
	// Measuring immediately after insertion is unreliable because layout
	// may not have completed. Values <= 0 default to 120ms.
	FitOnLoadDelay time.Duration

	// OnTransform, when set, is invoked synchronously after every applied
	// transform change. It must not call back into the Controller.
	OnTransform func(Transform)

	// Controls optionally wires external buttons to the zoom-in,
	// zoom-out, fit and reset operations.
	Controls *Controls

	// Schedule overrides the timer used for the deferred fit. Nil means
	// time.AfterFunc. Bindings that prefer frame-aligned callbacks
	// (requestAnimationFrame) and tests install their own.
	Schedule func(d time.Duration, fn func())
}

// withDefaults resolves a possibly-nil Options into a fully populated
// copy.
func (o *Options) withDefaults() Options {
	d := Options{
		MinZoom:              defaultMinZoom,
		MaxZoom:              defaultMaxZoom,
		ZoomScaleSensitivity: defaultZoomScaleSensitivity,
		FitOnLoadDelay:       defaultFitOnLoadDelay,
	}
	if o == nil {
		return d
	}
	out := *o
	if out.MinZoom <= 0 {
		out.MinZoom = d.MinZoom
	}
	if out.MaxZoom <= 0 {
		out.MaxZoom = d.MaxZoom
	}
	if out.ZoomScaleSensitivity <= 0 {
		out.ZoomScaleSensitivity = d.ZoomScaleSensitivity
	}
	if out.FitOnLoadDelay <= 0 {
		out.FitOnLoadDelay = d.FitOnLoadDelay
	}
	return out
}

func (o *Options) scheduleFunc() func(d time.Duration, fn func()) {
	if o != nil && o.Schedule != nil {
		return o.Schedule
	}
	return func(d time.Duration, fn func()) {
		time.AfterFunc(d, fn)
	}
}
