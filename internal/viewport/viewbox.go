// Package viewport maps between screen space (pointer positions reported by
// the browser) and world space (where nodes live) through a pan offset and a
// zoom factor.
package viewport

import (
	"fmt"

	"nodework/internal/geometry"
)

const (
	// DefaultZoomStep is the zoom increment applied per scroll event
	DefaultZoomStep = 0.1
	// DefaultZoomMin is the closest the view may zoom in
	DefaultZoomMin = 0.5
	// DefaultZoomMax is the furthest the view may zoom out
	DefaultZoomMax = 3.0
	// DefaultPanLimit bounds the pan offset on each axis
	DefaultPanLimit = 500
)

// Limits bounds zoom and pan
type Limits struct {
	ZoomMin  float64
	ZoomMax  float64
	ZoomStep float64
	PanLimit int
}

// DefaultLimits returns the stock editor limits
func DefaultLimits() Limits {
	return Limits{
		ZoomMin:  DefaultZoomMin,
		ZoomMax:  DefaultZoomMax,
		ZoomStep: DefaultZoomStep,
		PanLimit: DefaultPanLimit,
	}
}

// ClampZoom restricts z to [ZoomMin, ZoomMax]
func (l Limits) ClampZoom(z float64) float64 {
	return max(min(z, l.ZoomMax), l.ZoomMin)
}

// ViewBox is the visible window onto the world.
//
// Resolution is always the window size multiplied by Zoom, so a larger zoom
// shows more of the world.
type ViewBox struct {
	Offset     geometry.Vector `json:"offset"`
	Resolution geometry.Vector `json:"resolution"`
	Zoom       float64         `json:"zoom"`
}

// New creates an unzoomed, unpanned view box for the given window size
func New(window geometry.Vector) ViewBox {
	return ViewBox{
		Offset:     geometry.Zero,
		Resolution: window,
		Zoom:       1,
	}
}

// Scale applies the zoom factor only
func (vb ViewBox) Scale(p geometry.Vector) geometry.Vector {
	return p.Scale(vb.Zoom)
}

// Translate applies the pan offset only
func (vb ViewBox) Translate(p geometry.Vector) geometry.Vector {
	return p.Add(vb.Offset)
}

// ToWorld maps a screen point into world space: scale, then translate.
func (vb ViewBox) ToWorld(p geometry.Vector) geometry.Vector {
	return vb.Translate(vb.Scale(p))
}

// ToScreen maps a world point back to screen space. It is the inverse of
// ToWorld up to rounding to whole units.
func (vb ViewBox) ToScreen(p geometry.Vector) geometry.Vector {
	if vb.Zoom == 0 {
		return p.Sub(vb.Offset)
	}
	return p.Sub(vb.Offset).Scale(1 / vb.Zoom)
}

// Resize recomputes the resolution for a new window size
func (vb ViewBox) Resize(window geometry.Vector) ViewBox {
	vb.Resolution = window.Scale(vb.Zoom)
	return vb
}

// UpdateZoom steps the zoom by one increment in the direction of delta
// (positive zooms out), clamps it, and recomputes the resolution.
func (vb ViewBox) UpdateZoom(delta float64, window geometry.Vector, limits Limits) ViewBox {
	step := limits.ZoomStep
	if delta <= 0 {
		step = -step
	}
	vb.Zoom = limits.ClampZoom(vb.Zoom + step)
	return vb.Resize(window)
}

// WithOffset returns the view box panned to offset
func (vb ViewBox) WithOffset(offset geometry.Vector) ViewBox {
	vb.Offset = offset
	return vb
}

// Attr renders the SVG viewBox attribute "x y width height"
func (vb ViewBox) Attr() string {
	return fmt.Sprintf("%d %d %d %d", vb.Offset.X, vb.Offset.Y, vb.Resolution.X, vb.Resolution.Y)
}

// BoundedOffset derives the pan offset for a canvas drag that started at
// anchor (world space) and is now at cursor (zoom-scaled screen space),
// clamped to [-limit, limit] on each axis.
func BoundedOffset(anchor, cursor geometry.Vector, limit int) geometry.Vector {
	return cursor.Sub(anchor).Inverse().Bounded(limit)
}
