// Package geometry maps between image pixels, the zoomed image and the
// on-screen canvas, and provides the hit tests used by the box editor.
package geometry

import (
	"image"
	"math"
)

// ZoomLimits bounds the zoom percentage and sets the wheel step sizes.
// Below FineThreshold the wheel moves by CoarseStep, at or above it by FineStep.
type ZoomLimits struct {
	Min           int
	Max           int
	FineThreshold int
	CoarseStep    int
	FineStep      int
}

// DefaultZoomLimits returns the stock zoom range and steps.
func DefaultZoomLimits() ZoomLimits {
	return ZoomLimits{Min: 10, Max: 800, FineThreshold: 125, CoarseStep: 25, FineStep: 5}
}

// Viewport is the host-owned state read at the start of a display cycle.
type Viewport struct {
	CanvasW, CanvasH int
	// ZoomPercent is the requested zoom before the wheel is applied.
	ZoomPercent int
	// LastZoomPercent is the zoom the previous cycle resolved to. Zero means unknown.
	LastZoomPercent int
	ScrollX, ScrollY int
	// MaxX and MaxY are the scroll maxima published by the previous cycle.
	MaxX, MaxY int
	// WheelDelta is +1 for wheel-up, -1 for wheel-down and 0 otherwise.
	WheelDelta int
}

// ScrollBounds is written back to the viewport host after a cycle.
type ScrollBounds struct {
	ZoomPercent      int
	ScrollX, ScrollY int
	MaxX, MaxY       int
}

// Transform is the resolved mapping for one display cycle. X1..X2 and Y1..Y2
// is the visible window into the scaled image.
type Transform struct {
	Scale            float64
	ScaledW, ScaledH int
	X1, X2           int
	Y1, Y2           int
}

// Crop returns the visible window in scaled-image coordinates.
func (t Transform) Crop() image.Rectangle { return image.Rect(t.X1, t.Y1, t.X2, t.Y2) }

// Visible returns the canvas area covered by the image in screen coordinates.
func (t Transform) Visible() image.Rectangle { return image.Rect(0, 0, t.X2-t.X1, t.Y2-t.Y1) }

// StepZoom applies one wheel notch to zoom and clamps the result to lim.
func StepZoom(zoom, wheel int, lim ZoomLimits) int {
	lim = lim.normalized()
	if wheel != 0 {
		step := lim.FineStep
		if zoom < lim.FineThreshold {
			step = lim.CoarseStep
		}
		if wheel > 0 {
			zoom += step
		} else {
			zoom -= step
		}
	}
	return clampInt(zoom, lim.Min, lim.Max)
}

// ComputeTransform resolves zoom, scroll maxima and the visible window for an
// image of imgW x imgH shown through vp.
func ComputeTransform(imgW, imgH int, vp Viewport, lim ZoomLimits) (Transform, ScrollBounds) {
	zoom := StepZoom(vp.ZoomPercent, vp.WheelDelta, lim)
	scale := float64(zoom) / 100.0
	scaledW := scaledDim(imgW, scale)
	scaledH := scaledDim(imgH, scale)

	maxX := max(0, scaledW-vp.CanvasW)
	maxY := max(0, scaledH-vp.CanvasH)

	last := vp.LastZoomPercent
	if last == 0 {
		last = vp.ZoomPercent
	}
	sx, sy := vp.ScrollX, vp.ScrollY
	if zoom != last {
		sx = rescaleScroll(sx, vp.MaxX, maxX)
		sy = rescaleScroll(sy, vp.MaxY, maxY)
	}
	sx = clampInt(sx, 0, maxX)
	sy = clampInt(sy, 0, maxY)

	tf := Transform{
		Scale:   scale,
		ScaledW: scaledW,
		ScaledH: scaledH,
		X1:      sx,
		X2:      sx + min(max(vp.CanvasW, 0), scaledW),
		Y1:      sy,
		Y2:      sy + min(max(vp.CanvasH, 0), scaledH),
	}
	return tf, ScrollBounds{ZoomPercent: zoom, ScrollX: sx, ScrollY: sy, MaxX: maxX, MaxY: maxY}
}

// MapScreenToImage converts a canvas point to image pixel coordinates.
func MapScreenToImage(p image.Point, tf Transform) image.Point {
	if tf.Scale <= 0 {
		return p
	}
	return image.Pt(
		int(math.Round(float64(p.X+tf.X1)/tf.Scale)),
		int(math.Round(float64(p.Y+tf.Y1)/tf.Scale)),
	)
}

// MapImageToScreen converts an image pixel to canvas coordinates.
func MapImageToScreen(p image.Point, tf Transform) image.Point {
	return image.Pt(
		int(math.Round(float64(p.X)*tf.Scale))-tf.X1,
		int(math.Round(float64(p.Y)*tf.Scale))-tf.Y1,
	)
}

// ImageRectToScreen maps a rectangle in image pixels to canvas coordinates.
func ImageRectToScreen(r image.Rectangle, tf Transform) image.Rectangle {
	return image.Rectangle{Min: MapImageToScreen(r.Min, tf), Max: MapImageToScreen(r.Max, tf)}
}

// rescaleScroll keeps the relative scroll position when the maximum changes.
func rescaleScroll(pos, oldMax, newMax int) int {
	if oldMax <= 0 || newMax <= 0 {
		return 0
	}
	return int(math.Round(float64(newMax) * float64(pos) / float64(oldMax)))
}

func scaledDim(n int, scale float64) int {
	if n <= 0 {
		return 0
	}
	s := int(math.Floor(float64(n) * scale))
	if s < 1 {
		s = 1
	}
	return s
}

func (l ZoomLimits) normalized() ZoomLimits {
	d := DefaultZoomLimits()
	if l.Min <= 0 {
		l.Min = d.Min
	}
	if l.Max < l.Min {
		l.Max = max(d.Max, l.Min)
	}
	if l.FineThreshold <= 0 {
		l.FineThreshold = d.FineThreshold
	}
	if l.CoarseStep <= 0 {
		l.CoarseStep = d.CoarseStep
	}
	if l.FineStep <= 0 {
		l.FineStep = d.FineStep
	}
	return l
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
