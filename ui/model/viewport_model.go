package model

import (
	"fmt"

	"github.com/soocke/pixel-label-go/domain/geometry"
)

// ViewportModel owns zoom and scroll between display cycles. It is only
// touched from the UI tick so it needs no locking.
type ViewportModel struct {
	vp  geometry.Viewport
	lim geometry.ZoomLimits
}

// NewViewportModel returns a viewport of canvasW x canvasH at zoom percent.
func NewViewportModel(canvasW, canvasH, zoom int, lim geometry.ZoomLimits) *ViewportModel {
	m := &ViewportModel{lim: lim}
	m.vp.CanvasW, m.vp.CanvasH = canvasW, canvasH
	m.vp.ZoomPercent = geometry.StepZoom(zoom, 0, lim)
	return m
}

// SetLimits replaces the zoom rules and re-clamps the zoom.
func (m *ViewportModel) SetLimits(lim geometry.ZoomLimits) {
	m.lim = lim
	m.vp.ZoomPercent = geometry.StepZoom(m.vp.ZoomPercent, 0, lim)
}

// SetCanvasSize records the canvas widget size.
func (m *ViewportModel) SetCanvasSize(w, h int) {
	if w > 0 {
		m.vp.CanvasW = w
	}
	if h > 0 {
		m.vp.CanvasH = h
	}
}

// CanvasSize returns the canvas size.
func (m *ViewportModel) CanvasSize() (int, int) { return m.vp.CanvasW, m.vp.CanvasH }

// Zoom returns the current zoom percentage.
func (m *ViewportModel) Zoom() int { return m.vp.ZoomPercent }

// StepZoom moves the zoom one wheel notch in dir.
func (m *ViewportModel) StepZoom(dir int) {
	m.vp.ZoomPercent = geometry.StepZoom(m.vp.ZoomPercent, dir, m.lim)
}

// ScrollBy moves the scroll position; the next Resolve clamps it.
func (m *ViewportModel) ScrollBy(dx, dy int) {
	m.vp.ScrollX += dx
	m.vp.ScrollY += dy
}

// Scroll returns the scroll position and maxima of the last cycle.
func (m *ViewportModel) Scroll() (x, y, maxX, maxY int) {
	return m.vp.ScrollX, m.vp.ScrollY, m.vp.MaxX, m.vp.MaxY
}

// ResetScroll returns to the top-left corner, used when the image changes.
func (m *ViewportModel) ResetScroll() {
	m.vp.ScrollX, m.vp.ScrollY = 0, 0
	m.vp.MaxX, m.vp.MaxY = 0, 0
	m.vp.LastZoomPercent = m.vp.ZoomPercent
}

// Resolve applies wheel to the zoom, computes the transform for an image of
// imgW x imgH and stores the resolved zoom and scroll bounds.
func (m *ViewportModel) Resolve(imgW, imgH, wheel int) geometry.Transform {
	vp := m.vp
	vp.WheelDelta = wheel
	tf, b := geometry.ComputeTransform(imgW, imgH, vp, m.lim)
	m.vp.ZoomPercent = b.ZoomPercent
	m.vp.LastZoomPercent = b.ZoomPercent
	m.vp.ScrollX, m.vp.ScrollY = b.ScrollX, b.ScrollY
	m.vp.MaxX, m.vp.MaxY = b.MaxX, b.MaxY
	return tf
}

// ZoomLabel formats the zoom as a factor, e.g. "x1.25".
func (m *ViewportModel) ZoomLabel() string {
	return fmt.Sprintf("x%.2f", float64(m.vp.ZoomPercent)/100)
}
