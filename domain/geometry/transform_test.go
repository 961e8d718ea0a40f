package geometry

import (
	"image"
	"testing"
)

func TestStepZoom_CoarseBelowThresholdFineAbove(t *testing.T) {
	lim := DefaultZoomLimits()
	if z := StepZoom(100, 1, lim); z != 125 {
		t.Fatalf("expected coarse step to 125, got %d", z)
	}
	if z := StepZoom(125, 1, lim); z != 130 {
		t.Fatalf("expected fine step to 130, got %d", z)
	}
	if z := StepZoom(125, -1, lim); z != 120 {
		t.Fatalf("expected fine step down to 120, got %d", z)
	}
	if z := StepZoom(120, -1, lim); z != 95 {
		t.Fatalf("expected coarse step down to 95, got %d", z)
	}
	if z := StepZoom(100, 0, lim); z != 100 {
		t.Fatalf("no wheel should keep zoom, got %d", z)
	}
}

func TestStepZoom_Clamps(t *testing.T) {
	lim := ZoomLimits{Min: 10, Max: 200, FineThreshold: 125, CoarseStep: 25, FineStep: 5}
	if z := StepZoom(20, -1, lim); z != 10 {
		t.Fatalf("expected clamp to min 10, got %d", z)
	}
	if z := StepZoom(198, 1, lim); z != 200 {
		t.Fatalf("expected clamp to max 200, got %d", z)
	}
}

func TestComputeTransform_ScaleAndWindow(t *testing.T) {
	vp := Viewport{CanvasW: 800, CanvasH: 600, ZoomPercent: 100}
	tf, sb := ComputeTransform(2000, 1000, vp, DefaultZoomLimits())
	if tf.ScaledW != 2000 || tf.ScaledH != 1000 {
		t.Fatalf("unexpected scaled size %dx%d", tf.ScaledW, tf.ScaledH)
	}
	if sb.MaxX != 1200 || sb.MaxY != 400 {
		t.Fatalf("unexpected maxima x=%d y=%d", sb.MaxX, sb.MaxY)
	}
	if tf.X1 != 0 || tf.X2 != 800 || tf.Y1 != 0 || tf.Y2 != 600 {
		t.Fatalf("unexpected window %v", tf.Crop())
	}
}

func TestComputeTransform_SmallImageFitsCanvas(t *testing.T) {
	vp := Viewport{CanvasW: 800, CanvasH: 600, ZoomPercent: 50, ScrollX: 30, ScrollY: 30}
	tf, sb := ComputeTransform(1000, 500, vp, DefaultZoomLimits())
	if sb.MaxX != 0 || sb.MaxY != 0 || sb.ScrollX != 0 || sb.ScrollY != 0 {
		t.Fatalf("expected zero scroll when image fits, got %+v", sb)
	}
	if tf.X2 != 500 || tf.Y2 != 250 {
		t.Fatalf("window should match scaled image, got %v", tf.Crop())
	}
}

func TestComputeTransform_ZoomChangeKeepsRelativeScroll(t *testing.T) {
	// scrollbar at 80% of the old maximum, zoom 100% -> 50%
	vp := Viewport{
		CanvasW: 800, CanvasH: 600,
		ZoomPercent: 50, LastZoomPercent: 100,
		ScrollX: 2560, MaxX: 3200,
		ScrollY: 1120, MaxY: 1400,
	}
	_, sb := ComputeTransform(4000, 2000, vp, DefaultZoomLimits())
	if sb.ScrollX != 960 || sb.ScrollY != 320 {
		t.Fatalf("expected scroll at 80%% of new maxima (960,320), got (%d,%d)", sb.ScrollX, sb.ScrollY)
	}
}

func TestComputeTransform_WheelRescalesScroll(t *testing.T) {
	vp := Viewport{CanvasW: 800, CanvasH: 600, ZoomPercent: 100, ScrollX: 600, MaxX: 1200, WheelDelta: -1}
	tf, sb := ComputeTransform(2000, 1000, vp, DefaultZoomLimits())
	if sb.ZoomPercent != 75 {
		t.Fatalf("expected zoom 75, got %d", sb.ZoomPercent)
	}
	// scaled 1500 wide -> max 700, half way -> 350
	if sb.MaxX != 700 || sb.ScrollX != 350 || tf.X1 != 350 {
		t.Fatalf("expected proportional scroll 350/700, got %d/%d", sb.ScrollX, sb.MaxX)
	}
}

func TestComputeTransform_ClampsAfterResize(t *testing.T) {
	// same zoom, canvas grew so the old position exceeds the new maximum
	vp := Viewport{CanvasW: 1800, CanvasH: 600, ZoomPercent: 100, LastZoomPercent: 100, ScrollX: 1000, MaxX: 1200}
	_, sb := ComputeTransform(2000, 1000, vp, DefaultZoomLimits())
	if sb.MaxX != 200 || sb.ScrollX != 200 {
		t.Fatalf("expected clamp to 200, got %d (max %d)", sb.ScrollX, sb.MaxX)
	}
}

func TestMapScreenToImage_RoundTrip(t *testing.T) {
	tf := Transform{Scale: 2, ScaledW: 2000, ScaledH: 1000, X1: 100, X2: 900, Y1: 50, Y2: 650}
	p := MapScreenToImage(image.Pt(300, 150), tf)
	if p != image.Pt(200, 100) {
		t.Fatalf("expected (200,100), got %v", p)
	}
	if s := MapImageToScreen(p, tf); s != image.Pt(300, 150) {
		t.Fatalf("expected back to (300,150), got %v", s)
	}
	r := ImageRectToScreen(image.Rect(100, 50, 150, 75), tf)
	if r != image.Rect(100, 50, 200, 100) {
		t.Fatalf("unexpected screen rect %v", r)
	}
}
