package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/soocke/pixel-label-go/domain/geometry"
	"github.com/soocke/pixel-label-go/domain/interaction"
)

func TestRenderCropsScaledWindow(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 200))
	r := NewRenderer()
	tf := geometry.Transform{Scale: 0.5, ScaledW: 200, ScaledH: 100, X1: 20, X2: 120, Y1: 10, Y2: 60}
	out := r.Render(src, tf)
	if out == nil || out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Fatalf("unexpected window %v", out)
	}
	tf.X1, tf.X2 = 0, 100
	r.Render(src, tf)
	if r.resizes != 1 {
		t.Fatalf("scroll should reuse the scaled image, resizes=%d", r.resizes)
	}
	tf.ScaledW, tf.ScaledH = 400, 200
	r.Render(src, tf)
	if r.resizes != 2 {
		t.Fatalf("zoom change should rescale, resizes=%d", r.resizes)
	}
	r.Reset()
	r.Render(src, tf)
	if r.resizes != 3 {
		t.Fatalf("reset should drop the cache, resizes=%d", r.resizes)
	}
}

func TestRenderNil(t *testing.T) {
	if NewRenderer().Render(nil, geometry.Transform{ScaledW: 1, ScaledH: 1, X2: 1, Y2: 1}) != nil {
		t.Fatalf("expected nil for nil source")
	}
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if NewRenderer().Render(src, geometry.Transform{ScaledW: 4, ScaledH: 4}) != nil {
		t.Fatalf("expected nil for empty window")
	}
}

func TestDrawBoxes(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	red := BoxColor("RED")
	items := []interaction.DrawItem{
		{Rect: image.Rect(5, 5, 20, 20)},
		{Rect: image.Rect(25, 25, 45, 45), Selected: true},
	}
	DrawBoxes(dst, items, red)

	if got := dst.NRGBAAt(5, 10); got != red {
		t.Fatalf("left edge not drawn: %v", got)
	}
	if got := dst.NRGBAAt(6, 10); got == red {
		t.Fatalf("thin box drawn thicker than one pixel")
	}
	if got := dst.NRGBAAt(27, 35); got != red {
		t.Fatalf("selected box should have a thick stroke: %v", got)
	}
	if got := dst.NRGBAAt(22, 22); got != red {
		t.Fatalf("corner marker missing: %v", got)
	}
	if got := dst.NRGBAAt(35, 35); got == red {
		t.Fatalf("box interior painted")
	}
}

func TestBoxColorFallback(t *testing.T) {
	if BoxColor("blue") != (color.NRGBA{B: 255, A: 255}) {
		t.Fatalf("blue mismatch")
	}
	if BoxColor("mauve") != BoxColor("red") {
		t.Fatalf("unknown colours should fall back to red")
	}
}

func TestEncodePNG(t *testing.T) {
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
	data := EncodePNG(image.NewNRGBA(image.Rect(0, 0, 3, 2)))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil || img.Bounds().Dx() != 3 {
		t.Fatalf("decode: %v", err)
	}
}
