package annotation

import (
	"errors"
	"image"
	"testing"

	"github.com/soocke/pixel-label-go/domain/geometry"
)

func newPixelBox(l, t, r, b, imgW, imgH int) *Box {
	box := FromNormalized(0, Normalized{}, imgW, imgH)
	box.SetPixelRect(l, t, r, b)
	return box
}

func TestFromNormalized_ResolvesPixelRect(t *testing.T) {
	b := FromNormalized(2, Normalized{CX: 0.5, CY: 0.5, W: 0.05, H: 0.05}, 1000, 500)
	if got := b.Rect(); got != image.Rect(475, 237, 525, 262) {
		t.Fatalf("unexpected rect %v", got)
	}
	if b.Class() != 2 || !b.Visible() || b.Selected() {
		t.Fatalf("unexpected flags class=%d visible=%v selected=%v", b.Class(), b.Visible(), b.Selected())
	}
}

func TestFromNormalized_ClampsToImage(t *testing.T) {
	b := FromNormalized(0, Normalized{CX: 0.99, CY: 0.01, W: 0.1, H: 0.1}, 100, 100)
	r := b.Rect()
	if r.Min.X < 0 || r.Max.X > 100 || r.Min.Y < 0 || r.Max.Y > 100 {
		t.Fatalf("rect escapes image: %v", r)
	}
	// normalized form follows the clamped rect
	back := b.Normalized().rect(100, 100)
	if back != r {
		t.Fatalf("normalized and pixel forms disagree: %v vs %v", back, r)
	}
}

func TestLineRoundTrip(t *testing.T) {
	cases := []Normalized{
		{CX: 0.5, CY: 0.5, W: 0.05, H: 0.05},
		{CX: 0.123456, CY: 0.87, W: 0.2, H: 0.013},
		{CX: 0.5, CY: 0.5, W: 1, H: 1},
		{CX: 0.031, CY: 0.97, W: 0.06, H: 0.05},
	}
	for _, n := range cases {
		b := FromNormalized(3, n, 1920, 1080)
		parsed, err := ParseLine(b.Line(), 1920, 1080)
		if err != nil {
			t.Fatalf("parse %q: %v", b.Line(), err)
		}
		a, c := b.Rect(), parsed.Rect()
		if absInt(a.Min.X-c.Min.X) > 1 || absInt(a.Min.Y-c.Min.Y) > 1 || absInt(a.Max.X-c.Max.X) > 1 || absInt(a.Max.Y-c.Max.Y) > 1 {
			t.Fatalf("round trip moved rect %v -> %v (line %q)", a, c, b.Line())
		}
		if parsed.Class() != 3 {
			t.Fatalf("class lost: %d", parsed.Class())
		}
	}
}

func TestPixelEditKeepsNormalizedInStep(t *testing.T) {
	b := newPixelBox(10, 20, 110, 70, 400, 300)
	back := b.Normalized().rect(400, 300)
	r := b.Rect()
	if absInt(back.Min.X-r.Min.X) > 1 || absInt(back.Max.Y-r.Max.Y) > 1 {
		t.Fatalf("normalized form out of step: %v vs %v", back, r)
	}
}

func TestParseLine_Errors(t *testing.T) {
	for _, line := range []string{"", "0 0.5 0.5 0.1", "x 0.5 0.5 0.1 0.1", "-1 0.5 0.5 0.1 0.1", "0 0.5 abc 0.1 0.1", "0 NaN 0.5 0.1 0.1"} {
		_, err := ParseLine(line, 100, 100)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("line %q: expected FormatError, got %v", line, err)
		}
	}
	if _, err := ParseLine("0 0.5", 100, 100); !errors.Is(err, ErrShortLine) {
		t.Fatalf("expected ErrShortLine, got %v", err)
	}
}

func TestApplyVertexDrag_FlipsAcrossOppositeEdge(t *testing.T) {
	b := newPixelBox(10, 10, 50, 40, 200, 200)
	v := b.ApplyVertexDrag(geometry.Vertex{X: geometry.EdgeLeft}, image.Pt(70, 25))
	if r := b.Rect(); r.Min.X != 50 || r.Max.X != 70 {
		t.Fatalf("expected left=50 right=70, got %v", r)
	}
	if v.X != geometry.EdgeRight {
		t.Fatalf("expected active edge right, got %v", v)
	}
	// continue the same drag with the swapped identity
	v = b.ApplyVertexDrag(v, image.Pt(90, 25))
	if r := b.Rect(); r.Min.X != 50 || r.Max.X != 90 || v.X != geometry.EdgeRight {
		t.Fatalf("drag did not continue: %v %v", r, v)
	}
}

func TestApplyVertexDrag_CornerAndJitter(t *testing.T) {
	b := newPixelBox(10, 10, 50, 40, 200, 200)
	v := b.ApplyVertexDrag(geometry.Vertex{X: geometry.EdgeRight, Y: geometry.EdgeBottom}, image.Pt(51, 80))
	r := b.Rect()
	if r.Max.X != 50 {
		t.Fatalf("one pixel move should be ignored, got right=%d", r.Max.X)
	}
	if r.Max.Y != 80 || v != (geometry.Vertex{X: geometry.EdgeRight, Y: geometry.EdgeBottom}) {
		t.Fatalf("expected bottom=80, got %v %v", r, v)
	}
	v = b.ApplyVertexDrag(v, image.Pt(60, 0))
	if r := b.Rect(); r.Min.Y != 0 || r.Max.Y != 10 || v.Y != geometry.EdgeTop {
		t.Fatalf("expected flip to top, got %v %v", r, v)
	}
}

func TestApplyVertexDrag_ClampsPoint(t *testing.T) {
	b := newPixelBox(10, 10, 50, 40, 100, 100)
	b.ApplyVertexDrag(geometry.Vertex{X: geometry.EdgeRight, Y: geometry.EdgeBottom}, image.Pt(500, 500))
	if r := b.Rect(); r.Max.X != 100 || r.Max.Y != 100 {
		t.Fatalf("expected clamp to image, got %v", r)
	}
}

func TestApplyBodyShift_KeepsSizeInsideImage(t *testing.T) {
	b := newPixelBox(10, 10, 50, 40, 100, 100)
	b.ApplyBodyShift(-30, 5)
	if r := b.Rect(); r != image.Rect(0, 15, 40, 45) {
		t.Fatalf("expected shift reduced at left edge, got %v", r)
	}
	b.ApplyBodyShift(500, 500)
	if r := b.Rect(); r != image.Rect(60, 70, 100, 100) {
		t.Fatalf("expected clamp to bottom-right, got %v", r)
	}
}

func TestApplyEdgeNudge_ClampIdempotent(t *testing.T) {
	b := newPixelBox(0, 5, 20, 30, 100, 100)
	if b.ApplyEdgeNudge(-1, 0, 0, 0) {
		t.Fatalf("nudging left past 0 should not change the box")
	}
	if !b.ApplyEdgeNudge(0, -1, 0, 0) {
		t.Fatalf("expected top nudge to change")
	}
	if r := b.Rect(); r.Min.Y != 4 {
		t.Fatalf("expected top 4, got %v", r)
	}
	for i := 0; i < 10; i++ {
		b.ApplyEdgeNudge(0, -1, 0, 0)
	}
	first := b.Rect()
	if first.Min.Y != 0 {
		t.Fatalf("expected top clamped at 0, got %v", first)
	}
	if b.ApplyEdgeNudge(0, -1, 0, 0) || b.Rect() != first {
		t.Fatalf("re-applying a clamped nudge must change nothing")
	}
}

func TestApplyEdgeNudge_EdgesDoNotCross(t *testing.T) {
	b := newPixelBox(10, 10, 11, 20, 100, 100)
	b.ApplyEdgeNudge(5, 0, 0, 0)
	if r := b.Rect(); r.Min.X != 11 || r.Max.X != 11 {
		t.Fatalf("expected left stopped at right edge, got %v", r)
	}
	if !b.Empty() {
		t.Fatalf("collapsed box should report empty")
	}
}
