// Package annotation holds the boxes drawn on one image and keeps their
// normalized (YOLO) and pixel representations in step.
package annotation

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/soocke/pixel-label-go/domain/geometry"
)

// Normalized is a box as centre and size, each a fraction of the image size.
type Normalized struct {
	CX, CY float64
	W, H   float64
}

// rect resolves n to pixels. Sizes are rounded and the top-left corner is
// floored so that a round trip through fromRect stays within one pixel.
func (n Normalized) rect(imgW, imgH int) image.Rectangle {
	const eps = 1e-6
	pw := math.Round(n.W * float64(imgW))
	ph := math.Round(n.H * float64(imgH))
	left := int(math.Floor(n.CX*float64(imgW) - pw/2 + eps))
	top := int(math.Floor(n.CY*float64(imgH) - ph/2 + eps))
	return image.Rectangle{
		Min: image.Pt(left, top),
		Max: image.Pt(left+int(pw), top+int(ph)),
	}
}

func fromRect(r image.Rectangle, imgW, imgH int) Normalized {
	if imgW <= 0 || imgH <= 0 {
		return Normalized{}
	}
	w, h := float64(r.Dx()), float64(r.Dy())
	return Normalized{
		CX: (w/2 + float64(r.Min.X)) / float64(imgW),
		CY: (h/2 + float64(r.Min.Y)) / float64(imgH),
		W:  w / float64(imgW),
		H:  h / float64(imgH),
	}
}

// Box is one labelled rectangle on an image of fixed size. Boxes are created
// and destroyed by their Sample; the selection flag is owned by the Sample too.
type Box struct {
	id       uuid.UUID
	class    int
	norm     Normalized
	rect     image.Rectangle
	imgW     int
	imgH     int
	selected bool
	visible  bool
}

// FromNormalized builds a box from its YOLO form and resolves the pixel rect,
// clamped to the image.
func FromNormalized(class int, n Normalized, imgW, imgH int) *Box {
	b := &Box{id: uuid.New(), class: class, norm: n, imgW: imgW, imgH: imgH, visible: true}
	raw := n.rect(imgW, imgH)
	clamped := clampRect(raw, imgW, imgH)
	b.rect = clamped
	if clamped != raw {
		b.norm = fromRect(clamped, imgW, imgH)
	}
	return b
}

func (b *Box) ID() uuid.UUID { return b.id }
func (b *Box) Class() int    { return b.class }

// SetClass relabels the box.
func (b *Box) SetClass(class int) { b.class = class }

func (b *Box) Normalized() Normalized { return b.norm }
func (b *Box) Rect() image.Rectangle  { return b.rect }
func (b *Box) Selected() bool         { return b.selected }
func (b *Box) Visible() bool          { return b.visible }

// Empty reports a zero-area box. Empty boxes are kept and saved but cannot be
// clicked.
func (b *Box) Empty() bool { return b.rect.Dx() <= 0 || b.rect.Dy() <= 0 }

// SetPixelRect replaces the pixel rect and re-derives the normalized form.
// Edges are ordered and clamped to the image first.
func (b *Box) SetPixelRect(left, top, right, bottom int) {
	if left > right {
		left, right = right, left
	}
	if top > bottom {
		top, bottom = bottom, top
	}
	b.rect = clampRect(image.Rect(left, top, right, bottom), b.imgW, b.imgH)
	b.norm = fromRect(b.rect, b.imgW, b.imgH)
}

// ApplyVertexDrag moves the grabbed edges to p (image pixels). Crossing the
// opposite edge flips the box and swaps the returned edge for that axis so the
// drag can continue. Moves of one pixel or less on an axis are ignored.
func (b *Box) ApplyVertexDrag(v geometry.Vertex, p image.Point) geometry.Vertex {
	p.X = clampInt(p.X, 0, b.imgW)
	p.Y = clampInt(p.Y, 0, b.imgH)
	l, t, r, bt := b.rect.Min.X, b.rect.Min.Y, b.rect.Max.X, b.rect.Max.Y

	switch v.X {
	case geometry.EdgeLeft:
		if absInt(p.X-l) > 1 {
			if p.X > r {
				l, r = r, p.X
				v.X = geometry.EdgeRight
			} else {
				l = p.X
			}
		}
	case geometry.EdgeRight:
		if absInt(p.X-r) > 1 {
			if p.X < l {
				l, r = p.X, l
				v.X = geometry.EdgeLeft
			} else {
				r = p.X
			}
		}
	}

	switch v.Y {
	case geometry.EdgeTop:
		if absInt(p.Y-t) > 1 {
			if p.Y > bt {
				t, bt = bt, p.Y
				v.Y = geometry.EdgeBottom
			} else {
				t = p.Y
			}
		}
	case geometry.EdgeBottom:
		if absInt(p.Y-bt) > 1 {
			if p.Y < t {
				t, bt = p.Y, t
				v.Y = geometry.EdgeTop
			} else {
				bt = p.Y
			}
		}
	}

	b.SetPixelRect(l, t, r, bt)
	return v
}

// ApplyBodyShift translates the box, shortening the shift so the box stays
// inside the image. The size never changes.
func (b *Box) ApplyBodyShift(dx, dy int) {
	r := b.rect
	if r.Min.X+dx < 0 {
		dx = -r.Min.X
	}
	if r.Max.X+dx > b.imgW {
		dx = b.imgW - r.Max.X
	}
	if r.Min.Y+dy < 0 {
		dy = -r.Min.Y
	}
	if r.Max.Y+dy > b.imgH {
		dy = b.imgH - r.Max.Y
	}
	if dx == 0 && dy == 0 {
		return
	}
	b.SetPixelRect(r.Min.X+dx, r.Min.Y+dy, r.Max.X+dx, r.Max.Y+dy)
}

// ApplyEdgeNudge adds each delta to its edge, clamping every edge to the image
// and never letting an edge pass its opposite. It reports whether the rect changed.
func (b *Box) ApplyEdgeNudge(dLeft, dTop, dRight, dBottom int) bool {
	r := b.rect
	l := clampInt(r.Min.X+dLeft, 0, b.imgW)
	rt := clampInt(r.Max.X+dRight, 0, b.imgW)
	t := clampInt(r.Min.Y+dTop, 0, b.imgH)
	bt := clampInt(r.Max.Y+dBottom, 0, b.imgH)
	if l > rt {
		if dLeft != 0 {
			l = rt
		} else {
			rt = l
		}
	}
	if t > bt {
		if dTop != 0 {
			t = bt
		} else {
			bt = t
		}
	}
	next := image.Rect(l, t, rt, bt)
	if next == r {
		return false
	}
	b.SetPixelRect(l, t, rt, bt)
	return true
}

// Line formats the box as "class cx cy w h".
func (b *Box) Line() string {
	n := b.norm
	return fmt.Sprintf("%d %s %s %s %s", b.class, ftoa(n.CX), ftoa(n.CY), ftoa(n.W), ftoa(n.H))
}

// ParseLine reads a "class cx cy w h" line for an image of imgW x imgH.
// Fields after the fifth are ignored.
func ParseLine(text string, imgW, imgH int) (*Box, error) {
	fields := strings.Fields(text)
	if len(fields) < 5 {
		return nil, &FormatError{Text: text, Err: ErrShortLine}
	}
	class, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, &FormatError{Text: text, Err: fmt.Errorf("class id: %w", err)}
	}
	if class < 0 {
		return nil, &FormatError{Text: text, Err: fmt.Errorf("negative class id %d", class)}
	}
	var vals [4]float64
	for i := range vals {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, &FormatError{Text: text, Err: err}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &FormatError{Text: text, Err: fmt.Errorf("non-finite value %q", fields[i+1])}
		}
		vals[i] = f
	}
	return FromNormalized(class, Normalized{CX: vals[0], CY: vals[1], W: vals[2], H: vals[3]}, imgW, imgH), nil
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func clampRect(r image.Rectangle, imgW, imgH int) image.Rectangle {
	r.Min.X = clampInt(r.Min.X, 0, imgW)
	r.Max.X = clampInt(r.Max.X, 0, imgW)
	r.Min.Y = clampInt(r.Min.Y, 0, imgH)
	r.Max.Y = clampInt(r.Max.Y, 0, imgH)
	if r.Max.X < r.Min.X {
		r.Max.X = r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Max.Y = r.Min.Y
	}
	return r
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

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
