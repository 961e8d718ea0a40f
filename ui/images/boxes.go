package images

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"github.com/soocke/pixel-label-go/domain/interaction"
)

const (
	thinStroke   = 1
	thickStroke  = 3
	markerRadius = 3
)

var boxColors = map[string]color.NRGBA{
	"red":   {R: 255, A: 255},
	"blue":  {B: 255, A: 255},
	"green": {G: 200, A: 255},
}

// BoxColor resolves a configured colour name, defaulting to red.
func BoxColor(name string) color.NRGBA {
	if c, ok := boxColors[strings.ToLower(name)]; ok {
		return c
	}
	return boxColors["red"]
}

// DrawBoxes outlines every item on dst. Selected items get a thicker stroke
// and filled markers on their corners.
func DrawBoxes(dst draw.Image, items []interaction.DrawItem, c color.Color) {
	if dst == nil {
		return
	}
	fill := image.NewUniform(c)
	for _, it := range items {
		stroke := thinStroke
		if it.Selected {
			stroke = thickStroke
		}
		outline(dst, it.Rect, stroke, fill)
		if it.Selected {
			for _, p := range []image.Point{it.Rect.Min, {it.Rect.Max.X, it.Rect.Min.Y}, {it.Rect.Min.X, it.Rect.Max.Y}, it.Rect.Max} {
				m := image.Rect(p.X-markerRadius, p.Y-markerRadius, p.X+markerRadius+1, p.Y+markerRadius+1)
				draw.Draw(dst, m.Intersect(dst.Bounds()), fill, image.Point{}, draw.Src)
			}
		}
	}
}

// outline strokes r inward so the edges stay on the box pixels.
func outline(dst draw.Image, r image.Rectangle, stroke int, src image.Image) {
	b := dst.Bounds()
	stroke = min(stroke, max(1, r.Dx()/2), max(1, r.Dy()/2))
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+stroke),
		image.Rect(r.Min.X, r.Max.Y-stroke, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+stroke, r.Max.Y),
		image.Rect(r.Max.X-stroke, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(b), src, image.Point{}, draw.Src)
	}
}
