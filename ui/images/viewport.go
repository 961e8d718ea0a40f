package images

import (
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/soocke/pixel-label-go/domain/geometry"
)

// Renderer produces the visible canvas window of an image. The scaled copy of
// the source is cached until the source or the scaled size changes, so
// scrolling only crops.
type Renderer struct {
	mu      sync.Mutex
	src     image.Image
	scaledW int
	scaledH int
	scaled  *image.NRGBA
	resizes int
}

// NewRenderer returns an empty renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render scales src to the transform's scaled size and crops the visible
// window. Returns nil for a nil source or an empty window.
func (r *Renderer) Render(src image.Image, tf geometry.Transform) *image.NRGBA {
	if src == nil || tf.ScaledW <= 0 || tf.ScaledH <= 0 {
		return nil
	}
	crop := tf.Crop()
	if crop.Empty() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scaled == nil || r.src != src || r.scaledW != tf.ScaledW || r.scaledH != tf.ScaledH {
		r.scaled = imaging.Resize(src, tf.ScaledW, tf.ScaledH, imaging.Linear)
		r.src, r.scaledW, r.scaledH = src, tf.ScaledW, tf.ScaledH
		r.resizes++
	}
	return imaging.Crop(r.scaled, crop)
}

// Reset drops the cached scaled image.
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.src, r.scaled = nil, nil
	r.mu.Unlock()
}
