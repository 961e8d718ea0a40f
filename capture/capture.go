// Package capture grabs the screen into new dataset images.
package capture

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/vova616/screenshot"
)

// Grabber returns a screen capture, limited to region when it is non-nil.
type Grabber interface {
	Grab(region *image.Rectangle) (*image.RGBA, error)
}

// ScreenGrabber captures the primary monitor.
type ScreenGrabber struct{}

// Grab returns a screen capture of the current active monitor or of region.
func (ScreenGrabber) Grab(region *image.Rectangle) (*image.RGBA, error) {
	if region != nil && !region.Empty() {
		return screenshot.CaptureRect(*region)
	}
	return screenshot.CaptureScreen()
}

// Stats is capture instrumentation.
type Stats struct {
	Captures     uint64
	Failures     uint64
	LastDuration time.Duration
	LastPath     string
}

// Snapshotter writes screen captures as PNG files into an image directory.
type Snapshotter struct {
	grab   Grabber
	logger *slog.Logger
	now    func() time.Time

	captures atomic.Uint64
	failures atomic.Uint64
	lastNano atomic.Int64
	lastPath atomic.Pointer[string]
}

// NewSnapshotter constructs a Snapshotter. A nil grabber uses ScreenGrabber.
func NewSnapshotter(g Grabber, logger *slog.Logger) *Snapshotter {
	if g == nil {
		g = ScreenGrabber{}
	}
	return &Snapshotter{grab: g, logger: logger, now: time.Now}
}

// SnapshotName is the file name for a capture taken at t.
func SnapshotName(t time.Time) string {
	return fmt.Sprintf("snap_%d.png", t.UnixMilli())
}

// Snapshot grabs the screen (or region) and saves it into dir. It returns the
// path of the new image.
func (s *Snapshotter) Snapshot(dir string, region *image.Rectangle) (string, error) {
	start := s.now()
	img, err := s.grab.Grab(region)
	if err == nil && img == nil {
		err = fmt.Errorf("empty capture")
	}
	if err != nil {
		s.failures.Add(1)
		if s.logger != nil {
			s.logger.Error("capture screen", "error", err)
		}
		return "", fmt.Errorf("capture screen: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.failures.Add(1)
		return "", fmt.Errorf("snapshot dir: %w", err)
	}
	path := filepath.Join(dir, SnapshotName(start))
	if err := imaging.Save(img, path); err != nil {
		s.failures.Add(1)
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	elapsed := s.now().Sub(start)
	s.captures.Add(1)
	s.lastNano.Store(int64(elapsed))
	s.lastPath.Store(&path)
	if s.logger != nil {
		s.logger.Info("snapshot saved", "path", path, "size", img.Bounds().Size().String(), "elapsed", elapsed)
	}
	return path, nil
}

// Stats returns capture counters.
func (s *Snapshotter) Stats() Stats {
	st := Stats{
		Captures:     s.captures.Load(),
		Failures:     s.failures.Load(),
		LastDuration: time.Duration(s.lastNano.Load()),
	}
	if p := s.lastPath.Load(); p != nil {
		st.LastPath = *p
	}
	return st
}
