package capture

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeGrabber struct {
	img    *image.RGBA
	err    error
	region *image.Rectangle
}

func (f *fakeGrabber) Grab(r *image.Rectangle) (*image.RGBA, error) {
	f.region = r
	return f.img, f.err
}

func TestSnapshotName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	if got := SnapshotName(ts); got != "snap_1700000000123.png" {
		t.Fatalf("SnapshotName = %q", got)
	}
}

func TestSnapshotSavesPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	g := &fakeGrabber{img: img}
	s := NewSnapshotter(g, nil)
	fixed := time.UnixMilli(42)
	s.now = func() time.Time { return fixed }

	dir := filepath.Join(t.TempDir(), "shots")
	region := image.Rect(0, 0, 8, 6)
	path, err := s.Snapshot(dir, &region)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if path != filepath.Join(dir, "snap_42.png") {
		t.Fatalf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if g.region == nil || *g.region != region {
		t.Fatalf("region not forwarded")
	}
	st := s.Stats()
	if st.Captures != 1 || st.LastPath != path {
		t.Fatalf("stats = %+v", st)
	}
}

func TestSnapshotGrabError(t *testing.T) {
	s := NewSnapshotter(&fakeGrabber{err: errors.New("no display")}, nil)
	if _, err := s.Snapshot(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := NewSnapshotter(&fakeGrabber{}, nil).Snapshot(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error for empty capture")
	}
	if s.Stats().Failures != 1 {
		t.Fatalf("failures = %d", s.Stats().Failures)
	}
}
