package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-label-go/ui/model"
)

// SnapshotTaker writes a screen capture into dir.
type SnapshotTaker interface {
	Snapshot(dir string, region *image.Rectangle) (string, error)
}

// RegionSource yields the optional capture rectangle.
type RegionSource interface{ ActiveRect() *image.Rectangle }

// Rescanner re-lists the image directory and selects path.
type Rescanner interface{ Rescan(selectPath string) error }

// StatusView shows a one-line status.
type StatusView interface{ SetStatus(text string) }

type snapResult struct {
	path string
	err  error
}

// SnapshotPresenter captures the screen into the open directory off the UI
// goroutine and selects the new image once it is written.
type SnapshotPresenter struct {
	snap   SnapshotTaker
	region RegionSource
	data   *model.DatasetModel
	rescan Rescanner
	view   StatusView
	logger *slog.Logger
	delay  time.Duration

	busy     atomic.Bool
	resultCh chan snapResult
}

// NewSnapshotPresenter constructs a snapshot presenter. region may be nil.
func NewSnapshotPresenter(snap SnapshotTaker, region RegionSource, data *model.DatasetModel, rescan Rescanner, view StatusView, logger *slog.Logger) *SnapshotPresenter {
	return &SnapshotPresenter{snap: snap, region: region, data: data, rescan: rescan, view: view, logger: logger, resultCh: make(chan snapResult, 1)}
}

// SetDelay waits d before grabbing so the caller can get out of the way.
func (p *SnapshotPresenter) SetDelay(d time.Duration) {
	if p != nil {
		p.delay = d
	}
}

// Busy reports whether a capture is in flight.
func (p *SnapshotPresenter) Busy() bool { return p != nil && p.busy.Load() }

// Request starts a capture. It returns false when one is already running or
// no directory is open.
func (p *SnapshotPresenter) Request() bool {
	if p == nil || p.snap == nil {
		return false
	}
	ds := p.data.Dataset()
	if ds == nil {
		p.status("Open an image directory first.")
		return false
	}
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	var region *image.Rectangle
	if p.region != nil {
		region = p.region.ActiveRect()
	}
	dir, delay := ds.Dir(), p.delay
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		path, err := p.snap.Snapshot(dir, region)
		p.resultCh <- snapResult{path: path, err: err}
	}()
	return true
}

// Tick applies a finished capture.
func (p *SnapshotPresenter) Tick(now time.Time) {
	if p == nil {
		return
	}
	select {
	case res := <-p.resultCh:
		p.busy.Store(false)
		if res.err != nil {
			p.status(fmt.Sprintf("Snapshot failed: %v", res.err))
			return
		}
		if p.rescan != nil {
			if err := p.rescan.Rescan(res.path); err != nil && p.logger != nil {
				p.logger.Error("rescan after snapshot", "error", err)
			}
		}
		p.status("Snapshot " + filepath.Base(res.path))
	default:
	}
}

func (p *SnapshotPresenter) status(text string) {
	p.data.SetStatus(text)
	if p.view != nil {
		p.view.SetStatus(text)
	}
}
