package view

import (
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/vova616/screenshot"

	"github.com/soocke/pixel-label-go/config"
	"github.com/soocke/pixel-label-go/domain/geometry"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionOverlay is a see-through window the user moves and resizes over the
// screen to pick the snapshot rectangle.
type RegionOverlay interface {
	OpenOrFocus()
	Clear()
	ActiveRect() *image.Rectangle
}

type regionOverlay struct {
	logger  *slog.Logger
	cfg     *config.Config
	cfgPath string
	region  atomic.Value // stores image.Rectangle
	win     *ToplevelWidget
}

// NewRegionOverlay creates the overlay manager, seeded from the configured region.
func NewRegionOverlay(cfg *config.Config, cfgPath string, logger *slog.Logger) RegionOverlay {
	v := &regionOverlay{logger: logger, cfg: cfg, cfgPath: cfgPath}
	if cfg != nil {
		if r := cfg.SnapshotRegion(); r != nil {
			v.region.Store(*r)
		}
	}
	return v
}

func (v *regionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Snapshot Region")
	v.win = win
	var initial image.Rectangle
	if r := v.ActiveRect(); r != nil {
		initial = *r
	} else {
		s := screenBounds(v.logger)
		initial = geometry.CenteredRect(s, s.Dx()*2/3, s.Dy()*5/9)
	}
	WmGeometry(win.Window, geometry.WindowGeometry(initial))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.4)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(0), Columnspan(3), Sticky("nsew"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, Row(1), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clear := win.Button(Txt("Full Screen"), Command(func() { v.Clear(); v.destroy() }))
	Grid(clear, Row(1), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.cancel)
}

// Clear drops the region so snapshots cover the full screen.
func (v *regionOverlay) Clear() {
	v.region.Store(image.Rectangle{})
	if v.cfg != nil {
		v.cfg.SnapshotW, v.cfg.SnapshotH = 0, 0
		v.save()
	}
}

func (v *regionOverlay) confirm() {
	if v.win == nil {
		return
	}
	if rect, ok := geometry.ParseWindowGeometry(WmGeometry(v.win.Window)); ok {
		v.region.Store(rect)
		if v.cfg != nil {
			v.cfg.SnapshotX, v.cfg.SnapshotY = rect.Min.X, rect.Min.Y
			v.cfg.SnapshotW, v.cfg.SnapshotH = rect.Dx(), rect.Dy()
			v.save()
		}
		if v.logger != nil {
			v.logger.Info("snapshot region set", "rect", rect.String())
		}
	}
	v.destroy()
}

func (v *regionOverlay) save() {
	if v.cfgPath == "" {
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
}

func (v *regionOverlay) cancel() { v.destroy() }

func (v *regionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

func (v *regionOverlay) ActiveRect() *image.Rectangle {
	rv := v.region.Load()
	if rv == nil {
		return nil
	}
	r, ok := rv.(image.Rectangle)
	if !ok || r.Empty() {
		return nil
	}
	return &r
}

// screenBounds returns the primary screen rectangle, 1920x1080 when it
// cannot be queried.
func screenBounds(logger *slog.Logger) image.Rectangle {
	r, err := screenshot.ScreenRect()
	if err != nil || r.Empty() {
		if logger != nil && err != nil {
			logger.Debug("screen size unavailable", "error", err)
		}
		return image.Rect(0, 0, 1920, 1080)
	}
	return r
}
