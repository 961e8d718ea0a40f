package view

import (
	"image"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/soocke/pixel-label-go/config"
	"github.com/soocke/pixel-label-go/domain/geometry"
	"github.com/soocke/pixel-label-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions wired by the app.
type Handlers struct {
	OpenDir     func()
	Prev        func()
	Next        func()
	Save        func()
	Snapshot    func()
	Region      func()
	Settings    func()
	ToggleTheme func()
	Exit        func()

	ImageSelected func(i int)
	ClassSelected func(class int)
	// BoxSelected gets -1 for the "<none>" row.
	BoxSelected func(i int)
}

const noneRow = "<none>"

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session  SessionStats
	Canvas   CanvasView
	Settings SettingsPanel
	Region   RegionOverlay

	// Widgets
	ModeLabel   *TLabelWidget
	ZoomLabel   *LabelWidget
	StatusLabel *TLabelWidget
	ImageSelect *TComboboxWidget
	ClassSelect *TComboboxWidget
	BoxSelect   *TComboboxWidget

	imageNames []string
	classNames []string
	boxRows    []string
}

// UI is the subset of view operations presenters use.
type UI interface {
	ShowCanvas(img image.Image)
	SetPointer(hoverBox bool, vertex geometry.Vertex)
	SetZoomLabel(text string)
	SetBoxRows(rows []string, selected int)
	SetClassSelection(class int)
	SetImageList(names []string, current int)
	SetClassNames(names []string)
	SetStatus(text string)
	SetModeLabel(text string)
	SetSession(session, total time.Duration)
	SetCounts(created, deleted, saves int)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout: toolbar on top, canvas with a side panel in
// the middle and the status line at the bottom.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 1, Weight(1))

	// Row 0: toolbar
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	for i, b := range []struct {
		text  string
		fn    func()
		style string
	}{
		{"Open Dir", h.OpenDir, ""},
		{"< Prev", h.Prev, ""},
		{"Next >", h.Next, ""},
		{"Save [F2]", h.Save, theme.StylePrimaryButton},
		{"Snapshot", h.Snapshot, ""},
		{"Snapshot Region", h.Region, ""},
		{"Settings", h.Settings, ""},
		{"Theme", h.ToggleTheme, ""},
		{"Exit", h.Exit, theme.StyleDangerButton},
	} {
		fn := b.fn
		if fn == nil {
			fn = func() {}
		}
		style := b.style
		if style == "" {
			style = "TButton"
		}
		btn := TButton(Txt(b.text), Command(fn), Style(style))
		Grid(btn, In(bar), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	// Row 1: canvas and side panel
	center := Frame()
	Grid(center, Row(1), Column(0), Sticky("nsew"))
	GridColumnConfigure(center.Window, 0, Weight(1))
	GridRowConfigure(center.Window, 0, Weight(1))
	w, hgt := 1024, 640
	if rv.cfg != nil {
		w, hgt = rv.cfg.CanvasW, rv.cfg.CanvasH
	}
	rv.Canvas = NewCanvas(center, 0, 0, w, hgt)

	side := Frame()
	Grid(side, Row(1), Column(1), Sticky("ns"), Padx("0.4m"), Pady("0.3m"))
	row := 0
	sideLabel := func(text string) {
		Grid(Label(Txt(text), Anchor("w")), In(side), Row(row), Column(0), Sticky("w"), Pady("0.15m"))
		row++
	}
	sideLabel("Image")
	rv.ImageSelect = rv.combobox(side, row, rv.logger, h.ImageSelected, 0)
	row++
	sideLabel("Class")
	rv.ClassSelect = rv.combobox(side, row, rv.logger, h.ClassSelected, 0)
	row++
	sideLabel("Boxes")
	rv.BoxSelect = rv.combobox(side, row, rv.logger, h.BoxSelected, -1)
	row++
	rv.ModeLabel = TLabel(Txt("Mode: idle"), Style(theme.StyleModeLabel), Anchor("w"))
	Grid(rv.ModeLabel, In(side), Row(row), Column(0), Sticky("we"), Pady("0.3m"))
	row++
	rv.ZoomLabel = Label(Txt("x1.00"), Anchor("w"))
	Grid(rv.ZoomLabel, In(side), Row(row), Column(0), Sticky("we"), Pady("0.15m"))
	row++
	rv.Session = NewSessionStats(side, row, 0)

	// Row 2: status line
	rv.StatusLabel = TLabel(Txt("Open an image directory to start."), Style(theme.StyleStatusLabel), Anchor("w"))
	Grid(rv.StatusLabel, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.2m"))

	rv.classNames = numericClasses()
	rv.ClassSelect.Configure(Values(rv.classNames))
	rv.ClassSelect.Current(0)
	rv.SetBoxRows(nil, -1)

	rv.Settings = NewSettingsPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.Region = NewRegionOverlay(rv.cfg, rv.cfgPath, rv.logger)
}

// combobox builds a read-only picker reporting the chosen index plus offset.
func (rv *RootView) combobox(parent *FrameWidget, row int, logger *slog.Logger, onSelect func(int), offset int) *TComboboxWidget {
	cb := TCombobox(Values([]string{noneRow}), Width(26), State("readonly"))
	Grid(cb, In(parent), Row(row), Column(0), Sticky("we"), Pady("0.15m"))
	Bind(cb, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(cb.Current(nil))
		if err != nil {
			if logger != nil {
				logger.Error("combobox selection parse error", "error", err)
			}
			return
		}
		if onSelect != nil {
			onSelect(idx + offset)
		}
	}))
	return cb
}

func numericClasses() []string {
	out := make([]string, 10)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// ShowCanvas proxies to the canvas view.
func (rv *RootView) ShowCanvas(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.ShowCanvas(img)
	}
}

// SetPointer proxies to the canvas view.
func (rv *RootView) SetPointer(hoverBox bool, vertex geometry.Vertex) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.SetPointer(hoverBox, vertex)
	}
}

func (rv *RootView) SetZoomLabel(text string) {
	if rv != nil && rv.ZoomLabel != nil {
		rv.ZoomLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetModeLabel(text string) {
	if rv != nil && rv.ModeLabel != nil {
		rv.ModeLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetBoxRows lists the boxes below a "<none>" row and selects row selected+1.
func (rv *RootView) SetBoxRows(rows []string, selected int) {
	if rv == nil || rv.BoxSelect == nil {
		return
	}
	values := append([]string{noneRow}, rows...)
	if !slices.Equal(values, rv.boxRows) {
		rv.boxRows = values
		rv.BoxSelect.Configure(Values(values))
	}
	if selected < -1 || selected >= len(rows) {
		selected = -1
	}
	rv.BoxSelect.Current(selected + 1)
}

func (rv *RootView) SetClassSelection(class int) {
	if rv == nil || rv.ClassSelect == nil {
		return
	}
	if class >= 0 && class < len(rv.classNames) {
		rv.ClassSelect.Current(class)
	}
}

// SetClassNames replaces the class picker entries. An empty list falls back
// to the numeric ids 0-9.
func (rv *RootView) SetClassNames(names []string) {
	if rv == nil || rv.ClassSelect == nil {
		return
	}
	if len(names) == 0 {
		names = numericClasses()
	}
	rv.classNames = names
	rv.ClassSelect.Configure(Values(names))
	rv.ClassSelect.Current(0)
}

// SetImageList updates the image picker and the window title.
func (rv *RootView) SetImageList(names []string, current int) {
	if rv == nil || rv.ImageSelect == nil {
		return
	}
	if len(names) == 0 {
		names = []string{noneRow}
	}
	if !slices.Equal(names, rv.imageNames) {
		rv.imageNames = names
		rv.ImageSelect.Configure(Values(names))
	}
	if current >= 0 && current < len(names) {
		rv.ImageSelect.Current(current)
		App.WmTitle("Pixel Label - " + names[current])
	}
}

// SetSession updates both session and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

func (rv *RootView) SetCounts(created, deleted, saves int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounts(created, deleted, saves)
	}
}
