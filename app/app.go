package app

import (
	"context"
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-label-go/config"
	"github.com/soocke/pixel-label-go/debug"
	"github.com/soocke/pixel-label-go/ui/theme"
	"github.com/soocke/pixel-label-go/ui/view"
)

const debugLogInterval = 10 * time.Second

type app struct {
	c       *AppContainer
	title   string
	width   int
	height  int
	afterID string
	cancel  context.CancelFunc
	closed  bool
}

// NewApp prepares the main window for container c.
func NewApp(title string, width, height int, c *AppContainer) *app {
	return &app{c: c, title: title, width: width, height: height}
}

// Start builds the UI, opens the configured directory and runs the Tk event
// loop until the window is closed.
func (a *app) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	c := a.c
	theme.InitStyles()
	App.WmTitle(a.title)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.width, a.height))
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)

	c.RootView.Build(view.Handlers{
		OpenDir:       a.chooseDir,
		Prev:          func() { c.DatasetPresenter.Prev() },
		Next:          func() { c.DatasetPresenter.Next() },
		Save:          func() { _ = c.DatasetPresenter.Save() },
		Snapshot:      func() { c.SnapshotPresenter.Request() },
		Region:        func() { c.RootView.Region.OpenOrFocus() },
		Settings:      func() { c.RootView.Settings.OpenOrFocus() },
		ToggleTheme:   func() { theme.ToggleDark() },
		Exit:          a.exitHandler,
		ImageSelected: func(i int) { c.DatasetPresenter.Seek(i) },
		ClassSelected: func(class int) { c.EditorPresenter.SetClass(class) },
		BoxSelected:   func(i int) { c.EditorPresenter.SelectBox(i) },
	})
	c.Wire(a.scheduleUpdate)
	c.RootView.Settings.OnApplied(func(cfg *config.Config) { c.ApplyConfig(cfg) })
	view.BindCanvas(c.RootView.Canvas, c.Input, c.Viewport.SetCanvasSize)
	view.BindKeys(c.Keymap, c.Input, c.Logger)

	if c.Config.Debug {
		debug.StartGoroutineLogger(ctx, debugLogInterval, c.Logger)
		debug.StartMemLogger(ctx, debugLogInterval, c.Logger)
	}
	if dir := c.Config.ImageDir; dir != "" {
		if err := c.OpenDir(dir); err != nil {
			c.Logger.Error("open image directory", "dir", dir, "error", err)
		}
	}

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) chooseDir() {
	dir := ChooseDirectory(Title("Open image directory"), Mustexist(true))
	if dir == "" {
		return
	}
	a.c.Config.ImageDir = dir
	if err := a.c.OpenDir(dir); err != nil {
		a.c.Logger.Error("open image directory", "dir", dir, "error", err)
	}
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.Shutdown()
	if a.cancel != nil {
		a.cancel()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// TclAfter keeps the cycle on Tk's event loop thread.
	a.afterID = TclAfter(a.c.Config.TickInterval(), func() { a.c.Loop.Tick() })
}
