package app

import (
	"log/slog"

	"github.com/soocke/pixel-label-go/assets"
	"github.com/soocke/pixel-label-go/capture"
	"github.com/soocke/pixel-label-go/config"
	"github.com/soocke/pixel-label-go/domain/interaction"
	"github.com/soocke/pixel-label-go/ui/model"
	"github.com/soocke/pixel-label-go/ui/presenter"
	"github.com/soocke/pixel-label-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Keymap     interaction.Keymap

	Input    *model.InputModel
	Viewport *model.ViewportModel
	Data     *model.DatasetModel
	Session  *model.SessionModel
	Machine  *interaction.Machine
	Snapper  *capture.Snapshotter
	RootView *view.RootView
	UI       view.UI

	// Presenters
	EditorPresenter   *presenter.EditorPresenter
	DatasetPresenter  *presenter.DatasetPresenter
	ModePresenter     *presenter.ModePresenter
	SessionPresenter  *presenter.SessionPresenter
	SnapshotPresenter *presenter.SnapshotPresenter
	Watcher           *presenter.DirWatcher
	Loop              *presenter.Loop
}

// BuildContainer constructs models and services. It does not touch Tk.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	km, err := assets.Keymap(cfg.Keymap)
	if err != nil {
		return nil, err
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger, Keymap: km}
	c.Input = model.NewInputModel()
	c.Viewport = model.NewViewportModel(cfg.CanvasW, cfg.CanvasH, cfg.ZoomPercent, cfg.ZoomLimits())
	c.Data = model.NewDatasetModel()
	c.Session = model.NewSessionModel()
	c.Machine = interaction.NewMachine(cfg.InteractionOptions(), logger)
	c.Snapper = capture.NewSnapshotter(nil, logger)
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	return c, nil
}

// Wire creates the presenters once the root view is built. schedule re-arms
// the display cycle timer.
func (c *AppContainer) Wire(schedule func()) {
	cfg, ui := c.Config, c.UI
	c.DatasetPresenter = presenter.NewDatasetPresenter(c.Data, c.Viewport, c.Session, c.Machine, ui, nil, c.Logger)
	c.DatasetPresenter.SetAutosave(cfg.Autosave)
	c.DatasetPresenter.SetDefaultBoxSize(cfg.DefaultBoxW, cfg.DefaultBoxH)
	if cfg.ClassesFile != "" {
		_ = c.DatasetPresenter.SetClassesFile(cfg.ClassesFile)
	}
	c.EditorPresenter = presenter.NewEditorPresenter(c.Input, c.Viewport, c.Data, c.Session, c.Machine, ui, ui, c.DatasetPresenter, cfg.BoxColor, c.Logger)
	c.DatasetPresenter.OnSampleChanged(c.EditorPresenter.SampleChanged)
	c.ModePresenter = presenter.NewModePresenter(ui)
	c.Machine.AddListener(c.ModePresenter.OnMode)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Data, ui)
	var region presenter.RegionSource
	if c.RootView != nil && c.RootView.Region != nil {
		region = c.RootView.Region
	}
	c.SnapshotPresenter = presenter.NewSnapshotPresenter(c.Snapper, region, c.Data, c.DatasetPresenter, ui, c.Logger)
	c.SnapshotPresenter.SetDelay(cfg.SnapshotDelay())
	c.Watcher = presenter.NewDirWatcher(c.Logger, nil, 0)
	c.Loop = presenter.NewLoop(c.DatasetPresenter, c.EditorPresenter, c.ModePresenter, c.SessionPresenter, schedule)
	c.Loop.Snapshot = c.SnapshotPresenter
	c.Loop.Watcher = c.Watcher
}

// OpenDir opens dir in the dataset presenter and starts watching it.
func (c *AppContainer) OpenDir(dir string) error {
	if err := c.DatasetPresenter.OpenDir(dir); err != nil {
		return err
	}
	c.Watcher.Watch(dir)
	return nil
}

// ApplyConfig pushes edited settings into the running components.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	c.Machine.SetOptions(cfg.InteractionOptions())
	c.Viewport.SetLimits(cfg.ZoomLimits())
	c.EditorPresenter.SetBoxColor(cfg.BoxColor)
	c.DatasetPresenter.SetAutosave(cfg.Autosave)
	c.DatasetPresenter.SetDefaultBoxSize(cfg.DefaultBoxW, cfg.DefaultBoxH)
	if err := c.DatasetPresenter.SetClassesFile(cfg.ClassesFile); err != nil && c.Logger != nil {
		c.Logger.Error("apply classes file", "error", err)
	}
	c.SnapshotPresenter.SetDelay(cfg.SnapshotDelay())
	if c.Logger != nil {
		c.Logger.Info("settings applied")
	}
}

// Shutdown saves pending edits and stops background work.
func (c *AppContainer) Shutdown() {
	if c.Data.Dirty() && c.Config.Autosave {
		if err := c.DatasetPresenter.Save(); err != nil && c.Logger != nil {
			c.Logger.Error("save on exit", "error", err)
		}
	}
	c.Watcher.Stop()
	c.DatasetPresenter.Close()
}
