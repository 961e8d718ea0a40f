package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/pixel-label-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPanel is the editable configuration window. It writes back into
// *config.Config on ApplyChanges and persists the file.
type SettingsPanel interface {
	OpenOrFocus()
	OnApplied(fn func(cfg *config.Config))
	ApplyChanges()
}

type settingsPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	win       *ToplevelWidget
	widgets   map[string]*TextWidget // keyed by internal field id
	errLbl    *LabelWidget
	onApplied []func(*config.Config)
}

// NewSettingsPanel creates the panel bound to cfg. The window is built on
// the first OpenOrFocus.
func NewSettingsPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) SettingsPanel {
	return &settingsPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *settingsPanel) OnApplied(fn func(*config.Config)) {
	if fn != nil {
		v.onApplied = append(v.onApplied, fn)
	}
}

func (v *settingsPanel) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	if v.cfg == nil {
		return
	}
	c := v.cfg
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Settings")
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)
	row := 0
	makeRow := func(id, label, value string) {
		lbl := win.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(24))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("grabRadius", "Grab Radius Px", strconv.Itoa(c.GrabRadius))
	makeRow("dragZone", "Drag Zone Fraction (0-1]", fmt.Sprintf("%.2f", c.DragZoneFraction))
	makeRow("cooldown", "Create Cooldown Ms", strconv.Itoa(c.CreateCooldownMS))
	makeRow("boxW", "Default Box W (0-1]", fmt.Sprintf("%.3f", c.DefaultBoxW))
	makeRow("boxH", "Default Box H (0-1]", fmt.Sprintf("%.3f", c.DefaultBoxH))
	makeRow("boxColor", "Box Colour ("+strings.Join(config.BoxColors, "/")+")", c.BoxColor)
	makeRow("autosave", "Autosave (true/false)", strconv.FormatBool(c.Autosave))
	makeRow("classesFile", "Classes File", c.ClassesFile)
	makeRow("snapshotDelay", "Snapshot Delay Ms", strconv.Itoa(c.SnapshotDelayMS))
	v.errLbl = win.Label(Txt(""), Anchor("w"))
	Grid(v.errLbl, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	row++
	apply := win.Button(Txt("Apply Changes"), Command(v.ApplyChanges))
	Grid(apply, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	closeBtn := win.Button(Txt("Close"), Command(v.close))
	Grid(closeBtn, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Bind(win, "<Escape>", Command(v.close))
}

func (v *settingsPanel) close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
	clear(v.widgets)
}

func (v *settingsPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *settingsPanel) ApplyChanges() {
	if v.cfg == nil || v.win == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignInt("grabRadius", &cfg.GrabRadius)
	assignFloat("dragZone", &cfg.DragZoneFraction)
	assignInt("cooldown", &cfg.CreateCooldownMS)
	assignFloat("boxW", &cfg.DefaultBoxW)
	assignFloat("boxH", &cfg.DefaultBoxH)
	assignInt("snapshotDelay", &cfg.SnapshotDelayMS)
	if s, ok := v.text("boxColor"); ok && s != "" {
		cfg.BoxColor = s
	}
	if s, ok := v.text("autosave"); ok {
		if b, ok := parseBoolLoose(s); ok {
			cfg.Autosave = b
		}
	}
	if s, ok := v.text("classesFile"); ok {
		cfg.ClassesFile = s
	}
	if err := cfg.Validate(); err != nil {
		v.errLbl.Configure(Txt(err.Error()))
		return
	}
	*v.cfg = cfg
	v.errLbl.Configure(Txt(""))
	for _, fn := range v.onApplied {
		fn(v.cfg)
	}
	if v.cfgPath == "" {
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
