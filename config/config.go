package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/soocke/pixel-label-go/domain/geometry"
	"github.com/soocke/pixel-label-go/domain/interaction"
)

// Config holds runtime configuration for the editor.
// Fields may be loaded from a JSON or YAML file and overridden by the
// environment and command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug"`

	ImageDir    string `json:"image_dir" yaml:"image_dir"`
	ClassesFile string `json:"classes_file" yaml:"classes_file"`

	// Canvas and zoom
	CanvasW           int `json:"canvas_w" yaml:"canvas_w"`
	CanvasH           int `json:"canvas_h" yaml:"canvas_h"`
	ZoomPercent       int `json:"zoom_percent" yaml:"zoom_percent"`
	ZoomMin           int `json:"zoom_min" yaml:"zoom_min"`
	ZoomMax           int `json:"zoom_max" yaml:"zoom_max"`
	ZoomFineThreshold int `json:"zoom_fine_threshold" yaml:"zoom_fine_threshold"`
	ZoomCoarseStep    int `json:"zoom_coarse_step" yaml:"zoom_coarse_step"`
	ZoomFineStep      int `json:"zoom_fine_step" yaml:"zoom_fine_step"`

	// Editing
	GrabRadius       int     `json:"grab_radius" yaml:"grab_radius"`
	DragZoneFraction float64 `json:"drag_zone_fraction" yaml:"drag_zone_fraction"`
	CreateCooldownMS int     `json:"create_cooldown_ms" yaml:"create_cooldown_ms"`
	DefaultBoxW      float64 `json:"default_box_w" yaml:"default_box_w"`
	DefaultBoxH      float64 `json:"default_box_h" yaml:"default_box_h"`
	BoxColor         string  `json:"box_color" yaml:"box_color"`

	// Snapshot region in screen pixels; zero width or height means full screen.
	SnapshotX       int `json:"snapshot_x" yaml:"snapshot_x"`
	SnapshotY       int `json:"snapshot_y" yaml:"snapshot_y"`
	SnapshotW       int `json:"snapshot_w" yaml:"snapshot_w"`
	SnapshotH       int `json:"snapshot_h" yaml:"snapshot_h"`
	SnapshotDelayMS int `json:"snapshot_delay_ms" yaml:"snapshot_delay_ms"`

	TickMS   int               `json:"tick_ms" yaml:"tick_ms"`
	Autosave bool              `json:"autosave" yaml:"autosave"`
	Keymap   map[string]string `json:"keymap,omitempty" yaml:"keymap,omitempty"`
}

// BoxColors are the accepted box_color values.
var BoxColors = []string{"red", "blue", "green"}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		CanvasW:           1024,
		CanvasH:           640,
		ZoomPercent:       100,
		ZoomMin:           10,
		ZoomMax:           800,
		ZoomFineThreshold: 125,
		ZoomCoarseStep:    25,
		ZoomFineStep:      5,
		GrabRadius:        6,
		DragZoneFraction:  0.5,
		CreateCooldownMS:  1000,
		DefaultBoxW:       0.05,
		DefaultBoxH:       0.05,
		BoxColor:          "red",
		TickMS:            33,
		Autosave:          true,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.CanvasW < 64 {
		c.CanvasW = d.CanvasW
	}
	if c.CanvasH < 64 {
		c.CanvasH = d.CanvasH
	}
	if c.ZoomMin <= 0 {
		c.ZoomMin = d.ZoomMin
	}
	if c.ZoomMax < c.ZoomMin {
		c.ZoomMax = max(d.ZoomMax, c.ZoomMin)
	}
	if c.ZoomCoarseStep <= 0 {
		c.ZoomCoarseStep = d.ZoomCoarseStep
	}
	if c.ZoomFineStep <= 0 {
		c.ZoomFineStep = d.ZoomFineStep
	}
	if c.ZoomFineThreshold <= 0 {
		c.ZoomFineThreshold = d.ZoomFineThreshold
	}
	if c.ZoomPercent < c.ZoomMin || c.ZoomPercent > c.ZoomMax {
		c.ZoomPercent = min(max(d.ZoomPercent, c.ZoomMin), c.ZoomMax)
	}
	if c.GrabRadius <= 0 {
		c.GrabRadius = d.GrabRadius
	}
	if c.DragZoneFraction <= 0 || c.DragZoneFraction > 1 {
		c.DragZoneFraction = d.DragZoneFraction
	}
	if c.CreateCooldownMS <= 0 {
		c.CreateCooldownMS = d.CreateCooldownMS
	}
	if c.DefaultBoxW <= 0 || c.DefaultBoxW > 1 {
		c.DefaultBoxW = d.DefaultBoxW
	}
	if c.DefaultBoxH <= 0 || c.DefaultBoxH > 1 {
		c.DefaultBoxH = d.DefaultBoxH
	}
	c.BoxColor = strings.ToLower(strings.TrimSpace(c.BoxColor))
	if !validColor(c.BoxColor) {
		c.BoxColor = d.BoxColor
	}
	if c.SnapshotW < 0 || c.SnapshotH < 0 {
		c.SnapshotW, c.SnapshotH = 0, 0
	}
	if c.SnapshotDelayMS < 0 {
		c.SnapshotDelayMS = 0
	}
	if c.TickMS < 10 {
		c.TickMS = d.TickMS
	}
	if len(c.Keymap) > 0 {
		if _, err := interaction.ParseKeymap(c.Keymap); err != nil {
			return fmt.Errorf("keymap: %w", err)
		}
	}
	return nil
}

func validColor(s string) bool {
	for _, c := range BoxColors {
		if c == s {
			return true
		}
	}
	return false
}

// ZoomLimits returns the zoom stepping rules.
func (c *Config) ZoomLimits() geometry.ZoomLimits {
	return geometry.ZoomLimits{
		Min:           c.ZoomMin,
		Max:           c.ZoomMax,
		FineThreshold: c.ZoomFineThreshold,
		CoarseStep:    c.ZoomCoarseStep,
		FineStep:      c.ZoomFineStep,
	}
}

// InteractionOptions returns the hit testing and creation options.
func (c *Config) InteractionOptions() interaction.Options {
	return interaction.Options{
		GrabRadius:       c.GrabRadius,
		DragZoneFraction: c.DragZoneFraction,
		CreateCooldown:   time.Duration(c.CreateCooldownMS) * time.Millisecond,
	}
}

// SnapshotRegion returns the configured capture rectangle, or nil for the full screen.
func (c *Config) SnapshotRegion() *image.Rectangle {
	if c.SnapshotW <= 0 || c.SnapshotH <= 0 {
		return nil
	}
	r := image.Rect(c.SnapshotX, c.SnapshotY, c.SnapshotX+c.SnapshotW, c.SnapshotY+c.SnapshotH)
	return &r
}

// SnapshotDelay is the wait before a screen grab.
func (c *Config) SnapshotDelay() time.Duration {
	return time.Duration(c.SnapshotDelayMS) * time.Millisecond
}

// TickInterval is the display cycle period.
func (c *Config) TickInterval() time.Duration { return time.Duration(c.TickMS) * time.Millisecond }

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load attempts to read configuration from path, as YAML for .yaml/.yml and
// JSON otherwise. If the file does not exist it returns DefaultConfig(). On a
// decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to path in the format its extension selects.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
