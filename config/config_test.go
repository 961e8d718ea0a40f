package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidateClamps(t *testing.T) {
	c := &Config{ZoomMin: 50, ZoomMax: 20, ZoomPercent: 5, DragZoneFraction: 3, BoxColor: " BLUE ", DefaultBoxW: 2}
	require.NoError(t, c.Validate())
	assert.Equal(t, 1024, c.CanvasW)
	assert.Equal(t, 800, c.ZoomMax)
	assert.Equal(t, 100, c.ZoomPercent)
	assert.Equal(t, 0.5, c.DragZoneFraction)
	assert.Equal(t, "blue", c.BoxColor)
	assert.Equal(t, 0.05, c.DefaultBoxW)
	assert.Equal(t, 33, c.TickMS)

	c = DefaultConfig()
	c.BoxColor = "purple"
	require.NoError(t, c.Validate())
	assert.Equal(t, "red", c.BoxColor)
}

func TestValidateRejectsUnknownIntent(t *testing.T) {
	c := DefaultConfig()
	c.Keymap = map[string]string{"d": "delete", "q": "quit"}
	assert.ErrorContains(t, c.Validate(), "q=quit")
}

func TestSaveLoadJSONAndYAML(t *testing.T) {
	for _, name := range []string{"cfg.json", "cfg.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			c := DefaultConfig()
			c.ImageDir = "/data/imgs"
			c.ZoomPercent = 150
			c.Keymap = map[string]string{"Delete": "delete"}
			require.NoError(t, c.Save(path))

			back, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, c, back)
		})
	}
}

func TestLoadYAMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte("grab_radius: 9\nbox_color: green\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, c.GrabRadius)
	assert.Equal(t, "green", c.BoxColor)
	assert.Equal(t, 125, c.ZoomFineThreshold)
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	c, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestValidateZeroCooldownUsesDefault(t *testing.T) {
	c := DefaultConfig()
	c.CreateCooldownMS = 0
	require.NoError(t, c.Validate())
	assert.Equal(t, 1000, c.CreateCooldownMS)
	assert.Equal(t, time.Second, c.InteractionOptions().CreateCooldown)
}

func TestConversions(t *testing.T) {
	c := DefaultConfig()
	lim := c.ZoomLimits()
	assert.Equal(t, 125, lim.FineThreshold)
	assert.Equal(t, 800, lim.Max)
	opts := c.InteractionOptions()
	assert.Equal(t, time.Second, opts.CreateCooldown)
	assert.Equal(t, 6, opts.GrabRadius)
	assert.Equal(t, 33*time.Millisecond, c.TickInterval())
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvClasses+"=/from/file/classes.txt\n"), 0o644))
	t.Setenv(EnvImageDir, "/from/env")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvZoom, "200")
	t.Setenv(EnvClasses, "")
	os.Unsetenv(EnvClasses)

	c := DefaultConfig()
	require.NoError(t, ApplyEnv(c, envFile))
	assert.Equal(t, "/from/env", c.ImageDir)
	assert.Equal(t, "/from/file/classes.txt", c.ClassesFile)
	assert.True(t, c.Debug)
	assert.Equal(t, 200, c.ZoomPercent)
}

func TestApplyEnvErrors(t *testing.T) {
	c := DefaultConfig()
	assert.Error(t, ApplyEnv(c, filepath.Join(t.TempDir(), "missing.env")))

	empty := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	t.Setenv(EnvZoom, "lots")
	assert.ErrorContains(t, ApplyEnv(DefaultConfig(), empty), EnvZoom)
}

func TestSnapshotRegion(t *testing.T) {
	c := DefaultConfig()
	assert.Nil(t, c.SnapshotRegion())
	c.SnapshotX, c.SnapshotY, c.SnapshotW, c.SnapshotH = 10, 20, 300, 200
	c.SnapshotDelayMS = 250
	require.NotNil(t, c.SnapshotRegion())
	assert.Equal(t, image.Rect(10, 20, 310, 220), *c.SnapshotRegion())
	assert.Equal(t, 250*time.Millisecond, c.SnapshotDelay())

	c.SnapshotW, c.SnapshotDelayMS = -5, -1
	require.NoError(t, c.Validate())
	assert.Nil(t, c.SnapshotRegion())
	assert.Zero(t, c.SnapshotDelay())
}
