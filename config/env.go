package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvImageDir = "PIXEL_LABEL_IMAGE_DIR"
	EnvClasses  = "PIXEL_LABEL_CLASSES"
	EnvDebug    = "PIXEL_LABEL_DEBUG"
	EnvZoom     = "PIXEL_LABEL_ZOOM"
)

// ApplyEnv loads envFile (if present) into the process environment without
// overriding variables that are already set, then applies the PIXEL_LABEL_*
// variables to c. An empty envFile tries ".env".
func ApplyEnv(c *Config, envFile string) error {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvImageDir)); v != "" {
		c.ImageDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvClasses)); v != "" {
		c.ClassesFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvZoom)); v != "" {
		z, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvZoom, err)
		}
		c.ZoomPercent = z
	}
	return c.Validate()
}
