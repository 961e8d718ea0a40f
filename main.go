package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/pixel-label-go/app"
	"github.com/soocke/pixel-label-go/config"
)

type rootFlags struct {
	config    string
	env       string
	classes   string
	debug     bool
	logFormat string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "pixel-label [image-dir]",
		Short: "Draw and edit YOLO bounding boxes on a directory of images",
		Long: `pixel-label opens a directory of images and edits the YOLO annotation
file next to each one ("class cx cy w h" per line, normalized).`,
		Example: `  pixel-label ./images
  pixel-label --classes classes.txt --debug ./images
  pixel-label check ./images`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(f, args)
			if err != nil {
				return err
			}
			c, err := app.BuildContainer(cfg, f.config, logger)
			if err != nil {
				return err
			}
			logger.Info("starting", "dir", cfg.ImageDir, "config", f.config)
			app.NewApp("Pixel Label", cfg.CanvasW+280, cfg.CanvasH+90, c).Start(cmd.Context())
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.config, "config", "pixel-label.yaml", "config file (.yaml/.yml or .json)")
	pf.StringVar(&f.env, "env", "", "dotenv file with PIXEL_LABEL_* variables (default .env)")
	pf.StringVar(&f.classes, "classes", "", "class names file, one per line")
	pf.BoolVar(&f.debug, "debug", false, "debug logging plus goroutine and memory stats")
	pf.StringVar(&f.logFormat, "log-format", "json", "log format: json or text")

	cmd.AddCommand(newCheckCommand(&f))
	return cmd
}

// loadConfig resolves file, environment and flags, in increasing priority.
func loadConfig(f rootFlags, args []string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := config.ApplyEnv(cfg, f.env); err != nil {
		return nil, nil, fmt.Errorf("env: %w", err)
	}
	if len(args) > 0 {
		cfg.ImageDir = args[0]
	}
	if f.classes != "" {
		cfg.ClassesFile = f.classes
	}
	if f.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return cfg, NewLogger(os.Stderr, level, f.logFormat), nil
}

var errCheckFailed = errors.New("annotation check failed")
