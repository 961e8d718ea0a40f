package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/pixel-label-go/domain/dataset"
	"github.com/soocke/pixel-label-go/report"
)

func newCheckCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [image-dir]",
		Short: "Validate every annotation file of a directory",
		Long: `check decodes each image header and parses its annotation file. It lists
box counts, class ids missing from the class list and format errors, and
exits non-zero when any file fails.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*f, args)
			if err != nil {
				return err
			}
			if cfg.ImageDir == "" {
				return fmt.Errorf("no image directory given")
			}
			var classes *dataset.Classes
			if cfg.ClassesFile != "" {
				if classes, err = dataset.LoadClasses(cfg.ClassesFile); err != nil {
					return err
				}
			}
			rep, err := dataset.Check(cfg.ImageDir, classes, logger)
			if err != nil {
				return err
			}
			report.Render(cmd.OutOrStdout(), rep)
			if n := rep.Failed(); n > 0 {
				return fmt.Errorf("%w: %d of %d files", errCheckFailed, n, len(rep.Results))
			}
			return nil
		},
	}
}
