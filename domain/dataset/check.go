package dataset

import (
	"log/slog"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/soocke/pixel-label-go/domain/annotation"
)

// CheckResult is the validation outcome for one image.
type CheckResult struct {
	Image          string
	Width, Height  int
	Boxes          int
	UnknownClasses int
	Err            error
}

// Report collects the results of Check.
type Report struct {
	Dir     string
	Classes *Classes
	Results []CheckResult
}

// Failed counts images that could not be decoded or parsed.
func (r Report) Failed() int {
	return lo.CountBy(r.Results, func(c CheckResult) bool { return c.Err != nil })
}

// TotalBoxes sums the boxes of all readable annotation files.
func (r Report) TotalBoxes() int {
	return lo.SumBy(r.Results, func(c CheckResult) int { return c.Boxes })
}

// Check loads every annotation file of dir and reports format errors and
// class indices missing from the class list.
func Check(dir string, classes *Classes, logger *slog.Logger) (Report, error) {
	images, err := ListImages(dir)
	if err != nil {
		return Report{}, err
	}
	if classes == nil {
		if path, err := FindClassesFile(dir); err == nil && path != "" {
			if c, err := LoadClasses(path); err == nil {
				classes = c
			}
		}
	}
	rep := Report{Dir: dir, Classes: classes}
	for _, img := range images {
		res := CheckResult{Image: filepath.Base(img)}
		w, h, err := ImageSize(img)
		if err != nil {
			res.Err = err
			rep.Results = append(rep.Results, res)
			continue
		}
		res.Width, res.Height = w, h
		s, err := LoadSample(img, w, h, logger)
		if err != nil {
			res.Err = err
			rep.Results = append(rep.Results, res)
			continue
		}
		res.Boxes = s.Len()
		if classes.Len() > 0 {
			res.UnknownClasses = lo.CountBy(s.Boxes(), func(b *annotation.Box) bool {
				return b.Class() >= classes.Len()
			})
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}
