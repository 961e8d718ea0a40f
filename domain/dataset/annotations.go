package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/soocke/pixel-label-go/domain/annotation"
)

// LoadSample reads the annotation file next to imagePath into a new sample
// sized imgW x imgH. A missing annotation file yields an empty sample.
func LoadSample(imagePath string, imgW, imgH int, logger *slog.Logger) (*annotation.Sample, error) {
	s := annotation.NewSample(imgW, imgH, logger)
	path := AnnotationPath(imagePath)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if logger != nil {
			logger.Debug("no annotation file", "path", path)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open annotations: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read annotations: %w", err)
	}
	if err := s.Parse(lines); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if logger != nil {
		logger.Debug("annotations loaded", "path", path, "boxes", s.Len())
	}
	return s, nil
}

// SaveSample writes every box of s, one line each, to the annotation file of
// imagePath. The file is replaced atomically.
func SaveSample(imagePath string, s *annotation.Sample) error {
	path := AnnotationPath(imagePath)
	var b strings.Builder
	for _, l := range s.Lines() {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".annot-*")
	if err != nil {
		return fmt.Errorf("save annotations: %w", err)
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save annotations: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save annotations: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save annotations: %w", err)
	}
	return nil
}
