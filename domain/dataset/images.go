// Package dataset maps an image directory onto annotation samples: image
// discovery, sidecar annotation files, and the class list.
package dataset

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the image extensions picked up by ListImages.
var SupportedExtensions = []string{".png", ".bmp", ".jpeg", ".jpg", ".webp"}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	return lo.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// ListImages returns the supported images directly inside dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if e.IsDir() || !IsImage(e.Name()) {
			return "", false
		}
		return filepath.Join(dir, e.Name()), true
	})
	sort.Strings(files)
	return files, nil
}

// AnnotationPath returns the sidecar .txt path for an image: the image path
// with its extension replaced.
func AnnotationPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".txt"
}

// DecodeImage loads an image file, applying EXIF orientation.
func DecodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// ImageSize reads only the header of an image file.
func ImageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode config %s: %w", filepath.Base(path), err)
	}
	return cfg.Width, cfg.Height, nil
}
