package dataset

import (
	"errors"
	"path/filepath"

	"github.com/samber/lo"
)

// ErrNoImages is returned by Open for a directory without supported images.
var ErrNoImages = errors.New("no supported images in directory")

// Dataset is the ordered image list of one directory and a cursor into it.
type Dataset struct {
	dir    string
	images []string
	index  int
}

// Open lists dir and positions the cursor on the first image.
func Open(dir string) (*Dataset, error) {
	images, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	return &Dataset{dir: dir, images: images}, nil
}

func (d *Dataset) Dir() string { return d.dir }
func (d *Dataset) Len() int    { return len(d.images) }
func (d *Dataset) Index() int  { return d.index }

// Current is the path of the image under the cursor.
func (d *Dataset) Current() string { return d.images[d.index] }

// Names returns the base names of all images, in order.
func (d *Dataset) Names() []string {
	return lo.Map(d.images, func(p string, _ int) string { return filepath.Base(p) })
}

// Next advances the cursor; false at the last image.
func (d *Dataset) Next() bool { return d.Seek(d.index + 1) }

// Prev moves the cursor back; false at the first image.
func (d *Dataset) Prev() bool { return d.Seek(d.index - 1) }

// Seek moves the cursor to i. It reports whether the cursor moved.
func (d *Dataset) Seek(i int) bool {
	if i < 0 || i >= len(d.images) || i == d.index {
		return false
	}
	d.index = i
	return true
}
