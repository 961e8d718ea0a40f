package model

import (
	"image"

	"github.com/soocke/pixel-label-go/domain/annotation"
	"github.com/soocke/pixel-label-go/domain/dataset"
)

// DatasetModel holds the open directory, the current image with its sample
// and the editing status. It is only touched from the UI tick. The zero
// value means nothing is loaded and is usable.
type DatasetModel struct {
	ds      *dataset.Dataset
	classes *dataset.Classes

	path   string
	img    image.Image
	sample *annotation.Sample

	dirty        bool
	defaultClass int
	status       string
}

func NewDatasetModel() *DatasetModel { return &DatasetModel{} }

func (m *DatasetModel) Dataset() *dataset.Dataset {
	if m == nil {
		return nil
	}
	return m.ds
}

func (m *DatasetModel) SetDataset(ds *dataset.Dataset) {
	if m != nil {
		m.ds = ds
	}
}

// Classes returns the class registry; nil means numeric names.
func (m *DatasetModel) Classes() *dataset.Classes {
	if m == nil {
		return nil
	}
	return m.classes
}

func (m *DatasetModel) SetClasses(c *dataset.Classes) {
	if m != nil {
		m.classes = c
	}
}

// SetLoaded swaps in a decoded image and its sample. The dirty flag resets.
func (m *DatasetModel) SetLoaded(path string, img image.Image, s *annotation.Sample) {
	if m == nil {
		return
	}
	m.path, m.img, m.sample = path, img, s
	m.dirty = false
	if s != nil {
		s.SetDefaultClass(m.defaultClass)
	}
}

// Loaded reports whether an image and sample are present.
func (m *DatasetModel) Loaded() bool { return m != nil && m.img != nil && m.sample != nil }

func (m *DatasetModel) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

func (m *DatasetModel) Image() image.Image {
	if m == nil {
		return nil
	}
	return m.img
}

func (m *DatasetModel) Sample() *annotation.Sample {
	if m == nil {
		return nil
	}
	return m.sample
}

// MarkDirty flags unsaved changes.
func (m *DatasetModel) MarkDirty() {
	if m != nil && m.sample != nil {
		m.dirty = true
	}
}

// ClearDirty marks the sample as saved.
func (m *DatasetModel) ClearDirty() {
	if m != nil {
		m.dirty = false
	}
}

func (m *DatasetModel) Dirty() bool { return m != nil && m.dirty }

// DefaultClass is the class given to new boxes.
func (m *DatasetModel) DefaultClass() int {
	if m == nil {
		return 0
	}
	return m.defaultClass
}

// SetDefaultClass updates the class for new boxes, on the current sample too.
func (m *DatasetModel) SetDefaultClass(c int) {
	if m == nil || c < 0 {
		return
	}
	m.defaultClass = c
	if m.sample != nil {
		m.sample.SetDefaultClass(c)
	}
}

func (m *DatasetModel) Status() string {
	if m == nil {
		return ""
	}
	return m.status
}

func (m *DatasetModel) SetStatus(s string) {
	if m != nil {
		m.status = s
	}
}
