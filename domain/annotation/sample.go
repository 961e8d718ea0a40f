package annotation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// DefaultBoxSize is the normalized width and height of the first box drawn on a sample.
const DefaultBoxSize = 0.05

// Sample owns the ordered boxes of one image and the single selection.
// Storage order is display and file order. The selection is held as a box ID
// and always resolved against the current boxes, so it cannot dangle.
type Sample struct {
	boxes        []*Box
	selected     uuid.UUID
	imgW, imgH   int
	lastW, lastH float64
	defaultClass int
	logger       *slog.Logger
}

// NewSample returns an empty sample for an image of imgW x imgH.
func NewSample(imgW, imgH int, logger *slog.Logger) *Sample {
	return &Sample{imgW: imgW, imgH: imgH, lastW: DefaultBoxSize, lastH: DefaultBoxSize, logger: logger}
}

// ImageSize returns the image dimensions the sample was created for.
func (s *Sample) ImageSize() (int, int) { return s.imgW, s.imgH }

// SetDefaultSize sets the normalized size used for the next created box.
func (s *Sample) SetDefaultSize(w, h float64) {
	if w > 0 && w <= 1 {
		s.lastW = w
	}
	if h > 0 && h <= 1 {
		s.lastH = h
	}
}

// LastSize is the size of the most recently selected or created box.
func (s *Sample) LastSize() (w, h float64) { return s.lastW, s.lastH }

// DefaultClass is the class assigned to newly created boxes.
func (s *Sample) DefaultClass() int { return s.defaultClass }

func (s *Sample) SetDefaultClass(class int) {
	if class >= 0 {
		s.defaultClass = class
	}
}

func (s *Sample) Len() int { return len(s.boxes) }

// Boxes returns the boxes in storage order. The slice is a copy.
func (s *Sample) Boxes() []*Box { return append([]*Box(nil), s.boxes...) }

// Box returns the box at index i or nil.
func (s *Sample) Box(i int) *Box {
	if i < 0 || i >= len(s.boxes) {
		return nil
	}
	return s.boxes[i]
}

// Selected returns the selected box and its index, or nil and -1.
func (s *Sample) Selected() (*Box, int) {
	if s.selected == uuid.Nil {
		return nil, -1
	}
	b, i, ok := lo.FindIndexOf(s.boxes, func(b *Box) bool { return b.id == s.selected })
	if !ok {
		return nil, -1
	}
	return b, i
}

// AddBox creates a box centred on image pixel (x, y) with the last used size.
func (s *Sample) AddBox(x, y int) (*Box, bool) { return s.AddBoxSized(x, y, s.lastW, s.lastH) }

// AddBoxSized creates a box centred on (x, y) with normalized size w x h,
// appends it and selects it. Nothing happens while another box is selected.
func (s *Sample) AddBoxSized(x, y int, w, h float64) (*Box, bool) {
	if b, _ := s.Selected(); b != nil {
		return nil, false
	}
	if s.imgW <= 0 || s.imgH <= 0 {
		return nil, false
	}
	n := Normalized{
		CX: float64(x) / float64(s.imgW),
		CY: float64(y) / float64(s.imgH),
		W:  w,
		H:  h,
	}
	b := FromNormalized(s.defaultClass, n, s.imgW, s.imgH)
	s.boxes = append(s.boxes, b)
	s.selectAt(len(s.boxes) - 1)
	if s.logger != nil {
		s.logger.Debug("box created", "class", b.class, "rect", b.rect.String())
	}
	return b, true
}

// Select makes the box with id the selection. It reports whether the
// selection changed.
func (s *Sample) Select(id uuid.UUID) bool {
	_, i, ok := lo.FindIndexOf(s.boxes, func(b *Box) bool { return b.id == id })
	if !ok {
		return false
	}
	return s.selectAt(i)
}

// SelectIndex selects the box at storage index i.
func (s *Sample) SelectIndex(i int) bool {
	if i < 0 || i >= len(s.boxes) {
		return false
	}
	return s.selectAt(i)
}

func (s *Sample) selectAt(i int) bool {
	b := s.boxes[i]
	if b.id == s.selected {
		return false
	}
	if prev, _ := s.Selected(); prev != nil {
		prev.selected = false
	}
	b.selected = true
	s.selected = b.id
	if b.norm.W > 0 {
		s.lastW = b.norm.W
	}
	if b.norm.H > 0 {
		s.lastH = b.norm.H
	}
	return true
}

// Deselect clears the selection, if any.
func (s *Sample) Deselect() {
	if b, _ := s.Selected(); b != nil {
		b.selected = false
	}
	s.selected = uuid.Nil
}

// DeleteSelected removes the selected box and clears the selection.
func (s *Sample) DeleteSelected() bool {
	b, i := s.Selected()
	if b == nil {
		if s.logger != nil {
			s.logger.Debug("delete ignored, no selection")
		}
		return false
	}
	b.selected = false
	s.boxes = append(s.boxes[:i], s.boxes[i+1:]...)
	s.selected = uuid.Nil
	if s.logger != nil {
		s.logger.Debug("box deleted", "index", i, "remaining", len(s.boxes))
	}
	return true
}

// SetSelectedClass relabels the selected box and makes class the default for
// new boxes. It reports whether a box changed.
func (s *Sample) SetSelectedClass(class int) bool {
	if class < 0 {
		return false
	}
	s.defaultClass = class
	b, _ := s.Selected()
	if b == nil || b.class == class {
		return false
	}
	b.class = class
	return true
}

// Lines serializes the boxes in storage order.
func (s *Sample) Lines() []string {
	return lo.Map(s.boxes, func(b *Box, _ int) string { return b.Line() })
}

// Parse replaces the boxes with those read from lines. Blank lines are
// skipped. On the first malformed line it returns a *FormatError and leaves
// the sample untouched.
func (s *Sample) Parse(lines []string) error {
	boxes := make([]*Box, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, err := ParseLine(line, s.imgW, s.imgH)
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = i + 1
			}
			return err
		}
		boxes = append(boxes, b)
	}
	s.boxes = boxes
	s.selected = uuid.Nil
	return nil
}

// Rows renders one list row per box as "name left right top bottom".
// name maps a class id to its display name; nil prints the id.
func (s *Sample) Rows(name func(int) string) []string {
	return lo.Map(s.boxes, func(b *Box, _ int) string {
		label := fmt.Sprint(b.class)
		if name != nil {
			label = name(b.class)
		}
		r := b.rect
		return fmt.Sprintf("%s %d %d %d %d", label, r.Min.X, r.Max.X, r.Min.Y, r.Max.Y)
	})
}
