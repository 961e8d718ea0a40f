// Package interaction turns one cycle of latched pointer and keyboard input
// into box selection, creation, deletion, drags and nudges on a Sample.
package interaction

import (
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/pixel-label-go/domain/geometry"
)

// Mode is the mutually exclusive editing mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModeBoxSelected
	ModeDraggingVertex
	ModeDraggingBox
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeBoxSelected:
		return "box-selected"
	case ModeDraggingVertex:
		return "dragging-vertex"
	case ModeDraggingBox:
		return "dragging-box"
	default:
		return "unknown"
	}
}

// Dragging reports whether m is one of the drag modes.
func (m Mode) Dragging() bool { return m == ModeDraggingVertex || m == ModeDraggingBox }

// Nudge is one of the eight single-pixel edge adjustments.
type Nudge int

const (
	NudgeNone Nudge = iota
	NudgeLeftOut
	NudgeLeftIn
	NudgeRightOut
	NudgeRightIn
	NudgeTopOut
	NudgeTopIn
	NudgeBottomOut
	NudgeBottomIn
)

// Deltas returns the per-edge change for the nudge.
func (n Nudge) Deltas() (left, top, right, bottom int) {
	switch n {
	case NudgeLeftOut:
		return -1, 0, 0, 0
	case NudgeLeftIn:
		return 1, 0, 0, 0
	case NudgeRightOut:
		return 0, 0, 1, 0
	case NudgeRightIn:
		return 0, 0, -1, 0
	case NudgeTopOut:
		return 0, -1, 0, 0
	case NudgeTopIn:
		return 0, 1, 0, 0
	case NudgeBottomOut:
		return 0, 0, 0, 1
	case NudgeBottomIn:
		return 0, 0, 0, -1
	default:
		return 0, 0, 0, 0
	}
}

func (n Nudge) String() string {
	switch n {
	case NudgeLeftOut:
		return "left-out"
	case NudgeLeftIn:
		return "left-in"
	case NudgeRightOut:
		return "right-out"
	case NudgeRightIn:
		return "right-in"
	case NudgeTopOut:
		return "top-out"
	case NudgeTopIn:
		return "top-in"
	case NudgeBottomOut:
		return "bottom-out"
	case NudgeBottomIn:
		return "bottom-in"
	default:
		return "none"
	}
}

// Input is the latched input for one display cycle. Between cycles the most
// recent value of each field wins; pulses are consumed by the cycle.
type Input struct {
	Now time.Time

	Cursor    image.Point // canvas coordinates
	HasCursor bool

	Press          bool
	PressAt        image.Point
	Release        bool
	SecondaryPress bool

	Nudge  Nudge
	Create bool
	Delete bool
}

// Options tune hit testing and creation.
type Options struct {
	GrabRadius       int
	DragZoneFraction float64
	CreateCooldown   time.Duration
}

// DefaultOptions returns the stock editing options.
func DefaultOptions() Options {
	return Options{GrabRadius: 6, DragZoneFraction: geometry.DefaultDragZoneFraction, CreateCooldown: time.Second}
}

// DrawItem is one rectangle for the renderer, in canvas coordinates.
type DrawItem struct {
	ID       uuid.UUID
	Index    int
	Class    int
	Rect     image.Rectangle
	Selected bool
}

// Effects reports what a cycle did and what to draw.
type Effects struct {
	Mode Mode

	// Changed is set when box geometry, class or membership changed this cycle.
	Changed bool
	// SelectionChanged is set when the selected box identity changed this cycle.
	SelectionChanged bool
	SelectedIndex    int // -1 when nothing is selected
	SelectedClass    int // -1 when nothing is selected

	// Hover flags are never set while a drag is active.
	HoveringBox    bool
	HoveringVertex bool
	Hover          geometry.Vertex
	// Active is the vertex being dragged in ModeDraggingVertex.
	Active geometry.Vertex

	Items []DrawItem
}

// ModeListener is called on every mode change.
type ModeListener func(prev, next Mode)
