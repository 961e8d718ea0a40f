package model

import (
	"image"
	"sync"
	"time"

	"github.com/soocke/pixel-label-go/domain/interaction"
)

// Frame is one cycle's worth of latched input.
type Frame struct {
	Input interaction.Input
	// Wheel is +1, -1 or 0; only the latest notch direction survives.
	Wheel int
	// Pan is the accumulated middle-button drag in canvas pixels.
	Pan image.Point
	// Intents are the non-editing key intents seen since the last cycle,
	// without duplicates, in arrival order.
	Intents []interaction.Intent
}

// InputModel latches pointer and key events from Tk callbacks until the
// display tick takes a Snapshot. The most recent value wins; nothing queues.
// The zero value is usable and all methods are nil-safe.
type InputModel struct {
	mu sync.Mutex

	cursor    image.Point
	hasCursor bool
	press     bool
	pressAt   image.Point
	release   bool
	secondary bool
	nudge     interaction.Nudge
	create    bool
	delete    bool

	wheel     int
	pan       image.Point
	panFrom   image.Point
	panActive bool
	intents   []interaction.Intent
}

// NewInputModel returns an empty input latch.
func NewInputModel() *InputModel { return &InputModel{} }

// Motion records the cursor position over the canvas.
func (m *InputModel) Motion(x, y int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.cursor, m.hasCursor = image.Pt(x, y), true
	m.mu.Unlock()
}

// Leave records that the cursor left the canvas.
func (m *InputModel) Leave() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.hasCursor = false
	m.mu.Unlock()
}

// Press records a primary button press.
func (m *InputModel) Press(x, y int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.press, m.pressAt = true, image.Pt(x, y)
	m.cursor, m.hasCursor = m.pressAt, true
	m.mu.Unlock()
}

// Release records a primary button release.
func (m *InputModel) Release(x, y int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.release = true
	m.cursor, m.hasCursor = image.Pt(x, y), true
	m.mu.Unlock()
}

// SecondaryPress records a secondary button press.
func (m *InputModel) SecondaryPress() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.secondary = true
	m.mu.Unlock()
}

// Wheel records one notch; only the sign of delta is kept.
func (m *InputModel) Wheel(delta int) {
	if m == nil || delta == 0 {
		return
	}
	m.mu.Lock()
	if delta > 0 {
		m.wheel = 1
	} else {
		m.wheel = -1
	}
	m.mu.Unlock()
}

// PanStart begins a middle-button drag at (x, y).
func (m *InputModel) PanStart(x, y int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.panFrom, m.panActive = image.Pt(x, y), true
	m.mu.Unlock()
}

// PanMove accumulates the drag distance since the previous pan event.
func (m *InputModel) PanMove(x, y int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.panActive {
		p := image.Pt(x, y)
		m.pan = m.pan.Add(p.Sub(m.panFrom))
		m.panFrom = p
	}
	m.mu.Unlock()
}

// PanEnd finishes a middle-button drag.
func (m *InputModel) PanEnd() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.panActive = false
	m.mu.Unlock()
}

// Intent records a key intent. Editing intents latch into the machine
// input; the rest are passed through Frame.Intents.
func (m *InputModel) Intent(i interaction.Intent) {
	if m == nil || i == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := i.Nudge(); n != interaction.NudgeNone {
		m.nudge = n
		return
	}
	switch i {
	case interaction.IntentCreate:
		m.create = true
	case interaction.IntentDelete:
		m.delete = true
	case interaction.IntentDeselect:
		m.secondary = true
	default:
		for _, have := range m.intents {
			if have == i {
				return
			}
		}
		m.intents = append(m.intents, i)
	}
}

// Snapshot returns the latched input stamped with now and clears all pulses.
// The cursor position persists across snapshots.
func (m *InputModel) Snapshot(now time.Time) Frame {
	if m == nil {
		return Frame{Input: interaction.Input{Now: now}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := Frame{
		Input: interaction.Input{
			Now:            now,
			Cursor:         m.cursor,
			HasCursor:      m.hasCursor,
			Press:          m.press,
			PressAt:        m.pressAt,
			Release:        m.release,
			SecondaryPress: m.secondary,
			Nudge:          m.nudge,
			Create:         m.create,
			Delete:         m.delete,
		},
		Wheel:   m.wheel,
		Pan:     m.pan,
		Intents: m.intents,
	}
	m.press, m.release, m.secondary = false, false, false
	m.nudge = interaction.NudgeNone
	m.create, m.delete = false, false
	m.wheel = 0
	m.pan = image.Point{}
	m.intents = nil
	return f
}
