package interaction

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/pixel-label-go/domain/annotation"
	"github.com/soocke/pixel-label-go/domain/geometry"
)

// Machine is the box editing state machine. Step is called once per display
// cycle from the UI goroutine; listeners are guarded so they can be added
// from any goroutine.
type Machine struct {
	opts   Options
	logger *slog.Logger

	mode       Mode
	dragID     uuid.UUID
	active     geometry.Vertex
	anchor     image.Point // press point minus box top-left, image pixels
	lastCreate time.Time

	// pulses not handled in the previous cycle
	carry Input

	mu        sync.RWMutex
	listeners []ModeListener
}

// NewMachine creates a machine in ModeIdle. Zero option fields fall back to
// DefaultOptions.
func NewMachine(opts Options, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{opts: normalize(opts), logger: logger}
}

func normalize(opts Options) Options {
	def := DefaultOptions()
	if opts.GrabRadius <= 0 {
		opts.GrabRadius = def.GrabRadius
	}
	if opts.DragZoneFraction <= 0 || opts.DragZoneFraction > 1 {
		opts.DragZoneFraction = def.DragZoneFraction
	}
	if opts.CreateCooldown <= 0 {
		opts.CreateCooldown = def.CreateCooldown
	}
	return opts
}

// SetOptions replaces the options between cycles.
func (m *Machine) SetOptions(opts Options) { m.opts = normalize(opts) }

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Options returns the effective options.
func (m *Machine) Options() Options { return m.opts }

// AddListener registers fn for mode changes.
func (m *Machine) AddListener(fn ModeListener) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Reset returns to ModeIdle and drops carried pulses. Used when a different
// sample is loaded. The creation cooldown survives.
func (m *Machine) Reset() {
	m.carry = Input{}
	m.active = geometry.Vertex{}
	m.dragID = uuid.Nil
	m.setMode(ModeIdle)
}

func (m *Machine) setMode(next Mode) {
	prev := m.mode
	if prev == next {
		return
	}
	m.mode = next
	if !next.Dragging() {
		m.active = geometry.Vertex{}
		m.dragID = uuid.Nil
	}
	m.logger.Debug("interaction mode", "from", prev.String(), "to", next.String())
	m.mu.RLock()
	ls := append([]ModeListener(nil), m.listeners...)
	m.mu.RUnlock()
	for _, fn := range ls {
		fn(prev, next)
	}
}

// Step runs one cycle over s using tf for screen mapping. At most one user
// intent changes the mode per cycle; pulses that could not be handled are
// carried into the next cycle.
func (m *Machine) Step(s *annotation.Sample, tf geometry.Transform, in Input) Effects {
	in = m.merge(in)
	prevSel := selectedID(s)
	m.sync(s)

	var fx Effects
	done := false

	// secondary click cancels everything, including the pending drag delta
	if in.SecondaryPress {
		in.SecondaryPress = false
		if m.mode.Dragging() {
			m.logger.Debug("drag cancelled")
		}
		s.Deselect()
		m.setMode(ModeIdle)
		done = true
	}

	if in.Delete && !done {
		in.Delete = false
		if s.DeleteSelected() {
			fx.Changed = true
			m.setMode(ModeIdle)
			done = true
		}
	}

	if in.Create && !done {
		in.Create = false
		if m.create(s, tf, in) {
			fx.Changed = true
			m.setMode(ModeBoxSelected)
			done = true
		}
	}

	sel, _ := s.Selected()
	switch {
	case sel != nil && m.mode.Dragging():
		switch {
		case done:
		case in.Release:
			in.Release = false
			if in.HasCursor && m.continueDrag(sel, tf, in.Cursor) {
				fx.Changed = true
			}
			m.setMode(ModeBoxSelected)
			done = true
		case in.Press:
			// missed release: commit at the cursor, the press is handled next cycle
			if in.HasCursor && m.continueDrag(sel, tf, in.Cursor) {
				fx.Changed = true
			}
			m.setMode(ModeBoxSelected)
			done = true
		default:
			if in.HasCursor && m.continueDrag(sel, tf, in.Cursor) {
				fx.Changed = true
			}
		}
	case sel != nil && m.mode == ModeBoxSelected && in.Press && !done:
		if m.beginDrag(sel, tf, in.PressAt) {
			in.Press = false
			done = true
		}
	}

	if in.Press && !done {
		in.Press = false
		m.click(s, sel, tf, in.PressAt)
		done = true
	}
	if !m.mode.Dragging() {
		in.Release = false
	}

	if in.Nudge != NudgeNone && !done {
		n := in.Nudge
		in.Nudge = NudgeNone
		if cur, _ := s.Selected(); cur != nil && m.mode == ModeBoxSelected {
			if cur.ApplyEdgeNudge(n.Deltas()) {
				fx.Changed = true
			}
		}
	}

	m.carry = Input{
		Press:   in.Press,
		PressAt: in.PressAt,
		Release: in.Release,
		Nudge:   in.Nudge,
		Create:  in.Create,
		Delete:  in.Delete,
	}

	m.fillEffects(&fx, s, tf, in, prevSel)
	return fx
}

// merge folds carried pulses into in. A fresh press replaces a carried one.
func (m *Machine) merge(in Input) Input {
	c := m.carry
	m.carry = Input{}
	if c.Press && !in.Press {
		in.Press, in.PressAt = true, c.PressAt
	}
	in.Release = in.Release || c.Release
	in.Create = in.Create || c.Create
	in.Delete = in.Delete || c.Delete
	if in.Nudge == NudgeNone {
		in.Nudge = c.Nudge
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	return in
}

// sync reconciles the mode with selection changes made outside Step.
func (m *Machine) sync(s *annotation.Sample) {
	sel, _ := s.Selected()
	switch {
	case sel == nil:
		m.setMode(ModeIdle)
	case m.mode.Dragging() && sel.ID() != m.dragID:
		m.setMode(ModeBoxSelected)
	case m.mode == ModeIdle:
		m.setMode(ModeBoxSelected)
	}
}

func (m *Machine) create(s *annotation.Sample, tf geometry.Transform, in Input) bool {
	if sel, _ := s.Selected(); sel != nil || !in.HasCursor {
		return false
	}
	if !m.lastCreate.IsZero() && in.Now.Sub(m.lastCreate) < m.opts.CreateCooldown {
		m.logger.Debug("box creation throttled", "since_last", in.Now.Sub(m.lastCreate).String())
		return false
	}
	if !in.Cursor.In(tf.Visible()) {
		return false
	}
	p := geometry.MapScreenToImage(in.Cursor, tf)
	if _, ok := s.AddBox(p.X, p.Y); !ok {
		return false
	}
	m.lastCreate = in.Now
	return true
}

func (m *Machine) beginDrag(sel *annotation.Box, tf geometry.Transform, at image.Point) bool {
	if sel.Empty() {
		return false
	}
	r := geometry.ImageRectToScreen(sel.Rect(), tf)
	if geometry.HitTestDragZone(at, r, m.opts.DragZoneFraction) {
		m.anchor = geometry.MapScreenToImage(at, tf).Sub(sel.Rect().Min)
		m.setMode(ModeDraggingBox)
		m.dragID = sel.ID()
		return true
	}
	if v, ok := geometry.HitTestVertex(at, r, m.opts.GrabRadius); ok {
		m.setMode(ModeDraggingVertex)
		m.active = v
		m.dragID = sel.ID()
		return true
	}
	return false
}

func (m *Machine) continueDrag(sel *annotation.Box, tf geometry.Transform, cursor image.Point) bool {
	p := geometry.MapScreenToImage(cursor, tf)
	before := sel.Rect()
	switch m.mode {
	case ModeDraggingBox:
		target := p.Sub(m.anchor)
		sel.ApplyBodyShift(target.X-before.Min.X, target.Y-before.Min.Y)
	case ModeDraggingVertex:
		m.active = sel.ApplyVertexDrag(m.active, p)
	}
	return sel.Rect() != before
}

// click handles a press that started no drag: keep the selection when the
// press is inside it, otherwise select the first box under the press or
// clear the selection on empty canvas.
func (m *Machine) click(s *annotation.Sample, sel *annotation.Box, tf geometry.Transform, at image.Point) {
	if sel != nil && !sel.Empty() && geometry.HitTestContainment(at, geometry.ImageRectToScreen(sel.Rect(), tf)) {
		return
	}
	for i, b := range s.Boxes() {
		if b == sel || !b.Visible() || b.Empty() {
			continue
		}
		if geometry.HitTestContainment(at, geometry.ImageRectToScreen(b.Rect(), tf)) {
			s.SelectIndex(i)
			m.setMode(ModeBoxSelected)
			return
		}
	}
	if sel != nil {
		s.Deselect()
		m.setMode(ModeIdle)
	}
}

func (m *Machine) fillEffects(fx *Effects, s *annotation.Sample, tf geometry.Transform, in Input, prevSel uuid.UUID) {
	fx.Mode = m.mode
	sel, idx := s.Selected()
	fx.SelectedIndex = idx
	fx.SelectedClass = -1
	cur := uuid.Nil
	if sel != nil {
		fx.SelectedClass = sel.Class()
		cur = sel.ID()
	}
	fx.SelectionChanged = cur != prevSel

	vis := tf.Visible()
	for i, b := range s.Boxes() {
		if !b.Visible() || b.Empty() {
			continue
		}
		r := geometry.ImageRectToScreen(b.Rect(), tf)
		if in.HasCursor && !m.mode.Dragging() && geometry.HitTestContainment(in.Cursor, r) {
			fx.HoveringBox = true
		}
		clipped := r.Intersect(vis)
		if clipped.Empty() {
			continue
		}
		fx.Items = append(fx.Items, DrawItem{
			ID:       b.ID(),
			Index:    i,
			Class:    b.Class(),
			Rect:     clipped,
			Selected: b.Selected(),
		})
	}

	if sel != nil && in.HasCursor && !m.mode.Dragging() && !sel.Empty() {
		r := geometry.ImageRectToScreen(sel.Rect(), tf)
		if v, ok := geometry.HitTestVertex(in.Cursor, r, m.opts.GrabRadius); ok &&
			!geometry.HitTestDragZone(in.Cursor, r, m.opts.DragZoneFraction) {
			fx.HoveringVertex = true
			fx.Hover = v
		}
	}
	if m.mode == ModeDraggingVertex {
		fx.Active = m.active
	}
}

func selectedID(s *annotation.Sample) uuid.UUID {
	if b, _ := s.Selected(); b != nil {
		return b.ID()
	}
	return uuid.Nil
}
