package presenter

import (
	"sync"
	"time"

	"github.com/soocke/pixel-label-go/domain/interaction"
)

// ModeView displays the interaction mode.
type ModeView interface{ SetModeLabel(text string) }

// ModePresenter buffers mode transitions from the machine listener and
// flushes the latest one to the view on Tick.
type ModePresenter struct {
	view    ModeView
	mu      sync.Mutex
	pending interaction.Mode
	dirty   bool
}

// NewModePresenter constructs a mode presenter showing the idle mode.
func NewModePresenter(view ModeView) *ModePresenter {
	return &ModePresenter{view: view, pending: interaction.ModeIdle, dirty: true}
}

// OnMode is an interaction.ModeListener.
func (p *ModePresenter) OnMode(prev, next interaction.Mode) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = next
	p.dirty = true
	p.mu.Unlock()
}

// Tick pushes the pending mode label, if any.
func (p *ModePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	mode, dirty := p.pending, p.dirty
	p.dirty = false
	p.mu.Unlock()
	if dirty {
		p.view.SetModeLabel("Mode: " + mode.String())
	}
}
