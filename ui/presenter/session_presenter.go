package presenter

import (
	"time"

	"github.com/soocke/pixel-label-go/ui/model"
)

// LoadedModel reports whether an image is loaded.
type LoadedModel interface{ Loaded() bool }

// SessionView displays formatted session durations and edit counts.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetCounts(created, deleted, saves int)
}

// SessionPresenter formats session durations and counts from the model to the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	loaded LoadedModel
	view   SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, loaded LoadedModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, loaded: loaded, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.loaded == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.loaded.Loaded(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	p.view.SetCounts(p.sess.Counts())
}
