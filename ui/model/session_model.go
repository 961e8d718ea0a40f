package model

import (
	"time"
)

// SessionModel tracks labelling time and box counts. Time only accrues while
// an image is loaded. Presenters poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	active              bool
	start               time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration

	created int
	deleted int
	saves   int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the timers using the current labelling state and timestamp.
func (m *SessionModel) OnTick(labelling bool, now time.Time) {
	if m == nil {
		return
	}
	if labelling {
		if !m.active {
			m.active = true
			m.start = now
			m.lastSessionDuration = 0
		}
		m.lastSessionDuration = now.Sub(m.start)
	} else if m.active {
		m.lastSessionDuration = now.Sub(m.start)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// Values returns the current session duration and the total accumulated duration.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// CountBoxes records the change in box count of one cycle.
func (m *SessionModel) CountBoxes(before, after int) {
	if m == nil {
		return
	}
	switch {
	case after > before:
		m.created += after - before
	case after < before:
		m.deleted += before - after
	}
}

// CountSave records a successful annotation save.
func (m *SessionModel) CountSave() {
	if m != nil {
		m.saves++
	}
}

// Counts returns boxes created, boxes deleted and files saved.
func (m *SessionModel) Counts() (created, deleted, saves int) {
	if m == nil {
		return 0, 0, 0
	}
	return m.created, m.deleted, m.saves
}
