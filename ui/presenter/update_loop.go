package presenter

import "time"

// Loop aggregates feature presenters and drives the display cycle.
//
// Order matters: finished loads and snapshots are swapped in before the
// editor steps the machine, and labels are refreshed last. The zero value is
// usable (methods are nil-safe).
type Loop struct {
	Dataset  *DatasetPresenter
	Snapshot *SnapshotPresenter
	Watcher  *DirWatcher
	Editor   *EditorPresenter
	Mode     *ModePresenter
	Session  *SessionPresenter
	Schedule func()
}

func NewLoop(dataset *DatasetPresenter, editor *EditorPresenter, mode *ModePresenter, session *SessionPresenter, schedule func()) *Loop {
	return &Loop{Dataset: dataset, Editor: editor, Mode: mode, Session: session, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.TickAt(time.Now())
	if l.Schedule != nil {
		l.Schedule()
	}
}

// TickAt runs one display cycle at now without rescheduling.
func (l *Loop) TickAt(now time.Time) {
	if l == nil {
		return
	}
	if l.Watcher.Changed() && l.Dataset != nil {
		if err := l.Dataset.Rescan(""); err != nil && l.Dataset.logger != nil {
			l.Dataset.logger.Error("rescan", "error", err)
		}
	}
	l.Snapshot.Tick(now)
	l.Dataset.Tick(now)
	l.Editor.Tick(now)
	l.Mode.Tick(now)
	l.Session.Tick(now)
}
