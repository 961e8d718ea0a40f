package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows labelling time and edit counts.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetCounts(created, deleted, saves int)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	countsLbl  *LabelWidget
	last       [3]int
}

// NewSessionStats creates the session, total and count labels in parent,
// stacked from row downwards in column col.
func NewSessionStats(parent *FrameWidget, row, col int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(16), Anchor("w")), totalLbl: Label(Width(16), Anchor("w")), countsLbl: Label(Anchor("w")), last: [3]int{-1, -1, -1}}
	for i, l := range []*LabelWidget{s.sessionLbl, s.totalLbl, s.countsLbl} {
		if parent != nil {
			Grid(l, In(parent), Row(row+i), Column(col), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(l, Row(row+i), Column(col), Sticky("w"), Padx("0.2m"))
		}
	}
	s.sessionLbl.Configure(Txt("Session: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.SetCounts(0, 0, 0)
	return s
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	h, m, sec := seconds/3600, seconds/60%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// SetSession updates the session duration display.
func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Session: " + clock(d)))
}

// SetTotal updates the total duration display.
func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + clock(d)))
}

// SetCounts updates the created/deleted/saved counters.
func (s *sessionStats) SetCounts(created, deleted, saves int) {
	if s == nil || s.countsLbl == nil {
		return
	}
	next := [3]int{created, deleted, saves}
	if next == s.last {
		return
	}
	s.last = next
	s.countsLbl.Configure(Txt(fmt.Sprintf("+%d  -%d  saved %d", created, deleted, saves)))
}
