package model

import (
	"testing"
	"time"
)

func TestSessionModel_BasicLifecycle(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	session, total := m.Values()
	if session != 5*time.Second || total != 5*time.Second {
		t.Fatalf("expected 5s session & total; got session=%v total=%v", session, total)
	}

	// image closed at 5s
	m.OnTick(false, base.Add(5*time.Second))
	m.OnTick(false, base.Add(7*time.Second))
	session2, total2 := m.Values()
	if session2 != session || total2 != total {
		t.Fatalf("idle tick should not change durations: session=%v total=%v", session2, total2)
	}

	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	s3, t3 := m.Values()
	if s3 != 3*time.Second || t3 != 8*time.Second {
		t.Fatalf("second session: session=%v total=%v", s3, t3)
	}
}

func TestSessionModel_Counts(t *testing.T) {
	m := NewSessionModel()
	m.CountBoxes(0, 1)
	m.CountBoxes(1, 1)
	m.CountBoxes(3, 1)
	m.CountSave()
	c, d, s := m.Counts()
	if c != 1 || d != 2 || s != 1 {
		t.Fatalf("counts = %d/%d/%d", c, d, s)
	}
	var nilModel *SessionModel
	nilModel.CountBoxes(0, 4)
	if c, _, _ := nilModel.Counts(); c != 0 {
		t.Fatalf("nil model should report zero")
	}
}
