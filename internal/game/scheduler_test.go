package game

import (
	"testing"
	"time"
)

func TestManualSchedulerFires(t *testing.T) {
	s := NewManualScheduler()
	fired := 0
	s.AfterFunc(time.Second, func() { fired++ })
	s.AfterFunc(time.Second, func() { fired++ })

	if s.PendingCount() != 2 {
		t.Fatalf("pending = %d, want 2", s.PendingCount())
	}
	if fired != 0 {
		t.Fatal("action fired before Advance")
	}

	s.Advance()
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
	if s.PendingCount() != 0 {
		t.Errorf("pending after Advance = %d, want 0", s.PendingCount())
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	fired := false
	cancel := s.AfterFunc(time.Second, func() { fired = true })

	cancel()
	if s.PendingCount() != 0 {
		t.Errorf("pending after cancel = %d, want 0", s.PendingCount())
	}
	s.Advance()
	if fired {
		t.Error("cancelled action fired")
	}

	// Cancelling twice is harmless
	cancel()
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := make(chan struct{}, 1)
	cancel := s.AfterFunc(10*time.Millisecond, func() { fired <- struct{}{} })
	cancel()

	select {
	case <-fired:
		t.Error("cancelled timer fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimerSchedulerFires(t *testing.T) {
	s := NewScheduler()
	fired := make(chan struct{}, 1)
	s.AfterFunc(5*time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Error("timer never fired")
	}
}
