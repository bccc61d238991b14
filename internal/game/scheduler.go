package game

import (
	"sync"
	"time"
)

// CancelFunc stops a pending delayed action. Calling it after the action
// has fired, or calling it twice, is a no-op.
type CancelFunc func()

// Scheduler abstracts delayed one-shot actions (the quiz countdown expiry
// and the memory mismatch revert) so the session state machines stay
// synchronous and testable. Sessions must cancel any pending action on
// every exit path.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

type timerScheduler struct{}

// NewScheduler returns a Scheduler backed by time.AfterFunc
func NewScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler is a Scheduler for tests: pending actions fire only when
// Advance is called.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualAction
}

type manualAction struct {
	fn        func()
	cancelled bool
}

// NewManualScheduler creates a test scheduler with no pending actions
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc queues fn; the delay is ignored
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &manualAction{fn: fn}
	s.pending = append(s.pending, a)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		a.cancelled = true
	}
}

// Advance fires all queued actions that have not been cancelled
func (s *ManualScheduler) Advance() {
	s.mu.Lock()
	actions := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, a := range actions {
		s.mu.Lock()
		cancelled := a.cancelled
		s.mu.Unlock()
		if !cancelled {
			a.fn()
		}
	}
}

// PendingCount reports how many actions are queued and not cancelled
func (s *ManualScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.pending {
		if !a.cancelled {
			n++
		}
	}
	return n
}
