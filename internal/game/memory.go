package game

import (
	"errors"
	"time"
)

const (
	// MemoryBaseScore is the starting score before the move penalty
	MemoryBaseScore = 500
	// MemoryMovePenalty is deducted per move beyond par
	MemoryMovePenalty = 5
	// MemoryRevertDelay is how long a mismatched pair stays revealed
	MemoryRevertDelay = 800 * time.Millisecond
)

var (
	ErrMemoryTileBlocked = errors.New("memory: two tiles already face up")
	ErrMemoryTileFaceUp  = errors.New("memory: tile already face up")
	ErrMemoryTileMatched = errors.New("memory: tile already matched")
	ErrMemoryBadTile     = errors.New("memory: tile index out of range")
	ErrMemoryComplete    = errors.New("memory: board is complete")
)

// MemorySession is the state machine for the tile-matching game. The board
// is built by duplicating each symbol once and shuffling, and its layout
// never changes after construction.
type MemorySession struct {
	Tiles    []string
	Matched  []bool
	Flipped  []int
	Mismatch []int
	Moves    int
	Pairs    int
}

// NewMemorySession builds a shuffled board from the given symbol set
func NewMemorySession(symbols []string) *MemorySession {
	board := make([]string, 0, len(symbols)*2)
	board = append(board, symbols...)
	board = append(board, symbols...)
	board = Sample(board, 0)
	return &MemorySession{
		Tiles:   board,
		Matched: make([]bool, len(board)),
		Pairs:   len(symbols),
	}
}

// Flip turns a tile face up. The flip is rejected while two unresolved
// tiles are up, and for tiles already face up or matched. The second flip
// of a turn counts a move and resolves the pair: equal symbols join the
// matched set permanently, unequal symbols stay face up as a pending
// mismatch that keeps blocking flips until RevertMismatch runs.
func (s *MemorySession) Flip(idx int) error {
	if s.Complete() {
		return ErrMemoryComplete
	}
	if idx < 0 || idx >= len(s.Tiles) {
		return ErrMemoryBadTile
	}
	if len(s.Flipped) >= 2 {
		return ErrMemoryTileBlocked
	}
	if s.Matched[idx] {
		return ErrMemoryTileMatched
	}
	for _, f := range s.Flipped {
		if f == idx {
			return ErrMemoryTileFaceUp
		}
	}

	s.Flipped = append(s.Flipped, idx)
	if len(s.Flipped) < 2 {
		return nil
	}

	s.Moves++
	first, second := s.Flipped[0], s.Flipped[1]
	if s.Tiles[first] == s.Tiles[second] {
		s.Matched[first] = true
		s.Matched[second] = true
		s.Flipped = nil
	} else {
		s.Mismatch = []int{first, second}
	}
	return nil
}

// RevertMismatch flips a pending mismatched pair back face down and
// unblocks the board. The session host runs this as a delayed action; it
// is a no-op when nothing is pending, so a stale timer firing after exit
// does no harm.
func (s *MemorySession) RevertMismatch() {
	if len(s.Mismatch) == 0 {
		return
	}
	s.Mismatch = nil
	s.Flipped = nil
}

// FaceUp reports whether a tile is currently showing its symbol
func (s *MemorySession) FaceUp(idx int) bool {
	if idx < 0 || idx >= len(s.Tiles) {
		return false
	}
	if s.Matched[idx] {
		return true
	}
	for _, f := range s.Flipped {
		if f == idx {
			return true
		}
	}
	for _, m := range s.Mismatch {
		if m == idx {
			return true
		}
	}
	return false
}

// MatchedCount returns the number of matched tiles
func (s *MemorySession) MatchedCount() int {
	n := 0
	for _, m := range s.Matched {
		if m {
			n++
		}
	}
	return n
}

// Complete reports whether every tile has been matched
func (s *MemorySession) Complete() bool {
	return s.MatchedCount() == len(s.Tiles)
}

// Points scores the run: par is one move per pair, and every extra move
// costs MemoryMovePenalty, floored at zero
func (s *MemorySession) Points() int {
	score := MemoryBaseScore - (s.Moves-s.Pairs)*MemoryMovePenalty
	if score < 0 {
		return 0
	}
	return score
}
