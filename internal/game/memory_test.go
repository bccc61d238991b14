package game

import (
	"testing"

	"ecoquest/internal/content"
)

// findPair locates two unmatched tile indexes carrying the same symbol
func findPair(s *MemorySession) (int, int) {
	for i := range s.Tiles {
		if s.Matched[i] {
			continue
		}
		for j := i + 1; j < len(s.Tiles); j++ {
			if !s.Matched[j] && s.Tiles[i] == s.Tiles[j] {
				return i, j
			}
		}
	}
	return -1, -1
}

// findMismatch locates two unmatched tile indexes with different symbols
func findMismatch(s *MemorySession) (int, int) {
	for i := range s.Tiles {
		if s.Matched[i] {
			continue
		}
		for j := i + 1; j < len(s.Tiles); j++ {
			if !s.Matched[j] && s.Tiles[i] != s.Tiles[j] {
				return i, j
			}
		}
	}
	return -1, -1
}

func TestNewMemorySessionBoard(t *testing.T) {
	symbols := content.MemorySymbols()
	s := NewMemorySession(symbols)

	if len(s.Tiles) != len(symbols)*2 {
		t.Fatalf("board size = %d, want %d", len(s.Tiles), len(symbols)*2)
	}
	if s.Pairs != len(symbols) {
		t.Errorf("pairs = %d, want %d", s.Pairs, len(symbols))
	}

	// Every symbol appears exactly twice
	counts := make(map[string]int)
	for _, sym := range s.Tiles {
		counts[sym]++
	}
	if len(counts) != len(symbols) {
		t.Errorf("distinct symbols on board = %d, want %d", len(counts), len(symbols))
	}
	for sym, n := range counts {
		if n != 2 {
			t.Errorf("symbol %q appears %d times, want 2", sym, n)
		}
	}
}

func TestMemoryFlipMatch(t *testing.T) {
	s := NewMemorySession([]string{"a", "b", "c"})
	i, j := findPair(s)

	if err := s.Flip(i); err != nil {
		t.Fatalf("first flip error = %v", err)
	}
	if s.Moves != 0 {
		t.Errorf("moves after first flip = %d, want 0", s.Moves)
	}
	if !s.FaceUp(i) {
		t.Error("flipped tile not face up")
	}

	if err := s.Flip(j); err != nil {
		t.Fatalf("second flip error = %v", err)
	}
	if s.Moves != 1 {
		t.Errorf("moves after pair = %d, want 1", s.Moves)
	}
	if !s.Matched[i] || !s.Matched[j] {
		t.Error("equal symbols did not join the matched set")
	}
	if err := s.Flip(i); err != ErrMemoryTileMatched {
		t.Errorf("flipping a matched tile error = %v, want ErrMemoryTileMatched", err)
	}
}

func TestMemoryFlipRejections(t *testing.T) {
	s := NewMemorySession([]string{"a", "b", "c"})
	i, j := findMismatch(s)

	if err := s.Flip(-1); err != ErrMemoryBadTile {
		t.Errorf("Flip(-1) error = %v, want ErrMemoryBadTile", err)
	}
	if err := s.Flip(len(s.Tiles)); err != ErrMemoryBadTile {
		t.Errorf("out-of-range flip error = %v, want ErrMemoryBadTile", err)
	}

	if err := s.Flip(i); err != nil {
		t.Fatal(err)
	}
	if err := s.Flip(i); err != ErrMemoryTileFaceUp {
		t.Errorf("re-flipping the same tile error = %v, want ErrMemoryTileFaceUp", err)
	}

	if err := s.Flip(j); err != nil {
		t.Fatal(err)
	}
	// Unequal symbols leave an informational reveal, not a match
	if s.Matched[i] || s.Matched[j] {
		t.Error("mismatched symbols were matched")
	}
	if !s.FaceUp(i) || !s.FaceUp(j) {
		t.Error("pending mismatch not revealed")
	}
	if s.Moves != 1 {
		t.Errorf("moves = %d, want 1", s.Moves)
	}
}

func TestMemoryThirdFlipDuringPendingPair(t *testing.T) {
	// Drive the session directly so two tiles can sit unresolved
	s := &MemorySession{
		Tiles:   []string{"a", "b", "a", "b"},
		Matched: make([]bool, 4),
		Flipped: []int{0, 1},
		Pairs:   2,
	}
	if err := s.Flip(2); err != ErrMemoryTileBlocked {
		t.Errorf("third flip error = %v, want ErrMemoryTileBlocked", err)
	}
}

func TestMemoryMismatchRevert(t *testing.T) {
	s := NewMemorySession([]string{"a", "b", "c"})
	i, j := findMismatch(s)
	if err := s.Flip(i); err != nil {
		t.Fatal(err)
	}
	if err := s.Flip(j); err != nil {
		t.Fatal(err)
	}

	// The revealed pair keeps blocking the board until the revert runs
	k := -1
	for idx := range s.Tiles {
		if idx != i && idx != j {
			k = idx
			break
		}
	}
	if err := s.Flip(k); err != ErrMemoryTileBlocked {
		t.Errorf("flip during pending mismatch error = %v, want ErrMemoryTileBlocked", err)
	}

	sched := NewManualScheduler()
	sched.AfterFunc(MemoryRevertDelay, s.RevertMismatch)
	sched.Advance()
	if s.FaceUp(i) || s.FaceUp(j) {
		t.Error("mismatch still revealed after revert")
	}

	// The board is playable again once the pair is face down
	p, q := findPair(s)
	if err := s.Flip(p); err != nil {
		t.Fatalf("flip after revert error = %v", err)
	}

	// A stale revert firing mid-turn leaves the new flip alone
	s.RevertMismatch()
	if !s.FaceUp(p) {
		t.Error("stale revert cleared an in-progress turn")
	}
	if err := s.Flip(q); err != nil {
		t.Fatal(err)
	}
	if !s.Matched[p] || !s.Matched[q] {
		t.Error("pair not matched after revert")
	}
}

func TestMemoryCompleteRun(t *testing.T) {
	s := NewMemorySession([]string{"a", "b", "c", "d"})
	for !s.Complete() {
		i, j := findPair(s)
		if i < 0 {
			t.Fatal("no pair found on an incomplete board")
		}
		if err := s.Flip(i); err != nil {
			t.Fatal(err)
		}
		if err := s.Flip(j); err != nil {
			t.Fatal(err)
		}
	}

	if s.MatchedCount() != len(s.Tiles) {
		t.Errorf("matched count = %d, want %d", s.MatchedCount(), len(s.Tiles))
	}
	if s.Moves != s.Pairs {
		t.Errorf("perfect run took %d moves, want %d", s.Moves, s.Pairs)
	}
	if s.Points() != MemoryBaseScore {
		t.Errorf("perfect-run points = %d, want %d", s.Points(), MemoryBaseScore)
	}
	if err := s.Flip(0); err != ErrMemoryComplete {
		t.Errorf("flip after completion error = %v, want ErrMemoryComplete", err)
	}
}

func TestMemoryPoints(t *testing.T) {
	tests := []struct {
		name  string
		moves int
		pairs int
		want  int
	}{
		{name: "perfect", moves: 50, pairs: 50, want: 500},
		{name: "ten extra moves", moves: 60, pairs: 50, want: 450},
		{name: "floored at zero", moves: 500, pairs: 50, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &MemorySession{Moves: tt.moves, Pairs: tt.pairs}
			if got := s.Points(); got != tt.want {
				t.Errorf("Points() = %d, want %d", got, tt.want)
			}
		})
	}
}
