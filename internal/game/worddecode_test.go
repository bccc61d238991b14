package game

import (
	"strings"
	"testing"
	"unicode/utf8"

	"ecoquest/internal/content"
)

// fillWord enters the interior letters of answer into the session
func fillWord(t *testing.T, s *WordDecodeSession, answer string) {
	t.Helper()
	for i := 0; i < len(answer); i++ {
		if s.Current().IsPrefilled(i) {
			continue
		}
		if err := s.SetLetter(i, string(answer[i])); err != nil {
			t.Fatalf("SetLetter(%d, %q) error = %v", i, answer[i], err)
		}
	}
}

func TestWordDecodeOrder(t *testing.T) {
	s := NewWordDecodeSession()
	if s.Current().Word != "PLANT" {
		t.Errorf("first word = %q, want PLANT", s.Current().Word)
	}
	if got, want := len(s.Puzzles), len(content.WordPuzzles()); got != want {
		t.Errorf("puzzle count = %d, want %d", got, want)
	}
	for i, p := range content.WordPuzzles() {
		if s.Puzzles[i].Word != p.Word {
			t.Errorf("puzzle %d = %q, want %q (fixed order)", i, s.Puzzles[i].Word, p.Word)
		}
	}
}

func TestWordDecodeSetLetter(t *testing.T) {
	s := NewWordDecodeSession()

	if err := s.SetLetter(0, "X"); err != ErrDecodePrefilled {
		t.Errorf("SetLetter on first slot error = %v, want ErrDecodePrefilled", err)
	}
	if err := s.SetLetter(4, "X"); err != ErrDecodePrefilled {
		t.Errorf("SetLetter on last slot error = %v, want ErrDecodePrefilled", err)
	}
	if err := s.SetLetter(9, "X"); err != ErrDecodeBadSlot {
		t.Errorf("SetLetter out of range error = %v, want ErrDecodeBadSlot", err)
	}

	if err := s.SetLetter(1, "l"); err != nil {
		t.Fatal(err)
	}
	if s.Entries[1] != "L" {
		t.Errorf("entry = %q, want uppercase L", s.Entries[1])
	}

	// Only the final character of a multi-character input survives
	if err := s.SetLetter(2, "xa"); err != nil {
		t.Fatal(err)
	}
	if s.Entries[2] != "A" {
		t.Errorf("entry = %q, want A", s.Entries[2])
	}

	// Accented input keeps the whole final rune intact
	if err := s.SetLetter(2, "é"); err != nil {
		t.Fatal(err)
	}
	if s.Entries[2] != "É" {
		t.Errorf("entry = %q, want É", s.Entries[2])
	}
	if !utf8.ValidString(s.Entries[2]) {
		t.Errorf("entry %q is not valid UTF-8", s.Entries[2])
	}

	// Empty input clears the slot
	if err := s.SetLetter(2, ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Entries[2]; ok {
		t.Error("empty input did not clear the slot")
	}
}

func TestWordDecodeCheckAnswer(t *testing.T) {
	tests := []struct {
		name   string
		entry  string
		want   bool
		status WordDecodeStatus
		score  int
	}{
		{name: "exact", entry: "PLANT", want: true, status: DecodeCorrect, score: WordPointsPerSolve},
		{name: "lowercase accepted", entry: "plant", want: true, status: DecodeCorrect, score: WordPointsPerSolve},
		{name: "wrong interior", entry: "PLENT", want: false, status: DecodeIncorrect, score: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWordDecodeSession()
			fillWord(t, s, tt.entry)
			ok, err := s.CheckAnswer()
			if err != nil {
				t.Fatalf("CheckAnswer error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("CheckAnswer = %v, want %v", ok, tt.want)
			}
			if s.Status != tt.status {
				t.Errorf("status = %q, want %q", s.Status, tt.status)
			}
			if s.Score != tt.score {
				t.Errorf("score = %d, want %d", s.Score, tt.score)
			}
		})
	}
}

func TestWordDecodeIncorrectPreservesEntries(t *testing.T) {
	s := NewWordDecodeSession()
	fillWord(t, s, "PLENT")
	if _, err := s.CheckAnswer(); err != nil {
		t.Fatal(err)
	}
	if s.Status != DecodeIncorrect {
		t.Fatalf("status = %q, want %q", s.Status, DecodeIncorrect)
	}
	if err := s.NextWord(); err != ErrDecodeNotReady {
		t.Errorf("NextWord during feedback error = %v, want ErrDecodeNotReady", err)
	}

	s.ClearIncorrect()
	if s.Status != DecodePlaying {
		t.Errorf("status after revert = %q, want %q", s.Status, DecodePlaying)
	}
	if s.Entries[2] != "E" {
		t.Error("revert wiped the entered letters")
	}

	// Fix the one wrong letter and solve
	if err := s.SetLetter(2, "A"); err != nil {
		t.Fatal(err)
	}
	ok, err := s.CheckAnswer()
	if err != nil || !ok {
		t.Fatalf("CheckAnswer after fix = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestWordDecodeFullRun(t *testing.T) {
	s := NewWordDecodeSession()
	for {
		fillWord(t, s, s.Current().Word)
		ok, err := s.CheckAnswer()
		if err != nil || !ok {
			t.Fatalf("CheckAnswer(%q) = (%v, %v)", s.Current().Word, ok, err)
		}
		last := s.IsLast()
		if err := s.NextWord(); err != nil {
			t.Fatalf("NextWord error = %v", err)
		}
		if last {
			break
		}
		if len(s.Entries) != 0 {
			t.Fatal("entries not reset for the next word")
		}
	}

	if s.Status != DecodeFinished {
		t.Errorf("terminal status = %q, want %q", s.Status, DecodeFinished)
	}
	want := len(content.WordPuzzles()) * WordPointsPerSolve
	if s.Points() != want {
		t.Errorf("points = %d, want %d", s.Points(), want)
	}
	for _, kw := range content.WordKeywords() {
		if !strings.Contains(s.Conclusion(), kw) {
			t.Errorf("conclusion missing keyword %q", kw)
		}
	}

	if err := s.SetLetter(1, "X"); err != ErrDecodeFinished {
		t.Errorf("SetLetter after finish error = %v, want ErrDecodeFinished", err)
	}
	if err := s.NextWord(); err != ErrDecodeFinished {
		t.Errorf("NextWord after finish error = %v, want ErrDecodeFinished", err)
	}
}

func TestWordDecodeFirstOpenSlot(t *testing.T) {
	s := NewWordDecodeSession()
	if got := s.FirstOpenSlot(); got != 1 {
		t.Errorf("FirstOpenSlot = %d, want 1", got)
	}
	if err := s.SetLetter(1, "L"); err != nil {
		t.Fatal(err)
	}
	if got := s.FirstOpenSlot(); got != 2 {
		t.Errorf("FirstOpenSlot = %d, want 2", got)
	}
	fillWord(t, s, "PLANT")
	if got := s.FirstOpenSlot(); got != -1 {
		t.Errorf("FirstOpenSlot on full word = %d, want -1", got)
	}
}
