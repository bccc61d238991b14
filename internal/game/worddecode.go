package game

import (
	"errors"
	"strings"
	"time"

	"ecoquest/internal/content"
)

const (
	// WordPointsPerSolve is awarded for each decoded word
	WordPointsPerSolve = 20
	// WordIncorrectDelay is how long the shake feedback lasts before the
	// puzzle reverts to play, keeping the entered letters
	WordIncorrectDelay = 800 * time.Millisecond
)

// WordDecodeStatus identifies where a word-decode session is in its loop
type WordDecodeStatus string

const (
	DecodePlaying   WordDecodeStatus = "playing"
	DecodeCorrect   WordDecodeStatus = "correct"
	DecodeIncorrect WordDecodeStatus = "incorrect"
	DecodeFinished  WordDecodeStatus = "finished"
)

var (
	ErrDecodeFinished  = errors.New("word decode: session finished")
	ErrDecodeNotReady  = errors.New("word decode: current word not solved")
	ErrDecodePrefilled = errors.New("word decode: position is prefilled")
	ErrDecodeBadSlot   = errors.New("word decode: position out of range")
)

// WordDecodeSession is the state machine for the word-decode run. Puzzles
// are played in their authored order; the concluding sentence depends on
// it, so the pool is never shuffled.
type WordDecodeSession struct {
	Puzzles []content.WordPuzzle
	Index   int
	Entries map[int]string
	Status  WordDecodeStatus
	Score   int
}

// NewWordDecodeSession starts at the first puzzle with empty input slots
func NewWordDecodeSession() *WordDecodeSession {
	return &WordDecodeSession{
		Puzzles: content.WordPuzzles(),
		Entries: make(map[int]string),
		Status:  DecodePlaying,
	}
}

// Current returns the puzzle under the cursor
func (s *WordDecodeSession) Current() content.WordPuzzle {
	return s.Puzzles[s.Index]
}

// SetLetter records a user-entered letter for an interior slot. Only the
// last character is kept and input is normalized to uppercase.
func (s *WordDecodeSession) SetLetter(pos int, letter string) error {
	if s.Status == DecodeFinished {
		return ErrDecodeFinished
	}
	word := s.Current().Word
	if pos < 0 || pos >= len(word) {
		return ErrDecodeBadSlot
	}
	if s.Current().IsPrefilled(pos) {
		return ErrDecodePrefilled
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		delete(s.Entries, pos)
		return nil
	}
	runes := []rune(letter)
	s.Entries[pos] = string(runes[len(runes)-1])
	return nil
}

// Guessed assembles the prefilled and user-entered letters positionally
func (s *WordDecodeSession) Guessed() string {
	word := s.Current().Word
	prefilled := s.Current().Prefilled()
	var b strings.Builder
	for i := 0; i < len(word); i++ {
		if c, ok := prefilled[i]; ok {
			b.WriteByte(c)
		} else {
			b.WriteString(s.Entries[i])
		}
	}
	return b.String()
}

// CheckAnswer compares the assembled word against the target. A match
// moves to Correct and banks the fixed score; a miss enters the transient
// Incorrect state without losing the entered letters.
func (s *WordDecodeSession) CheckAnswer() (bool, error) {
	switch s.Status {
	case DecodeFinished:
		return false, ErrDecodeFinished
	case DecodeCorrect:
		return true, nil
	}
	if strings.EqualFold(s.Guessed(), s.Current().Word) {
		s.Status = DecodeCorrect
		s.Score += WordPointsPerSolve
		return true, nil
	}
	s.Status = DecodeIncorrect
	return false, nil
}

// ClearIncorrect reverts the transient shake feedback to play. The session
// host runs this as a delayed action after WordIncorrectDelay.
func (s *WordDecodeSession) ClearIncorrect() {
	if s.Status == DecodeIncorrect {
		s.Status = DecodePlaying
	}
}

// IsLast reports whether the cursor is on the final puzzle
func (s *WordDecodeSession) IsLast() bool {
	return s.Index == len(s.Puzzles)-1
}

// NextWord advances past a solved puzzle, resetting the input slots, or
// finishes the session after the last one
func (s *WordDecodeSession) NextWord() error {
	if s.Status == DecodeFinished {
		return ErrDecodeFinished
	}
	if s.Status != DecodeCorrect {
		return ErrDecodeNotReady
	}
	if s.IsLast() {
		s.Status = DecodeFinished
		return nil
	}
	s.Index++
	s.Entries = make(map[int]string)
	s.Status = DecodePlaying
	return nil
}

// FirstOpenSlot returns the first interior position with no entry, used to
// focus the next input. Returns -1 when every slot is filled.
func (s *WordDecodeSession) FirstOpenSlot() int {
	word := s.Current().Word
	for i := 0; i < len(word); i++ {
		if !s.Current().IsPrefilled(i) && s.Entries[i] == "" {
			return i
		}
	}
	return -1
}

// Conclusion is the thematic sentence revealed at the end
func (s *WordDecodeSession) Conclusion() string {
	return content.WordConclusion
}

// Points reports the accumulated score as eco points
func (s *WordDecodeSession) Points() int {
	return s.Score
}
