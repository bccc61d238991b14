package game

import (
	"errors"
	"time"

	"ecoquest/internal/content"
)

const (
	// QuizQuestionCount is the fixed working-set size per run
	QuizQuestionCount = 5
	// QuizQuestionTime is the per-question countdown
	QuizQuestionTime = 20 * time.Second
	// QuizPointsPerCorrect converts the summary score into eco points
	QuizPointsPerCorrect = 10
	// AnswerSkipped marks a question the countdown expired on
	AnswerSkipped = -1
)

// QuizPhase identifies where a quiz session is in its lifecycle
type QuizPhase string

const (
	QuizSelectingDifficulty QuizPhase = "selecting_difficulty"
	QuizPlaying             QuizPhase = "playing"
	QuizSummary             QuizPhase = "summary"
)

var (
	ErrQuizNotSelecting  = errors.New("quiz: difficulty already selected")
	ErrQuizNotPlaying    = errors.New("quiz: session is not in play")
	ErrQuizAnswered      = errors.New("quiz: question already answered")
	ErrQuizNotAnswered   = errors.New("quiz: question not answered yet")
	ErrQuizInvalidOption = errors.New("quiz: option index out of range")
	ErrQuizBadDifficulty = errors.New("quiz: unknown difficulty")
)

// QuizSession is the state machine for one quiz run. The working set is
// frozen at SelectDifficulty time; only the cursor, the recorded answers
// and the per-question flags advance afterwards.
type QuizSession struct {
	Phase     QuizPhase
	Questions []content.QuizQuestion
	Cursor    int
	Answers   []int
	Answered  bool
	HintShown bool
	Deadline  time.Time
}

// NewQuizSession creates a session waiting for a difficulty choice
func NewQuizSession() *QuizSession {
	return &QuizSession{Phase: QuizSelectingDifficulty}
}

// SelectDifficulty samples the working set and enters play
func (s *QuizSession) SelectDifficulty(d content.Difficulty, now time.Time) error {
	if s.Phase != QuizSelectingDifficulty {
		return ErrQuizNotSelecting
	}
	if !content.ValidDifficulty(d) {
		return ErrQuizBadDifficulty
	}
	s.Questions = Sample(content.QuizQuestions(d), QuizQuestionCount)
	s.Phase = QuizPlaying
	s.Cursor = 0
	s.Answers = nil
	s.Answered = false
	s.HintShown = false
	s.Deadline = now.Add(QuizQuestionTime)
	return nil
}

// Current returns the question under the cursor
func (s *QuizSession) Current() content.QuizQuestion {
	return s.Questions[s.Cursor]
}

// SelectOption records the chosen option for the current question and
// stops its countdown. Correctness is not evaluated here: scoring happens
// in one pass at summary time.
func (s *QuizSession) SelectOption(idx int) error {
	if s.Phase != QuizPlaying {
		return ErrQuizNotPlaying
	}
	if s.Answered {
		return ErrQuizAnswered
	}
	if idx < 0 || idx >= len(s.Current().Options) {
		return ErrQuizInvalidOption
	}
	s.Answers = append(s.Answers, idx)
	s.Answered = true
	return nil
}

// Expire force-answers the current question as skipped. It is a no-op if
// the question was already answered or the session is not in play, so a
// countdown firing into a stale session does no harm.
func (s *QuizSession) Expire() bool {
	if s.Phase != QuizPlaying || s.Answered {
		return false
	}
	s.Answers = append(s.Answers, AnswerSkipped)
	s.Answered = true
	return true
}

// TimedOut reports whether the current question's countdown has elapsed
// without an answer
func (s *QuizSession) TimedOut(now time.Time) bool {
	return s.Phase == QuizPlaying && !s.Answered && !now.Before(s.Deadline)
}

// TimeLeft returns the remaining whole seconds on the current countdown
func (s *QuizSession) TimeLeft(now time.Time) int {
	if s.Phase != QuizPlaying || s.Answered {
		return 0
	}
	left := int(s.Deadline.Sub(now).Round(time.Second) / time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// RevealHint marks the hint as shown. It may be revealed at most once per
// question and never after answering; it does not affect scoring.
func (s *QuizSession) RevealHint() bool {
	if s.Phase != QuizPlaying || s.Answered || s.HintShown {
		return false
	}
	s.HintShown = true
	return true
}

// IsLast reports whether the cursor is on the final question
func (s *QuizSession) IsLast() bool {
	return s.Cursor == len(s.Questions)-1
}

// Next advances to the following question, resetting the countdown, or
// transitions to the summary after the last one
func (s *QuizSession) Next(now time.Time) error {
	if s.Phase != QuizPlaying {
		return ErrQuizNotPlaying
	}
	if !s.Answered {
		return ErrQuizNotAnswered
	}
	if s.IsLast() {
		s.Phase = QuizSummary
		return nil
	}
	s.Cursor++
	s.Answered = false
	s.HintShown = false
	s.Deadline = now.Add(QuizQuestionTime)
	return nil
}

// QuizReview pairs a question with the recorded answer for the summary
type QuizReview struct {
	Question content.QuizQuestion
	Answer   int
	Skipped  bool
	Correct  bool
}

// QuizResult is the terminal summary of a quiz run
type QuizResult struct {
	Score  int
	Total  int
	Review []QuizReview
}

// Summary computes the result in a single pass over the recorded answers.
// A skipped question and a wrong pick score identically; they differ only
// in how the review displays them.
func (s *QuizSession) Summary() QuizResult {
	res := QuizResult{Total: len(s.Questions)}
	for i, q := range s.Questions {
		if i >= len(s.Answers) {
			break
		}
		r := QuizReview{
			Question: q,
			Answer:   s.Answers[i],
			Skipped:  s.Answers[i] == AnswerSkipped,
			Correct:  s.Answers[i] == q.Correct,
		}
		if r.Correct {
			res.Score++
		}
		res.Review = append(res.Review, r)
	}
	return res
}

// Points converts the summary score into eco points
func (s *QuizSession) Points() int {
	return s.Summary().Score * QuizPointsPerCorrect
}
