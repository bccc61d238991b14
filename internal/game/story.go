package game

import (
	"errors"

	"ecoquest/internal/content"
)

const (
	// StoryPointsPerCorrect converts the story score into eco points
	StoryPointsPerCorrect = 10
	// StoryRetryFeedback is shown when the mastery gate blocks an answer
	StoryRetryFeedback = "That's not the correct approach. Try again!"
)

var (
	ErrStoryComplete  = errors.New("story: all questions answered")
	ErrStoryBadOption = errors.New("story: option index out of range")
)

// StorySession is the mastery-quiz state machine for one story. A wrong
// answer sets transient feedback and never advances; only a correct answer
// moves the cursor, so a completed story always scores the full question
// count.
type StorySession struct {
	Story         content.Story
	QuestionIndex int
	Score         int
	Feedback      string
	Done          bool
}

// NewStorySession starts at the story's first question
func NewStorySession(story content.Story) *StorySession {
	return &StorySession{Story: story}
}

// Current returns the question under the cursor
func (s *StorySession) Current() content.StoryQuestion {
	return s.Story.Questions[s.QuestionIndex]
}

// Answer applies the mastery gate. It reports whether the session advanced.
func (s *StorySession) Answer(idx int) (bool, error) {
	if s.Done {
		return false, ErrStoryComplete
	}
	q := s.Current()
	if idx < 0 || idx >= len(q.Options) {
		return false, ErrStoryBadOption
	}
	if idx != q.Correct {
		s.Feedback = StoryRetryFeedback
		return false, nil
	}

	s.Score++
	s.Feedback = ""
	if s.QuestionIndex+1 >= len(s.Story.Questions) {
		s.Done = true
	} else {
		s.QuestionIndex++
	}
	return true, nil
}

// Points converts the score into eco points
func (s *StorySession) Points() int {
	return s.Score * StoryPointsPerCorrect
}
