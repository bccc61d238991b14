package game

import (
	"testing"

	"ecoquest/internal/content"
)

func testStory() content.Story {
	return content.Story{
		ID:    99,
		Hero:  "Terra",
		Title: "The Test Grove",
		Questions: []content.StoryQuestion{
			{Prompt: "one", Options: []string{"a", "b"}, Correct: 0},
			{Prompt: "two", Options: []string{"a", "b"}, Correct: 1},
			{Prompt: "three", Options: []string{"a", "b", "c"}, Correct: 2},
		},
	}
}

func TestStoryMasteryGate(t *testing.T) {
	s := NewStorySession(testStory())

	advanced, err := s.Answer(1)
	if err != nil {
		t.Fatalf("wrong answer error = %v", err)
	}
	if advanced {
		t.Error("wrong answer advanced the story")
	}
	if s.QuestionIndex != 0 {
		t.Errorf("question index = %d, want 0", s.QuestionIndex)
	}
	if s.Score != 0 {
		t.Errorf("score = %d, want 0", s.Score)
	}
	if s.Feedback != StoryRetryFeedback {
		t.Errorf("feedback = %q, want retry prompt", s.Feedback)
	}

	advanced, err = s.Answer(0)
	if err != nil {
		t.Fatalf("correct answer error = %v", err)
	}
	if !advanced {
		t.Error("correct answer did not advance")
	}
	if s.QuestionIndex != 1 {
		t.Errorf("question index = %d, want 1", s.QuestionIndex)
	}
	if s.Feedback != "" {
		t.Errorf("feedback not cleared on advance, got %q", s.Feedback)
	}
}

func TestStoryBadOption(t *testing.T) {
	s := NewStorySession(testStory())
	if _, err := s.Answer(5); err != ErrStoryBadOption {
		t.Errorf("Answer(5) error = %v, want ErrStoryBadOption", err)
	}
	if _, err := s.Answer(-1); err != ErrStoryBadOption {
		t.Errorf("Answer(-1) error = %v, want ErrStoryBadOption", err)
	}
}

func TestStoryCompletionScoresFull(t *testing.T) {
	story := testStory()
	s := NewStorySession(story)

	// Miss each question once first; the gate means retries cost nothing
	for _, q := range story.Questions {
		wrong := (q.Correct + 1) % len(q.Options)
		if advanced, err := s.Answer(wrong); err != nil || advanced {
			t.Fatalf("wrong answer = (advanced=%v, err=%v)", advanced, err)
		}
		if advanced, err := s.Answer(q.Correct); err != nil || !advanced {
			t.Fatalf("correct answer = (advanced=%v, err=%v)", advanced, err)
		}
	}
	if !s.Done {
		t.Fatal("story did not complete")
	}

	if s.Score != len(story.Questions) {
		t.Errorf("completed score = %d, want %d", s.Score, len(story.Questions))
	}
	if s.Points() != len(story.Questions)*StoryPointsPerCorrect {
		t.Errorf("points = %d, want %d", s.Points(), len(story.Questions)*StoryPointsPerCorrect)
	}
	if _, err := s.Answer(0); err != ErrStoryComplete {
		t.Errorf("answering a finished story error = %v, want ErrStoryComplete", err)
	}
}

func TestStoryLibraryRuns(t *testing.T) {
	for _, story := range content.Stories() {
		s := NewStorySession(story)
		for !s.Done {
			if _, err := s.Answer(s.Current().Correct); err != nil {
				t.Fatalf("story %d: %v", story.ID, err)
			}
		}
		if s.Score != len(story.Questions) {
			t.Errorf("story %d score = %d, want %d", story.ID, s.Score, len(story.Questions))
		}
	}
}
