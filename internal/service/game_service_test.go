package service

import (
	"errors"
	"testing"

	"ecoquest/internal/content"
	"ecoquest/internal/game"
)

func TestQuizLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	quiz, err := env.games.GetQuiz(user.ID)
	if err != nil {
		t.Fatalf("GetQuiz() error = %v", err)
	}
	if quiz.Phase != game.QuizSelectingDifficulty {
		t.Fatalf("Phase = %s, want %s", quiz.Phase, game.QuizSelectingDifficulty)
	}

	quiz, err = env.games.SelectQuizDifficulty(user.ID, content.DifficultyBeginner)
	if err != nil {
		t.Fatalf("SelectQuizDifficulty() error = %v", err)
	}
	if quiz.Phase != game.QuizPlaying {
		t.Fatalf("Phase = %s, want %s", quiz.Phase, game.QuizPlaying)
	}
	if len(quiz.Questions) != game.QuizQuestionCount {
		t.Fatalf("question count = %d, want %d", len(quiz.Questions), game.QuizQuestionCount)
	}

	// Answer every question correctly
	for i := 0; i < game.QuizQuestionCount; i++ {
		quiz, err = env.games.AnswerQuiz(user.ID, quiz.Current().Correct)
		if err != nil {
			t.Fatalf("AnswerQuiz() question %d error = %v", i, err)
		}
		quiz, err = env.games.NextQuizQuestion(user.ID)
		if err != nil {
			t.Fatalf("NextQuizQuestion() question %d error = %v", i, err)
		}
	}
	if quiz.Phase != game.QuizSummary {
		t.Fatalf("Phase = %s, want %s", quiz.Phase, game.QuizSummary)
	}

	result, updated, _, err := env.games.FinishQuiz(user.ID)
	if err != nil {
		t.Fatalf("FinishQuiz() error = %v", err)
	}
	if result.Score != game.QuizQuestionCount {
		t.Errorf("Score = %d, want %d", result.Score, game.QuizQuestionCount)
	}
	wantPoints := game.QuizQuestionCount * game.QuizPointsPerCorrect
	if updated.EcoPoints != wantPoints {
		t.Errorf("EcoPoints = %d, want %d", updated.EcoPoints, wantPoints)
	}

	// The session is gone once the points are banked
	if _, err := env.games.GetQuiz(user.ID); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("GetQuiz() after finish error = %v, want ErrNoActiveGame", err)
	}

	stats, err := env.gameRepo.GetStats(user.ID)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, want 1", stats.GamesPlayed)
	}
	if stats.BestQuiz != game.QuizQuestionCount {
		t.Errorf("BestQuiz = %d, want %d", stats.BestQuiz, game.QuizQuestionCount)
	}
}

func TestQuizFinishRequiresSummary(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	if _, err := env.games.SelectQuizDifficulty(user.ID, content.DifficultyBeginner); err != nil {
		t.Fatalf("SelectQuizDifficulty() error = %v", err)
	}

	if _, _, _, err := env.games.FinishQuiz(user.ID); !errors.Is(err, ErrGameNotFinished) {
		t.Errorf("FinishQuiz() mid-game error = %v, want ErrGameNotFinished", err)
	}
}

func TestQuizCountdownExpiry(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	if _, err := env.games.SelectQuizDifficulty(user.ID, content.DifficultyBeginner); err != nil {
		t.Fatalf("SelectQuizDifficulty() error = %v", err)
	}
	if env.sched.PendingCount() != 1 {
		t.Fatalf("pending timers = %d, want 1", env.sched.PendingCount())
	}

	env.sched.Advance()

	quiz, err := env.games.GetQuiz(user.ID)
	if err != nil {
		t.Fatalf("GetQuiz() error = %v", err)
	}
	if !quiz.Answered {
		t.Error("expiry should mark the question answered")
	}
	if quiz.Answers[quiz.Cursor] != game.AnswerSkipped {
		t.Errorf("answer = %d, want skipped sentinel %d", quiz.Answers[quiz.Cursor], game.AnswerSkipped)
	}
}

func TestQuizAnswerCancelsCountdown(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	quiz, err := env.games.SelectQuizDifficulty(user.ID, content.DifficultyBeginner)
	if err != nil {
		t.Fatalf("SelectQuizDifficulty() error = %v", err)
	}
	if _, err := env.games.AnswerQuiz(user.ID, quiz.Current().Correct); err != nil {
		t.Fatalf("AnswerQuiz() error = %v", err)
	}
	if env.sched.PendingCount() != 0 {
		t.Errorf("pending timers after answer = %d, want 0", env.sched.PendingCount())
	}

	// A stale fire must not touch the answered question
	env.sched.Advance()
	quiz, err = env.games.GetQuiz(user.ID)
	if err != nil {
		t.Fatalf("GetQuiz() error = %v", err)
	}
	if quiz.Answers[0] == game.AnswerSkipped {
		t.Error("stale expiry overwrote a recorded answer")
	}
}

func TestDiscardDropsSessionSafely(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	if _, err := env.games.SelectQuizDifficulty(user.ID, content.DifficultyBeginner); err != nil {
		t.Fatalf("SelectQuizDifficulty() error = %v", err)
	}

	env.games.Discard(user.ID)
	env.sched.Advance()

	if _, err := env.games.GetQuiz(user.ID); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("GetQuiz() after discard error = %v, want ErrNoActiveGame", err)
	}
}

func TestWrongGameKind(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	if _, err := env.games.GetMemory(user.ID); !errors.Is(err, ErrWrongGame) {
		t.Errorf("GetMemory() during quiz error = %v, want ErrWrongGame", err)
	}
}

func TestSessionRestoredFromStore(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	if _, err := env.games.SelectQuizDifficulty(user.ID, content.DifficultyBeginner); err != nil {
		t.Fatalf("SelectQuizDifficulty() error = %v", err)
	}

	// A fresh service instance sees only the persisted state
	restored := NewGameService(env.gameRepo, env.profile, game.NewManualScheduler())
	quiz, err := restored.GetQuiz(user.ID)
	if err != nil {
		t.Fatalf("GetQuiz() on fresh service error = %v", err)
	}
	if quiz.Phase != game.QuizPlaying {
		t.Errorf("restored Phase = %s, want %s", quiz.Phase, game.QuizPlaying)
	}
	if len(quiz.Questions) != game.QuizQuestionCount {
		t.Errorf("restored question count = %d, want %d", len(quiz.Questions), game.QuizQuestionCount)
	}
}

func TestRestoredQuizRearmsCountdown(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	env.games.StartQuiz(user.ID)
	if _, err := env.games.SelectQuizDifficulty(user.ID, content.DifficultyBeginner); err != nil {
		t.Fatalf("SelectQuizDifficulty() error = %v", err)
	}

	sched := game.NewManualScheduler()
	restored := NewGameService(env.gameRepo, env.profile, sched)
	if _, err := restored.GetQuiz(user.ID); err != nil {
		t.Fatalf("GetQuiz() on fresh service error = %v", err)
	}
	if got := sched.PendingCount(); got != 1 {
		t.Fatalf("pending actions after restore = %d, want 1", got)
	}

	sched.Advance()
	quiz, err := restored.GetQuiz(user.ID)
	if err != nil {
		t.Fatalf("GetQuiz() after expiry error = %v", err)
	}
	if !quiz.Answered {
		t.Error("question not marked answered after the restored countdown fired")
	}
	if len(quiz.Answers) != 1 || quiz.Answers[0] != game.AnswerSkipped {
		t.Errorf("Answers = %v, want [%d]", quiz.Answers, game.AnswerSkipped)
	}
}

func TestWordDecodeSolveAndAdvance(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	session := env.games.StartWordDecode(user.ID)
	word := session.Current().Word
	for i := 1; i < len(word)-1; i++ {
		if _, err := env.games.SetWordLetter(user.ID, i, string(word[i])); err != nil {
			t.Fatalf("SetWordLetter(%d) error = %v", i, err)
		}
	}

	session, solved, err := env.games.CheckWord(user.ID)
	if err != nil {
		t.Fatalf("CheckWord() error = %v", err)
	}
	if !solved {
		t.Fatal("CheckWord() = false for a fully correct word")
	}
	if session.Score != game.WordPointsPerSolve {
		t.Errorf("Score = %d, want %d", session.Score, game.WordPointsPerSolve)
	}

	session, err = env.games.NextWord(user.ID)
	if err != nil {
		t.Fatalf("NextWord() error = %v", err)
	}
	if session.Index != 1 {
		t.Errorf("Index = %d, want 1", session.Index)
	}
	if session.Status != game.DecodePlaying {
		t.Errorf("Status = %s, want %s", session.Status, game.DecodePlaying)
	}

	// The run is not finished yet, so the score cannot be banked
	if _, _, _, err := env.games.FinishWordDecode(user.ID); !errors.Is(err, ErrGameNotFinished) {
		t.Errorf("FinishWordDecode() mid-run error = %v, want ErrGameNotFinished", err)
	}
}

func TestWordDecodeIncorrectReverts(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	session := env.games.StartWordDecode(user.ID)
	word := session.Current().Word
	for i := 1; i < len(word)-1; i++ {
		if _, err := env.games.SetWordLetter(user.ID, i, "Z"); err != nil {
			t.Fatalf("SetWordLetter(%d) error = %v", i, err)
		}
	}

	session, solved, err := env.games.CheckWord(user.ID)
	if err != nil {
		t.Fatalf("CheckWord() error = %v", err)
	}
	if solved {
		t.Fatal("CheckWord() = true for a wrong word")
	}
	if session.Status != game.DecodeIncorrect {
		t.Fatalf("Status = %s, want %s", session.Status, game.DecodeIncorrect)
	}

	env.sched.Advance()

	session, err = env.games.GetWordDecode(user.ID)
	if err != nil {
		t.Fatalf("GetWordDecode() error = %v", err)
	}
	if session.Status != game.DecodePlaying {
		t.Errorf("Status after revert = %s, want %s", session.Status, game.DecodePlaying)
	}
	if session.Entries[1] != "Z" {
		t.Error("revert should keep the entered letters")
	}
}

func TestMemoryMatchAndMismatch(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	session := env.games.StartMemory(user.ID)

	// Find a matching pair and a mismatching tile on the fixed board
	first, second, other := -1, -1, -1
	for i := range session.Tiles {
		for j := i + 1; j < len(session.Tiles); j++ {
			if session.Tiles[i] == session.Tiles[j] {
				first, second = i, j
			} else if other < 0 {
				other = j
			}
		}
	}
	if first < 0 || other < 0 {
		t.Fatal("board is missing a pair or a distinct tile")
	}

	session, err := env.games.FlipTile(user.ID, first)
	if err != nil {
		t.Fatalf("FlipTile(first) error = %v", err)
	}
	session, err = env.games.FlipTile(user.ID, second)
	if err != nil {
		t.Fatalf("FlipTile(second) error = %v", err)
	}
	if !session.Matched[first] || !session.Matched[second] {
		t.Error("equal tiles should join the matched set")
	}
	if session.Moves != 1 {
		t.Errorf("Moves = %d, want 1", session.Moves)
	}
}

func TestMemoryMismatchRevert(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	session := env.games.StartMemory(user.ID)

	// Two tiles with different symbols
	first, second := 0, -1
	for j := 1; j < len(session.Tiles); j++ {
		if session.Tiles[j] != session.Tiles[first] {
			second = j
			break
		}
	}
	if second < 0 {
		t.Fatal("board has no mismatching tiles")
	}

	if _, err := env.games.FlipTile(user.ID, first); err != nil {
		t.Fatalf("FlipTile(first) error = %v", err)
	}
	session, err := env.games.FlipTile(user.ID, second)
	if err != nil {
		t.Fatalf("FlipTile(second) error = %v", err)
	}
	if len(session.Mismatch) != 2 {
		t.Fatalf("Mismatch len = %d, want 2", len(session.Mismatch))
	}

	// Further flips are blocked while the pair is revealed
	if _, err := env.games.FlipTile(user.ID, (second+1)%len(session.Tiles)); !errors.Is(err, game.ErrMemoryTileBlocked) {
		t.Errorf("FlipTile() while blocked error = %v, want ErrMemoryTileBlocked", err)
	}

	env.sched.Advance()

	session, err = env.games.GetMemory(user.ID)
	if err != nil {
		t.Fatalf("GetMemory() error = %v", err)
	}
	if len(session.Mismatch) != 0 || len(session.Flipped) != 0 {
		t.Error("revert should face the mismatched tiles back down")
	}
}

func TestStoryMasteryAndFinish(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	session, err := env.games.StartStory(user.ID, 1)
	if err != nil {
		t.Fatalf("StartStory() error = %v", err)
	}

	// Wrong answer hits the mastery gate and never advances
	wrong := (session.Current().Correct + 1) % len(session.Current().Options)
	session, advanced, err := env.games.AnswerStory(user.ID, wrong)
	if err != nil {
		t.Fatalf("AnswerStory() error = %v", err)
	}
	if advanced {
		t.Error("wrong answer must not advance")
	}
	if session.Feedback != game.StoryRetryFeedback {
		t.Errorf("Feedback = %q, want retry prompt", session.Feedback)
	}

	for !session.Done {
		session, _, err = env.games.AnswerStory(user.ID, session.Current().Correct)
		if err != nil {
			t.Fatalf("AnswerStory() error = %v", err)
		}
	}

	questions := len(session.Story.Questions)
	points, updated, _, err := env.games.FinishStory(user.ID)
	if err != nil {
		t.Fatalf("FinishStory() error = %v", err)
	}
	if points != questions*game.StoryPointsPerCorrect {
		t.Errorf("points = %d, want %d", points, questions*game.StoryPointsPerCorrect)
	}
	if updated.EcoPoints != points {
		t.Errorf("EcoPoints = %d, want %d", updated.EcoPoints, points)
	}

	// The record keeps the question-count score; the return value is points
	records, err := env.gameRepo.GetRecentRecords(user.ID, 1)
	if err != nil {
		t.Fatalf("GetRecentRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Score != questions {
		t.Errorf("record Score = %d, want %d", records[0].Score, questions)
	}
	if records[0].PointsEarned != points {
		t.Errorf("record PointsEarned = %d, want %d", records[0].PointsEarned, points)
	}
}

func TestStartStoryUnknownID(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Quinn")

	if _, err := env.games.StartStory(user.ID, 9999); !errors.Is(err, ErrUnknownStory) {
		t.Errorf("StartStory() error = %v, want ErrUnknownStory", err)
	}
}
