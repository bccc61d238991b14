package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"ecoquest/internal/content"
	"ecoquest/internal/game"
	"ecoquest/internal/models"
	"ecoquest/internal/repository"
)

var (
	ErrNoActiveGame    = errors.New("no active game session")
	ErrWrongGame       = errors.New("a different game is already in progress")
	ErrUnknownStory    = errors.New("unknown story")
	ErrGameNotFinished = errors.New("game session is not finished")
)

// staleAfter is how long an untouched in-memory session survives before
// the cleanup pass drops it
const staleAfter = 2 * time.Hour

// activeGame holds one user's in-flight session. Exactly one of the
// engine pointers is set, matching Kind. The cancel slot holds the one
// pending delayed action (quiz countdown or board revert); arming a new
// action always cancels the previous one first.
type activeGame struct {
	Kind    game.Kind                `json:"kind"`
	Quiz    *game.QuizSession        `json:"quiz,omitempty"`
	Word    *game.WordDecodeSession  `json:"word,omitempty"`
	Memory  *game.MemorySession      `json:"memory,omitempty"`
	Story   *game.StorySession       `json:"story,omitempty"`
	cancel  game.CancelFunc
	touched time.Time
}

// GameService is the session host: it keeps at most one in-flight game
// per user in memory, drives the engine state machines, owns their
// delayed actions, and converts finished sessions into awarded points
// and game records.
type GameService struct {
	mu       sync.Mutex
	active   map[int64]*activeGame
	gameRepo *repository.GameRepository
	profile  *ProfileService
	sched    game.Scheduler
}

// NewGameService creates a new game service
func NewGameService(gameRepo *repository.GameRepository, profile *ProfileService, sched game.Scheduler) *GameService {
	return &GameService{
		active:   make(map[int64]*activeGame),
		gameRepo: gameRepo,
		profile:  profile,
		sched:    sched,
	}
}

// get returns the user's active game, restoring it from the database if
// the process restarted since it was saved. Caller must hold s.mu.
func (s *GameService) get(userID int64, kind game.Kind) (*activeGame, error) {
	if ag, ok := s.active[userID]; ok {
		if ag.Kind != kind {
			return nil, ErrWrongGame
		}
		ag.touched = time.Now()
		return ag, nil
	}

	saved, err := s.gameRepo.LoadState(userID, string(kind))
	if err != nil || saved == "" {
		if err != nil {
			log.Printf("Failed to load saved game state for user %d: %v", userID, err)
		}
		return nil, ErrNoActiveGame
	}

	ag := &activeGame{}
	if err := json.Unmarshal([]byte(saved), ag); err != nil || ag.Kind != kind {
		// Malformed or mismatched state is treated as absent
		_ = s.gameRepo.DeleteState(userID, string(kind))
		return nil, ErrNoActiveGame
	}
	ag.touched = time.Now()
	s.active[userID] = ag
	// A restored in-play quiz needs its countdown back; a deadline that
	// passed while the session was only on disk fires right away.
	if ag.Kind == game.KindQuiz && ag.Quiz.Phase == game.QuizPlaying && !ag.Quiz.Answered {
		s.armQuizExpiry(userID, ag)
	}
	return ag, nil
}

// start installs a fresh session, discarding any previous one
func (s *GameService) start(userID int64, ag *activeGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropLocked(userID)
	ag.touched = time.Now()
	s.active[userID] = ag
	s.persist(userID, ag)
}

// persist saves the session state. Failures are logged, not fatal: the
// in-memory copy remains authoritative. Caller must hold s.mu.
func (s *GameService) persist(userID int64, ag *activeGame) {
	data, err := json.Marshal(ag)
	if err != nil {
		log.Printf("Failed to marshal game state for user %d: %v", userID, err)
		return
	}
	if err := s.gameRepo.SaveState(userID, string(ag.Kind), string(data)); err != nil {
		log.Printf("Failed to save game state for user %d: %v", userID, err)
	}
}

// dropLocked cancels any pending delayed action and forgets the user's
// session. Caller must hold s.mu.
func (s *GameService) dropLocked(userID int64) {
	if ag, ok := s.active[userID]; ok {
		if ag.cancel != nil {
			ag.cancel()
			ag.cancel = nil
		}
		if err := s.gameRepo.DeleteState(userID, string(ag.Kind)); err != nil {
			log.Printf("Failed to delete game state for user %d: %v", userID, err)
		}
		delete(s.active, userID)
	}
}

// Discard abandons the user's in-flight game, if any
func (s *GameService) Discard(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropLocked(userID)
}

// CleanupStaleSessions drops in-memory sessions nobody has touched for a
// while. Their persisted state survives, so a returning player resumes.
func (s *GameService) CleanupStaleSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-staleAfter)
	for userID, ag := range s.active {
		if ag.touched.Before(cutoff) {
			if ag.cancel != nil {
				ag.cancel()
				ag.cancel = nil
			}
			delete(s.active, userID)
		}
	}
}

// complete awards the finished session's points, writes the game record
// and clears the session. Caller must hold s.mu.
func (s *GameService) complete(userID int64, kind game.Kind, score, points int) (*models.User, []models.Achievement, error) {
	user, badges, err := s.profile.AwardPoints(userID, points)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.gameRepo.CreateRecord(userID, string(kind), score, points); err != nil {
		return nil, nil, fmt.Errorf("failed to record game: %w", err)
	}
	s.dropLocked(userID)
	return user, badges, nil
}

// ---- Eco Quiz ----

// StartQuiz opens a quiz session waiting for a difficulty choice
func (s *GameService) StartQuiz(userID int64) *game.QuizSession {
	quiz := game.NewQuizSession()
	s.start(userID, &activeGame{Kind: game.KindQuiz, Quiz: quiz})
	return quiz
}

// GetQuiz returns the user's in-flight quiz
func (s *GameService) GetQuiz(userID int64) (*game.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindQuiz)
	if err != nil {
		return nil, err
	}
	return ag.Quiz, nil
}

// SelectQuizDifficulty freezes the working set and starts the first
// question's countdown
func (s *GameService) SelectQuizDifficulty(userID int64, d content.Difficulty) (*game.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindQuiz)
	if err != nil {
		return nil, err
	}
	if err := ag.Quiz.SelectDifficulty(d, time.Now()); err != nil {
		return nil, err
	}
	s.armQuizExpiry(userID, ag)
	s.persist(userID, ag)
	return ag.Quiz, nil
}

// armQuizExpiry schedules the skip action for the current question's
// deadline, replacing any pending action. Caller must hold s.mu.
func (s *GameService) armQuizExpiry(userID int64, ag *activeGame) {
	if ag.cancel != nil {
		ag.cancel()
	}
	quiz := ag.Quiz
	ag.cancel = s.sched.AfterFunc(time.Until(quiz.Deadline), func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// The session may have ended or been replaced since arming
		current, ok := s.active[userID]
		if !ok || current.Quiz != quiz {
			return
		}
		if quiz.Expire() {
			s.persist(userID, current)
		}
	})
}

// AnswerQuiz records the chosen option and stops the countdown
func (s *GameService) AnswerQuiz(userID int64, option int) (*game.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindQuiz)
	if err != nil {
		return nil, err
	}
	if err := ag.Quiz.SelectOption(option); err != nil {
		return nil, err
	}
	if ag.cancel != nil {
		ag.cancel()
		ag.cancel = nil
	}
	s.persist(userID, ag)
	return ag.Quiz, nil
}

// RevealQuizHint shows the current question's hint
func (s *GameService) RevealQuizHint(userID int64) (*game.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindQuiz)
	if err != nil {
		return nil, err
	}
	if ag.Quiz.RevealHint() {
		s.persist(userID, ag)
	}
	return ag.Quiz, nil
}

// NextQuizQuestion advances the quiz, restarting the countdown, or moves
// it to the summary
func (s *GameService) NextQuizQuestion(userID int64) (*game.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindQuiz)
	if err != nil {
		return nil, err
	}
	if err := ag.Quiz.Next(time.Now()); err != nil {
		return nil, err
	}
	if ag.Quiz.Phase == game.QuizPlaying {
		s.armQuizExpiry(userID, ag)
	} else if ag.cancel != nil {
		ag.cancel()
		ag.cancel = nil
	}
	s.persist(userID, ag)
	return ag.Quiz, nil
}

// FinishQuiz banks the summary's points and ends the session
func (s *GameService) FinishQuiz(userID int64) (game.QuizResult, *models.User, []models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindQuiz)
	if err != nil {
		return game.QuizResult{}, nil, nil, err
	}
	if ag.Quiz.Phase != game.QuizSummary {
		return game.QuizResult{}, nil, nil, ErrGameNotFinished
	}
	result := ag.Quiz.Summary()
	user, badges, err := s.complete(userID, game.KindQuiz, result.Score, ag.Quiz.Points())
	return result, user, badges, err
}

// ---- Eco Word Decode ----

// StartWordDecode opens a word decode session on the first puzzle
func (s *GameService) StartWordDecode(userID int64) *game.WordDecodeSession {
	word := game.NewWordDecodeSession()
	s.start(userID, &activeGame{Kind: game.KindWordDecode, Word: word})
	return word
}

// GetWordDecode returns the user's in-flight word decode session
func (s *GameService) GetWordDecode(userID int64) (*game.WordDecodeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindWordDecode)
	if err != nil {
		return nil, err
	}
	return ag.Word, nil
}

// SetWordLetter records a letter in an open slot
func (s *GameService) SetWordLetter(userID int64, pos int, letter string) (*game.WordDecodeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindWordDecode)
	if err != nil {
		return nil, err
	}
	if err := ag.Word.SetLetter(pos, letter); err != nil {
		return nil, err
	}
	s.persist(userID, ag)
	return ag.Word, nil
}

// CheckWord evaluates the assembled word. A miss shows transient shake
// feedback that reverts to play shortly after, keeping the entries.
func (s *GameService) CheckWord(userID int64) (*game.WordDecodeSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindWordDecode)
	if err != nil {
		return nil, false, err
	}
	correct, err := ag.Word.CheckAnswer()
	if err != nil {
		return nil, false, err
	}
	if !correct {
		s.armWordRevert(userID, ag)
	}
	s.persist(userID, ag)
	return ag.Word, correct, nil
}

// armWordRevert schedules the incorrect-state revert. Caller must hold s.mu.
func (s *GameService) armWordRevert(userID int64, ag *activeGame) {
	if ag.cancel != nil {
		ag.cancel()
	}
	word := ag.Word
	ag.cancel = s.sched.AfterFunc(game.WordIncorrectDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		current, ok := s.active[userID]
		if !ok || current.Word != word {
			return
		}
		word.ClearIncorrect()
		s.persist(userID, current)
	})
}

// NextWord advances past a solved puzzle
func (s *GameService) NextWord(userID int64) (*game.WordDecodeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindWordDecode)
	if err != nil {
		return nil, err
	}
	if err := ag.Word.NextWord(); err != nil {
		return nil, err
	}
	s.persist(userID, ag)
	return ag.Word, nil
}

// FinishWordDecode banks the accumulated score and ends the session
func (s *GameService) FinishWordDecode(userID int64) (int, *models.User, []models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindWordDecode)
	if err != nil {
		return 0, nil, nil, err
	}
	if ag.Word.Status != game.DecodeFinished {
		return 0, nil, nil, ErrGameNotFinished
	}
	score := ag.Word.Score
	user, badges, err := s.complete(userID, game.KindWordDecode, score, ag.Word.Points())
	return score, user, badges, err
}

// ---- Nature Match ----

// StartMemory opens a memory board with the full symbol set
func (s *GameService) StartMemory(userID int64) *game.MemorySession {
	board := game.NewMemorySession(content.MemorySymbols())
	s.start(userID, &activeGame{Kind: game.KindMemory, Memory: board})
	return board
}

// GetMemory returns the user's in-flight memory board
func (s *GameService) GetMemory(userID int64) (*game.MemorySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindMemory)
	if err != nil {
		return nil, err
	}
	return ag.Memory, nil
}

// FlipTile turns a tile face up; a mismatch is revealed briefly and then
// reverted by the delayed action
func (s *GameService) FlipTile(userID int64, idx int) (*game.MemorySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindMemory)
	if err != nil {
		return nil, err
	}
	if err := ag.Memory.Flip(idx); err != nil {
		return nil, err
	}
	if len(ag.Memory.Mismatch) == 2 {
		s.armMemoryRevert(userID, ag)
	}
	s.persist(userID, ag)
	return ag.Memory, nil
}

// armMemoryRevert schedules the mismatch revert. Caller must hold s.mu.
func (s *GameService) armMemoryRevert(userID int64, ag *activeGame) {
	if ag.cancel != nil {
		ag.cancel()
	}
	board := ag.Memory
	ag.cancel = s.sched.AfterFunc(game.MemoryRevertDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		current, ok := s.active[userID]
		if !ok || current.Memory != board {
			return
		}
		board.RevertMismatch()
		s.persist(userID, current)
	})
}

// FinishMemory banks the board score once every pair is matched
func (s *GameService) FinishMemory(userID int64) (int, *models.User, []models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindMemory)
	if err != nil {
		return 0, nil, nil, err
	}
	if !ag.Memory.Complete() {
		return 0, nil, nil, ErrGameNotFinished
	}
	score := ag.Memory.Points()
	user, badges, err := s.complete(userID, game.KindMemory, score, score)
	return score, user, badges, err
}

// ---- Eco Stories ----

// StartStory opens the chosen story's mastery quiz
func (s *GameService) StartStory(userID, storyID int64) (*game.StorySession, error) {
	story, ok := content.StoryByID(storyID)
	if !ok {
		return nil, ErrUnknownStory
	}
	session := game.NewStorySession(story)
	s.start(userID, &activeGame{Kind: game.KindStory, Story: session})
	return session, nil
}

// GetStory returns the user's in-flight story session
func (s *GameService) GetStory(userID int64) (*game.StorySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindStory)
	if err != nil {
		return nil, err
	}
	return ag.Story, nil
}

// AnswerStory applies the mastery gate to the chosen option
func (s *GameService) AnswerStory(userID int64, option int) (*game.StorySession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindStory)
	if err != nil {
		return nil, false, err
	}
	advanced, err := ag.Story.Answer(option)
	if err != nil {
		return nil, false, err
	}
	s.persist(userID, ag)
	return ag.Story, advanced, nil
}

// FinishStory banks the story's points and ends the session
func (s *GameService) FinishStory(userID int64) (int, *models.User, []models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ag, err := s.get(userID, game.KindStory)
	if err != nil {
		return 0, nil, nil, err
	}
	if !ag.Story.Done {
		return 0, nil, nil, ErrGameNotFinished
	}
	score := ag.Story.Score
	points := ag.Story.Points()
	user, badges, err := s.complete(userID, game.KindStory, score, points)
	return points, user, badges, err
}
