package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"ecoquest/internal/content"
	"ecoquest/internal/game"
	"ecoquest/internal/models"
	"ecoquest/internal/repository"
	"ecoquest/internal/service"
)

// GameHandler handles the mini-game HTTP requests
type GameHandler struct {
	gameService   *service.GameService
	speechService *service.SpeechService
	gameRepo      *repository.GameRepository
	middleware    *Middleware
	templates     *template.Template
	audioDir      string
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameService *service.GameService,
	speechService *service.SpeechService,
	gameRepo *repository.GameRepository,
	middleware *Middleware,
	templates *template.Template,
	audioDir string,
) *GameHandler {
	return &GameHandler{
		gameService:   gameService,
		speechService: speechService,
		gameRepo:      gameRepo,
		middleware:    middleware,
		templates:     templates,
		audioDir:      audioDir,
	}
}

func (h *GameHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render "+name, err)
	}
}

// redirectOnGameError sends session-level errors back to the games hub
// and reports everything else as a server error
func (h *GameHandler) redirectOnGameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveGame), errors.Is(err, service.ErrWrongGame):
		http.Redirect(w, r, "/games", http.StatusSeeOther)
	case errors.Is(err, service.ErrGameNotFinished):
		http.Error(w, "Finish the game first", http.StatusBadRequest)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Game action failed", err)
	}
}

// Hub renders the games overview page
func (h *GameHandler) Hub(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	stats, err := h.gameRepo.GetStats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load game stats", err)
		return
	}

	h.render(w, "games_hub.tmpl", GamesHubViewData{
		Title:     "Eco Games",
		User:      user,
		Stats:     stats,
		Stories:   content.Stories(),
		CSRFToken: h.middleware.CSRFToken(r),
	})
}

// results renders the shared end-of-game page
func (h *GameHandler) results(w http.ResponseWriter, r *http.Request, user *models.User, kind game.Kind, score, points int, badges []models.Achievement, review []game.QuizReview) {
	h.render(w, "game_results.tmpl", GameResultsViewData{
		Title:     "Results",
		User:      user,
		Kind:      kind,
		Score:     score,
		Points:    points,
		NewBadges: badges,
		Review:    review,
		CSRFToken: h.middleware.CSRFToken(r),
	})
}

// Exit discards the in-flight game and returns to the hub
func (h *GameHandler) Exit(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	h.gameService.Discard(user.ID)
	http.Redirect(w, r, "/games", http.StatusSeeOther)
}

// ---- Eco Quiz ----

// StartQuiz opens a quiz session on the difficulty screen
func (h *GameHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	h.gameService.StartQuiz(user.ID)
	http.Redirect(w, r, "/games/quiz", http.StatusSeeOther)
}

// ShowQuiz renders the quiz page for the session's current phase
func (h *GameHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	quiz, err := h.gameService.GetQuiz(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}

	h.render(w, "quiz.tmpl", QuizViewData{
		Title:        "Eco Quiz",
		User:         user,
		Quiz:         quiz,
		TimeLeft:     quiz.TimeLeft(time.Now()),
		Difficulties: content.Difficulties(),
		CSRFToken:    h.middleware.CSRFToken(r),
	})
}

// SelectQuizDifficulty freezes the working set and starts play
func (h *GameHandler) SelectQuizDifficulty(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	difficulty := content.Difficulty(r.FormValue("difficulty"))
	if _, err := h.gameService.SelectQuizDifficulty(user.ID, difficulty); err != nil {
		if errors.Is(err, game.ErrQuizBadDifficulty) {
			http.Redirect(w, r, "/games/quiz", http.StatusSeeOther)
			return
		}
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/quiz", http.StatusSeeOther)
}

// AnswerQuiz records the chosen option
func (h *GameHandler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	option, err := strconv.Atoi(r.FormValue("option"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if _, err := h.gameService.AnswerQuiz(user.ID, option); err != nil {
		// Late answers race the countdown; just show the current state
		if errors.Is(err, game.ErrQuizAnswered) {
			http.Redirect(w, r, "/games/quiz", http.StatusSeeOther)
			return
		}
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/quiz", http.StatusSeeOther)
}

// RevealQuizHint shows the current question's hint
func (h *GameHandler) RevealQuizHint(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	if _, err := h.gameService.RevealQuizHint(user.ID); err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/quiz", http.StatusSeeOther)
}

// NextQuizQuestion advances past an answered question
func (h *GameHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	if _, err := h.gameService.NextQuizQuestion(user.ID); err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/quiz", http.StatusSeeOther)
}

// FinishQuiz banks the points and shows the results page
func (h *GameHandler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	result, updated, badges, err := h.gameService.FinishQuiz(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	h.results(w, r, updated, game.KindQuiz, result.Score, result.Score*game.QuizPointsPerCorrect, badges, result.Review)
}

// ---- Eco Word Decode ----

// StartWordDecode opens a word decode session
func (h *GameHandler) StartWordDecode(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	h.gameService.StartWordDecode(user.ID)
	http.Redirect(w, r, "/games/word-decode", http.StatusSeeOther)
}

// ShowWordDecode renders the current puzzle
func (h *GameHandler) ShowWordDecode(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	session, err := h.gameService.GetWordDecode(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}

	data := WordDecodeViewData{
		Title:     "Eco Word Decode",
		User:      user,
		Session:   session,
		CSRFToken: h.middleware.CSRFToken(r),
	}
	if session.Status == game.DecodeFinished {
		data.Conclusion = content.WordConclusion
		data.Keywords = content.WordKeywords()
	}
	h.render(w, "word_decode.tmpl", data)
}

// SetWordLetter records a letter in an open slot
func (h *GameHandler) SetWordLetter(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	pos, err := strconv.Atoi(r.FormValue("position"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if _, err := h.gameService.SetWordLetter(user.ID, pos, r.FormValue("letter")); err != nil {
		if errors.Is(err, game.ErrDecodeBadSlot) || errors.Is(err, game.ErrDecodePrefilled) {
			http.Redirect(w, r, "/games/word-decode", http.StatusSeeOther)
			return
		}
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/word-decode", http.StatusSeeOther)
}

// CheckWord evaluates the assembled word
func (h *GameHandler) CheckWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	if _, _, err := h.gameService.CheckWord(user.ID); err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/word-decode", http.StatusSeeOther)
}

// NextWord advances to the following puzzle
func (h *GameHandler) NextWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	if _, err := h.gameService.NextWord(user.ID); err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/word-decode", http.StatusSeeOther)
}

// FinishWordDecode banks the run's points and shows the results page
func (h *GameHandler) FinishWordDecode(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	points, updated, badges, err := h.gameService.FinishWordDecode(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	h.results(w, r, updated, game.KindWordDecode, points, points, badges, nil)
}

// ---- Nature Match ----

// StartMemory opens a memory board
func (h *GameHandler) StartMemory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}
	h.gameService.StartMemory(user.ID)
	http.Redirect(w, r, "/games/memory", http.StatusSeeOther)
}

// ShowMemory renders the board
func (h *GameHandler) ShowMemory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	session, err := h.gameService.GetMemory(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}

	h.render(w, "memory.tmpl", MemoryViewData{
		Title:     "Nature Match",
		User:      user,
		Session:   session,
		CSRFToken: h.middleware.CSRFToken(r),
	})
}

// FlipTile turns a tile face up
func (h *GameHandler) FlipTile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	idx, err := strconv.Atoi(r.FormValue("tile"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if _, err := h.gameService.FlipTile(user.ID, idx); err != nil {
		// Blocked or repeated flips are routine double-clicks
		if errors.Is(err, game.ErrMemoryTileBlocked) || errors.Is(err, game.ErrMemoryTileFaceUp) || errors.Is(err, game.ErrMemoryTileMatched) {
			http.Redirect(w, r, "/games/memory", http.StatusSeeOther)
			return
		}
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/memory", http.StatusSeeOther)
}

// FinishMemory banks the board score and shows the results page
func (h *GameHandler) FinishMemory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	points, updated, badges, err := h.gameService.FinishMemory(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	h.results(w, r, updated, game.KindMemory, points, points, badges, nil)
}

// ---- Eco Stories ----

// StartStory opens the chosen story's mastery quiz
func (h *GameHandler) StartStory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	storyID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid story ID", http.StatusBadRequest)
		return
	}

	if _, err := h.gameService.StartStory(user.ID, storyID); err != nil {
		if errors.Is(err, service.ErrUnknownStory) {
			http.Redirect(w, r, "/games", http.StatusSeeOther)
			return
		}
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/story", http.StatusSeeOther)
}

// ShowStory renders the story page with its current question
func (h *GameHandler) ShowStory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	session, err := h.gameService.GetStory(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}

	// Read-aloud audio is best effort: a fetch failure just hides the button
	audioFile := ""
	if h.speechService != nil {
		if file, err := h.speechService.StoryAudioFile(r.Context(), int(session.Story.ID), session.Story.Narrative); err == nil {
			audioFile = file
		} else {
			log.Printf("Story audio unavailable for story %d: %v", session.Story.ID, err)
		}
	}

	h.render(w, "story.tmpl", StoryViewData{
		Title:     session.Story.Title,
		User:      user,
		Session:   session,
		AudioFile: audioFile,
		CSRFToken: h.middleware.CSRFToken(r),
	})
}

// AnswerStory applies the mastery gate to the chosen option
func (h *GameHandler) AnswerStory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	option, err := strconv.Atoi(r.FormValue("option"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if _, _, err := h.gameService.AnswerStory(user.ID, option); err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	http.Redirect(w, r, "/games/story", http.StatusSeeOther)
}

// FinishStory banks the story points and shows the results page
func (h *GameHandler) FinishStory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	points, updated, badges, err := h.gameService.FinishStory(user.ID)
	if err != nil {
		h.redirectOnGameError(w, r, err)
		return
	}
	h.results(w, r, updated, game.KindStory, points/game.StoryPointsPerCorrect, points, badges, nil)
}

// StoryAudio serves a generated read-aloud MP3
func (h *GameHandler) StoryAudio(w http.ResponseWriter, r *http.Request) {
	file := filepath.Base(r.PathValue("file"))
	if filepath.Ext(file) != ".mp3" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.audioDir, file))
}
