package handlers

import (
	"html/template"
	"net/http"

	"ecoquest/internal/game"
	"ecoquest/internal/repository"
	"ecoquest/internal/service"
)

// ProfileHandler renders the profile and achievements page
type ProfileHandler struct {
	profileService *service.ProfileService
	gameRepo       *repository.GameRepository
	middleware     *Middleware
	templates      *template.Template
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, gameRepo *repository.GameRepository, middleware *Middleware, templates *template.Template) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		gameRepo:       gameRepo,
		middleware:     middleware,
		templates:      templates,
	}
}

// ShowProfile renders the user's stats, progress and badge wall
func (h *ProfileHandler) ShowProfile(w http.ResponseWriter, r *http.Request) {
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

	achievements, err := h.profileService.GetAchievements(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load achievements", err)
		return
	}

	recent, err := h.gameRepo.GetRecentRecords(user.ID, 10)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load recent games", err)
		return
	}

	current, needed := game.LevelProgress(user.EcoPoints)

	data := ProfileViewData{
		Title:        "Profile",
		User:         user,
		Stats:        stats,
		Achievements: achievements,
		Recent:       recent,
		LevelCurrent: current,
		LevelNeeded:  needed,
		CSRFToken:    h.middleware.CSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "profile.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render profile", err)
	}
}
