package handlers

import (
	"html/template"
	"net/http"

	"ecoquest/internal/game"
	"ecoquest/internal/repository"
	"ecoquest/internal/service"
)

// HomeHandler renders the dashboard
type HomeHandler struct {
	gameRepo      *repository.GameRepository
	reportService *service.ReportService
	middleware    *Middleware
	templates     *template.Template
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(gameRepo *repository.GameRepository, reportService *service.ReportService, middleware *Middleware, templates *template.Template) *HomeHandler {
	return &HomeHandler{
		gameRepo:      gameRepo,
		reportService: reportService,
		middleware:    middleware,
		templates:     templates,
	}
}

// Dashboard shows the logged-in user's home page
func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
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

	reportStats, err := h.reportService.GetStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load report stats", err)
		return
	}

	current, needed := game.LevelProgress(user.EcoPoints)

	data := HomeViewData{
		Title:          "Home",
		User:           user,
		Stats:          stats,
		ReportStats:    reportStats,
		Recommendation: recommendationForAge(user.Age),
		LevelCurrent:   current,
		LevelNeeded:    needed,
		CSRFToken:      h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "home.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render home page", err)
	}
}

// recommendationForAge picks the call to action shown on the dashboard:
// younger players are pointed at the games, young adults at the action
// feed, and everyone else at issue reporting.
func recommendationForAge(age int) Recommendation {
	switch {
	case age <= 17:
		return Recommendation{
			Heading: "Play and Learn",
			Body:    "Jump into the eco games to earn points and unlock badges.",
			URL:     "/games",
			Label:   "Explore Games",
		}
	case age <= 24:
		return Recommendation{
			Heading: "Take Action",
			Body:    "Share what you did for the planet today and inspire others.",
			URL:     "/feed",
			Label:   "Open the Action Feed",
		}
	default:
		return Recommendation{
			Heading: "Report an Issue",
			Body:    "Spotted pollution or dumping near you? Report it and earn points.",
			URL:     "/reports",
			Label:   "File a Report",
		}
	}
}
