package handlers

import (
	"ecoquest/internal/content"
	"ecoquest/internal/game"
	"ecoquest/internal/models"
	"ecoquest/internal/service"
)

type LoginViewData struct {
	Title       string
	User        *models.User
	Error       string
	Success     string
	Name        string
	GoogleLogin bool
}

type RegisterViewData struct {
	Title       string
	User        *models.User
	Error       string
	Name        string
	Email       string
	Age         string
	GoogleLogin bool
}

type ForgotPasswordViewData struct {
	Title   string
	User    *models.User
	Success string
	Error   string
}

type ResetPasswordViewData struct {
	Title string
	User  *models.User
	Token string
	Error string
}

// Recommendation is the age-based call to action on the home dashboard
type Recommendation struct {
	Heading string
	Body    string
	URL     string
	Label   string
}

type HomeViewData struct {
	Title          string
	User           *models.User
	Stats          *models.GameStats
	ReportStats    *models.ReportStats
	Recommendation Recommendation
	LevelCurrent   int
	LevelNeeded    int
	CSRFToken      string
}

type GamesHubViewData struct {
	Title     string
	User      *models.User
	Stats     *models.GameStats
	Stories   []content.Story
	CSRFToken string
}

type QuizViewData struct {
	Title        string
	User         *models.User
	Quiz         *game.QuizSession
	TimeLeft     int
	Difficulties []content.Difficulty
	CSRFToken    string
}

type WordDecodeViewData struct {
	Title      string
	User       *models.User
	Session    *game.WordDecodeSession
	Conclusion string
	Keywords   []string
	CSRFToken  string
}

type MemoryViewData struct {
	Title     string
	User      *models.User
	Session   *game.MemorySession
	CSRFToken string
}

type StoryViewData struct {
	Title     string
	User      *models.User
	Session   *game.StorySession
	AudioFile string
	CSRFToken string
}

// GameResultsViewData is shared by every game's results page
type GameResultsViewData struct {
	Title     string
	User      *models.User
	Kind      game.Kind
	Score     int
	Points    int
	NewBadges []models.Achievement
	Review    []game.QuizReview
	CSRFToken string
}

type FeedViewData struct {
	Title     string
	User      *models.User
	Posts     []models.PostWithDetails
	Error     string
	CSRFToken string
}

type ReportsViewData struct {
	Title        string
	User         *models.User
	Reports      []models.ReportWithDetails
	Stats        *models.ReportStats
	Categories   []string
	StatusFilter string
	Error        string
	CSRFToken    string
}

type ProfileViewData struct {
	Title        string
	User         *models.User
	Stats        *models.GameStats
	Achievements []service.AchievementStatus
	Recent       []models.GameRecord
	LevelCurrent int
	LevelNeeded  int
	CSRFToken    string
}
