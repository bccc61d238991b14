package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"ecoquest/internal/config"
	"ecoquest/internal/database"
	"ecoquest/internal/game"
	"ecoquest/internal/handlers"
	"ecoquest/internal/repository"
	"ecoquest/internal/security"
	"ecoquest/internal/service"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed bad words filter for post/report moderation
	if err := db.SeedBadWords(); err != nil {
		log.Printf("Warning: Failed to seed bad words filter: %v", err)
	}

	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	rememberSecret := cfg.RememberSecret
	if rememberSecret == "" {
		// Tokens signed with a per-boot secret stop working on restart,
		// which is acceptable for local development only.
		rememberSecret = security.GenerateSessionID()
		log.Println("Warning: REMEMBER_SECRET not set, using a per-boot secret")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	reportRepo := repository.NewReportRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	// Services
	rememberTokens := security.NewRememberTokens(rememberSecret, cfg.RememberTTL)
	authService := service.NewAuthService(userRepo, rememberTokens, cfg.SessionDuration)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.EmailFrom, cfg.EmailFromName, cfg.BaseURL, cfg.EscalationEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	profileService := service.NewProfileService(userRepo, achievementRepo, feedRepo, reportRepo)
	gameService := service.NewGameService(gameRepo, profileService, game.NewScheduler())
	speechService := service.NewSpeechService(cfg.AudioCachePath)
	feedService := service.NewFeedService(feedRepo, profileService, db)
	reportService := service.NewReportService(reportRepo, profileService, emailService, userRepo, db)

	var googleOAuth *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		googleOAuth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		}
		log.Println("Google sign-in enabled")
	}

	// Handlers
	middleware := handlers.NewMiddleware(
		authService,
		security.NewCSRFGenerator(rememberSecret),
		security.NewRateLimiter(20, time.Minute),
	)
	authHandler := handlers.NewAuthHandler(authService, profileService, emailService, templates, googleOAuth, cfg.BaseURL)
	homeHandler := handlers.NewHomeHandler(gameRepo, reportService, middleware, templates)
	gameHandler := handlers.NewGameHandler(gameService, speechService, gameRepo, middleware, templates, cfg.AudioCachePath)
	feedHandler := handlers.NewFeedHandler(feedService, middleware, templates, cfg.UploadsPath, cfg.UploadMaxSize)
	reportHandler := handlers.NewReportHandler(reportService, middleware, templates, cfg.UploadsPath, cfg.UploadMaxSize)
	profileHandler := handlers.NewProfileHandler(profileService, gameRepo, middleware, templates)

	// Routes
	mux := http.NewServeMux()

	// Static files and cached story narration audio
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))
	mux.HandleFunc("GET /games/story/audio/{file}", middleware.RequireAuth(gameHandler.StoryAudio))

	// Public routes
	mux.HandleFunc("GET /", authHandler.Home)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /forgot-password", authHandler.ShowForgotPassword)
	mux.HandleFunc("POST /forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("GET /auth/reset-password", authHandler.ShowResetPassword)
	mux.HandleFunc("POST /auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)

	// Home dashboard
	mux.HandleFunc("GET /home", middleware.RequireAuth(homeHandler.Dashboard))

	// Games hub and session host
	mux.HandleFunc("GET /games", middleware.RequireAuth(gameHandler.Hub))
	mux.HandleFunc("POST /games/exit", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.Exit)))

	mux.HandleFunc("POST /games/quiz/start", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.StartQuiz)))
	mux.HandleFunc("GET /games/quiz", middleware.RequireAuth(gameHandler.ShowQuiz))
	mux.HandleFunc("POST /games/quiz/difficulty", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.SelectQuizDifficulty)))
	mux.HandleFunc("POST /games/quiz/answer", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.AnswerQuiz)))
	mux.HandleFunc("POST /games/quiz/hint", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.RevealQuizHint)))
	mux.HandleFunc("POST /games/quiz/next", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.NextQuizQuestion)))
	mux.HandleFunc("POST /games/quiz/finish", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.FinishQuiz)))

	mux.HandleFunc("POST /games/word-decode/start", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.StartWordDecode)))
	mux.HandleFunc("GET /games/word-decode", middleware.RequireAuth(gameHandler.ShowWordDecode))
	mux.HandleFunc("POST /games/word-decode/letter", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.SetWordLetter)))
	mux.HandleFunc("POST /games/word-decode/check", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.CheckWord)))
	mux.HandleFunc("POST /games/word-decode/next", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.NextWord)))
	mux.HandleFunc("POST /games/word-decode/finish", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.FinishWordDecode)))

	mux.HandleFunc("POST /games/memory/start", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.StartMemory)))
	mux.HandleFunc("GET /games/memory", middleware.RequireAuth(gameHandler.ShowMemory))
	mux.HandleFunc("POST /games/memory/flip", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.FlipTile)))
	mux.HandleFunc("POST /games/memory/finish", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.FinishMemory)))

	mux.HandleFunc("POST /games/story/{id}/start", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.StartStory)))
	mux.HandleFunc("GET /games/story", middleware.RequireAuth(gameHandler.ShowStory))
	mux.HandleFunc("POST /games/story/answer", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.AnswerStory)))
	mux.HandleFunc("POST /games/story/finish", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.FinishStory)))

	// Community action feed
	mux.HandleFunc("GET /feed", middleware.RequireAuth(feedHandler.ShowFeed))
	mux.HandleFunc("POST /feed/posts", middleware.RequireAuth(middleware.CSRFProtect(feedHandler.CreatePost)))
	mux.HandleFunc("POST /feed/posts/{id}/like", middleware.RequireAuth(middleware.CSRFProtect(feedHandler.ToggleLike)))
	mux.HandleFunc("POST /feed/posts/{id}/comments", middleware.RequireAuth(middleware.CSRFProtect(feedHandler.AddComment)))

	// Environmental reports
	mux.HandleFunc("GET /reports", middleware.RequireAuth(reportHandler.ShowReports))
	mux.HandleFunc("POST /reports", middleware.RequireAuth(middleware.CSRFProtect(reportHandler.CreateReport)))
	mux.HandleFunc("POST /reports/{id}/like", middleware.RequireAuth(middleware.CSRFProtect(reportHandler.ToggleLike)))
	mux.HandleFunc("POST /reports/{id}/verify", middleware.RequireAuth(middleware.CSRFProtect(reportHandler.VerifyReport)))
	mux.HandleFunc("POST /reports/{id}/resolve", middleware.RequireAuth(middleware.CSRFProtect(reportHandler.ResolveReport)))

	// Profile and achievements
	mux.HandleFunc("GET /profile", middleware.RequireAuth(profileHandler.ShowProfile))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go runCleanup(authService, gameService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	files := []string{filepath.Join(templatesPath, "base.tmpl")}

	matches, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	for _, m := range matches {
		if filepath.Base(m) != "base.tmpl" {
			files = append(files, m)
		}
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"mul": func(a, b int) int {
			return a * b
		},
		"div": func(a, b int) int {
			if b == 0 {
				return 0
			}
			return a / b
		},
		"until": func(count int) []int {
			result := make([]int, count)
			for i := 0; i < count; i++ {
				result[i] = i
			}
			return result
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"letter": func(s string, i int) string {
			if i < 0 || i >= len(s) {
				return ""
			}
			return string(s[i])
		},
		"containsInt": func(slice []int, val int) bool {
			for _, item := range slice {
				if item == val {
					return true
				}
			}
			return false
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// runCleanup periodically removes expired sessions, stale reset tokens
// and abandoned in-memory game sessions
func runCleanup(authService *service.AuthService, gameService *service.GameService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		}
		if err := authService.CleanupExpiredResetTokens(); err != nil {
			log.Printf("Error cleaning up expired reset tokens: %v", err)
		}
		gameService.CleanupStaleSessions()
	}
}
