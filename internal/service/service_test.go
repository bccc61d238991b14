package service

import (
	"path/filepath"
	"testing"

	"ecoquest/internal/database"
	"ecoquest/internal/game"
	"ecoquest/internal/models"
	"ecoquest/internal/repository"
)

// testEnv wires the service layer against a migrated throwaway database
type testEnv struct {
	db       *database.DB
	users    *repository.UserRepository
	games    *GameService
	sched    *game.ManualScheduler
	profile  *ProfileService
	feed     *FeedService
	reports  *ReportService
	feedRepo *repository.FeedRepository
	gameRepo *repository.GameRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	users := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	reportRepo := repository.NewReportRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	profile := NewProfileService(users, achievementRepo, feedRepo, reportRepo)
	sched := game.NewManualScheduler()

	return &testEnv{
		db:       db,
		users:    users,
		games:    NewGameService(gameRepo, profile, sched),
		sched:    sched,
		profile:  profile,
		feed:     NewFeedService(feedRepo, profile, nil),
		reports:  NewReportService(reportRepo, profile, nil, users, nil),
		feedRepo: feedRepo,
		gameRepo: gameRepo,
	}
}

func (env *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := env.users.CreateUser(name, "not-a-real-hash", 12)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func hasBadge(badges []models.Achievement, code string) bool {
	for _, b := range badges {
		if b.Code == code {
			return true
		}
	}
	return false
}
