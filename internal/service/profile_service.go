package service

import (
	"errors"
	"fmt"

	"ecoquest/internal/game"
	"ecoquest/internal/models"
	"ecoquest/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// ProfileService owns the progression model: every point award in the
// application funnels through AwardPoints so points, level and achievement
// unlocks stay consistent.
type ProfileService struct {
	userRepo        *repository.UserRepository
	achievementRepo *repository.AchievementRepository
	feedRepo        *repository.FeedRepository
	reportRepo      *repository.ReportRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	userRepo *repository.UserRepository,
	achievementRepo *repository.AchievementRepository,
	feedRepo *repository.FeedRepository,
	reportRepo *repository.ReportRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		feedRepo:        feedRepo,
		reportRepo:      reportRepo,
	}
}

// AwardPoints adds delta points to the user, recomputes the level and
// re-evaluates achievements. It returns the updated user and any badges
// newly unlocked by this award.
func (s *ProfileService) AwardPoints(userID int64, delta int) (*models.User, []models.Achievement, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	points, level := game.Award(user.EcoPoints, delta)
	if err := s.userRepo.UpdateProgress(userID, points, level); err != nil {
		return nil, nil, err
	}
	user.EcoPoints = points
	user.Level = level

	newBadges, err := s.evaluateAchievements(user)
	if err != nil {
		return nil, nil, err
	}
	return user, newBadges, nil
}

// evaluateAchievements unlocks every badge whose condition now holds.
// Unlocks are monotonic: already-earned badges are left untouched.
func (s *ProfileService) evaluateAchievements(user *models.User) ([]models.Achievement, error) {
	unlocked, err := s.achievementRepo.GetUnlocked(user.ID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(user)
	if err != nil {
		return nil, err
	}

	var newBadges []models.Achievement
	for _, a := range models.Achievements {
		if _, has := unlocked[a.Code]; has {
			continue
		}
		if !a.Unlocks(snapshot) {
			continue
		}
		if err := s.achievementRepo.Unlock(user.ID, a.Code); err != nil {
			return nil, err
		}
		newBadges = append(newBadges, a)
	}
	return newBadges, nil
}

// snapshot gathers the counters achievement conditions check against
func (s *ProfileService) snapshot(user *models.User) (models.ProgressSnapshot, error) {
	posts, err := s.feedRepo.CountPostsByUser(user.ID)
	if err != nil {
		return models.ProgressSnapshot{}, err
	}
	reports, err := s.reportRepo.CountReportsByUser(user.ID)
	if err != nil {
		return models.ProgressSnapshot{}, err
	}
	return models.ProgressSnapshot{
		EcoPoints: user.EcoPoints,
		Level:     user.Level,
		Posts:     posts,
		Reports:   reports,
	}, nil
}

// AchievementStatus pairs a catalog badge with its unlock state for display
type AchievementStatus struct {
	Achievement models.Achievement
	Unlocked    bool
}

// GetAchievements returns the full catalog annotated with the user's
// unlock state, in display order
func (s *ProfileService) GetAchievements(userID int64) ([]AchievementStatus, error) {
	unlocked, err := s.achievementRepo.GetUnlocked(userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]AchievementStatus, 0, len(models.Achievements))
	for _, a := range models.Achievements {
		_, has := unlocked[a.Code]
		statuses = append(statuses, AchievementStatus{Achievement: a, Unlocked: has})
	}
	return statuses, nil
}

// EnsureWelcomeBadge unlocks the sign-up badge for a fresh account
func (s *ProfileService) EnsureWelcomeBadge(userID int64) error {
	return s.achievementRepo.Unlock(userID, "welcome")
}
