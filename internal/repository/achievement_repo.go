package repository

import (
	"fmt"
	"time"

	"ecoquest/internal/database"
	"ecoquest/internal/models"
)

// AchievementRepository handles database operations for earned badges
type AchievementRepository struct {
	db database.DBTX
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db database.DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// GetUnlocked returns the codes of every badge a user has earned
func (r *AchievementRepository) GetUnlocked(userID int64) (map[string]models.UserAchievement, error) {
	query := `
		SELECT user_id, code, unlocked_at
		FROM user_achievements
		WHERE user_id = ?
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]models.UserAchievement)
	for rows.Next() {
		var ua models.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.Code, &ua.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		unlocked[ua.Code] = ua
	}
	return unlocked, rows.Err()
}

// Unlock records a badge as earned. Re-unlocking is a harmless no-op so the
// catalog can be re-evaluated on every award.
func (r *AchievementRepository) Unlock(userID int64, code string) error {
	existing := "SELECT COUNT(*) FROM user_achievements WHERE user_id = ? AND code = ?"
	var count int
	if err := r.db.QueryRow(existing, userID, code).Scan(&count); err != nil {
		return fmt.Errorf("failed to check achievement: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := "INSERT INTO user_achievements (user_id, code, unlocked_at) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, userID, code, time.Now()); err != nil {
		return fmt.Errorf("failed to unlock achievement: %w", err)
	}
	return nil
}
