package repository

import (
	"database/sql"
	"fmt"
	"time"

	"ecoquest/internal/database"
	"ecoquest/internal/models"
)

// GameRepository handles database operations for game records and saved
// in-flight game state
type GameRepository struct {
	db database.DBTX
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.DBTX) *GameRepository {
	return &GameRepository{db: db}
}

// CreateRecord inserts a finished game session
func (r *GameRepository) CreateRecord(userID int64, kind string, score, pointsEarned int) (*models.GameRecord, error) {
	query := `
		INSERT INTO game_records (user_id, kind, score, points_earned)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, kind, score, pointsEarned)
	if err != nil {
		return nil, fmt.Errorf("failed to create game record: %w", err)
	}

	return &models.GameRecord{
		ID:           id,
		UserID:       userID,
		Kind:         kind,
		Score:        score,
		PointsEarned: pointsEarned,
		CompletedAt:  time.Now(),
	}, nil
}

// GetRecentRecords returns a user's latest finished games, newest first
func (r *GameRepository) GetRecentRecords(userID int64, limit int) ([]models.GameRecord, error) {
	query := `
		SELECT id, user_id, kind, score, points_earned, completed_at
		FROM game_records
		WHERE user_id = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game records: %w", err)
	}
	defer rows.Close()

	var records []models.GameRecord
	for rows.Next() {
		var rec models.GameRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Kind, &rec.Score, &rec.PointsEarned, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetStats aggregates a user's play history
func (r *GameRepository) GetStats(userID int64) (*models.GameStats, error) {
	stats := &models.GameStats{}

	query := `
		SELECT COUNT(*), COALESCE(SUM(points_earned), 0)
		FROM game_records
		WHERE user_id = ?
	`
	if err := r.db.QueryRow(query, userID).Scan(&stats.GamesPlayed, &stats.TotalPoints); err != nil {
		return nil, fmt.Errorf("failed to aggregate game records: %w", err)
	}

	best := `
		SELECT COALESCE(MAX(score), 0)
		FROM game_records
		WHERE user_id = ? AND kind = ?
	`
	if err := r.db.QueryRow(best, userID, "quiz").Scan(&stats.BestQuiz); err != nil {
		return nil, fmt.Errorf("failed to read best quiz score: %w", err)
	}
	if err := r.db.QueryRow(best, userID, "memory").Scan(&stats.BestMemory); err != nil {
		return nil, fmt.Errorf("failed to read best memory score: %w", err)
	}

	count := `
		SELECT COUNT(*)
		FROM game_records
		WHERE user_id = ? AND kind = ?
	`
	if err := r.db.QueryRow(count, userID, "story").Scan(&stats.StoriesRead); err != nil {
		return nil, fmt.Errorf("failed to count stories: %w", err)
	}
	if err := r.db.QueryRow(count, userID, "word-decode").Scan(&stats.WordsDecoded); err != nil {
		return nil, fmt.Errorf("failed to count word decodes: %w", err)
	}

	return stats, nil
}

// SaveState upserts a user's serialized in-flight game state
func (r *GameRepository) SaveState(userID int64, kind, state string) error {
	update := `
		UPDATE game_states
		SET state = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND kind = ?
	`
	result, err := r.db.Exec(update, state, userID, kind)
	if err != nil {
		return fmt.Errorf("failed to update game state: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	insert := `
		INSERT INTO game_states (user_id, kind, state)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(insert, userID, kind, state); err != nil {
		return fmt.Errorf("failed to insert game state: %w", err)
	}
	return nil
}

// LoadState retrieves a user's saved game state. Returns empty when absent.
func (r *GameRepository) LoadState(userID int64, kind string) (string, error) {
	query := "SELECT state FROM game_states WHERE user_id = ? AND kind = ?"
	var state string
	err := r.db.QueryRow(query, userID, kind).Scan(&state)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load game state: %w", err)
	}
	return state, nil
}

// DeleteState discards a user's saved game state
func (r *GameRepository) DeleteState(userID int64, kind string) error {
	query := "DELETE FROM game_states WHERE user_id = ? AND kind = ?"
	if _, err := r.db.Exec(query, userID, kind); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	return nil
}
