package service

import (
	"ecoquest/internal/database"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string              `json:"version"`
	ExportedAt   time.Time           `json:"exported_at"`
	DatabaseType string              `json:"database_type"`
	Users        []UserBackup        `json:"users"`
	Games        []GameRecordBackup  `json:"games"`
	Posts        []PostBackup        `json:"posts"`
	Reports      []ReportBackup      `json:"reports"`
	Achievements []AchievementBackup `json:"achievements"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Age           int       `json:"age"`
	EcoPoints     int       `json:"eco_points"`
	Level         int       `json:"level"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameRecordBackup represents a completed game for backup
type GameRecordBackup struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Kind         string    `json:"kind"`
	Score        int       `json:"score"`
	PointsEarned int       `json:"points_earned"`
	CompletedAt  time.Time `json:"completed_at"`
}

// PostBackup represents an action post with its likes and comments
type PostBackup struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Content   string          `json:"content"`
	ImagePath string          `json:"image_path"`
	CreatedAt time.Time       `json:"created_at"`
	Likes     []int64         `json:"liked_by"`
	Comments  []CommentBackup `json:"comments"`
}

// CommentBackup represents a post comment for backup
type CommentBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportBackup represents an environmental report with its likes
type ReportBackup struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Severity     string    `json:"severity"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	ImagePath    string    `json:"image_path"`
	PointsEarned int       `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
	Likes        []int64   `json:"liked_by"`
}

// AchievementBackup represents an unlocked badge for backup
type AchievementBackup struct {
	UserID     int64     `json:"user_id"`
	Code       string    `json:"code"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// GetDB returns the database connection for direct queries
func (s *BackupService) GetDB() *database.DB {
	return s.db
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportGames(backup); err != nil {
		return fmt.Errorf("failed to export games: %w", err)
	}
	if err := s.exportPosts(backup); err != nil {
		return fmt.Errorf("failed to export posts: %w", err)
	}
	if err := s.exportReports(backup); err != nil {
		return fmt.Errorf("failed to export reports: %w", err)
	}
	if err := s.exportAchievements(backup); err != nil {
		return fmt.Errorf("failed to export achievements: %w", err)
	}

	log.Printf("Exported: %d users, %d games, %d posts, %d reports, %d achievements",
		len(backup.Users), len(backup.Games), len(backup.Posts),
		len(backup.Reports), len(backup.Achievements))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader (for file uploads)
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importGames(backup.Games); err != nil {
		return fmt.Errorf("failed to import games: %w", err)
	}
	if err := s.importPosts(backup.Posts); err != nil {
		return fmt.Errorf("failed to import posts: %w", err)
	}
	if err := s.importReports(backup.Reports); err != nil {
		return fmt.Errorf("failed to import reports: %w", err)
	}
	if err := s.importAchievements(backup.Achievements); err != nil {
		return fmt.Errorf("failed to import achievements: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, name, COALESCE(email, ''), password_hash, age, eco_points, level, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.EcoPoints, &u.Level, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportGames(backup *BackupData) error {
	query := "SELECT id, user_id, kind, score, points_earned, completed_at FROM game_records ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g GameRecordBackup
		if err := rows.Scan(&g.ID, &g.UserID, &g.Kind, &g.Score, &g.PointsEarned, &g.CompletedAt); err != nil {
			return err
		}
		backup.Games = append(backup.Games, g)
	}
	return rows.Err()
}

func (s *BackupService) exportPosts(backup *BackupData) error {
	query := "SELECT id, user_id, content, image_path, created_at FROM posts ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PostBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.ImagePath, &p.CreatedAt); err != nil {
			return err
		}
		backup.Posts = append(backup.Posts, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range backup.Posts {
		p := &backup.Posts[i]

		likeRows, err := s.db.Query("SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY user_id", p.ID)
		if err != nil {
			return err
		}
		for likeRows.Next() {
			var userID int64
			if err := likeRows.Scan(&userID); err != nil {
				likeRows.Close()
				return err
			}
			p.Likes = append(p.Likes, userID)
		}
		likeRows.Close()

		commentRows, err := s.db.Query("SELECT id, user_id, content, created_at FROM comments WHERE post_id = ? ORDER BY id", p.ID)
		if err != nil {
			return err
		}
		for commentRows.Next() {
			var c CommentBackup
			if err := commentRows.Scan(&c.ID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
				commentRows.Close()
				return err
			}
			p.Comments = append(p.Comments, c)
		}
		commentRows.Close()
	}
	return nil
}

func (s *BackupService) exportReports(backup *BackupData) error {
	query := "SELECT id, user_id, title, description, category, severity, status, location, image_path, points_earned, created_at FROM reports ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r ReportBackup
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &r.Category, &r.Severity, &r.Status, &r.Location, &r.ImagePath, &r.PointsEarned, &r.CreatedAt); err != nil {
			return err
		}
		backup.Reports = append(backup.Reports, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range backup.Reports {
		r := &backup.Reports[i]
		likeRows, err := s.db.Query("SELECT user_id FROM report_likes WHERE report_id = ? ORDER BY user_id", r.ID)
		if err != nil {
			return err
		}
		for likeRows.Next() {
			var userID int64
			if err := likeRows.Scan(&userID); err != nil {
				likeRows.Close()
				return err
			}
			r.Likes = append(r.Likes, userID)
		}
		likeRows.Close()
	}
	return nil
}

func (s *BackupService) exportAchievements(backup *BackupData) error {
	query := "SELECT user_id, code, unlocked_at FROM user_achievements ORDER BY user_id, code"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AchievementBackup
		if err := rows.Scan(&a.UserID, &a.Code, &a.UnlockedAt); err != nil {
			return err
		}
		backup.Achievements = append(backup.Achievements, a)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, name, email, password_hash, age, eco_points, level, oauth_provider, oauth_subject, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, u.ID, u.Name, nullIfEmpty(u.Email), u.PasswordHash, u.Age, u.EcoPoints, u.Level, nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importGames(games []GameRecordBackup) error {
	log.Printf("Importing %d game records...", len(games))
	for _, g := range games {
		query := "INSERT INTO game_records (id, user_id, kind, score, points_earned, completed_at) VALUES (?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, g.ID, g.UserID, g.Kind, g.Score, g.PointsEarned, g.CompletedAt)
		if err != nil {
			return fmt.Errorf("failed to import game record %d: %w", g.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importPosts(posts []PostBackup) error {
	log.Printf("Importing %d posts...", len(posts))
	for _, p := range posts {
		query := "INSERT INTO posts (id, user_id, content, image_path, created_at) VALUES (?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, p.ID, p.UserID, p.Content, p.ImagePath, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import post %d: %w", p.ID, err)
		}

		for _, userID := range p.Likes {
			_, err := s.db.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", p.ID, userID)
			if err != nil {
				return fmt.Errorf("failed to import like on post %d by user %d: %w", p.ID, userID, err)
			}
		}

		for _, c := range p.Comments {
			_, err := s.db.Exec("INSERT INTO comments (id, post_id, user_id, content, created_at) VALUES (?, ?, ?, ?, ?)", c.ID, p.ID, c.UserID, c.Content, c.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to import comment %d on post %d: %w", c.ID, p.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importReports(reports []ReportBackup) error {
	log.Printf("Importing %d reports...", len(reports))
	for _, r := range reports {
		query := "INSERT INTO reports (id, user_id, title, description, category, severity, status, location, image_path, points_earned, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, r.ID, r.UserID, r.Title, r.Description, r.Category, r.Severity, r.Status, r.Location, r.ImagePath, r.PointsEarned, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import report %d: %w", r.ID, err)
		}

		for _, userID := range r.Likes {
			_, err := s.db.Exec("INSERT INTO report_likes (report_id, user_id) VALUES (?, ?)", r.ID, userID)
			if err != nil {
				return fmt.Errorf("failed to import like on report %d by user %d: %w", r.ID, userID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importAchievements(achievements []AchievementBackup) error {
	log.Printf("Importing %d achievements...", len(achievements))
	for _, a := range achievements {
		query := "INSERT INTO user_achievements (user_id, code, unlocked_at) VALUES (?, ?, ?)"
		_, err := s.db.Exec(query, a.UserID, a.Code, a.UnlockedAt)
		if err != nil {
			return fmt.Errorf("failed to import achievement %s for user %d: %w", a.Code, a.UserID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
