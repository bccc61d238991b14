package repository

import (
	"database/sql"
	"fmt"
	"time"

	"ecoquest/internal/database"
	"ecoquest/internal/models"
)

// ReportRepository handles database operations for environmental reports
type ReportRepository struct {
	db database.DBTX
}

// NewReportRepository creates a new report repository
func NewReportRepository(db database.DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

// CreateReport inserts a new issue report
func (r *ReportRepository) CreateReport(report *models.Report) (*models.Report, error) {
	query := `
		INSERT INTO reports (user_id, title, description, category, severity, status, location, image_path, points_earned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		report.UserID, report.Title, report.Description, report.Category,
		report.Severity, report.Status, report.Location, report.ImagePath,
		report.PointsEarned,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	created := *report
	created.ID = id
	created.CreatedAt = time.Now()
	return &created, nil
}

// GetReportByID retrieves one report. Returns nil when absent.
func (r *ReportRepository) GetReportByID(id int64) (*models.Report, error) {
	query := `
		SELECT id, user_id, title, description, category, severity, status, location, image_path, points_earned, created_at
		FROM reports
		WHERE id = ?
	`
	rep := &models.Report{}
	err := r.db.QueryRow(query, id).Scan(
		&rep.ID, &rep.UserID, &rep.Title, &rep.Description, &rep.Category,
		&rep.Severity, &rep.Status, &rep.Location, &rep.ImagePath,
		&rep.PointsEarned, &rep.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return rep, nil
}

// GetReports returns reports newest first, optionally filtered by status
func (r *ReportRepository) GetReports(viewerID int64, status string, limit int) ([]models.ReportWithDetails, error) {
	query := `
		SELECT r.id, r.user_id, r.title, r.description, r.category, r.severity,
			r.status, r.location, r.image_path, r.points_earned, r.created_at,
			u.name,
			(SELECT COUNT(*) FROM report_likes WHERE report_id = r.id),
			(SELECT COUNT(*) FROM report_likes WHERE report_id = r.id AND user_id = ?)
		FROM reports r
		JOIN users u ON u.id = r.user_id
	`
	args := []interface{}{viewerID}
	if status != "" {
		query += " WHERE r.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY r.created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []models.ReportWithDetails
	for rows.Next() {
		var rep models.ReportWithDetails
		var likedByMe int
		if err := rows.Scan(
			&rep.Report.ID, &rep.Report.UserID, &rep.Report.Title, &rep.Report.Description,
			&rep.Report.Category, &rep.Report.Severity, &rep.Report.Status,
			&rep.Report.Location, &rep.Report.ImagePath, &rep.Report.PointsEarned,
			&rep.Report.CreatedAt, &rep.AuthorName, &rep.LikeCount, &likedByMe,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		rep.LikedByMe = likedByMe > 0
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// GetStats aggregates report counts per status
func (r *ReportRepository) GetStats() (*models.ReportStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'Resolved' THEN 1 ELSE 0 END), 0)
		FROM reports
	`
	stats := &models.ReportStats{}
	if err := r.db.QueryRow(query).Scan(&stats.Total, &stats.InProgress, &stats.Resolved); err != nil {
		return nil, fmt.Errorf("failed to aggregate reports: %w", err)
	}
	return stats, nil
}

// UpdateStatus moves a report to a new status
func (r *ReportRepository) UpdateStatus(id int64, status string) error {
	query := "UPDATE reports SET status = ? WHERE id = ?"
	if _, err := r.db.Exec(query, status, id); err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	return nil
}

// ToggleLike flips the viewer's like on a report and reports the new state
func (r *ReportRepository) ToggleLike(reportID, userID int64) (liked bool, err error) {
	del := "DELETE FROM report_likes WHERE report_id = ? AND user_id = ?"
	result, err := r.db.Exec(del, reportID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to unlike report: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return false, nil
	}

	ins := "INSERT INTO report_likes (report_id, user_id) VALUES (?, ?)"
	if _, err := r.db.Exec(ins, reportID, userID); err != nil {
		return false, fmt.Errorf("failed to like report: %w", err)
	}
	return true, nil
}

// CountReportsByUser returns how many issues a user has reported
func (r *ReportRepository) CountReportsByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM reports WHERE user_id = ?"
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}
