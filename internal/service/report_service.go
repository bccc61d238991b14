package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ecoquest/internal/models"
	"ecoquest/internal/repository"
	"ecoquest/internal/validation"
)

var ErrReportNotFound = errors.New("report not found")

// ReportService handles community environmental issue reports
type ReportService struct {
	reportRepo *repository.ReportRepository
	profile    *ProfileService
	email      *EmailService
	userRepo   *repository.UserRepository
	profanity  ProfanityChecker
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo *repository.ReportRepository,
	profile *ProfileService,
	email *EmailService,
	userRepo *repository.UserRepository,
	profanity ProfanityChecker,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		profile:    profile,
		email:      email,
		userRepo:   userRepo,
		profanity:  profanity,
	}
}

// CreateReport files a new issue report and awards severity-based points
func (s *ReportService) CreateReport(userID int64, title, description, category, severity, location, imagePath string) (*models.Report, *models.User, []models.Achievement, error) {
	if err := validation.ValidateReport(title, description); err != nil {
		return nil, nil, nil, err
	}
	if !models.ValidReportCategory(category) {
		return nil, nil, nil, validation.ValidationError{Field: "category", Message: "unknown category"}
	}
	if !models.ValidSeverity(severity) {
		return nil, nil, nil, validation.ValidationError{Field: "severity", Message: "unknown severity"}
	}
	if s.profanity != nil {
		if bad, err := s.profanity.ContainsBadWords(title + " " + description); err == nil && bad {
			return nil, nil, nil, errors.New("please keep your report factual and polite")
		}
	}

	location = strings.TrimSpace(location)
	if location == "" {
		location = "Unknown Location"
	}

	report := &models.Report{
		UserID:       userID,
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		Category:     category,
		Severity:     severity,
		Status:       models.StatusOpen,
		Location:     location,
		ImagePath:    imagePath,
		PointsEarned: models.SeverityPoints(severity),
	}

	created, err := s.reportRepo.CreateReport(report)
	if err != nil {
		return nil, nil, nil, err
	}

	user, badges, err := s.profile.AwardPoints(userID, created.PointsEarned)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to award report points: %w", err)
	}
	return created, user, badges, nil
}

// GetReports returns reports for the viewing user, optionally filtered
// by status
func (s *ReportService) GetReports(viewerID int64, status string, limit int) ([]models.ReportWithDetails, error) {
	if status != "" && !models.ValidReportStatus(status) {
		return nil, validation.ValidationError{Field: "status", Message: "unknown status"}
	}
	if limit <= 0 {
		limit = 50
	}
	return s.reportRepo.GetReports(viewerID, status, limit)
}

// GetStats aggregates report counts for the page header
func (s *ReportService) GetStats() (*models.ReportStats, error) {
	return s.reportRepo.GetStats()
}

// ToggleLike flips the viewer's like on a report
func (s *ReportService) ToggleLike(reportID, userID int64) (bool, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return false, err
	}
	if report == nil {
		return false, ErrReportNotFound
	}
	return s.reportRepo.ToggleLike(reportID, userID)
}

// VerifyReport moves an open report to In Progress and escalates it by
// email. The escalation is best effort: a mail failure never rolls the
// status back.
func (s *ReportService) VerifyReport(ctx context.Context, reportID int64) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.Status != models.StatusOpen {
		return report, nil
	}

	if err := s.reportRepo.UpdateStatus(reportID, models.StatusInProgress); err != nil {
		return nil, err
	}
	report.Status = models.StatusInProgress

	if s.email != nil && s.email.IsEnabled() {
		reporterName := "Unknown"
		if reporter, err := s.userRepo.GetUserByID(report.UserID); err == nil && reporter != nil {
			reporterName = reporter.Name
		}
		if err := s.email.SendReportEscalationEmail(ctx, report, reporterName); err != nil {
			log.Printf("Failed to send escalation email for report %d: %v", reportID, err)
		}
	}

	return report, nil
}

// ResolveReport closes out an in-progress report
func (s *ReportService) ResolveReport(reportID int64) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.Status == models.StatusResolved {
		return report, nil
	}

	if err := s.reportRepo.UpdateStatus(reportID, models.StatusResolved); err != nil {
		return nil, err
	}
	report.Status = models.StatusResolved
	return report, nil
}
