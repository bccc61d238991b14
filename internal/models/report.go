package models

import "time"

// Report severity levels, ordered by urgency
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Report statuses
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// ReportCategories lists the selectable issue categories
var ReportCategories = []string{
	"Road Infrastructure",
	"Illegal Dumping",
	"Water Pollution",
	"Air Pollution",
	"Noise Pollution",
	"Waste Management",
	"Other",
}

// Report represents a community-submitted environmental issue
type Report struct {
	ID           int64
	UserID       int64
	Title        string
	Description  string
	Category     string
	Severity     string
	Status       string
	Location     string
	ImagePath    string
	PointsEarned int
	CreatedAt    time.Time
}

// ReportWithDetails combines a report with its author and engagement counts
type ReportWithDetails struct {
	Report       Report
	AuthorName   string
	AuthorAvatar string
	LikeCount    int
	LikedByMe    bool
}

// ReportStats aggregates counts per status for the report page header
type ReportStats struct {
	Total      int
	InProgress int
	Resolved   int
}

// ValidSeverity reports whether s is a known severity level
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ValidReportStatus reports whether s is a known report status
func ValidReportStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// ValidReportCategory reports whether c is one of the selectable categories
func ValidReportCategory(c string) bool {
	for _, cat := range ReportCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// SeverityPoints returns the eco points awarded for reporting an issue of
// the given severity
func SeverityPoints(severity string) int {
	switch severity {
	case SeverityCritical:
		return 200
	case SeverityHigh:
		return 150
	case SeverityMedium:
		return 100
	default:
		return 75
	}
}
