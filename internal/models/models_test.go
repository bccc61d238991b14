package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				UserID:    1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := session.IsExpired()
			if result != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestAvatarInitials(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		want     string
	}{
		{name: "first and last", userName: "Maya Green", want: "MG"},
		{name: "single name", userName: "Terra", want: "T"},
		{name: "three names uses outer two", userName: "Ana Sofia Rios", want: "AR"},
		{name: "lowercase input", userName: "maya green", want: "MG"},
		{name: "empty name", userName: "", want: "?"},
		{name: "whitespace only", userName: "   ", want: "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Name: tt.userName}
			if got := u.AvatarInitials(); got != tt.want {
				t.Errorf("AvatarInitials(%q) = %q, want %q", tt.userName, got, tt.want)
			}
		})
	}
}

func TestSeverityPoints(t *testing.T) {
	tests := []struct {
		severity string
		want     int
	}{
		{severity: SeverityLow, want: 75},
		{severity: SeverityMedium, want: 100},
		{severity: SeverityHigh, want: 150},
		{severity: SeverityCritical, want: 200},
		{severity: "unknown", want: 75},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			if got := SeverityPoints(tt.severity); got != tt.want {
				t.Errorf("SeverityPoints(%q) = %d, want %d", tt.severity, got, tt.want)
			}
		})
	}
}

func TestValidReportFields(t *testing.T) {
	if !ValidSeverity(SeverityHigh) || ValidSeverity("urgent") {
		t.Error("severity validation mismatch")
	}
	if !ValidReportStatus(StatusInProgress) || ValidReportStatus("Closed") {
		t.Error("status validation mismatch")
	}
	if !ValidReportCategory("Water Pollution") || ValidReportCategory("Potholes") {
		t.Error("category validation mismatch")
	}
}

func TestAchievementCatalog(t *testing.T) {
	if len(Achievements) != 8 {
		t.Fatalf("catalog size = %d, want 8", len(Achievements))
	}

	seen := make(map[string]bool)
	for _, a := range Achievements {
		if a.Code == "" || a.Name == "" || a.Icon == "" || a.Unlocks == nil {
			t.Errorf("achievement %q incompletely defined", a.Code)
		}
		if seen[a.Code] {
			t.Errorf("duplicate achievement code %q", a.Code)
		}
		seen[a.Code] = true
	}

	if _, ok := AchievementByCode("welcome"); !ok {
		t.Error("welcome badge missing from catalog")
	}
	if _, ok := AchievementByCode("nope"); ok {
		t.Error("lookup of unknown code succeeded")
	}
}

func TestAchievementUnlocks(t *testing.T) {
	tests := []struct {
		code     string
		snapshot ProgressSnapshot
		want     bool
	}{
		{code: "welcome", snapshot: ProgressSnapshot{}, want: true},
		{code: "first-quiz", snapshot: ProgressSnapshot{EcoPoints: 10}, want: true},
		{code: "first-quiz", snapshot: ProgressSnapshot{EcoPoints: 9}, want: false},
		{code: "knowledge-seeker", snapshot: ProgressSnapshot{EcoPoints: 100}, want: true},
		{code: "action-hero", snapshot: ProgressSnapshot{Posts: 1}, want: true},
		{code: "action-hero", snapshot: ProgressSnapshot{}, want: false},
		{code: "community-reporter", snapshot: ProgressSnapshot{Reports: 2}, want: true},
		{code: "rising-star", snapshot: ProgressSnapshot{Level: 5}, want: true},
		{code: "rising-star", snapshot: ProgressSnapshot{Level: 4}, want: false},
		{code: "eco-champion", snapshot: ProgressSnapshot{EcoPoints: 500}, want: true},
		{code: "environmental-guardian", snapshot: ProgressSnapshot{EcoPoints: 1000}, want: true},
		{code: "environmental-guardian", snapshot: ProgressSnapshot{EcoPoints: 999}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			a, ok := AchievementByCode(tt.code)
			if !ok {
				t.Fatalf("unknown code %q", tt.code)
			}
			if got := a.Unlocks(tt.snapshot); got != tt.want {
				t.Errorf("Unlocks(%+v) = %v, want %v", tt.snapshot, got, tt.want)
			}
		})
	}
}
