package models

import "time"

// Achievement defines one unlockable badge. Unlocks are evaluated against
// a ProgressSnapshot and are monotonic: once earned, a badge is never
// revoked even if the underlying numbers later change.
type Achievement struct {
	Code        string
	Name        string
	Icon        string
	Description string
	Unlocks     func(ProgressSnapshot) bool
}

// ProgressSnapshot is the state an achievement check runs against
type ProgressSnapshot struct {
	EcoPoints int
	Level     int
	Posts     int
	Reports   int
}

// UserAchievement records a badge a user has earned
type UserAchievement struct {
	UserID     int64
	Code       string
	UnlockedAt time.Time
}

// Achievements is the full badge catalog in display order
var Achievements = []Achievement{
	{
		Code: "welcome", Name: "Welcome Eco Warrior", Icon: "🌱",
		Description: "Join the EcoQuest community",
		Unlocks:     func(ProgressSnapshot) bool { return true },
	},
	{
		Code: "first-quiz", Name: "First Quiz Champion", Icon: "🧠",
		Description: "Earn your first eco points",
		Unlocks:     func(p ProgressSnapshot) bool { return p.EcoPoints >= 10 },
	},
	{
		Code: "knowledge-seeker", Name: "Knowledge Seeker", Icon: "📚",
		Description: "Reach 100 eco points",
		Unlocks:     func(p ProgressSnapshot) bool { return p.EcoPoints >= 100 },
	},
	{
		Code: "action-hero", Name: "Action Hero", Icon: "🦸",
		Description: "Share your first eco action",
		Unlocks:     func(p ProgressSnapshot) bool { return p.Posts >= 1 },
	},
	{
		Code: "community-reporter", Name: "Community Reporter", Icon: "📋",
		Description: "Report your first environmental issue",
		Unlocks:     func(p ProgressSnapshot) bool { return p.Reports >= 1 },
	},
	{
		Code: "rising-star", Name: "Rising Star", Icon: "⭐",
		Description: "Reach level 5",
		Unlocks:     func(p ProgressSnapshot) bool { return p.Level >= 5 },
	},
	{
		Code: "eco-champion", Name: "Eco Champion", Icon: "🏆",
		Description: "Reach 500 eco points",
		Unlocks:     func(p ProgressSnapshot) bool { return p.EcoPoints >= 500 },
	},
	{
		Code: "environmental-guardian", Name: "Environmental Guardian", Icon: "🛡️",
		Description: "Reach 1000 eco points",
		Unlocks:     func(p ProgressSnapshot) bool { return p.EcoPoints >= 1000 },
	},
}

// AchievementByCode looks up a badge definition
func AchievementByCode(code string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.Code == code {
			return a, true
		}
	}
	return Achievement{}, false
}
