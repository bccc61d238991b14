package models

import "time"

// GameRecord represents one finished game session
type GameRecord struct {
	ID           int64
	UserID       int64
	Kind         string
	Score        int
	PointsEarned int
	CompletedAt  time.Time
}

// GameStats aggregates a user's play history for the profile page
type GameStats struct {
	GamesPlayed  int
	TotalPoints  int
	BestQuiz     int
	BestMemory   int
	StoriesRead  int
	WordsDecoded int
}
