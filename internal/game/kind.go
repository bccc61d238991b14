package game

// Kind identifies one of the four mini-games
type Kind string

const (
	KindQuiz       Kind = "quiz"
	KindWordDecode Kind = "word-decode"
	KindMemory     Kind = "memory"
	KindStory      Kind = "story"
)

// DisplayName returns the player-facing game title
func (k Kind) DisplayName() string {
	switch k {
	case KindQuiz:
		return "Eco Quiz"
	case KindWordDecode:
		return "Eco Word Decode"
	case KindMemory:
		return "Nature Match"
	case KindStory:
		return "Eco Stories"
	}
	return string(k)
}

// ValidKind reports whether k names a known game
func ValidKind(k Kind) bool {
	switch k {
	case KindQuiz, KindWordDecode, KindMemory, KindStory:
		return true
	}
	return false
}
