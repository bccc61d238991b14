package content

// WordPuzzle is a single word-decode challenge. The first and last letter
// are revealed up front; the player fills in the interior letters.
type WordPuzzle struct {
	Word string
	Hint string
}

// Prefilled returns the map of revealed letter positions (first and last)
func (p WordPuzzle) Prefilled() map[int]byte {
	m := map[int]byte{0: p.Word[0]}
	m[len(p.Word)-1] = p.Word[len(p.Word)-1]
	return m
}

// IsPrefilled reports whether position i is revealed up front
func (p WordPuzzle) IsPrefilled(i int) bool {
	return i == 0 || i == len(p.Word)-1
}

// wordPuzzles is deliberately ordered: the concluding sentence reveals the
// words in this sequence, so the puzzles are never shuffled.
var wordPuzzles = []WordPuzzle{
	{Word: "PLANT", Hint: "To put a seed in the ground so a tree or flower can grow."},
	{Word: "TREES", Hint: "They have leaves and branches and give us oxygen to breathe."},
	{Word: "SAVE", Hint: "To use less of something to prevent it from running out."},
	{Word: "WATER", Hint: "The clear liquid that falls from the sky as rain."},
	{Word: "REDUCE", Hint: "One of the 3 R's; to make something smaller or use less."},
	{Word: "POLLUTION", Hint: "The presence of harmful substances in the environment."},
	{Word: "PROTECT", Hint: "To keep something safe from harm or injury."},
	{Word: "NATURE", Hint: "The physical world, including plants, animals, and landscapes."},
	{Word: "SECURE", Hint: "To make something safe and free from danger."},
	{Word: "FUTURE", Hint: "The time that is still to come."},
}

// WordConclusion is the thematic sentence revealed when every puzzle is solved
const WordConclusion = "To SECURE a better FUTURE and PROTECT our precious NATURE, we must PLANT more TREES, SAVE WATER, and REDUCE POLLUTION."

// WordKeywords are the puzzle words highlighted inside the conclusion
func WordKeywords() []string {
	return []string{"SECURE", "FUTURE", "PROTECT", "NATURE", "PLANT", "TREES", "SAVE", "WATER", "REDUCE", "POLLUTION"}
}

// WordPuzzles returns a copy of the ordered puzzle sequence
func WordPuzzles() []WordPuzzle {
	out := make([]WordPuzzle, len(wordPuzzles))
	copy(out, wordPuzzles)
	return out
}
