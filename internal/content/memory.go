package content

// memorySymbols is the fixed symbol set for the nature-match board. Each
// symbol appears exactly twice after pairing, giving a 100-tile grid.
var memorySymbols = []string{
	"🌳", "🌍", "♻️", "💧", "☀️", "🌱", "🍃", "🌺", "🦋", "🐝",
	"🌊", "🏞️", "🪴", "🚲", "🗑️", "🐢", "🐘", "🐬", "🦜", "🪷",
	"🍄", "🌾", "⛰️", "⭐", "🌬️", "🐞", "🐠", "🌲", "🌻", "🌈",
	"🐸", "🐒", "🦊", "🐻", "🐼", "🐨", "🐅", "🦓", "🦒", "🦔",
	"🦇", "🦉", "🦅", "🕊️", "🦢", "🐳", "🦀", "🐚", "🐿️", "🌋",
}

// MemorySymbols returns a copy of the full symbol set
func MemorySymbols() []string {
	out := make([]string, len(memorySymbols))
	copy(out, memorySymbols)
	return out
}
