package content

// Difficulty identifies a quiz question tier
type Difficulty string

const (
	DifficultyBeginner Difficulty = "beginner"
	DifficultyAdvanced Difficulty = "advanced"
	DifficultyMaster   Difficulty = "master"
)

// Difficulties lists all quiz tiers in ascending order
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyAdvanced, DifficultyMaster}
}

// ValidDifficulty reports whether d is one of the known tiers
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyAdvanced, DifficultyMaster:
		return true
	}
	return false
}

// QuizQuestion is a single multiple-choice question with hint and explanation
type QuizQuestion struct {
	ID          int64
	Difficulty  Difficulty
	Prompt      string
	Options     []string
	Correct     int
	Hint        string
	Explanation string
}

var quizQuestions = []QuizQuestion{
	{ID: 1, Difficulty: DifficultyBeginner, Prompt: "Which of the 3 R's means to use less of something?", Options: []string{"Reduce", "Reuse", "Recycle"}, Correct: 0, Hint: "It's the first and most effective of the three.", Explanation: "Reduce is the most effective of the 3 R's because it prevents waste from being created in the first place."},
	{ID: 2, Difficulty: DifficultyBeginner, Prompt: "What gas do trees absorb from the atmosphere?", Options: []string{"Oxygen", "Carbon Dioxide", "Nitrogen"}, Correct: 1, Hint: "It's the gas we exhale when we breathe.", Explanation: "Trees take in Carbon Dioxide (CO2) for photosynthesis and release oxygen, which is why they are often called the 'lungs of the planet'."},
	{ID: 3, Difficulty: DifficultyBeginner, Prompt: "What is the main source of energy for life on Earth?", Options: []string{"The Moon", "Electricity", "The Sun"}, Correct: 2, Hint: "It's a giant star that our planet orbits.", Explanation: "The Sun provides light and heat energy that plants use to grow, forming the base of almost every food chain on Earth."},
	{ID: 4, Difficulty: DifficultyBeginner, Prompt: "Turning off lights when you leave a room helps to do what?", Options: []string{"Save energy", "Create pollution", "Waste water"}, Correct: 0, Hint: "It reduces the amount of electricity you use.", Explanation: "Saving energy reduces the demand on power plants, which often burn fossil fuels that contribute to air pollution and climate change."},
	{ID: 5, Difficulty: DifficultyBeginner, Prompt: "What material is created when we break down organic waste like fruit peels?", Options: []string{"Plastic", "Compost", "Glass"}, Correct: 1, Hint: "It's a nutrient-rich soil fertilizer.", Explanation: "Compost is decomposed organic matter that enriches soil, helping plants grow without the need for chemical fertilizers."},
	{ID: 6, Difficulty: DifficultyAdvanced, Prompt: "What does the term 'Carbon Footprint' refer to?", Options: []string{"A fossilized footprint", "The total greenhouse gas emissions caused by an individual", "The amount of trees planted in a year"}, Correct: 1, Hint: "It's a measure of your impact on the climate.", Explanation: "A carbon footprint includes emissions from travel, energy consumption, and food. Reducing it is key to fighting climate change."},
	{ID: 7, Difficulty: DifficultyAdvanced, Prompt: "What is the primary cause of acid rain?", Options: []string{"Volcanic eruptions", "Pollutants from burning fossil fuels", "Excessive sunlight"}, Correct: 1, Hint: "Gases like sulfur dioxide and nitrogen oxides are the main culprits.", Explanation: "When fossil fuels are burned, they release pollutants that react with water in the atmosphere to form acids, which then fall as acid rain, harming forests and lakes."},
	{ID: 8, Difficulty: DifficultyAdvanced, Prompt: "Which of these is NOT a renewable energy source?", Options: []string{"Solar Power", "Wind Power", "Natural Gas"}, Correct: 2, Hint: "Renewable sources replenish themselves naturally.", Explanation: "Natural Gas is a fossil fuel, meaning it was formed over millions of years and is a finite, non-renewable resource."},
	{ID: 9, Difficulty: DifficultyAdvanced, Prompt: "What is biodiversity?", Options: []string{"The study of biology", "A type of renewable energy", "The variety of all living things on Earth"}, Correct: 2, Hint: "It includes everything from tiny bacteria to giant whales.", Explanation: "High biodiversity is crucial for ecosystem health, providing services like pollination, clean water, and climate regulation."},
	{ID: 10, Difficulty: DifficultyAdvanced, Prompt: "What is the 'greenhouse effect'?", Options: []string{"A method for growing plants in winter", "The trapping of the sun's warmth in the atmosphere", "The color of solar panels"}, Correct: 1, Hint: "It's a natural process, but human activities have intensified it.", Explanation: "Gases like CO2 act like a blanket, trapping heat. While necessary for life, excessive amounts from human activity are causing global warming."},
	{ID: 11, Difficulty: DifficultyMaster, Prompt: "Which international treaty, signed in 1987, was designed to protect the ozone layer?", Options: []string{"The Kyoto Protocol", "The Paris Agreement", "The Montreal Protocol"}, Correct: 2, Hint: "This agreement phased out the production of substances like CFCs.", Explanation: "The Montreal Protocol is hailed as one of the most successful environmental agreements in history, leading to the gradual recovery of the ozone layer."},
	{ID: 12, Difficulty: DifficultyMaster, Prompt: "What is 'eutrophication' in aquatic ecosystems?", Options: []string{"The process of water evaporation", "An excess of nutrients causing dense plant growth and oxygen depletion", "The filtering of water by rocks"}, Correct: 1, Hint: "It's often caused by fertilizer runoff from farms into rivers.", Explanation: "Eutrophication leads to algal blooms that consume dissolved oxygen when they decompose, creating 'dead zones' where aquatic life cannot survive."},
	{ID: 13, Difficulty: DifficultyMaster, Prompt: "The 'Chipko Movement' in India was a form of what kind of activism?", Options: []string{"Social media campaign", "Non-violent grassroots environmentalism", "Political lobbying"}, Correct: 1, Hint: "It famously involved villagers hugging trees.", Explanation: "The Chipko Movement is a prime example of community-led conservation, highlighting the power of peaceful protest to protect local environments."},
	{ID: 14, Difficulty: DifficultyMaster, Prompt: "What is carbon sequestration?", Options: []string{"The process of capturing and storing atmospheric carbon dioxide", "A method for creating artificial diamonds", "The measurement of carbon in fossils"}, Correct: 0, Hint: "Forests and oceans are major natural examples of this process.", Explanation: "Carbon sequestration is a critical process for reducing CO2 in the atmosphere. It can be done naturally (e.g., planting trees) or through industrial technologies."},
	{ID: 15, Difficulty: DifficultyMaster, Prompt: "What does 'potable water' mean?", Options: []string{"Water used in industrial pots", "Water that is safe to drink", "Water collected from flower pots"}, Correct: 1, Hint: "Access to this is a major global health issue.", Explanation: "Potable water, or drinking water, is free from harmful microorganisms and chemical contaminants, making it safe for human consumption."},
}

// QuizQuestions returns a copy of all questions for the given difficulty
func QuizQuestions(d Difficulty) []QuizQuestion {
	var out []QuizQuestion
	for _, q := range quizQuestions {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// AllQuizQuestions returns a copy of the full question pool
func AllQuizQuestions() []QuizQuestion {
	out := make([]QuizQuestion, len(quizQuestions))
	copy(out, quizQuestions)
	return out
}
