package content

// StoryQuestion is one mastery-gate question attached to a story
type StoryQuestion struct {
	Prompt  string
	Options []string
	Correct int
}

// Story is a narrative unit with exactly five comprehension questions
type Story struct {
	ID        int64
	Hero      string
	Title     string
	Location  string
	Topic     string
	Narrative string
	Questions []StoryQuestion
}

var stories = []Story{
	{
		ID: 1, Hero: "Meera", Title: "Plastic-Free Festival", Location: "Kerala", Topic: "Community Waste Management",
		Narrative: "Every year during Onam, the streets of Kochi burst with life. But after the celebrations, the joy turned into piles of plastic litter. Meera, a Class 9 student, suggested using traditional banana leaves for serving food and cloth bags instead of plastic. The idea spread like wildfire. The community launched \"Zero-Plastic Onam.\" Waste was reduced by half, and leftover food was composted. For the first time, Onam ended with smiles instead of stinking garbage heaps. Lesson: Festivals can celebrate culture while protecting nature.",
		Questions: []StoryQuestion{
			{Prompt: "What was the main problem Meera noticed after Onam?", Options: []string{"The food was not tasty", "There were too many people", "Piles of plastic litter"}, Correct: 2},
			{Prompt: "What was Meera's sustainable alternative for plastic plates?", Options: []string{"Steel plates", "Banana leaves", "Paper plates"}, Correct: 1},
			{Prompt: "The community's action of composting leftovers is an example of which 'R'?", Options: []string{"Reduce", "Reuse", "Recycle (and Rot)"}, Correct: 2},
			{Prompt: "If you saw a similar waste problem after a local event, what would be a good first step inspired by Meera?", Options: []string{"Ignore it, as it's not your job", "Suggest a simple, local solution to a community group or school", "Write an angry letter to the newspaper"}, Correct: 1},
			{Prompt: "What was the overall impact of the \"Zero-Plastic Onam\" initiative?", Options: []string{"The festival was less fun", "Waste was reduced by half", "It cost the community more money"}, Correct: 1},
		},
	},
	{
		ID: 2, Hero: "Venkat", Title: "Lake Revival Project", Location: "Bangalore", Topic: "Citizen-led Ecosystem Restoration",
		Narrative: "In Bangalore, a once-beautiful lake had become a dumping ground. Venkat and his college friends decided: \"If no one cleans it, we will.\" Armed with gloves and garbage bags, they began weekend clean-ups. Soon, locals joined them. They planted native saplings along the lake's edge. The movement grew, and the municipal body stopped sewage from entering the lake. A year later, the lake's surface sparkled, and migratory birds returned. Lesson: Small steps by citizens can heal damaged ecosystems.",
		Questions: []StoryQuestion{
			{Prompt: "What inspired Venkat to take action?", Options: []string{"He was paid by the government", "He was frustrated by the pollution and inaction", "It was a college project"}, Correct: 1},
			{Prompt: "Besides cleaning, what other restorative action did the group take?", Options: []string{"They built a fence around the lake", "They introduced new fish species", "They planted native saplings"}, Correct: 2},
			{Prompt: "What does the return of migratory birds signify?", Options: []string{"The area has become noisier", "The ecosystem is recovering and healthy", "The water is still very polluted"}, Correct: 1},
			{Prompt: "You notice a small local park is filled with litter. What would be the most Venkat-like approach?", Options: []string{"Wait for the city to clean it", "Complain about it online", "Organize a small clean-up with friends"}, Correct: 2},
			{Prompt: "What was the ultimate lesson from Venkat's story?", Options: []string{"Only experts can solve environmental problems", "Citizen-led initiatives can create powerful change", "Cleaning up is a waste of time"}, Correct: 1},
		},
	},
	{
		ID: 3, Hero: "Gaura Devi", Title: "The Chipko Movement", Location: "Uttarakhand", Topic: "Grassroots Conservation",
		Narrative: "In the 1970s, in the Himalayan villages of Uttarakhand, a crisis was looming. Large-scale deforestation threatened the villagers' livelihood, which depended on the forests for food, fuel, and water. When loggers arrived to cut down the trees, the local women, led by activists like Gaura Devi, took a brave stand. They hugged the trees, forming a human circle around them to prevent the axes from striking. Their simple, non-violent protest, known as the Chipko Movement, captured the nation's attention. It became a powerful symbol of grassroots environmentalism and the deep connection between communities and their forests. Lesson: Peaceful, collective action can bring about monumental environmental change.",
		Questions: []StoryQuestion{
			{Prompt: "What was the main goal of the Chipko Movement?", Options: []string{"To protect trees from being cut down", "To build new roads", "To start a logging business"}, Correct: 0},
			{Prompt: "What unique and peaceful method of protest did the villagers use?", Options: []string{"Hugging the trees", "Blocking the roads with cars", "Writing letters to the editor"}, Correct: 0},
			{Prompt: "Why were the forests so important to the villagers?", Options: []string{"They were a tourist attraction", "They provided food, fuel, and water", "They wanted to sell the land"}, Correct: 1},
			{Prompt: "The Chipko Movement is a powerful example of what?", Options: []string{"Grassroots environmentalism", "Industrial development", "Government policy"}, Correct: 0},
			{Prompt: "If a green space in your area was threatened, what lesson could you take from Gaura Devi?", Options: []string{"That one person can do nothing", "That peaceful, community action can be very powerful", "That protesting is always violent"}, Correct: 1},
		},
	},
	{
		ID: 4, Hero: "Jadav Payeng", Title: "The Forest Man", Location: "Assam", Topic: "Afforestation and Dedication",
		Narrative: "On a barren sandbar in Assam, a teenager named Jadav Payeng saw a tragic sight: a large number of snakes had died from the heat after floods washed them ashore. There were no trees to shelter them. This moved him deeply. He made it his life's mission to change this. He started by planting bamboo. Then, he continued planting other species. For over 40 years, Payeng single-handedly planted and cultivated trees over an area of 1,360 acres. This man-made forest, now called Molai Forest, is home to Bengal tigers, rhinos, and elephants. Jadav Payeng, known as the 'Forest Man of India', shows how one person's unwavering dedication can create an entire ecosystem. Lesson: One person's persistent effort can create a world of difference.",
		Questions: []StoryQuestion{
			{Prompt: "What event motivated Jadav Payeng to start planting trees?", Options: []string{"A government order", "The death of snakes due to heat", "He wanted to start a timber business"}, Correct: 1},
			{Prompt: "How large is the Molai Forest that Payeng planted?", Options: []string{"10 acres", "500 acres", "Over 1,300 acres"}, Correct: 2},
			{Prompt: "What is Jadav Payeng's nickname?", Options: []string{"The Tree Hugger", "The Forest Man of India", "The River Cleaner"}, Correct: 1},
			{Prompt: "The Molai Forest is now home to which of these animals?", Options: []string{"Penguins and polar bears", "Bengal tigers and rhinos", "Kangaroos and koalas"}, Correct: 1},
			{Prompt: "What does Jadav Payeng's story teach us about individual action?", Options: []string{"It's pointless without government help", "One person's dedication can create an entire ecosystem", "Planting trees is too slow to make a difference"}, Correct: 1},
		},
	},
}

// Stories returns a copy of the full story set
func Stories() []Story {
	out := make([]Story, len(stories))
	copy(out, stories)
	return out
}

// StoryByID looks up a story; ok is false when the id is unknown
func StoryByID(id int64) (Story, bool) {
	for _, s := range stories {
		if s.ID == id {
			return s, true
		}
	}
	return Story{}, false
}
