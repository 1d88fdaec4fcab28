package workbench

// QuestionTemplate is the seed text and choice labels for one question slot.
type QuestionTemplate struct {
	Text   string
	Labels [ChoiceCount]string
}

// questionTemplates holds the seed content of questions 1..7, in order.
var questionTemplates = [QuestionCount]QuestionTemplate{
	{
		Text: "Which feeling is closest to how you are right now?",
		Labels: [ChoiceCount]string{
			"Calm and content",
			"Eager to start something new",
			"A little tired, wanting comfort",
			"Wanting to focus and grow",
		},
	},
	{
		Text: "Which color comes to mind right now?",
		Labels: [ChoiceCount]string{
			"Blue / light blue",
			"Green / deep green",
			"Red / pink",
			"Yellow / orange",
		},
	},
	{
		Text: "Where would you most like to be right now?",
		Labels: [ChoiceCount]string{
			"Deep in a quiet forest",
			"By the sea, feeling the breeze",
			"In a garden in full bloom",
			"In a warm room by the fireplace",
		},
	},
	{
		Text: "What is your ideal morning?",
		Labels: [ChoiceCount]string{
			"Opening the window and breathing deeply",
			"Slowly brewing a cup of tea",
			"Stretching with music on",
			"Reading a book in the quiet",
		},
	},
	{
		Text: "What would you like to touch right now?",
		Labels: [ChoiceCount]string{
			"Something smooth like silk",
			"The warmth of a tree trunk",
			"Cool stone or porcelain",
			"A fluffy blanket or cashmere",
		},
	},
	{
		Text: "Which scene feels most comfortable?",
		Labels: [ChoiceCount]string{
			"Walking under spring cherry blossoms",
			"A summer meadow wet with morning dew",
			"An autumn path of fallen leaves at dusk",
			"A winter night with a warm drink in hand",
		},
	},
	{
		Text: "Going on instinct, which image draws you in?",
		Labels: [ChoiceCount]string{
			"Clear water flowing quietly",
			"A sky glowing with sunset",
			"A quiet night sky full of stars",
			"A single leaf shining with dew",
		},
	},
}

// Template returns the seed content for question number n (1..7).
func Template(n int) (QuestionTemplate, bool) {
	if n < 1 || n > QuestionCount {
		return QuestionTemplate{}, false
	}
	return questionTemplates[n-1], true
}

// Channel is the theme a question slot explores. It is only a display label.
type Channel struct {
	Label       string
	Description string
}

var channels = [QuestionCount]Channel{
	{Label: "Emotion", Description: "Asks about the current state of mind"},
	{Label: "Color", Description: "Maps feelings through the visual sense"},
	{Label: "Space", Description: "Explores comfortable surroundings"},
	{Label: "Lifestyle", Description: "Reads preferences from daily life"},
	{Label: "Touch", Description: "Explores bodily sensation"},
	{Label: "Scenery", Description: "Combines several senses"},
	{Label: "Intuition", Description: "Decides on instinct, beyond reasoning"},
}

// ChannelFor returns the channel of question number n (1..7).
func ChannelFor(n int) (Channel, bool) {
	if n < 1 || n > QuestionCount {
		return Channel{}, false
	}
	return channels[n-1], true
}

// DesignOrder is the order in which questions are designed: the operator
// starts from the last question the quiz taker sees and works backwards.
var DesignOrder = [QuestionCount]int{7, 6, 5, 4, 3, 2, 1}
