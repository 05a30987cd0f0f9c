package chatbot

import "regexp"

type patternGroup struct {
	name      string
	patterns  []*regexp.Regexp
	responses []string
}

// groups are tried in order; the first match wins
var groups = []patternGroup{
	{
		name:     "greeting",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(hi|hello|hey|greetings|sup|yo)\b`)},
		responses: []string{
			"👋 Hey there! I'm EliteZero. How can I help you today?",
			"✨ Hello! Up for a game? Try `/game`.",
			"🚀 Greetings! What brings you here today?",
			"⚡ Hey! EliteZero at your service. What's on your mind?",
		},
	},
	{
		name:     "how-are-you",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)how are you|how're you|hows it going|whats up`)},
		responses: []string{
			"🤖 Running at optimal performance! How about you?",
			"✨ Feeling electric! What about you?",
			"⚡ All systems operational!",
		},
	},
	{
		name:     "help",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(help|assist|support|guide)\b`)},
		responses: []string{
			"🛡️ Start a game with `/game`, check your progress with `/gamestats`, or just chat with me!",
			"⚙️ Try `/game`, `/leaderboard` or `/achievements`. I'm also happy to chat.",
		},
	},
	{
		name:     "thanks",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(thanks|thank you|thx|ty|appreciate)\b`)},
		responses: []string{
			"✨ You're welcome!",
			"🚀 No problem at all!",
			"⚡ My pleasure!",
		},
	},
	{
		name:     "bye",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(bye|goodbye|see you|cya|later|gtg)\b`)},
		responses: []string{
			"👋 See you later!",
			"✨ Take care!",
			"🚀 Until next time!",
		},
	},
	{
		name:     "who-are-you",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)who are you|what are you|tell me about yourself`)},
		responses: []string{
			"🤖 I'm EliteZero, a bot with eleven mini-games and a leaderboard to climb.",
			"⚡ EliteZero here! I host games, track your stats and chat.",
		},
	},
	{
		name:     "joke",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(joke|funny|laugh|humor)\b`)},
		responses: []string{
			"😄 Why did the bot go to therapy? Too many unresolved promises.",
			"🤖 What's a bot's favorite music? Algorithm and blues.",
			"⚡ Why don't bots get lost? They always follow the right path.",
		},
	},
	{
		name:     "compliment",
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(cool|awesome|amazing|great|nice|love you|best)\b`)},
		responses: []string{
			"✨ Aww, thank you! You're pretty awesome yourself!",
			"🚀 You're making my circuits blush!",
			"💜 Right back at you!",
		},
	},
}

var defaultResponses = []string{
	"🤔 Interesting! Tell me more about that.",
	"✨ I'm listening! What else is on your mind?",
	"🚀 That's fascinating!",
	"⚡ I hear you! Want to explore that further?",
	"💭 Hmm, that's thought-provoking! What do you think about it?",
}

// match returns the responses of the first group matching message
func match(message string) (string, []string) {
	for _, g := range groups {
		for _, re := range g.patterns {
			if re.MatchString(message) {
				return g.name, g.responses
			}
		}
	}
	return "default", defaultResponses
}
