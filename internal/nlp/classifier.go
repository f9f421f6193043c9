package nlp

import (
	"regexp"
	"strings"

	"github.com/vansh-agarwal/Agent/internal/models"
)

// intentOrder is the fixed precedence used for tie-breaking. When every score
// is zero the first entry (create task) wins by the same rule.
var intentOrder = []models.IntentType{
	models.IntentCreateTask,
	models.IntentCreateEvent,
	models.IntentSendEmail,
	models.IntentQueryTasks,
	models.IntentQueryEvents,
	models.IntentSetReminder,
}

var intentPatterns = map[models.IntentType][]*regexp.Regexp{
	models.IntentCreateTask: compile(
		`create\s+(?:a\s+)?task`,
		`add\s+(?:a\s+)?task`,
		`new\s+task`,
		`remind\s+me\s+to`,
		`i\s+need\s+to`,
		`todo`,
		`task:`,
	),
	models.IntentCreateEvent: compile(
		`schedule\s+(?:a\s+)?meeting`,
		`schedule\s+(?:a\s+)?flight`,
		`schedule\s+(?:a\s+)?call`,
		`schedule\s+(?:a\s+)?appointment`,
		`schedule\s+(?:a\s+)?\w+`,
		`create\s+(?:an?\s+)?event`,
		`add\s+(?:to\s+)?(?:my\s+)?calendar`,
		`put\s+(?:in\s+)?(?:my\s+)?calendar`,
		`book\s+(?:a\s+)?meeting`,
		`book\s+(?:a\s+)?flight`,
		`book\s+(?:a\s+)?\w+`,
		`set\s+up\s+(?:a\s+)?meeting`,
		`meeting\s+(?:at|on|with)`,
		`(?:at|for)\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)`,
		`tomorrow\s+at\s+\d`,
		`today\s+at\s+\d`,
		`calendar`,
		`flight\s+(?:at|on|for|tomorrow)`,
		`appointment\s+(?:at|on|for)`,
	),
	models.IntentSendEmail: compile(
		`send\s+(?:an?\s+)?email`,
		`email\s+(?:to|about)`,
		`compose\s+email`,
		`draft\s+email`,
	),
	models.IntentQueryTasks: compile(
		`show\s+(?:me\s+)?(?:my\s+)?tasks`,
		`list\s+(?:all\s+)?tasks`,
		`what\s+(?:are\s+)?my\s+tasks`,
		`tasks\s+for`,
		`what\s+do\s+i\s+have\s+to\s+do`,
	),
	models.IntentQueryEvents: compile(
		`show\s+(?:me\s+)?(?:my\s+)?(?:calendar|events|schedule)`,
		`what'?s\s+on\s+my\s+calendar`,
		`my\s+schedule`,
		`upcoming\s+events`,
	),
	models.IntentSetReminder: compile(
		`remind\s+me`,
		`set\s+(?:a\s+)?reminder`,
		`create\s+(?:a\s+)?reminder`,
	),
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Classifier scores an utterance against the intent categories. It requires no
// entity extraction and always produces an answer.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the winning intent and its pattern-match count. The category
// with the strictly highest score wins; ties fall back to precedence order.
func (c *Classifier) Classify(text string) (models.IntentType, int) {
	lower := strings.ToLower(strings.TrimSpace(text))

	best := intentOrder[0]
	bestScore := 0
	for _, intent := range intentOrder {
		score := 0
		for _, re := range intentPatterns[intent] {
			if re.MatchString(lower) {
				score++
			}
		}
		if score > bestScore {
			best = intent
			bestScore = score
		}
	}
	return best, bestScore
}
