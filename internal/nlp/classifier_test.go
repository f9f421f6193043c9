package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vansh-agarwal/Agent/internal/models"
)

func TestClassifyEventShapedUtterances(t *testing.T) {
	c := NewClassifier()

	cases := []string{
		"schedule a meeting with the design team",
		"dentist appointment at 9am tomorrow",
		"book a flight to Berlin",
		"schedule meeting tomorrow at 3pm called Budget Review",
	}
	for _, text := range cases {
		intent, score := c.Classify(text)
		require.Equal(t, models.IntentCreateEvent, intent, "text: %s", text)
		require.Positive(t, score, "text: %s", text)
	}
}

func TestClassifyTaskUtterances(t *testing.T) {
	c := NewClassifier()

	cases := []string{
		"create a task to review the budget",
		"add a task called buy groceries",
		"i need to finish the report",
		"todo: water the plants",
	}
	for _, text := range cases {
		intent, _ := c.Classify(text)
		require.Equal(t, models.IntentCreateTask, intent, "text: %s", text)
	}
}

func TestClassifyQueries(t *testing.T) {
	c := NewClassifier()

	intent, _ := c.Classify("show me my tasks")
	require.Equal(t, models.IntentQueryTasks, intent)

	intent, _ = c.Classify("show me my schedule")
	require.Equal(t, models.IntentQueryEvents, intent)

	intent, _ = c.Classify("send an email to john@example.com about the report")
	require.Equal(t, models.IntentSendEmail, intent)
}

// Ties resolve by precedence: "remind me to call mom at 3pm" scores one point
// each for create task, create event and set reminder.
func TestClassifyTieFallsBackToPrecedence(t *testing.T) {
	c := NewClassifier()

	intent, score := c.Classify("remind me to call mom at 3pm")
	require.Equal(t, models.IntentCreateTask, intent)
	require.Equal(t, 1, score)
}

func TestClassifyNoMatchDefaultsToCreateTask(t *testing.T) {
	c := NewClassifier()

	intent, score := c.Classify("hello there")
	require.Equal(t, models.IntentCreateTask, intent)
	require.Zero(t, score)
}
