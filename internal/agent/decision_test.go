package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vansh-agarwal/Agent/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func baseIntent() models.UserIntent {
	return models.UserIntent{
		IntentType:   models.IntentCreateTask,
		Entities:     map[string]any{"title": "buy milk"},
		Confidence:   0.7,
		OriginalText: "remind me to buy milk",
	}
}

func TestDecideParsesModelResponse(t *testing.T) {
	gen := &fakeGenerator{response: `{"action":"create_task","parameters":{"title":"buy milk","priority":"HIGH"},"response":"Task created!"}`}
	dm := NewDecisionMaker(gen)

	decision := dm.Decide(context.Background(), "remind me to buy milk", baseIntent(), Context{})

	require.Equal(t, models.ActionCreateTask, decision.Action)
	require.Equal(t, "buy milk", decision.Parameters["title"])
	require.Equal(t, "HIGH", decision.Parameters["priority"])
	require.Equal(t, "Task created!", decision.Reasoning)
	require.NotNil(t, decision.BaseIntent)
	require.Equal(t, 1, gen.calls)
}

func TestDecideStripsMarkdownFence(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"action\":\"query_tasks\",\"parameters\":{},\"response\":\"Here you go\"}\n```"}
	dm := NewDecisionMaker(gen)

	decision := dm.Decide(context.Background(), "show my tasks", baseIntent(), Context{})
	require.Equal(t, models.ActionQueryTasks, decision.Action)
}

func TestDecideRepairsSloppyJSON(t *testing.T) {
	// Trailing comma and single quotes; jsonrepair should recover it.
	gen := &fakeGenerator{response: `{'action': 'create_event', 'parameters': {'title': 'standup',}, 'response': 'Done',}`}
	dm := NewDecisionMaker(gen)

	decision := dm.Decide(context.Background(), "schedule standup", baseIntent(), Context{})
	require.Equal(t, models.ActionCreateEvent, decision.Action)
	require.Equal(t, "standup", decision.Parameters["title"])
}

// Whatever path fails, the decision must equal the rule-based fallback.
func TestDecideFallsBackOnFailure(t *testing.T) {
	base := baseIntent()
	want := FallbackDecision(base)

	cases := map[string]*fakeGenerator{
		"generator error": {err: errors.New("timeout")},
		"unparseable":     {response: "I cannot help with that."},
		"empty action":    {response: `{"action":"","parameters":{},"response":"hm"}`},
	}
	for name, gen := range cases {
		dm := NewDecisionMaker(gen)
		got := dm.Decide(context.Background(), base.OriginalText, base, Context{})
		require.Equal(t, want.Action, got.Action, name)
		require.Equal(t, want.Parameters, got.Parameters, name)
		require.Equal(t, want.Reasoning, got.Reasoning, name)
	}
}

func TestDecideNilGeneratorUsesFallback(t *testing.T) {
	dm := NewDecisionMaker(nil)
	base := baseIntent()

	decision := dm.Decide(context.Background(), base.OriginalText, base, Context{})

	require.Equal(t, models.ActionCreateTask, decision.Action)
	require.Equal(t, base.Entities["title"], decision.Parameters["title"])
	require.Equal(t, "Based on natural language processing", decision.Reasoning)
}

func TestFallbackDecisionMirrorsIntent(t *testing.T) {
	base := models.UserIntent{IntentType: models.IntentQueryEvents}

	decision := FallbackDecision(base)

	require.Equal(t, models.ActionQueryEvents, decision.Action)
	require.NotNil(t, decision.Parameters)
	require.Empty(t, decision.Parameters)
	require.Equal(t, &base, decision.BaseIntent)
}
