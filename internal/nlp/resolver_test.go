package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vansh-agarwal/Agent/internal/models"
)

func newTestResolver(now time.Time) *Resolver {
	r := NewResolver()
	r.now = func() time.Time { return now }
	return r
}

func TestResolveScheduleMeeting(t *testing.T) {
	r := newTestResolver(refNow)

	intent := r.Resolve("schedule meeting tomorrow at 3pm called Budget Review")

	require.Equal(t, models.IntentCreateEvent, intent.IntentType)
	require.Equal(t, "Budget Review", intent.Entities["title"])
	require.Equal(t, "2025-01-16T15:00:00Z", intent.Entities["datetime"])
	require.InDelta(t, 0.85, intent.Confidence, 1e-9)
}

func TestResolveConfidenceFloor(t *testing.T) {
	r := newTestResolver(refNow)

	// No pattern match, no datetime, no priority, and a three-letter title
	// earns no title bonus.
	intent := r.Resolve("xyz")
	require.InDelta(t, 0.5, intent.Confidence, 1e-9)
	require.GreaterOrEqual(t, intent.Confidence, 0.5)
	require.LessOrEqual(t, intent.Confidence, 1.0)
}

func TestResolveConfidenceAccumulates(t *testing.T) {
	r := newTestResolver(refNow)

	intent := r.Resolve("create a task to fix the build tomorrow urgent")
	require.Equal(t, models.IntentCreateTask, intent.IntentType)
	require.Equal(t, "URGENT", intent.Entities["priority"])
	// 0.5 base + 0.1 pattern + 0.1 title + 0.15 date + 0.1 priority
	require.InDelta(t, 0.95, intent.Confidence, 1e-9)
}

func TestResolveKeepsOriginalText(t *testing.T) {
	r := newTestResolver(refNow)

	intent := r.Resolve("show me my tasks")
	require.Equal(t, models.IntentQueryTasks, intent.IntentType)
	require.Equal(t, "show me my tasks", intent.OriginalText)
}
