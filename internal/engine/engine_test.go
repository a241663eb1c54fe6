package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/remediation"
	"github.com/adite/labyrinth/internal/vault"
)

type capturedTasks struct {
	tasks []remediation.Task
}

func (c *capturedTasks) AppendTask(_ context.Context, task remediation.Task) error {
	c.tasks = append(c.tasks, task)
	return nil
}

// fakeClock hands out times one day apart so every event gets a
// distinct loss id.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(24 * time.Hour)
	return t
}

func newTestEngine(t *testing.T) (*Engine, *vault.Mem, *capturedTasks, *fakeClock) {
	t.Helper()
	v := vault.NewMem()
	tasks := &capturedTasks{}
	clock := newFakeClock()
	e, err := New(context.Background(), Options{
		Vault: v,
		Tasks: tasks,
		Now:   clock.now,
		Seed:  1,
	})
	require.NoError(t, err)
	return e, v, tasks, clock
}

func TestCreateLossLog_WritesRecordAndAwardsXP(t *testing.T) {
	e, v, _, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "Mock test 4, Q17",
		Archetypes: []string{"procrastination"},
		Principle:  "Start the hardest question first",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Event)

	paths, err := v.List(ctx, DefaultLossScope)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, DefaultLossScope+"/"+out.Event.ID+".md", paths[0])

	assert.Equal(t, 10, out.XPAwarded)
	assert.Equal(t, 10, e.Settings().XP.Total)
	assert.Equal(t, 1, e.Settings().XP.LifetimeEvents)
}

func TestCreateLossLog_Invalid(t *testing.T) {
	e, v, _, _ := newTestEngine(t)

	_, err := e.CreateLossLog(context.Background(), event.Partial{SourceTask: "no archetypes"})
	require.Error(t, err)

	paths, err := v.List(context.Background(), DefaultLossScope)
	require.NoError(t, err)
	assert.Empty(t, paths, "invalid input must not write a record")
}

func TestCreateLossLog_SetsMinotaur(t *testing.T) {
	e, _, tasks, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"procrastination"},
		Principle:  "p",
	})
	require.NoError(t, err)

	assert.True(t, out.MinotaurChanged)
	assert.Equal(t, "procrastination", out.Minotaur)
	assert.Equal(t, "procrastination", e.Settings().Minotaur.Current)
	assert.Len(t, out.Drills, remediation.DrillsPerTransition)
	assert.Len(t, tasks.tasks, remediation.DrillsPerTransition)
}

func TestDeferThenComplete(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	p, err := e.DeferLog(ctx, event.PendingEvent{
		SourceTask:     "dropped revision block",
		Archetypes:     []string{"time-mismanagement"},
		OriginalTaskID: "task-42",
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.Equal(t, 1, e.settings.Pending.Len())
	assert.Equal(t, 1, e.settings.Deferrals.Get("task-42"))

	out, err := e.CompletePending(ctx, p.ID, event.Partial{
		Principle: "Block revision before opening mail",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, e.settings.Pending.Len(), "completion consumes exactly one item")
	assert.Equal(t, event.OriginDeferred, out.Event.Provenance.Origin)
	assert.Equal(t, "task-42", out.Event.Provenance.SourceID)
	assert.Equal(t, "dropped revision block", out.Event.SourceTask)
	assert.Equal(t, []string{"time-mismanagement"}, out.Event.Archetypes)
	assert.Equal(t, 0, e.settings.Deferrals.Get("task-42"), "completion resets the deferral count")
}

func TestCompletePending_UnknownID(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	_, err := e.CompletePending(context.Background(), "nope", event.Partial{Principle: "p"})
	require.Error(t, err)
}

func TestDiscardPending(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	p, err := e.DeferLog(ctx, event.PendingEvent{SourceTask: "t", OriginalTaskID: "task-9"})
	require.NoError(t, err)

	require.NoError(t, e.DiscardPending(ctx, p.ID))
	assert.Equal(t, 0, e.settings.Pending.Len())
	assert.Equal(t, 0, e.settings.Deferrals.Get("task-9"))

	require.Error(t, e.DiscardPending(ctx, p.ID))
}

func TestEnshrinement_ThirdOccurrenceOnly(t *testing.T) {
	e, v, _, _ := newTestEngine(t)
	ctx := context.Background()

	log := func() *Outcome {
		out, err := e.CreateLossLog(ctx, event.Partial{
			SourceTask: "task",
			Archetypes: []string{"panic"},
			Principle:  "  Read the full question first ",
		})
		require.NoError(t, err)
		return out
	}

	assert.False(t, log().Enshrined)
	assert.False(t, log().Enshrined)
	assert.True(t, log().Enshrined, "third occurrence enshrines")
	assert.False(t, log().Enshrined, "fourth occurrence does not re-enshrine")

	codex := v.Records[DefaultCodexPath]
	require.NotNil(t, codex)
	assert.Equal(t, 1, strings.Count(codex.Body, "Read the full question first"))
}

func TestRecalculate_Idempotent(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"procrastination"},
		Principle:  "p",
	})
	require.NoError(t, err)
	histLen := len(e.Settings().Minotaur.History)

	out, err := e.Recalculate(ctx)
	require.NoError(t, err)
	assert.False(t, out.MinotaurChanged)
	assert.Equal(t, "procrastination", out.Minotaur)
	assert.Len(t, e.Settings().Minotaur.History, histLen)
}

func TestRecalculate_ToleratesMalformedRecords(t *testing.T) {
	e, v, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"panic"},
		Principle:  "p",
	})
	require.NoError(t, err)

	v.Records[DefaultLossScope+"/broken.md"] = &vault.MemRecord{
		Meta: map[string]any{"notALoss": true},
	}

	out, err := e.Recalculate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "panic", out.Minotaur)
}

func TestBountyLifecycle(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	b, err := e.StartBounty(ctx, "procrastination")
	require.NoError(t, err)
	assert.Equal(t, 5, b.Target)

	_, err = e.StartBounty(ctx, "panic")
	require.Error(t, err, "second concurrent bounty is rejected")

	var last *Outcome
	for i := 0; i < 5; i++ {
		last, err = e.CreateLossLog(ctx, event.Partial{
			SourceTask: "task",
			Archetypes: []string{"procrastination"},
			Principle:  "p",
		})
		require.NoError(t, err)
	}
	assert.True(t, last.BountyCompleted)
	assert.Equal(t, 50, last.BountyRewardXP)
	assert.Equal(t, 5*10+50, e.Settings().XP.Total)

	// Completed bounty can be replaced.
	_, err = e.StartBounty(ctx, "panic")
	require.NoError(t, err)
}

func TestVOITasks(t *testing.T) {
	e, _, tasks, _ := newTestEngine(t)

	out, err := e.CreateLossLog(context.Background(), event.Partial{
		SourceTask: "task",
		Archetypes: []string{remediation.CredibilityArchetype},
		Topics:     []string{"polity"},
		Principle:  "p",
	})
	require.NoError(t, err)
	require.Len(t, out.VOITasks, 1)

	found := false
	for _, task := range tasks.tasks {
		if task.ID == out.VOITasks[0].ID {
			found = true
		}
	}
	assert.True(t, found, "VOI task reaches the sink")
}

func TestTopicConsequences(t *testing.T) {
	e, v, _, _ := newTestEngine(t)
	ctx := context.Background()

	v.Records[DefaultTopicScope+"/polity.md"] = &vault.MemRecord{
		Meta: map[string]any{"status": "fresh"},
	}

	out, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"panic"},
		Topics:     []string{"polity", "missing-topic"},
		Principle:  "p",
	})
	require.NoError(t, err)

	meta := v.Records[DefaultTopicScope+"/polity.md"].Meta
	assert.Equal(t, "wilted", meta["status"])
	assert.Contains(t, meta["tags"], remediation.UnstableTag)
	assert.NotEmpty(t, out.GardenNotices)
}

func TestTopicConsequences_SkippedForProcessFailure(t *testing.T) {
	e, v, _, _ := newTestEngine(t)
	ctx := context.Background()

	v.Records[DefaultTopicScope+"/polity.md"] = &vault.MemRecord{
		Meta: map[string]any{"status": "fresh"},
	}

	_, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask:  "task",
		FailureType: event.TypeProcessFailure,
		Archetypes:  []string{"panic"},
		Topics:      []string{"polity"},
		Principle:   "p",
	})
	require.NoError(t, err)

	assert.Equal(t, "fresh", v.Records[DefaultTopicScope+"/polity.md"].Meta["status"])
}

func TestWeeklyReset(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.DeferLog(ctx, event.PendingEvent{SourceTask: "t", OriginalTaskID: "task-1"})
	require.NoError(t, err)
	_, err = e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"panic"},
		Principle:  "p",
	})
	require.NoError(t, err)
	_, err = e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"procrastination", "procrastination-x"},
		Principle:  "p2",
	})
	require.NoError(t, err)
	xp := e.Settings().XP.Total

	require.NoError(t, e.WeeklyReset(ctx))

	assert.Equal(t, 0, e.settings.Pending.Len())
	assert.Empty(t, e.settings.Deferrals)
	assert.Empty(t, e.Settings().Minotaur.History)
	assert.NotEmpty(t, e.Settings().Minotaur.Current, "current Minotaur survives the reset")
	assert.Equal(t, xp, e.Settings().XP.Total, "XP survives the reset")
}

func TestStats_EscapeRateIgnoresStaleReviews(t *testing.T) {
	e, v, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"panic"},
		Topics:     []string{"polity", "economy"},
		Principle:  "p",
	})
	require.NoError(t, err)

	// Written after the failure: counts.
	v.Records[DefaultReviewScope+"/polity.md"] = &vault.MemRecord{
		Meta: map[string]any{
			"topics":        []any{"polity"},
			"understanding": "high",
			"timestamp":     "2026-03-05T09:00:00Z",
		},
	}
	// Written before the failure: must not count.
	v.Records[DefaultReviewScope+"/economy.md"] = &vault.MemRecord{
		Meta: map[string]any{
			"topics":        []any{"economy"},
			"understanding": "high",
			"timestamp":     "2026-01-01T09:00:00Z",
		},
	}

	s, err := e.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.EscapeRate.Total)
	assert.Equal(t, 1, s.EscapeRate.Escaped)
}

func TestStreakDefeatOnMinotaurHit(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"panic"},
		Principle:  "p",
	})
	require.NoError(t, err)

	// Second event hits the now-current Minotaur.
	out, err := e.CreateLossLog(ctx, event.Partial{
		SourceTask: "task",
		Archetypes: []string{"panic"},
		Principle:  "p2",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.StreakDays)
	require.NotNil(t, e.Settings().Minotaur.LastDefeat)
}
