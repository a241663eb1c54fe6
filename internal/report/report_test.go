package report

import (
	"strings"
	"testing"

	"github.com/adite/labyrinth/internal/analytics"
	"github.com/adite/labyrinth/internal/engine"
	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/remediation"
	"github.com/adite/labyrinth/internal/scoring"
)

func TestStats_RendersAllSections(t *testing.T) {
	s := &engine.Stats{
		TotalEvents: 7,
		WindowSize:  30,
		Minotaur:    "procrastination",
		Leaderboard: []scoring.ScoredArchetype{
			{Archetype: "procrastination", Score: 2.5, Events: 4},
			{Archetype: "panic", Score: 1.1, Events: 3},
		},
		StreakDays:   3,
		XP:           remediation.XPState{Total: 120, LifetimeEvents: 7},
		Level:        remediation.LevelFor(120),
		Bounty:       remediation.NewBounty("panic", 5, 50),
		EscapeRate:   analytics.EscapeRate{Percent: 50, Escaped: 1, Total: 2},
		Nemesis:      []analytics.TopicCount{{Topic: "polity", Events: 3}},
		Threads:      []analytics.ThreadCount{{Principle: "Start the hardest question first", Uses: 2}},
		ChronicTasks: []string{"task-42"},
	}

	out := Stats(s)
	for _, want := range []string{
		"MINOTAUR: procrastination",
		"procrastination",
		"(4 events)",
		"50.0% (1 of 2 failed topics redeemed)",
		"polity",
		"3 failures",
		"2x  Start the hardest question first",
		"Bounty on panic",
		"task-42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q", want)
		}
	}
}

func TestStats_EmptyWindow(t *testing.T) {
	out := Stats(&engine.Stats{WindowSize: 30})
	if !strings.Contains(out, "none (no recent failures)") {
		t.Error("expected the no-Minotaur placeholder")
	}
}

func TestOutcome_WithoutEvent(t *testing.T) {
	// Recalculation outcomes carry no event.
	out := Outcome(&engine.Outcome{
		MinotaurChanged:  true,
		PreviousMinotaur: "",
		Minotaur:         "panic",
		Drills:           []string{"drill one"},
	})
	if !strings.Contains(out, "(none) -> panic") {
		t.Errorf("missing transition line: %q", out)
	}
	if !strings.Contains(out, "drill one") {
		t.Error("missing drill line")
	}
}

func TestOutcome_WithEvent(t *testing.T) {
	out := Outcome(&engine.Outcome{
		Event:     &event.FailureEvent{ID: "loss_20260301_090000"},
		XPAwarded: 10,
		Enshrined: true,
	})
	if !strings.Contains(out, "Logged loss_20260301_090000") {
		t.Error("missing logged line")
	}
	if !strings.Contains(out, "enshrined") {
		t.Error("missing enshrinement line")
	}
}

func TestPending_FlagsChronicDeferrals(t *testing.T) {
	items := []event.PendingEvent{
		{ID: "a", SourceTask: "one", OriginalTaskID: "task-1"},
		{ID: "b", SourceTask: "two", OriginalTaskID: "task-2"},
	}
	out := Pending(items, map[string]int{"task-1": 4}, 3)
	if !strings.Contains(out, "[deferred 4x]") {
		t.Error("chronic deferral not flagged")
	}
	if strings.Count(out, "[deferred") != 1 {
		t.Error("only the chronic item should be flagged")
	}
}

func TestBounty_Nil(t *testing.T) {
	if !strings.Contains(Bounty(nil), "No bounty active.") {
		t.Error("expected the no-bounty placeholder")
	}
}
