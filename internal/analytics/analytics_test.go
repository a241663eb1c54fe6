package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/scoring"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func ev(daysAgo int, mutate func(*event.FailureEvent)) event.FailureEvent {
	e := event.FailureEvent{
		Timestamp:  now.AddDate(0, 0, -daysAgo),
		Archetypes: []string{"panic"},
		Impact:     3,
	}
	if mutate != nil {
		mutate(&e)
	}
	return e
}

func TestLeaderboard_TopFive(t *testing.T) {
	var events []event.FailureEvent
	for i, a := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		// More recent events for earlier archetypes -> higher scores.
		for j := 0; j <= 6-i; j++ {
			events = append(events, ev(i, func(e *event.FailureEvent) { e.Archetypes = []string{a} }))
		}
	}

	board := Leaderboard(events, now, scoring.DefaultConfig())
	if len(board) != LeaderboardSize {
		t.Fatalf("len = %d, want %d", len(board), LeaderboardSize)
	}
	if board[0].Archetype != "a" {
		t.Errorf("board[0] = %q, want a", board[0].Archetype)
	}
	for i := 1; i < len(board); i++ {
		if board[i].Score > board[i-1].Score {
			t.Errorf("board not sorted at %d", i)
		}
	}
}

func TestNemesisTopics(t *testing.T) {
	events := []event.FailureEvent{
		ev(1, func(e *event.FailureEvent) { e.Topics = []string{"Polity", "Economy"} }),
		ev(2, func(e *event.FailureEvent) { e.Topics = []string{"Polity"} }),
		// Duplicate topic within one event counts once.
		ev(3, func(e *event.FailureEvent) { e.Topics = []string{"Polity", "Polity"} }),
		ev(4, func(e *event.FailureEvent) { e.Topics = []string{"Economy"} }),
	}

	nemeses := NemesisTopics(events)
	if len(nemeses) != 1 {
		t.Fatalf("nemeses = %+v, want just Polity", nemeses)
	}
	if nemeses[0].Topic != "Polity" || nemeses[0].Events != 3 {
		t.Errorf("nemeses[0] = %+v", nemeses[0])
	}
}

func TestThreadReuse(t *testing.T) {
	mk := func(p string) event.FailureEvent {
		return ev(1, func(e *event.FailureEvent) { e.Principle = p })
	}
	events := []event.FailureEvent{
		mk("Always timebox MCQs"),
		mk(" Always timebox MCQs "),
		mk("Read the question twice"),
		mk(""),
	}

	threads := ThreadReuse(events)
	if len(threads) != 2 {
		t.Fatalf("threads = %+v", threads)
	}
	if threads[0].Principle != "Always timebox MCQs" || threads[0].Uses != 2 {
		t.Errorf("threads[0] = %+v", threads[0])
	}
}

func TestComputeEscapeRate(t *testing.T) {
	events := []event.FailureEvent{
		ev(1, func(e *event.FailureEvent) { e.Topics = []string{"Polity", "Economy"} }),
		ev(2, func(e *event.FailureEvent) { e.Topics = []string{"Ethics"} }),
	}
	redeemed := map[string]time.Time{"Polity": now, "Unrelated": now}

	rate := ComputeEscapeRate(events, redeemed)
	if rate.Total != 3 || rate.Escaped != 1 {
		t.Errorf("rate = %+v, want 1/3", rate)
	}
	if math.Abs(rate.Percent-33.333) > 0.01 {
		t.Errorf("Percent = %f", rate.Percent)
	}

	empty := ComputeEscapeRate(nil, redeemed)
	if empty.Percent != 0 || empty.Total != 0 {
		t.Errorf("empty rate = %+v", empty)
	}
}

func TestComputeEscapeRate_ReviewMustNotPredateFailure(t *testing.T) {
	events := []event.FailureEvent{
		ev(1, func(e *event.FailureEvent) { e.Topics = []string{"Polity", "Economy", "Ethics"} }),
	}
	redeemed := map[string]time.Time{
		"Polity":  now.AddDate(0, 0, -10), // written before the failure
		"Economy": now,                    // written after
		"Ethics":  {},                     // no timestamp on record
	}

	rate := ComputeEscapeRate(events, redeemed)
	if rate.Escaped != 2 || rate.Total != 3 {
		t.Errorf("rate = %+v, want 2/3 (stale review must not count)", rate)
	}
}

func TestArchetypeAuraProbe(t *testing.T) {
	mk := func(aura string) event.FailureEvent {
		return ev(1, func(e *event.FailureEvent) { e.Aura = aura })
	}
	// 3 of 4 panic events share aura "low": 75% > 60%.
	events := []event.FailureEvent{mk("low"), mk("low"), mk("low"), mk("neutral")}

	findings := (&ArchetypeAuraProbe{}).Findings(events)
	if len(findings) != 1 {
		t.Fatalf("findings = %+v", findings)
	}
	f := findings[0]
	if f.Given != "panic" || f.Outcome != "low" || f.Support != 4 {
		t.Errorf("finding = %+v", f)
	}
	if math.Abs(f.Confidence-0.75) > 1e-9 {
		t.Errorf("Confidence = %f", f.Confidence)
	}
}

func TestProbes_MinSupport(t *testing.T) {
	// Only 2 events: conditioning set too small, nothing surfaces.
	events := []event.FailureEvent{
		ev(1, func(e *event.FailureEvent) { e.Aura = "low" }),
		ev(2, func(e *event.FailureEvent) { e.Aura = "low" }),
	}
	if findings := RunProbes(DefaultProbes(), events); len(findings) != 0 {
		t.Errorf("findings = %+v, want none below MinSupport", findings)
	}
}

func TestPaperTypeProbe_StricterThreshold(t *testing.T) {
	mk := func(ft event.FailureType) event.FailureEvent {
		return ev(1, func(e *event.FailureEvent) {
			e.Papers = []string{"GS2"}
			e.FailureType = ft
		})
	}

	// 2/3 knowledge-gap = 66% <= 70%: below the sweep threshold.
	events := []event.FailureEvent{
		mk(event.TypeKnowledgeGap), mk(event.TypeKnowledgeGap), mk(event.TypeSkillGap),
	}
	if findings := (&PaperTypeProbe{}).Findings(events); len(findings) != 0 {
		t.Errorf("66%% should not clear the 70%% sweep threshold: %+v", findings)
	}

	// 3/4 = 75% > 70%: surfaces.
	events = append(events, mk(event.TypeKnowledgeGap))
	findings := (&PaperTypeProbe{}).Findings(events)
	if len(findings) != 1 || findings[0].Outcome != string(event.TypeKnowledgeGap) {
		t.Errorf("findings = %+v", findings)
	}
}

func TestEmotionImpactProbe(t *testing.T) {
	mk := func(state string, impact int) event.FailureEvent {
		return ev(1, func(e *event.FailureEvent) {
			e.Emotional = state
			e.Impact = impact
		})
	}
	events := []event.FailureEvent{
		mk("frustrated", 5), mk("frustrated", 4), mk("frustrated", 4), mk("frustrated", 2),
		mk("", 5), // no emotional state: excluded from conditioning
	}

	findings := (&EmotionImpactProbe{}).Findings(events)
	if len(findings) != 1 {
		t.Fatalf("findings = %+v", findings)
	}
	if findings[0].Given != "frustrated" || findings[0].Outcome != "high-impact" {
		t.Errorf("finding = %+v", findings[0])
	}
}
