package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/adite/labyrinth/internal/event"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func evAt(ts time.Time, archetypes ...string) event.FailureEvent {
	return event.FailureEvent{Timestamp: ts, Archetypes: archetypes}
}

func TestWeight_SameDay(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	w := Weight(now.Add(-6*time.Hour), now, 0.95)
	if !almostEqual(w, 1.0) {
		t.Errorf("Weight = %f, want 1.0 for partial day", w)
	}
}

func TestWeight_FloorsDays(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	// 36 hours ago floors to 1 day.
	w := Weight(now.Add(-36*time.Hour), now, 0.95)
	if !almostEqual(w, 0.95) {
		t.Errorf("Weight = %f, want 0.95", w)
	}
}

func TestWeight_FutureEvent(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	w := Weight(now.Add(2*time.Hour), now, 0.95)
	if !almostEqual(w, 1.0) {
		t.Errorf("Weight = %f, want 1.0 for future timestamp", w)
	}
}

// The worked scenario: three "procrastination" events on days 0, 10 and
// 20, evaluated on day 25 with decay 0.95, score ~1.51.
func TestRank_WorkedScenario(t *testing.T) {
	day0 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	now := day0.AddDate(0, 0, 25)

	events := []event.FailureEvent{
		evAt(day0, "procrastination"),
		evAt(day0.AddDate(0, 0, 10), "procrastination"),
		evAt(day0.AddDate(0, 0, 20), "procrastination"),
	}

	ranked := Rank(events, now, DefaultConfig())
	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	want := math.Pow(0.95, 25) + math.Pow(0.95, 15) + math.Pow(0.95, 5)
	if !almostEqual(ranked[0].Score, want) {
		t.Errorf("score = %f, want %f", ranked[0].Score, want)
	}
	if got := Dominant(events, now, DefaultConfig()); got != "procrastination" {
		t.Errorf("Dominant = %q, want procrastination", got)
	}
}

func TestRank_DecayOneCountsOccurrences(t *testing.T) {
	day0 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	now := day0.AddDate(0, 0, 20)
	events := []event.FailureEvent{
		evAt(day0, "a"),
		evAt(day0.AddDate(0, 0, 5), "a", "b"),
		evAt(day0.AddDate(0, 0, 15), "a"),
	}

	// DecayFactor 0.99 is the closest legal value to 1; to assert the
	// occurrence-count reduction we call Weight directly with 1.
	for _, ev := range events {
		if !almostEqual(Weight(ev.Timestamp, now, 1), 1.0) {
			t.Fatalf("Weight with decay=1 should be 1.0")
		}
	}

	ranked := Rank(events, now, Config{LookbackDays: 30, DecayFactor: 0.99})
	if ranked[0].Archetype != "a" || ranked[0].Events != 3 {
		t.Errorf("ranked[0] = %+v, want archetype a with 3 events", ranked[0])
	}
	if ranked[1].Archetype != "b" || ranked[1].Events != 1 {
		t.Errorf("ranked[1] = %+v, want archetype b with 1 event", ranked[1])
	}
}

func TestRank_WindowExcludesOldEvents(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []event.FailureEvent{
		evAt(now.AddDate(0, 0, -40), "stale"),
		evAt(now.AddDate(0, 0, -3), "fresh"),
	}

	ranked := Rank(events, now, DefaultConfig())
	if len(ranked) != 1 || ranked[0].Archetype != "fresh" {
		t.Errorf("ranked = %+v, want only fresh", ranked)
	}
}

func TestDominant_NoEvents(t *testing.T) {
	now := time.Now()
	if got := Dominant(nil, now, DefaultConfig()); got != "" {
		t.Errorf("Dominant = %q, want empty", got)
	}
	old := []event.FailureEvent{evAt(now.AddDate(0, 0, -90), "ancient")}
	if got := Dominant(old, now, DefaultConfig()); got != "" {
		t.Errorf("Dominant = %q, want empty for out-of-window events", got)
	}
}

func TestDominant_TieBreakFirstDiscovered(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := now.Add(-2 * time.Hour)
	events := []event.FailureEvent{
		evAt(ts, "panic"),
		evAt(ts, "burnout"),
	}

	// Identical weights; first discovered wins.
	if got := Dominant(events, now, DefaultConfig()); got != "panic" {
		t.Errorf("Dominant = %q, want panic (first discovered)", got)
	}

	// And the rule is stable across recomputation.
	for i := 0; i < 5; i++ {
		if got := Dominant(events, now, DefaultConfig()); got != "panic" {
			t.Fatalf("Dominant unstable on run %d: %q", i, got)
		}
	}
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{"zero", Config{}, Config{LookbackDays: 30, DecayFactor: 0.95}},
		{"decay too small", Config{LookbackDays: 30, DecayFactor: 0.5}, Config{LookbackDays: 30, DecayFactor: 0.95}},
		{"decay too large", Config{LookbackDays: 30, DecayFactor: 1.0}, Config{LookbackDays: 30, DecayFactor: 0.95}},
		{"valid", Config{LookbackDays: 14, DecayFactor: 0.9}, Config{LookbackDays: 14, DecayFactor: 0.9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
