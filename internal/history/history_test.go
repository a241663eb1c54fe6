package history

import (
	"fmt"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func logOf(archetypes ...string) []Transition {
	log := make([]Transition, len(archetypes))
	for i, a := range archetypes {
		log[i] = Transition{Date: day(i), Archetype: a}
	}
	return log
}

func TestPush_TrimsToMaxEntries(t *testing.T) {
	var log []Transition
	for i := 0; i < MaxEntries+17; i++ {
		log = Push(log, Transition{Date: day(i), Archetype: fmt.Sprintf("a%d", i)})
		if len(log) > MaxEntries {
			t.Fatalf("len = %d after push %d, want <= %d", len(log), i, MaxEntries)
		}
	}
	if len(log) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(log), MaxEntries)
	}
	// Oldest entries dropped first.
	if log[0].Archetype != "a17" {
		t.Errorf("log[0] = %q, want a17", log[0].Archetype)
	}
}

func TestFrequency(t *testing.T) {
	log := logOf("panic", "burnout", "panic", "panic")
	freq := Frequency(log)
	if freq["panic"] != 3 || freq["burnout"] != 1 {
		t.Errorf("Frequency = %v", freq)
	}
}

func TestMostPersistent(t *testing.T) {
	tests := []struct {
		name    string
		log     []Transition
		want    string
		wantLen int
	}{
		{"empty", nil, "", 0},
		{"single", logOf("panic"), "panic", 1},
		{"clear winner", logOf("a", "b", "b", "b", "a"), "b", 3},
		{"tie goes to first run", logOf("a", "a", "b", "b"), "a", 2},
		{"runs are consecutive only", logOf("a", "b", "a", "b", "a"), "a", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotLen := MostPersistent(tt.log)
			if got != tt.want || gotLen != tt.wantLen {
				t.Errorf("MostPersistent = (%q, %d), want (%q, %d)", got, gotLen, tt.want, tt.wantLen)
			}
		})
	}
}

func TestInstability(t *testing.T) {
	log := logOf("a", "b", "c", "c", "d", "d", "d")
	// Last 5: c, c, d, d, d -> 2 distinct.
	if got := Instability(log, 5); got != 2 {
		t.Errorf("Instability(5) = %d, want 2", got)
	}
	// Default window when n <= 0.
	if got := Instability(log, 0); got != 2 {
		t.Errorf("Instability(0) = %d, want 2", got)
	}
	// Window larger than log.
	if got := Instability(log, 100); got != 4 {
		t.Errorf("Instability(100) = %d, want 4", got)
	}
}

func TestRecordTransition_Idempotent(t *testing.T) {
	s := &MinotaurState{}

	if !s.RecordTransition("panic", day(0)) {
		t.Fatal("first transition should report a change")
	}
	// First transition from empty pushes nothing.
	if len(s.History) != 0 {
		t.Fatalf("history len = %d, want 0 after first transition", len(s.History))
	}

	// Same archetype again: no-op, history unchanged.
	if s.RecordTransition("panic", day(1)) {
		t.Error("unchanged dominant should be a no-op")
	}
	if len(s.History) != 0 {
		t.Errorf("history len = %d, want 0 after no-op", len(s.History))
	}

	// A real change pushes the previous archetype.
	if !s.RecordTransition("burnout", day(2)) {
		t.Fatal("change should report true")
	}
	if len(s.History) != 1 || s.History[0].Archetype != "panic" {
		t.Errorf("history = %+v, want one entry for panic", s.History)
	}
	if s.Current != "burnout" {
		t.Errorf("Current = %q, want burnout", s.Current)
	}
}

func TestRecordOutcome_DefeatResets(t *testing.T) {
	s := &MinotaurState{Current: "panic", StreakDays: 10}

	achieved := s.RecordOutcome([]string{"burnout", "panic"}, day(30))
	if achieved {
		t.Error("defeat should never fire the achievement")
	}
	if s.StreakDays != 0 {
		t.Errorf("StreakDays = %d, want 0", s.StreakDays)
	}
	if s.LastDefeat == nil || !s.LastDefeat.Equal(day(30)) {
		t.Errorf("LastDefeat = %v, want %v", s.LastDefeat, day(30))
	}
}

func TestRecordOutcome_StreakGrows(t *testing.T) {
	defeat := day(0)
	s := &MinotaurState{Current: "panic", LastDefeat: &defeat}

	if s.RecordOutcome([]string{"burnout"}, day(10)) {
		t.Error("10-day streak should not fire the achievement")
	}
	if s.StreakDays != 10 {
		t.Errorf("StreakDays = %d, want 10", s.StreakDays)
	}
}

func TestRecordOutcome_AchievementFiresOnceAtThreshold(t *testing.T) {
	defeat := day(0)
	s := &MinotaurState{Current: "panic", LastDefeat: &defeat, StreakDays: 20}

	if !s.RecordOutcome([]string{"burnout"}, day(21)) {
		t.Error("crossing 21 days should fire the achievement")
	}
	// Already past the threshold: no re-fire.
	if s.RecordOutcome([]string{"burnout"}, day(25)) {
		t.Error("achievement should not re-fire past the threshold")
	}
}

func TestRecordOutcome_NoPriorDefeat(t *testing.T) {
	s := &MinotaurState{Current: "panic", StreakDays: 4}
	s.RecordOutcome([]string{"burnout"}, day(9))
	if s.StreakDays != 4 {
		t.Errorf("StreakDays = %d, want unchanged 4 with no prior defeat", s.StreakDays)
	}
}

func TestRecordOutcome_NoMinotaur(t *testing.T) {
	s := &MinotaurState{}
	s.RecordOutcome([]string{"panic"}, day(1))
	if s.LastDefeat != nil {
		t.Error("no Minotaur means no defeat can be recorded")
	}
}
