package remediation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/adite/labyrinth/internal/event"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp        int
		wantLevel int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{999, 4},
		{1000, 5},
		{8000, 8},
		{50000, 8},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.xp); got.Level != tt.wantLevel {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, got.Level, tt.wantLevel)
		}
	}
}

func TestXPState_Award(t *testing.T) {
	s := &XPState{Total: 95}

	leveled, level := s.Award(DefaultXPPerEvent)
	if !leveled || level.Level != 2 {
		t.Errorf("Award crossing 100 = (%v, %d), want level up to 2", leveled, level.Level)
	}
	if s.Total != 105 {
		t.Errorf("Total = %d, want 105", s.Total)
	}

	leveled, _ = s.Award(DefaultXPPerEvent)
	if leveled {
		t.Error("no boundary crossed, should not level up")
	}

	// Monotonic: negative awards are ignored.
	s.Award(-50)
	if s.Total != 115 {
		t.Errorf("Total = %d, want 115 (negative award ignored)", s.Total)
	}
}

func TestBounty_RecordHit(t *testing.T) {
	b := NewBounty("panic", 3, 30)

	progressed, completed := b.RecordHit([]string{"burnout"})
	if progressed || completed {
		t.Error("miss should not progress the bounty")
	}

	b.RecordHit([]string{"panic"})
	b.RecordHit([]string{"panic", "burnout"})
	progressed, completed = b.RecordHit([]string{"panic"})
	if !progressed || !completed {
		t.Errorf("third hit = (%v, %v), want completion", progressed, completed)
	}
	if b.Count != b.Target {
		t.Errorf("Count = %d, want capped at %d", b.Count, b.Target)
	}

	// Completed latches: further hits change nothing.
	progressed, completed = b.RecordHit([]string{"panic"})
	if progressed || completed {
		t.Error("completed bounty must ignore further hits")
	}
	if b.Count != b.Target || !b.Completed {
		t.Errorf("bounty reverted: %+v", b)
	}
}

func TestBounty_Defaults(t *testing.T) {
	b := NewBounty("panic", 0, 0)
	if b.Target != DefaultBountyTarget || b.RewardXP != DefaultBountyRewardXP {
		t.Errorf("defaults = %+v", b)
	}
	if b.ID == "" {
		t.Error("bounty should get an id")
	}
}

func TestSelectDrills(t *testing.T) {
	lib := Library{
		Drills:  map[string][]string{"panic": {"a", "b", "c"}},
		Default: []string{"d1", "d2"},
	}
	rng := rand.New(rand.NewSource(1))

	got := SelectDrills(lib, "panic", DrillsPerTransition, nil, rng)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] == got[1] {
		t.Error("sampling must be without replacement")
	}

	// Queued drills are skipped.
	got = SelectDrills(lib, "panic", DrillsPerTransition, []string{"a", "b"}, rng)
	if len(got) != 1 || got[0] != "c" {
		t.Errorf("got = %v, want only c", got)
	}

	// Unknown archetype falls back to the default set.
	got = SelectDrills(lib, "unknown", DrillsPerTransition, nil, rng)
	if len(got) != 2 {
		t.Fatalf("fallback len = %d, want 2", len(got))
	}
	for _, d := range got {
		if d != "d1" && d != "d2" {
			t.Errorf("unexpected fallback drill %q", d)
		}
	}
}

func TestParseLibrary(t *testing.T) {
	valid := []byte(`{"drills": {"panic": ["breathe"]}, "default": ["review"]}`)
	lib, err := ParseLibrary(valid)
	if err != nil {
		t.Fatalf("ParseLibrary: %v", err)
	}
	if len(lib.DrillsFor("panic")) != 1 || lib.DrillsFor("panic")[0] != "breathe" {
		t.Errorf("DrillsFor(panic) = %v", lib.DrillsFor("panic"))
	}

	invalid := [][]byte{
		[]byte(`{`),
		[]byte(`{"drills": {}}`),                                 // missing default
		[]byte(`{"drills": {"panic": []}, "default": ["x"]}`),    // empty drill list
		[]byte(`{"drills": {}, "default": ["x"], "extra": true}`), // unknown key
	}
	for i, raw := range invalid {
		if _, err := ParseLibrary(raw); err == nil {
			t.Errorf("invalid[%d] should fail validation", i)
		}
	}
}

func TestDefaultLibraryIsValid(t *testing.T) {
	lib := DefaultLibrary()
	if len(lib.Default) == 0 {
		t.Fatal("default drill set must not be empty")
	}
	for archetype, drills := range lib.Drills {
		if len(drills) == 0 {
			t.Errorf("archetype %q has no drills", archetype)
		}
	}
}

func TestSynthesizeVOITasks(t *testing.T) {
	now := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	withTopics := event.FailureEvent{
		SourceTask: "Editorial notes",
		Archetypes: []string{CredibilityArchetype},
		Topics:     []string{"Polity", "Economy"},
	}
	if !TriggersVOI(withTopics) {
		t.Fatal("credibility archetype should trigger VOI")
	}
	tasks := SynthesizeVOITasks(withTopics, now)
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want one task per topic", len(tasks))
	}
	for _, task := range tasks {
		if task.ID == "" || !task.CreatedAt.Equal(now) {
			t.Errorf("task = %+v", task)
		}
	}

	noTopics := event.FailureEvent{SourceTask: "Editorial notes", Archetypes: []string{CredibilityArchetype}}
	tasks = SynthesizeVOITasks(noTopics, now)
	if len(tasks) != 1 {
		t.Errorf("len = %d, want one generic task", len(tasks))
	}

	if TriggersVOI(event.FailureEvent{Archetypes: []string{"panic"}}) {
		t.Error("non-credibility archetypes should not trigger VOI")
	}
}

func TestStepDown(t *testing.T) {
	tests := []struct {
		in      GardenStatus
		want    GardenStatus
		stepped bool
	}{
		{GardenFresh, GardenWilted, true},
		{GardenWilted, GardenSeedling, true},
		{GardenSeedling, GardenSeedling, false},
		{"", "", false},
		{"evergreen", "evergreen", false},
	}
	for _, tt := range tests {
		got, stepped := StepDown(tt.in)
		if got != tt.want || stepped != tt.stepped {
			t.Errorf("StepDown(%q) = (%q, %v), want (%q, %v)", tt.in, got, stepped, tt.want, tt.stepped)
		}
	}
}

func TestAddTag_Idempotent(t *testing.T) {
	tags, added := AddTag([]string{"polity"}, UnstableTag)
	if !added || len(tags) != 2 {
		t.Fatalf("AddTag = (%v, %v)", tags, added)
	}
	tags, added = AddTag(tags, UnstableTag)
	if added || len(tags) != 2 {
		t.Errorf("second AddTag = (%v, %v), want no-op", tags, added)
	}
}

func TestEnshrinement(t *testing.T) {
	evs := []event.FailureEvent{
		{Principle: "Always timebox MCQs"},
		{Principle: "  Always timebox MCQs  "},
		{Principle: "Read the question twice"},
	}

	if got := CountPrinciple(evs, "Always timebox MCQs"); got != 2 {
		t.Errorf("CountPrinciple = %d, want 2 (trimmed match)", got)
	}
	if CountPrinciple(evs, "") != 0 {
		t.Error("empty principle should never count")
	}

	// The third occurrence triggers; the fourth does not.
	if ShouldEnshrine(2) {
		t.Error("2 occurrences should not enshrine")
	}
	if !ShouldEnshrine(3) {
		t.Error("3 occurrences should enshrine")
	}
	if ShouldEnshrine(4) {
		t.Error("4 occurrences should not re-enshrine")
	}
}
