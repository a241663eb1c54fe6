package event

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func TestPrepare_Defaults(t *testing.T) {
	ev := Prepare(Partial{SourceTask: "Revise Polity"}, testNow)

	if ev.ID != "loss_20260314_150926" {
		t.Errorf("ID = %q, want loss_20260314_150926", ev.ID)
	}
	if ev.FailureType != TypeKnowledgeGap {
		t.Errorf("FailureType = %q, want knowledge-gap", ev.FailureType)
	}
	if ev.Impact != DefaultImpact {
		t.Errorf("Impact = %d, want %d", ev.Impact, DefaultImpact)
	}
	if ev.Aura != DefaultAura {
		t.Errorf("Aura = %q, want %q", ev.Aura, DefaultAura)
	}
	if ev.Provenance.Origin != OriginManual {
		t.Errorf("Origin = %q, want manual", ev.Provenance.Origin)
	}
	if !ev.Timestamp.Equal(testNow) {
		t.Errorf("Timestamp = %v, want %v", ev.Timestamp, testNow)
	}
	if ev.Topics == nil || ev.Papers == nil || ev.RootCauseChain == nil {
		t.Error("list fields should default to empty, not nil")
	}
}

func TestPrepare_Pure(t *testing.T) {
	p := Partial{SourceTask: "Mock test review", Archetypes: []string{"time-mismanagement"}}
	a := Prepare(p, testNow)
	b := Prepare(p, testNow)
	if a.ID != b.ID || a.Timestamp != b.Timestamp {
		t.Errorf("Prepare not pure: %+v vs %+v", a, b)
	}
}

func TestPrepare_DedupesArchetypes(t *testing.T) {
	ev := Prepare(Partial{
		SourceTask: "x",
		Archetypes: []string{"panic", "time-mismanagement", "panic", "", "time-mismanagement"},
	}, testNow)

	want := []string{"panic", "time-mismanagement"}
	if len(ev.Archetypes) != len(want) {
		t.Fatalf("Archetypes = %v, want %v", ev.Archetypes, want)
	}
	for i := range want {
		if ev.Archetypes[i] != want[i] {
			t.Errorf("Archetypes[%d] = %q, want %q", i, ev.Archetypes[i], want[i])
		}
	}
}

func TestPrepare_CapsRootCauseChain(t *testing.T) {
	ev := Prepare(Partial{
		SourceTask:     "x",
		RootCauseChain: []string{"a", "b", "c", "d", "e", "f", "g"},
	}, testNow)
	if len(ev.RootCauseChain) != MaxRootCauses {
		t.Errorf("chain length = %d, want %d", len(ev.RootCauseChain), MaxRootCauses)
	}
}

func TestValidate(t *testing.T) {
	base := func() FailureEvent {
		return Prepare(Partial{
			SourceTask: "Revise Polity",
			Archetypes: []string{"time-mismanagement"},
			Principle:  "Always timebox MCQs",
		}, testNow)
	}

	tests := []struct {
		name    string
		mutate  func(*FailureEvent)
		wantErr string
	}{
		{"valid", func(ev *FailureEvent) {}, ""},
		{"no source task", func(ev *FailureEvent) { ev.SourceTask = "" }, "sourceTask"},
		{"no archetypes", func(ev *FailureEvent) { ev.Archetypes = nil }, "archetypes"},
		{"no principle", func(ev *FailureEvent) { ev.Principle = "" }, "principle"},
		{"impact too low", func(ev *FailureEvent) { ev.Impact = 0 }, "impact"},
		{"impact too high", func(ev *FailureEvent) { ev.Impact = 6 }, "impact"},
		{"bad type", func(ev *FailureEvent) { ev.FailureType = "vibes" }, "failureType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := base()
			tt.mutate(&ev)
			err := Validate(ev)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantErr {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantErr)
			}
		})
	}
}

func TestValidatePending(t *testing.T) {
	if err := ValidatePending(PendingEvent{SourceTask: "Revise Polity"}); err != nil {
		t.Errorf("ValidatePending() = %v, want nil", err)
	}
	if err := ValidatePending(PendingEvent{}); err == nil {
		t.Error("ValidatePending() = nil, want error for empty sourceTask")
	}
}
