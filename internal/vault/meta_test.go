package vault

import (
	"testing"
	"time"

	"github.com/adite/labyrinth/internal/event"
)

func sampleEvent() event.FailureEvent {
	return event.FailureEvent{
		ID:             "loss_20260314_150926",
		SourceTask:     "Revise Polity",
		FailureType:    event.TypeKnowledgeGap,
		Archetypes:     []string{"time-mismanagement", "panic"},
		Impact:         4,
		Topics:         []string{"Polity", "Federalism"},
		Papers:         []string{"GS2"},
		Aura:           "low",
		Emotional:      "frustrated",
		RootCauseChain: []string{"ran out of time", "no timeboxing"},
		Principle:      "Always timebox MCQs",
		Timestamp:      time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Provenance:     event.Provenance{Origin: event.OriginDeferred, SourceID: "task-42"},
	}
}

func TestLossMeta_RoundTrip(t *testing.T) {
	ev := sampleEvent()

	raw, err := MetaFromEvent(ev).ToMap()
	if err != nil {
		t.Fatalf("ToMap: %v", err)
	}
	meta, err := DecodeLossMeta(raw)
	if err != nil {
		t.Fatalf("DecodeLossMeta: %v", err)
	}
	got, err := meta.Event()
	if err != nil {
		t.Fatalf("Event: %v", err)
	}

	if got.ID != ev.ID || got.SourceTask != ev.SourceTask || got.Principle != ev.Principle {
		t.Errorf("round trip lost scalar fields: %+v", got)
	}
	if !got.Timestamp.Equal(ev.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, ev.Timestamp)
	}
	if got.Provenance != ev.Provenance {
		t.Errorf("Provenance = %+v, want %+v", got.Provenance, ev.Provenance)
	}
	if len(got.Archetypes) != 2 || got.Archetypes[0] != "time-mismanagement" {
		t.Errorf("Archetypes = %v", got.Archetypes)
	}
	if len(got.Topics) != 2 || got.Topics[1] != "Federalism" {
		t.Errorf("Topics = %v", got.Topics)
	}
}

func TestDecodeLossMeta_Defaults(t *testing.T) {
	raw := map[string]any{
		"lossId":     "loss_x",
		"sourceTask": "x",
		"timestamp":  "2026-03-14T15:09:26Z",
	}
	meta, err := DecodeLossMeta(raw)
	if err != nil {
		t.Fatalf("DecodeLossMeta: %v", err)
	}
	if meta.FailureType != string(event.TypeKnowledgeGap) {
		t.Errorf("FailureType = %q, want default knowledge-gap", meta.FailureType)
	}
	if meta.Aura != event.DefaultAura {
		t.Errorf("Aura = %q, want %q", meta.Aura, event.DefaultAura)
	}
	if meta.Provenance.Origin != string(event.OriginManual) {
		t.Errorf("Origin = %q, want manual", meta.Provenance.Origin)
	}
}

func TestDecodeLossMeta_MissingID(t *testing.T) {
	if _, err := DecodeLossMeta(map[string]any{"sourceTask": "x"}); err == nil {
		t.Error("missing lossId should fail decode")
	}
}

func TestLossMeta_Event_BadTimestamp(t *testing.T) {
	m := LossMeta{LossID: "loss_x", Timestamp: "yesterday-ish"}
	if _, err := m.Event(); err == nil {
		t.Error("unparseable timestamp should fail")
	}
}

func TestDecodeReviewMeta(t *testing.T) {
	raw := map[string]any{
		"topics":        []any{"Polity"},
		"tags":          []any{"revision"},
		"understanding": "high",
	}
	m, err := DecodeReviewMeta(raw)
	if err != nil {
		t.Fatalf("DecodeReviewMeta: %v", err)
	}
	if !m.HighUnderstanding() {
		t.Error("understanding=high should report HighUnderstanding")
	}

	m2, _ := DecodeReviewMeta(map[string]any{"understanding": "shaky"})
	if m2.HighUnderstanding() {
		t.Error("understanding=shaky should not report HighUnderstanding")
	}
}

func TestReviewMetaTime(t *testing.T) {
	m, err := DecodeReviewMeta(map[string]any{
		"understanding": "high",
		"timestamp":     "2026-03-10T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("DecodeReviewMeta: %v", err)
	}
	want := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if !m.Time().Equal(want) {
		t.Errorf("Time() = %v, want %v", m.Time(), want)
	}

	if !(ReviewMeta{}).Time().IsZero() {
		t.Error("missing timestamp should parse to the zero time")
	}
	if !(ReviewMeta{Timestamp: "not-a-time"}).Time().IsZero() {
		t.Error("unparseable timestamp should parse to the zero time")
	}
}
