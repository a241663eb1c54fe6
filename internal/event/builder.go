package event

import (
	"fmt"
	"time"
)

// Partial carries raw captured input before normalization. Zero values
// mean "not provided".
type Partial struct {
	SourceTask       string
	FailureType      FailureType
	Archetypes       []string
	Impact           int
	Topics           []string
	Papers           []string
	Aura             string
	Emotional        string
	RootCauseChain   []string
	Principle        string
	CounterFactual   string
	EvidenceRef      string
	LinkedTestRef    string
	RealizationPoint string
	Origin           Origin
	SourceID         string
}

// DefaultImpact is assigned when no impact rating is captured.
const DefaultImpact = 3

// Prepare normalizes raw captured input into a canonical FailureEvent.
// It is pure: the same input and clock produce the same event. No I/O.
func Prepare(p Partial, now time.Time) FailureEvent {
	ev := FailureEvent{
		ID:               NewID(now),
		SourceTask:       p.SourceTask,
		FailureType:      p.FailureType,
		Archetypes:       dedupe(p.Archetypes),
		Impact:           p.Impact,
		Topics:           emptyIfNil(p.Topics),
		Papers:           emptyIfNil(p.Papers),
		Aura:             p.Aura,
		Emotional:        p.Emotional,
		RootCauseChain:   emptyIfNil(p.RootCauseChain),
		Principle:        p.Principle,
		CounterFactual:   p.CounterFactual,
		EvidenceRef:      p.EvidenceRef,
		LinkedTestRef:    p.LinkedTestRef,
		RealizationPoint: p.RealizationPoint,
		Timestamp:        now,
		Provenance:       Provenance{Origin: p.Origin, SourceID: p.SourceID},
	}

	if ev.FailureType == "" {
		ev.FailureType = TypeKnowledgeGap
	}
	if ev.Impact == 0 {
		ev.Impact = DefaultImpact
	}
	if ev.Aura == "" {
		ev.Aura = DefaultAura
	}
	if ev.Provenance.Origin == "" {
		ev.Provenance.Origin = OriginManual
	}
	if len(ev.RootCauseChain) > MaxRootCauses {
		ev.RootCauseChain = ev.RootCauseChain[:MaxRootCauses]
	}
	return ev
}

// NewID derives the loss_<date>_<time> identifier from the event clock.
func NewID(now time.Time) string {
	return fmt.Sprintf("loss_%s_%s", now.Format("20060102"), now.Format("150405"))
}

// dedupe removes duplicates while preserving first-occurrence order.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
