package analytics

import (
	"fmt"
	"sort"

	"github.com/adite/labyrinth/internal/event"
)

// Correlation scan over curated pairs of categorical fields. Each probe
// conditions on the values of one field and measures P(B|A); a pair
// surfaces only when its confidence clears the probe's threshold and
// the conditioning set is non-trivially sized.

const (
	// PresetThreshold applies to the curated probes.
	PresetThreshold = 0.60
	// SweepThreshold applies to the exploratory paper x type sweep.
	SweepThreshold = 0.70
	// MinSupport is the smallest conditioning set worth reporting on.
	MinSupport = 3
	// HighImpactCutoff splits impact into a binary outcome for the
	// emotional-state probe.
	HighImpactCutoff = 4
)

// Finding is one surfaced correlation.
type Finding struct {
	Probe      string
	Given      string  // conditioning value A
	Outcome    string  // outcome value B
	Support    int     // |A|
	Confidence float64 // P(B|A)
}

// Probe detects correlations between two categorical fields.
type Probe interface {
	Name() string
	Findings(events []event.FailureEvent) []Finding
}

// DefaultProbes returns the curated probes in report order.
func DefaultProbes() []Probe {
	return []Probe{
		&ArchetypeAuraProbe{},
		&EmotionImpactProbe{},
		&PaperTypeProbe{},
	}
}

// RunProbes executes every probe and concatenates the findings.
func RunProbes(probes []Probe, events []event.FailureEvent) []Finding {
	var all []Finding
	for _, p := range probes {
		all = append(all, p.Findings(events)...)
	}
	return all
}

// ArchetypeAuraProbe asks: given an archetype, does one aura dominate?
type ArchetypeAuraProbe struct{}

func (p *ArchetypeAuraProbe) Name() string { return "archetype-aura" }

func (p *ArchetypeAuraProbe) Findings(events []event.FailureEvent) []Finding {
	return conditional(p.Name(), events, PresetThreshold,
		func(ev event.FailureEvent) []string { return ev.Archetypes },
		func(ev event.FailureEvent) string { return ev.Aura },
	)
}

// EmotionImpactProbe asks: given an emotional state, are failures
// disproportionately high-impact?
type EmotionImpactProbe struct{}

func (p *EmotionImpactProbe) Name() string { return "emotion-impact" }

func (p *EmotionImpactProbe) Findings(events []event.FailureEvent) []Finding {
	return conditional(p.Name(), events, PresetThreshold,
		func(ev event.FailureEvent) []string {
			if ev.Emotional == "" {
				return nil
			}
			return []string{ev.Emotional}
		},
		func(ev event.FailureEvent) string {
			if ev.Impact >= HighImpactCutoff {
				return "high-impact"
			}
			return ""
		},
	)
}

// PaperTypeProbe is the exploratory sweep: given a paper, does one
// failure type dominate? Held to the stricter threshold.
type PaperTypeProbe struct{}

func (p *PaperTypeProbe) Name() string { return "paper-type" }

func (p *PaperTypeProbe) Findings(events []event.FailureEvent) []Finding {
	return conditional(p.Name(), events, SweepThreshold,
		func(ev event.FailureEvent) []string { return ev.Papers },
		func(ev event.FailureEvent) string { return string(ev.FailureType) },
	)
}

// conditional computes P(B|A) for every conditioning value produced by
// given and every outcome produced by outcome. Empty outcomes count
// toward support but never surface.
func conditional(
	probe string,
	events []event.FailureEvent,
	threshold float64,
	given func(event.FailureEvent) []string,
	outcome func(event.FailureEvent) string,
) []Finding {
	support := make(map[string]int)
	joint := make(map[string]map[string]int)

	for _, ev := range events {
		b := outcome(ev)
		for _, a := range given(ev) {
			if a == "" {
				continue
			}
			support[a]++
			if b == "" {
				continue
			}
			if joint[a] == nil {
				joint[a] = make(map[string]int)
			}
			joint[a][b]++
		}
	}

	var findings []Finding
	for a, n := range support {
		if n < MinSupport {
			continue
		}
		for b, nb := range joint[a] {
			conf := float64(nb) / float64(n)
			if conf > threshold {
				findings = append(findings, Finding{
					Probe:      probe,
					Given:      a,
					Outcome:    b,
					Support:    n,
					Confidence: conf,
				})
			}
		}
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Confidence != findings[j].Confidence {
			return findings[i].Confidence > findings[j].Confidence
		}
		return findings[i].Given < findings[j].Given
	})
	return findings
}

// Describe renders a finding for display.
func (f Finding) Describe() string {
	return fmt.Sprintf("%s: %q -> %q in %.0f%% of %d events",
		f.Probe, f.Given, f.Outcome, f.Confidence*100, f.Support)
}
