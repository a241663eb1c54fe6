package scoring

// Decay-weighted archetype scoring.
//
//	weight(event) = decay ^ floor(daysSince(event))
//	score(a)      = sum of weight(e) over in-window events tagged a
//
// Smaller decay factors forget faster; decay = 1 reduces scores to raw
// occurrence counts. Only events inside the lookback window count at all.

import (
	"math"
	"time"

	"github.com/adite/labyrinth/internal/event"
)

const (
	// DefaultLookbackDays is the rolling aggregation window.
	DefaultLookbackDays = 30

	// DefaultDecayFactor is the per-day weight shrinkage.
	DefaultDecayFactor = 0.95

	// MinDecayFactor and MaxDecayFactor bound the configurable range.
	MinDecayFactor = 0.8
	MaxDecayFactor = 0.99
)

// Config holds scoring settings.
type Config struct {
	LookbackDays int
	DecayFactor  float64
}

// DefaultConfig returns the standard 30-day / 0.95 configuration.
func DefaultConfig() Config {
	return Config{
		LookbackDays: DefaultLookbackDays,
		DecayFactor:  DefaultDecayFactor,
	}
}

// Normalize clamps the config into its supported range.
func (c Config) Normalize() Config {
	if c.LookbackDays <= 0 {
		c.LookbackDays = DefaultLookbackDays
	}
	if c.DecayFactor < MinDecayFactor || c.DecayFactor > MaxDecayFactor {
		c.DecayFactor = DefaultDecayFactor
	}
	return c
}

// Weight computes the decay weight of a single event at evaluation time.
// Events from the future (clock skew) weigh 1.
func Weight(eventTime, now time.Time, decay float64) float64 {
	days := math.Floor(now.Sub(eventTime).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return math.Pow(decay, days)
}

// InWindow reports whether an event falls inside the lookback window.
func InWindow(eventTime, now time.Time, lookbackDays int) bool {
	cutoff := now.AddDate(0, 0, -lookbackDays)
	return !eventTime.Before(cutoff) && !eventTime.After(now)
}

// ScoredArchetype is one entry of a ranked score list.
type ScoredArchetype struct {
	Archetype string
	Score     float64
	Events    int
}

// Rank computes decayed per-archetype scores over the in-window events
// and returns them highest first. Ties resolve to the archetype that
// appears first in the event stream; for a fixed input ordering the
// result is deterministic.
func Rank(events []event.FailureEvent, now time.Time, cfg Config) []ScoredArchetype {
	cfg = cfg.Normalize()

	scores := make(map[string]float64)
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for _, ev := range events {
		if !InWindow(ev.Timestamp, now, cfg.LookbackDays) {
			continue
		}
		w := Weight(ev.Timestamp, now, cfg.DecayFactor)
		for _, a := range ev.Archetypes {
			if _, ok := firstSeen[a]; !ok {
				firstSeen[a] = len(order)
				order = append(order, a)
			}
			scores[a] += w
			counts[a]++
		}
	}

	ranked := make([]ScoredArchetype, 0, len(order))
	for _, a := range order {
		ranked = append(ranked, ScoredArchetype{Archetype: a, Score: scores[a], Events: counts[a]})
	}
	sortRanked(ranked, firstSeen)
	return ranked
}

// Dominant returns the archetype with the strictly greatest decayed
// score, or "" when no events fall inside the window.
func Dominant(events []event.FailureEvent, now time.Time, cfg Config) string {
	ranked := Rank(events, now, cfg)
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0].Archetype
}

func sortRanked(ranked []ScoredArchetype, firstSeen map[string]int) {
	// Insertion sort keeps the comparator explicit: higher score first,
	// earlier discovery breaks ties.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0; j-- {
			a, b := ranked[j-1], ranked[j]
			if b.Score > a.Score || (b.Score == a.Score && firstSeen[b.Archetype] < firstSeen[a.Archetype]) {
				ranked[j-1], ranked[j] = b, a
			} else {
				break
			}
		}
	}
}
