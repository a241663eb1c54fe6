package remediation

import "math/rand"

// DrillsPerTransition is how many drills surface when the Minotaur
// changes.
const DrillsPerTransition = 2

// Library maps archetypes to their remediation drills. The Default set
// serves archetypes without dedicated drills.
type Library struct {
	Drills  map[string][]string `json:"drills"`
	Default []string            `json:"default"`
}

// DrillsFor returns the drill set for an archetype, falling back to the
// default set.
func (l Library) DrillsFor(archetype string) []string {
	if drills, ok := l.Drills[archetype]; ok && len(drills) > 0 {
		return drills
	}
	return l.Default
}

// SelectDrills samples up to n drills for the archetype without
// replacement, skipping any drill already queued. Sampling uses the
// provided rng so callers control determinism.
func SelectDrills(lib Library, archetype string, n int, queued []string, rng *rand.Rand) []string {
	pool := lib.DrillsFor(archetype)
	queuedSet := make(map[string]bool, len(queued))
	for _, d := range queued {
		queuedSet[d] = true
	}

	candidates := make([]string, 0, len(pool))
	for _, d := range pool {
		if !queuedSet[d] {
			candidates = append(candidates, d)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// DefaultLibrary returns the built-in drill library.
func DefaultLibrary() Library {
	return Library{
		Drills: map[string][]string{
			"time-mismanagement": {
				"Run one 25-minute timeboxed MCQ block and stop at the bell",
				"Write tomorrow's top 3 tasks with per-task time budgets",
				"Review yesterday's plan vs. actuals for 10 minutes",
			},
			"procrastination": {
				"Do the dreaded task first for exactly 10 minutes",
				"Break the next avoided task into 3 concrete steps",
				"Clear one lingering item from the deferred queue",
			},
			"source-credibility": {
				"Trace one recent fact back to its primary source",
				"Cross-check today's notes against the standard reference",
			},
			"panic": {
				"Re-attempt one failed question untimed, narrating each step",
				"Write down the trigger chain of the last panic moment",
			},
			"shallow-understanding": {
				"Explain the last failed topic aloud in two minutes",
				"Draw the concept map of the topic from memory, then check",
			},
		},
		Default: []string{
			"Re-read the loss log for this archetype and write one countermeasure",
			"Teach the failed concept to an empty chair for five minutes",
		},
	}
}
