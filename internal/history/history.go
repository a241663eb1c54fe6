package history

import "time"

// MaxEntries bounds the transition log to the most recent transitions.
const MaxEntries = 30

// DefaultInstabilityWindow is how many recent entries the instability
// measure looks at.
const DefaultInstabilityWindow = 5

// Transition records that the dominant archetype changed on a given day.
// Archetype is the archetype that was dominant *before* the change.
type Transition struct {
	Date      time.Time `json:"date"`
	Archetype string    `json:"archetype"`
}

// Push appends a transition and trims the log to MaxEntries, oldest
// entries dropping first.
func Push(log []Transition, t Transition) []Transition {
	log = append(log, t)
	if len(log) > MaxEntries {
		log = log[len(log)-MaxEntries:]
	}
	return log
}

// Frequency counts how many times each archetype appears in the log.
func Frequency(log []Transition) map[string]int {
	counts := make(map[string]int, len(log))
	for _, t := range log {
		counts[t.Archetype]++
	}
	return counts
}

// MostPersistent returns the archetype with the longest run of
// consecutive identical entries and that run's length. Ties resolve to
// the run that occurs first. Empty log returns ("", 0).
func MostPersistent(log []Transition) (string, int) {
	best, bestLen := "", 0
	i := 0
	for i < len(log) {
		j := i
		for j < len(log) && log[j].Archetype == log[i].Archetype {
			j++
		}
		if j-i > bestLen {
			best, bestLen = log[i].Archetype, j-i
		}
		i = j
	}
	return best, bestLen
}

// Instability counts distinct archetypes in the last n entries. A high
// count means the dominant pattern has been churning recently.
func Instability(log []Transition, n int) int {
	if n <= 0 {
		n = DefaultInstabilityWindow
	}
	if n > len(log) {
		n = len(log)
	}
	seen := make(map[string]bool, n)
	for _, t := range log[len(log)-n:] {
		seen[t.Archetype] = true
	}
	return len(seen)
}
