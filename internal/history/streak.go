package history

import "time"

// AchievementDays is the slaying-streak length that fires the
// achievement signal. Purely observable; the engine takes no further
// action on it.
const AchievementDays = 21

// MinotaurState is the derived dominant-archetype state.
type MinotaurState struct {
	// Current is the dominant archetype, or "" when no events fall in
	// the lookback window.
	Current string `json:"current"`
	// History holds the last MaxEntries dominant-archetype transitions.
	History []Transition `json:"history"`
	// StreakDays is the current slaying streak: days spent logging
	// failures without the Minotaur showing up in them.
	StreakDays int `json:"streakDays"`
	// LastDefeat is the last day a completed event included the
	// Minotaur, nil if that never happened.
	LastDefeat *time.Time `json:"lastDefeatDate,omitempty"`
}

// RecordOutcome updates the slaying streak after a completed event.
// If the event's archetypes include the current Minotaur the streak
// resets to zero and the defeat date moves to today; otherwise the
// streak becomes the days elapsed since the last defeat (unchanged if
// there has never been one). It returns true when the streak crosses
// AchievementDays.
func (s *MinotaurState) RecordOutcome(archetypes []string, now time.Time) (achieved bool) {
	if s.Current != "" && contains(archetypes, s.Current) {
		s.StreakDays = 0
		defeat := now
		s.LastDefeat = &defeat
		return false
	}
	if s.LastDefeat == nil {
		return false
	}
	prev := s.StreakDays
	s.StreakDays = daysBetween(*s.LastDefeat, now)
	return s.StreakDays >= AchievementDays && prev < AchievementDays
}

// RecordTransition pushes the outgoing archetype onto the history and
// installs the new dominant one. A no-op when nothing changed, so
// recomputation stays idempotent.
func (s *MinotaurState) RecordTransition(newArchetype string, now time.Time) bool {
	if newArchetype == s.Current {
		return false
	}
	if s.Current != "" {
		s.History = Push(s.History, Transition{Date: now, Archetype: s.Current})
	}
	s.Current = newArchetype
	return true
}

func daysBetween(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
