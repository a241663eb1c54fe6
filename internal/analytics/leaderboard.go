package analytics

import (
	"time"

	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/scoring"
)

// LeaderboardSize is how many archetypes the weighted leaderboard shows.
const LeaderboardSize = 5

// Leaderboard ranks archetypes by decayed score, top entries first.
// Same formula as the Minotaur computation, but read-only and
// independent of the stored dominant archetype.
func Leaderboard(events []event.FailureEvent, now time.Time, cfg scoring.Config) []scoring.ScoredArchetype {
	ranked := scoring.Rank(events, now, cfg)
	if len(ranked) > LeaderboardSize {
		ranked = ranked[:LeaderboardSize]
	}
	return ranked
}
