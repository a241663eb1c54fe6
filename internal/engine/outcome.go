package engine

import (
	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/remediation"
)

// Outcome carries everything that happened while processing one
// operation, as explicit return values the caller dispatches on. There
// is no listener registry: what the UI surfaces is its business.
type Outcome struct {
	Event *event.FailureEvent

	XPAwarded int
	LeveledUp bool
	Level     remediation.LevelThreshold

	StreakDays     int
	StreakAchieved bool

	BountyProgressed bool
	BountyCompleted  bool
	BountyRewardXP   int

	// Enshrined is set when the event's principle was promoted to the codex.
	Enshrined bool

	VOITasks []remediation.Task

	// GardenNotices describe topic consequence transitions, one per
	// stepped-down or newly tagged topic.
	GardenNotices []string

	MinotaurChanged  bool
	PreviousMinotaur string
	Minotaur         string
	// Drills are the remediation drills surfaced for a new Minotaur.
	Drills []string
}
