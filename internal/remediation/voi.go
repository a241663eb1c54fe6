package remediation

import (
	"fmt"
	"time"

	"github.com/adite/labyrinth/internal/event"
)

// CredibilityArchetype is the source-credibility class archetype that
// triggers value-of-information tasks.
const CredibilityArchetype = "source-credibility"

// TriggersVOI reports whether the event's archetypes include a
// source-credibility class archetype.
func TriggersVOI(ev event.FailureEvent) bool {
	for _, a := range ev.Archetypes {
		if a == CredibilityArchetype {
			return true
		}
	}
	return false
}

// SynthesizeVOITasks builds the value-of-information tasks for a
// credibility failure: one per referenced topic, or one generic task
// when the event names no topics.
func SynthesizeVOITasks(ev event.FailureEvent, now time.Time) []Task {
	if len(ev.Topics) == 0 {
		return []Task{NewTask(
			fmt.Sprintf("Verify the sources behind %q against a primary reference", ev.SourceTask),
			now,
		)}
	}
	tasks := make([]Task, 0, len(ev.Topics))
	for _, topic := range ev.Topics {
		tasks = append(tasks, NewTask(
			fmt.Sprintf("Re-verify %s from a primary source and note the discrepancy", topic),
			now,
		))
	}
	return tasks
}
