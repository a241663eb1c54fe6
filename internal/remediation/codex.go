package remediation

import (
	"fmt"
	"strings"
	"time"

	"github.com/adite/labyrinth/internal/event"
)

// EnshrineRepeatCount is how many verbatim repetitions of a principle
// promote it to the codex. Exactly this count triggers; the 4th and
// later repetitions do not re-trigger.
const EnshrineRepeatCount = 3

// NormalizePrinciple is the verbatim-match rule: exact text, trimmed.
func NormalizePrinciple(p string) string {
	return strings.TrimSpace(p)
}

// CountPrinciple counts events carrying the same normalized principle.
func CountPrinciple(events []event.FailureEvent, principle string) int {
	want := NormalizePrinciple(principle)
	if want == "" {
		return 0
	}
	n := 0
	for _, ev := range events {
		if NormalizePrinciple(ev.Principle) == want {
			n++
		}
	}
	return n
}

// ShouldEnshrine applies the exactly-N rule to a total occurrence count
// that includes the event being logged.
func ShouldEnshrine(totalOccurrences int) bool {
	return totalOccurrences == EnshrineRepeatCount
}

// CodexEntry renders the line appended to the codex record.
func CodexEntry(principle string, now time.Time) string {
	return fmt.Sprintf("- %s *(enshrined %s)*\n", NormalizePrinciple(principle), now.Format("2006-01-02"))
}
