package analytics

import (
	"time"

	"github.com/adite/labyrinth/internal/event"
)

// EscapeRate is the fraction of distinct failed topics later redeemed
// by a high-understanding follow-up record.
type EscapeRate struct {
	Percent float64
	Escaped int
	Total   int
}

// ComputeEscapeRate measures how many distinct failed topics were later
// redeemed. The caller builds redeemed from high-understanding
// follow-up records, matching by topic name or tag; the mapped time is
// the earliest such record's timestamp. A topic escapes only when its
// redemption does not predate its first failure; a zero redemption
// time means the record carries no timestamp and is trusted as a
// follow-up.
func ComputeEscapeRate(events []event.FailureEvent, redeemed map[string]time.Time) EscapeRate {
	firstFailed := make(map[string]time.Time)
	for _, ev := range events {
		for _, topic := range ev.Topics {
			if topic == "" {
				continue
			}
			if first, ok := firstFailed[topic]; !ok || ev.Timestamp.Before(first) {
				firstFailed[topic] = ev.Timestamp
			}
		}
	}

	escaped := 0
	for topic, failedAt := range firstFailed {
		at, ok := redeemed[topic]
		if !ok {
			continue
		}
		if at.IsZero() || !at.Before(failedAt) {
			escaped++
		}
	}

	rate := EscapeRate{Escaped: escaped, Total: len(firstFailed)}
	if rate.Total > 0 {
		rate.Percent = 100 * float64(escaped) / float64(rate.Total)
	}
	return rate
}
