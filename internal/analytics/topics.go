package analytics

import (
	"sort"

	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/remediation"
)

// NemesisThreshold is the minimum number of distinct implicating events
// for a topic to count as a nemesis.
const NemesisThreshold = 3

// TopicCount pairs a topic with how many distinct events implicated it.
type TopicCount struct {
	Topic  string
	Events int
}

// NemesisTopics returns topics appearing in at least NemesisThreshold
// distinct events' topic lists, most-implicated first.
func NemesisTopics(events []event.FailureEvent) []TopicCount {
	counts := make(map[string]int)
	for _, ev := range events {
		seen := make(map[string]bool, len(ev.Topics))
		for _, topic := range ev.Topics {
			if topic == "" || seen[topic] {
				continue
			}
			seen[topic] = true
			counts[topic]++
		}
	}

	var out []TopicCount
	for topic, n := range counts {
		if n >= NemesisThreshold {
			out = append(out, TopicCount{Topic: topic, Events: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Events != out[j].Events {
			return out[i].Events > out[j].Events
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

// ThreadReuseSize caps the thread-reuse report.
const ThreadReuseSize = 5

// ThreadCount pairs a principle text with its exact-match usage count.
type ThreadCount struct {
	Principle string
	Uses      int
}

// ThreadReuse counts exact-match (trimmed) principle strings and
// returns the top reused ones.
func ThreadReuse(events []event.FailureEvent) []ThreadCount {
	counts := make(map[string]int)
	for _, ev := range events {
		p := remediation.NormalizePrinciple(ev.Principle)
		if p == "" {
			continue
		}
		counts[p]++
	}

	out := make([]ThreadCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, ThreadCount{Principle: p, Uses: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Uses != out[j].Uses {
			return out[i].Uses > out[j].Uses
		}
		return out[i].Principle < out[j].Principle
	})
	if len(out) > ThreadReuseSize {
		out = out[:ThreadReuseSize]
	}
	return out
}
