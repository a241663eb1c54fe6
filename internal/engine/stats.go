package engine

import (
	"context"
	"log"
	"time"

	"github.com/adite/labyrinth/internal/analytics"
	"github.com/adite/labyrinth/internal/history"
	"github.com/adite/labyrinth/internal/remediation"
	"github.com/adite/labyrinth/internal/scoring"
	"github.com/adite/labyrinth/internal/vault"
)

// Stats is a read-only snapshot of everything the stats surfaces show.
type Stats struct {
	TotalEvents int
	WindowSize  int

	Minotaur    string
	Leaderboard []scoring.ScoredArchetype

	StreakDays   int
	XP           remediation.XPState
	Level        remediation.LevelThreshold
	Bounty       *remediation.Bounty
	PendingCount int
	ChronicTasks []string
	QueuedDrills []string

	HistoryFrequency map[string]int
	MostPersistent   string
	PersistentRun    int
	Instability      int

	EscapeRate analytics.EscapeRate
	Nemesis    []analytics.TopicCount
	Threads    []analytics.ThreadCount
	Findings   []analytics.Finding
}

// Stats scans the vault and derives the full analytics view. It never
// mutates state.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	events, err := e.scanLosses(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()

	s := &Stats{
		TotalEvents:  len(events),
		WindowSize:   e.cfg.Scoring.LookbackDays,
		Minotaur:     e.settings.Minotaur.Current,
		Leaderboard:  analytics.Leaderboard(events, now, e.cfg.Scoring),
		StreakDays:   e.settings.Minotaur.StreakDays,
		XP:           e.settings.XP,
		Level:        remediation.LevelFor(e.settings.XP.Total),
		Bounty:       e.settings.Bounty,
		PendingCount: e.settings.Pending.Len(),
		QueuedDrills: e.settings.QueuedDrills,

		HistoryFrequency: history.Frequency(e.settings.Minotaur.History),
		Instability:      history.Instability(e.settings.Minotaur.History, history.DefaultInstabilityWindow),

		EscapeRate: analytics.ComputeEscapeRate(events, e.redeemedTopics(ctx)),
		Nemesis:    analytics.NemesisTopics(events),
		Threads:    analytics.ThreadReuse(events),
		Findings:   analytics.RunProbes(analytics.DefaultProbes(), events),
	}
	s.MostPersistent, s.PersistentRun = history.MostPersistent(e.settings.Minotaur.History)

	for id, n := range e.settings.Deferrals {
		if n >= e.cfg.DeferralThreshold {
			s.ChronicTasks = append(s.ChronicTasks, id)
		}
	}
	return s, nil
}

// redeemedTopics collects topic names and tags claimed by
// high-understanding follow-up records, mapped to the earliest such
// record's timestamp so the escape rate can reject reviews that
// predate the failure. Unreadable records are skipped.
func (e *Engine) redeemedTopics(ctx context.Context) map[string]time.Time {
	redeemed := make(map[string]time.Time)
	paths, err := e.vault.List(ctx, e.cfg.ReviewScope)
	if err != nil {
		log.Printf("list follow-up records: %v", err)
		return redeemed
	}
	for _, path := range paths {
		raw, err := e.vault.ReadMeta(ctx, path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		meta, err := vault.DecodeReviewMeta(raw)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		if !meta.HighUnderstanding() {
			continue
		}
		at := meta.Time()
		for _, t := range append(meta.Topics, meta.Tags...) {
			if prev, ok := redeemed[t]; !ok || at.Before(prev) {
				redeemed[t] = at
			}
		}
	}
	return redeemed
}
