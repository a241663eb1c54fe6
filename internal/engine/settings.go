package engine

import (
	"time"

	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/history"
	"github.com/adite/labyrinth/internal/queue"
	"github.com/adite/labyrinth/internal/remediation"
	"github.com/adite/labyrinth/internal/store"
)

const settingsVersion = 1

const dateLayout = "2006-01-02"

// Settings is the process-wide derived-state aggregate the engine owns.
// It is an explicit struct passed through the engine instance, never an
// ambient global; persistence happens through the injected snapshot
// repo after every mutation.
type Settings struct {
	Minotaur     history.MinotaurState
	Pending      queue.Queue
	Deferrals    queue.DeferralCounts
	Bounty       *remediation.Bounty
	XP           remediation.XPState
	QueuedDrills []string
}

func newSettings() Settings {
	return Settings{Deferrals: queue.DeferralCounts{}}
}

// settingsFromSnapshot rebuilds the aggregate from persisted form.
// A nil snapshot yields fresh settings.
func settingsFromSnapshot(data *store.SnapshotData) Settings {
	s := newSettings()
	if data == nil {
		return s
	}

	if data.Minotaur != nil {
		s.Minotaur.Current = data.Minotaur.Current
		s.Minotaur.StreakDays = data.Minotaur.StreakDays
		if data.Minotaur.LastDefeatDate != "" {
			if d, err := time.Parse(dateLayout, data.Minotaur.LastDefeatDate); err == nil {
				s.Minotaur.LastDefeat = &d
			}
		}
		for _, t := range data.Minotaur.History {
			d, err := time.Parse(dateLayout, t.Date)
			if err != nil {
				continue
			}
			s.Minotaur.History = append(s.Minotaur.History, history.Transition{Date: d, Archetype: t.Archetype})
		}
	}

	for _, p := range data.Pending {
		created, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			created = time.Time{}
		}
		s.Pending.Add(event.PendingEvent{
			ID:             p.ID,
			SourceTask:     p.SourceTask,
			Archetypes:     p.Archetypes,
			Topics:         p.Topics,
			Type:           event.FailureType(p.FailureType),
			OriginalTaskID: p.OriginalTaskID,
			CreatedAt:      created,
		})
	}

	for id, n := range data.Deferrals {
		s.Deferrals[id] = n
	}

	if data.Bounty != nil {
		s.Bounty = &remediation.Bounty{
			ID:        data.Bounty.ID,
			Archetype: data.Bounty.Archetype,
			Count:     data.Bounty.Count,
			Target:    data.Bounty.Target,
			RewardXP:  data.Bounty.RewardXP,
			Completed: data.Bounty.Completed,
		}
	}

	if data.XP != nil {
		s.XP = remediation.XPState{Total: data.XP.Total, LifetimeEvents: data.XP.LifetimeEvents}
	}

	s.QueuedDrills = data.QueuedDrills
	return s
}

// snapshotData exports the aggregate for persistence.
func (s *Settings) snapshotData() store.SnapshotData {
	data := store.SnapshotData{Version: settingsVersion}

	minotaur := store.MinotaurData{
		Current:    s.Minotaur.Current,
		StreakDays: s.Minotaur.StreakDays,
	}
	if s.Minotaur.LastDefeat != nil {
		minotaur.LastDefeatDate = s.Minotaur.LastDefeat.Format(dateLayout)
	}
	for _, t := range s.Minotaur.History {
		minotaur.History = append(minotaur.History, store.TransitionData{
			Date:      t.Date.Format(dateLayout),
			Archetype: t.Archetype,
		})
	}
	data.Minotaur = &minotaur

	for _, p := range s.Pending.All() {
		data.Pending = append(data.Pending, store.PendingData{
			ID:             p.ID,
			SourceTask:     p.SourceTask,
			Archetypes:     p.Archetypes,
			Topics:         p.Topics,
			FailureType:    string(p.Type),
			OriginalTaskID: p.OriginalTaskID,
			CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		})
	}

	if len(s.Deferrals) > 0 {
		data.Deferrals = make(map[string]int, len(s.Deferrals))
		for id, n := range s.Deferrals {
			data.Deferrals[id] = n
		}
	}

	if s.Bounty != nil {
		data.Bounty = &store.BountyData{
			ID:        s.Bounty.ID,
			Archetype: s.Bounty.Archetype,
			Count:     s.Bounty.Count,
			Target:    s.Bounty.Target,
			RewardXP:  s.Bounty.RewardXP,
			Completed: s.Bounty.Completed,
		}
	}

	data.XP = &store.XPData{Total: s.XP.Total, LifetimeEvents: s.XP.LifetimeEvents}
	data.QueuedDrills = s.QueuedDrills
	return data
}
