package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snap != nil {
		t.Fatalf("Latest = %+v, want nil on empty store", snap)
	}

	defeat := "2026-03-01"
	data := SnapshotData{
		Version: 1,
		Minotaur: &MinotaurData{
			Current:        "panic",
			History:        []TransitionData{{Date: "2026-02-20", Archetype: "burnout"}},
			StreakDays:     4,
			LastDefeatDate: defeat,
		},
		Deferrals: map[string]int{"task-1": 2},
		XP:        &XPData{Total: 120, LifetimeEvents: 12},
	}
	err = repo.Save(ctx, &Snapshot{Sequence: 7, Timestamp: time.Now(), Data: data})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got == nil || got.Sequence != 7 {
		t.Fatalf("Latest = %+v", got)
	}
	if got.Data.Minotaur == nil || got.Data.Minotaur.Current != "panic" {
		t.Errorf("Minotaur = %+v", got.Data.Minotaur)
	}
	if got.Data.XP == nil || got.Data.XP.Total != 120 {
		t.Errorf("XP = %+v", got.Data.XP)
	}
	if got.Data.Deferrals["task-1"] != 2 {
		t.Errorf("Deferrals = %v", got.Data.Deferrals)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Sequence != 4 {
		t.Errorf("latest sequence = %d, want 4", latest.Sequence)
	}
}

func TestAuditEvents_SequenceAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	lossID := "loss_20260314_150926"
	seq1, err := repo.AppendXP(ctx, XPEventData{Amount: 10, Reason: "event-logged", LossID: &lossID, TotalAfter: 10})
	if err != nil {
		t.Fatalf("AppendXP: %v", err)
	}
	seq2, err := repo.AppendTransition(ctx, TransitionEventData{From: "", To: "panic", Trigger: "new-event"})
	if err != nil {
		t.Fatalf("AppendTransition: %v", err)
	}
	seq3, err := repo.AppendXP(ctx, XPEventData{Amount: 50, Reason: "bounty-completed", TotalAfter: 60})
	if err != nil {
		t.Fatalf("AppendXP: %v", err)
	}

	// Sequences strictly increase across event types.
	if !(seq1 < seq2 && seq2 < seq3) {
		t.Errorf("sequences not increasing: %d, %d, %d", seq1, seq2, seq3)
	}

	xp, err := repo.QueryXP(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("QueryXP: %v", err)
	}
	if len(xp) != 1 || xp[0].Reason != "bounty-completed" {
		t.Errorf("QueryXP newest = %+v", xp)
	}

	trans, err := repo.QueryTransitions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryTransitions: %v", err)
	}
	if len(trans) != 1 || trans[0].To != "panic" {
		t.Errorf("transitions = %+v", trans)
	}
}
