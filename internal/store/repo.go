package store

import (
	"context"
	"time"
)

// QueryOpts configures audit event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData is the persisted settings aggregate. The vault's copy of
// each loss record remains the durable source of truth for aggregation;
// this only holds transient/derived state.
type SnapshotData struct {
	Version      int              `json:"version"`
	Minotaur     *MinotaurData    `json:"minotaur,omitempty"`
	Pending      []PendingData    `json:"pending,omitempty"`
	Deferrals    map[string]int   `json:"taskDeferralCounts,omitempty"`
	Bounty       *BountyData      `json:"bounty,omitempty"`
	XP           *XPData          `json:"xp,omitempty"`
	QueuedDrills []string         `json:"queuedDrills,omitempty"`
}

// MinotaurData is the persisted dominant-archetype state.
type MinotaurData struct {
	Current        string           `json:"current"`
	History        []TransitionData `json:"history,omitempty"`
	StreakDays     int              `json:"streakDays"`
	LastDefeatDate string           `json:"lastDefeatDate,omitempty"`
}

// TransitionData is one persisted history entry.
type TransitionData struct {
	Date      string `json:"date"`
	Archetype string `json:"archetype"`
}

// PendingData is one persisted deferred-queue item.
type PendingData struct {
	ID             string   `json:"id"`
	SourceTask     string   `json:"sourceTask"`
	Archetypes     []string `json:"archetypes,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	FailureType    string   `json:"failureType,omitempty"`
	OriginalTaskID string   `json:"originalTaskId,omitempty"`
	CreatedAt      string   `json:"createdAt"`
}

// BountyData is the persisted active bounty.
type BountyData struct {
	ID        string `json:"id"`
	Archetype string `json:"archetype"`
	Count     int    `json:"count"`
	Target    int    `json:"target"`
	RewardXP  int    `json:"rewardXP"`
	Completed bool   `json:"completed"`
}

// XPData is the persisted experience ledger.
type XPData struct {
	Total          int `json:"total"`
	LifetimeEvents int `json:"lifetimeEvents"`
}

// Snapshot represents a point-in-time capture of the settings aggregate.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages settings snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// XPEventData captures one experience award for the audit log.
type XPEventData struct {
	Amount     int
	Reason     string
	LossID     *string
	TotalAfter int
}

// XPEventRecord is a queried XP event.
type XPEventRecord struct {
	Amount     int
	Reason     string
	LossID     *string
	TotalAfter int
	Sequence   int64
	Timestamp  time.Time
}

// TransitionEventData captures one dominant-archetype change.
type TransitionEventData struct {
	From    string
	To      string
	Trigger string
}

// TransitionEventRecord is a queried transition event.
type TransitionEventRecord struct {
	From      string
	To        string
	Trigger   string
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to the audit event log.
// Append calls return the assigned global sequence number.
type EventRepo interface {
	AppendXP(ctx context.Context, data XPEventData) (int64, error)
	AppendTransition(ctx context.Context, data TransitionEventData) (int64, error)

	QueryXP(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error)
	QueryTransitions(ctx context.Context, opts QueryOpts) ([]TransitionEventRecord, error)
}
