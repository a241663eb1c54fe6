package engine

import "github.com/adite/labyrinth/internal/scoring"

// Default vault layout and tuning knobs.
const (
	DefaultLossScope   = "Losses"
	DefaultTopicScope  = "Topics"
	DefaultReviewScope = "Reviews"
	DefaultCodexPath   = "Codex/codex.md"
	DefaultTasksPath   = "Tasks/inbox.md"

	// DefaultDeferralThreshold is how many deferrals of one task the
	// pending report flags as chronic.
	DefaultDeferralThreshold = 3

	// DefaultSnapshotKeep bounds settings snapshot retention.
	DefaultSnapshotKeep = 10
)

// Config holds engine settings.
type Config struct {
	Scoring           scoring.Config
	XPPerEvent        int
	BountyTarget      int
	BountyRewardXP    int
	DeferralThreshold int
	SnapshotKeep      int

	LossScope   string
	TopicScope  string
	ReviewScope string
	CodexPath   string
}

// DefaultConfig returns sensible defaults for the engine.
func DefaultConfig() Config {
	return Config{
		Scoring:           scoring.DefaultConfig(),
		XPPerEvent:        10,
		BountyTarget:      5,
		BountyRewardXP:    50,
		DeferralThreshold: DefaultDeferralThreshold,
		SnapshotKeep:      DefaultSnapshotKeep,
		LossScope:         DefaultLossScope,
		TopicScope:        DefaultTopicScope,
		ReviewScope:       DefaultReviewScope,
		CodexPath:         DefaultCodexPath,
	}
}

func (c Config) normalize() Config {
	c.Scoring = c.Scoring.Normalize()
	if c.XPPerEvent <= 0 {
		c.XPPerEvent = 10
	}
	if c.BountyTarget <= 0 {
		c.BountyTarget = 5
	}
	if c.BountyRewardXP <= 0 {
		c.BountyRewardXP = 50
	}
	if c.DeferralThreshold <= 0 {
		c.DeferralThreshold = DefaultDeferralThreshold
	}
	if c.SnapshotKeep <= 0 {
		c.SnapshotKeep = DefaultSnapshotKeep
	}
	if c.LossScope == "" {
		c.LossScope = DefaultLossScope
	}
	if c.TopicScope == "" {
		c.TopicScope = DefaultTopicScope
	}
	if c.ReviewScope == "" {
		c.ReviewScope = DefaultReviewScope
	}
	if c.CodexPath == "" {
		c.CodexPath = DefaultCodexPath
	}
	return c
}
