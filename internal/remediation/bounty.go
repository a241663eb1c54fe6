package remediation

import "github.com/google/uuid"

// Default bounty parameters.
const (
	DefaultBountyTarget   = 5
	DefaultBountyRewardXP = 50
)

// Bounty is a tracked sub-goal: catch one archetype Target times for a
// reward. At most one bounty is active at a time; that cardinality is
// owned by the engine settings, which hold zero or one of these.
type Bounty struct {
	ID        string `json:"id"`
	Archetype string `json:"archetype"`
	Count     int    `json:"count"`
	Target    int    `json:"target"`
	RewardXP  int    `json:"rewardXP"`
	Completed bool   `json:"completed"`
}

// NewBounty opens a bounty against the given archetype.
func NewBounty(archetype string, target, rewardXP int) *Bounty {
	if target <= 0 {
		target = DefaultBountyTarget
	}
	if rewardXP <= 0 {
		rewardXP = DefaultBountyRewardXP
	}
	return &Bounty{
		ID:        uuid.New().String(),
		Archetype: archetype,
		Target:    target,
		RewardXP:  rewardXP,
	}
}

// RecordHit advances the bounty if the event's archetypes include its
// target. Count never exceeds Target and Completed latches: once true
// it never reverts and further hits change nothing.
func (b *Bounty) RecordHit(archetypes []string) (progressed, completed bool) {
	if b.Completed {
		return false, false
	}
	hit := false
	for _, a := range archetypes {
		if a == b.Archetype {
			hit = true
			break
		}
	}
	if !hit {
		return false, false
	}
	b.Count++
	if b.Count >= b.Target {
		b.Count = b.Target
		b.Completed = true
		return true, true
	}
	return true, false
}
