package event

import "time"

// FailureType classifies what kind of gap caused a failure.
type FailureType string

const (
	TypeKnowledgeGap   FailureType = "knowledge-gap"
	TypeSkillGap       FailureType = "skill-gap"
	TypeProcessFailure FailureType = "process-failure"
)

// AllFailureTypes returns the failure types in display order.
func AllFailureTypes() []FailureType {
	return []FailureType{TypeKnowledgeGap, TypeSkillGap, TypeProcessFailure}
}

// DisplayName returns a human-readable label for the failure type.
func (t FailureType) DisplayName() string {
	switch t {
	case TypeKnowledgeGap:
		return "Knowledge Gap"
	case TypeSkillGap:
		return "Skill Gap"
	case TypeProcessFailure:
		return "Process Failure"
	default:
		return string(t)
	}
}

// Valid reports whether t is a recognized failure type.
func (t FailureType) Valid() bool {
	switch t {
	case TypeKnowledgeGap, TypeSkillGap, TypeProcessFailure:
		return true
	}
	return false
}

// Origin identifies how a failure event entered the system.
type Origin string

const (
	OriginManual         Origin = "manual"
	OriginDeferred       Origin = "deferred"
	OriginAuto           Origin = "auto"
	OriginQuickLog       Origin = "quickLog"
	OriginProactive      Origin = "proactive"
	OriginProactiveQuick Origin = "proactiveQuick"
)

// Provenance records where an event came from.
type Provenance struct {
	Origin Origin `json:"origin"`
	// SourceID links back to the external task that triggered the event,
	// if any. Deferral-count bookkeeping keys off this.
	SourceID string `json:"sourceId,omitempty"`
}

// DefaultAura is the neutral mid value assigned when no aura is captured.
const DefaultAura = "neutral"

// MaxRootCauses caps the "5 Whys" chain length.
const MaxRootCauses = 5

// FailureEvent is one logged failure or anticipated risk.
type FailureEvent struct {
	ID          string      `json:"id"`
	SourceTask  string      `json:"sourceTask"`
	FailureType FailureType `json:"failureType"`
	// Archetypes is an order-preserving, duplicate-free list of failure
	// categories. Non-empty for any completed event.
	Archetypes []string `json:"archetypes"`
	Impact     int      `json:"impact"` // 1..5
	Topics     []string `json:"topics"`
	Papers     []string `json:"papers"`
	Aura       string   `json:"aura"`
	Emotional  string   `json:"emotionalState,omitempty"`
	// RootCauseChain is the ordered "5 Whys" chain, at most MaxRootCauses.
	RootCauseChain []string `json:"rootCauseChain"`
	// Principle is the durable lesson ("Ariadne's Thread"). Required for
	// a completed event.
	Principle        string     `json:"principle"`
	CounterFactual   string     `json:"counterFactual,omitempty"`
	EvidenceRef      string     `json:"evidenceRef,omitempty"`
	LinkedTestRef    string     `json:"linkedTestRef,omitempty"`
	RealizationPoint string     `json:"realizationPoint,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
	Provenance       Provenance `json:"provenance"`
	// Enshrined is set when the event's principle was promoted to the codex.
	Enshrined bool `json:"enshrined,omitempty"`
}

// PendingEvent is a partially specified failure captured for later
// completion. It carries only coarse hints; everything else is filled in
// when the pending item is completed into a full FailureEvent.
type PendingEvent struct {
	ID         string `json:"id"`
	SourceTask string `json:"sourceTask"`
	// Hints are optional partial field values captured at defer time.
	Archetypes []string    `json:"archetypes,omitempty"`
	Topics     []string    `json:"topics,omitempty"`
	Type       FailureType `json:"failureType,omitempty"`
	// OriginalTaskID links back to the triggering external task.
	OriginalTaskID string    `json:"originalTaskId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
