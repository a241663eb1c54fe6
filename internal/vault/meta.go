package vault

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adite/labyrinth/internal/event"
)

// LossMeta is the typed frontmatter of a failure-event record. Optional
// fields carry omitempty; defaulting happens at the read boundary in
// DecodeLossMeta, never ad hoc downstream.
type LossMeta struct {
	LossID            string         `yaml:"lossId"`
	SourceTask        string         `yaml:"sourceTask"`
	FailureType       string         `yaml:"failureType"`
	FailureArchetypes []string       `yaml:"failureArchetypes"`
	Impact            int            `yaml:"impact"`
	SyllabusTopics    []string       `yaml:"syllabusTopics,omitempty"`
	SyllabusPapers    []string       `yaml:"syllabusPapers,omitempty"`
	Aura              string         `yaml:"aura,omitempty"`
	EmotionalState    string         `yaml:"emotionalState,omitempty"`
	RootCauseChain    []string       `yaml:"rootCauseChain,omitempty"`
	AriadnesThread    string         `yaml:"ariadnesThread"`
	CounterFactual    string         `yaml:"counterFactual,omitempty"`
	EvidenceLink      string         `yaml:"evidenceLink,omitempty"`
	LinkedMockTest    string         `yaml:"linkedMockTest,omitempty"`
	RealizationPoint  string         `yaml:"failureRealizationPoint,omitempty"`
	Timestamp         string         `yaml:"timestamp"`
	Provenance        ProvenanceMeta `yaml:"provenance"`
	Enshrined         bool           `yaml:"enshrined,omitempty"`
	ConfidenceScore   int            `yaml:"confidenceScore,omitempty"`
	QuestionType      string         `yaml:"questionType,omitempty"`
	SourceType        string         `yaml:"sourceType,omitempty"`
	ExamPhase         string         `yaml:"examPhase,omitempty"`
}

// ProvenanceMeta mirrors event.Provenance in frontmatter form.
type ProvenanceMeta struct {
	Origin       string `yaml:"origin"`
	SourceTaskID string `yaml:"sourceTaskId,omitempty"`
}

// TopicMeta is the slice of a topic record's frontmatter the engine
// reads and mutates: its tag list and optional garden status.
type TopicMeta struct {
	Tags   []string `yaml:"tags,omitempty"`
	Status string   `yaml:"status,omitempty"`
}

// ReviewMeta is the slice of a follow-up record's frontmatter used by
// the escape-rate scan.
type ReviewMeta struct {
	Topics        []string `yaml:"topics,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	Understanding string   `yaml:"understanding,omitempty"`
	Timestamp     string   `yaml:"timestamp,omitempty"`
}

// HighUnderstanding reports whether the follow-up record claims strong
// grasp of its topics.
func (m ReviewMeta) HighUnderstanding() bool {
	return m.Understanding == "high"
}

// Time parses the record's timestamp. The zero time means the record
// carries none.
func (m ReviewMeta) Time() time.Time {
	if m.Timestamp == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, m.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DecodeLossMeta converts raw frontmatter into a typed LossMeta,
// applying defaults for missing optional fields. It fails on records
// that cannot represent a failure event at all (no id, no parseable
// type), which the aggregation scans treat as skip-and-log.
func DecodeLossMeta(raw map[string]any) (LossMeta, error) {
	var m LossMeta
	if err := remarshal(raw, &m); err != nil {
		return LossMeta{}, fmt.Errorf("decode loss frontmatter: %w", err)
	}
	if m.LossID == "" {
		return LossMeta{}, fmt.Errorf("loss record missing lossId")
	}
	if m.FailureType == "" {
		m.FailureType = string(event.TypeKnowledgeGap)
	}
	if m.Aura == "" {
		m.Aura = event.DefaultAura
	}
	if m.Provenance.Origin == "" {
		m.Provenance.Origin = string(event.OriginManual)
	}
	return m, nil
}

// DecodeTopicMeta converts raw frontmatter into a typed TopicMeta.
func DecodeTopicMeta(raw map[string]any) (TopicMeta, error) {
	var m TopicMeta
	if err := remarshal(raw, &m); err != nil {
		return TopicMeta{}, fmt.Errorf("decode topic frontmatter: %w", err)
	}
	return m, nil
}

// DecodeReviewMeta converts raw frontmatter into a typed ReviewMeta.
func DecodeReviewMeta(raw map[string]any) (ReviewMeta, error) {
	var m ReviewMeta
	if err := remarshal(raw, &m); err != nil {
		return ReviewMeta{}, fmt.Errorf("decode review frontmatter: %w", err)
	}
	return m, nil
}

// Event reconstructs the FailureEvent this record persists.
func (m LossMeta) Event() (event.FailureEvent, error) {
	ts, err := time.Parse(time.RFC3339, m.Timestamp)
	if err != nil {
		return event.FailureEvent{}, fmt.Errorf("loss %s: bad timestamp %q: %w", m.LossID, m.Timestamp, err)
	}
	return event.FailureEvent{
		ID:               m.LossID,
		SourceTask:       m.SourceTask,
		FailureType:      event.FailureType(m.FailureType),
		Archetypes:       m.FailureArchetypes,
		Impact:           m.Impact,
		Topics:           m.SyllabusTopics,
		Papers:           m.SyllabusPapers,
		Aura:             m.Aura,
		Emotional:        m.EmotionalState,
		RootCauseChain:   m.RootCauseChain,
		Principle:        m.AriadnesThread,
		CounterFactual:   m.CounterFactual,
		EvidenceRef:      m.EvidenceLink,
		LinkedTestRef:    m.LinkedMockTest,
		RealizationPoint: m.RealizationPoint,
		Timestamp:        ts,
		Provenance: event.Provenance{
			Origin:   event.Origin(m.Provenance.Origin),
			SourceID: m.Provenance.SourceTaskID,
		},
		Enshrined: m.Enshrined,
	}, nil
}

// MetaFromEvent builds the frontmatter for a new failure-event record.
func MetaFromEvent(ev event.FailureEvent) LossMeta {
	return LossMeta{
		LossID:            ev.ID,
		SourceTask:        ev.SourceTask,
		FailureType:       string(ev.FailureType),
		FailureArchetypes: ev.Archetypes,
		Impact:            ev.Impact,
		SyllabusTopics:    ev.Topics,
		SyllabusPapers:    ev.Papers,
		Aura:              ev.Aura,
		EmotionalState:    ev.Emotional,
		RootCauseChain:    ev.RootCauseChain,
		AriadnesThread:    ev.Principle,
		CounterFactual:    ev.CounterFactual,
		EvidenceLink:      ev.EvidenceRef,
		LinkedMockTest:    ev.LinkedTestRef,
		RealizationPoint:  ev.RealizationPoint,
		Timestamp:         ev.Timestamp.Format(time.RFC3339),
		Provenance: ProvenanceMeta{
			Origin:       string(ev.Provenance.Origin),
			SourceTaskID: ev.Provenance.SourceID,
		},
		Enshrined: ev.Enshrined,
	}
}

// ToMap converts typed frontmatter into the raw form RecordStore writes.
func (m LossMeta) ToMap() (map[string]any, error) {
	var raw map[string]any
	if err := remarshal(m, &raw); err != nil {
		return nil, fmt.Errorf("encode loss frontmatter: %w", err)
	}
	return raw, nil
}

// remarshal converts between raw maps and typed structs via the YAML
// codec, so the field mapping lives in one place: the yaml tags.
func remarshal(from, to any) error {
	b, err := yaml.Marshal(from)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, to)
}
