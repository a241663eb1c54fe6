package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TransitionEvent records a dominant-archetype change.
type TransitionEvent struct {
	ent.Schema
}

func (TransitionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (TransitionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("from_archetype").Optional(),
		field.String("to_archetype").Optional(),
		field.String("trigger").NotEmpty().
			Comment("What forced the recomputation: new-event or recalculate"),
	}
}

func (TransitionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("to_archetype"),
	}
}
