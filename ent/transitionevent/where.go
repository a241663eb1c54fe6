// Code generated by ent, DO NOT EDIT.

package transitionevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/adite/labyrinth/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLTE(FieldID, id))
}

// Sequence applies equality check predicate on the "sequence" field. It's identical to SequenceEQ.
func Sequence(v int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldSequence, v))
}

// Timestamp applies equality check predicate on the "timestamp" field. It's identical to TimestampEQ.
func Timestamp(v time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldTimestamp, v))
}

// FromArchetype applies equality check predicate on the "from_archetype" field. It's identical to FromArchetypeEQ.
func FromArchetype(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldFromArchetype, v))
}

// ToArchetype applies equality check predicate on the "to_archetype" field. It's identical to ToArchetypeEQ.
func ToArchetype(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldToArchetype, v))
}

// Trigger applies equality check predicate on the "trigger" field. It's identical to TriggerEQ.
func Trigger(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldTrigger, v))
}

// SequenceEQ applies the EQ predicate on the "sequence" field.
func SequenceEQ(v int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldSequence, v))
}

// SequenceNEQ applies the NEQ predicate on the "sequence" field.
func SequenceNEQ(v int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNEQ(FieldSequence, v))
}

// SequenceIn applies the In predicate on the "sequence" field.
func SequenceIn(vs ...int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIn(FieldSequence, vs...))
}

// SequenceNotIn applies the NotIn predicate on the "sequence" field.
func SequenceNotIn(vs ...int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotIn(FieldSequence, vs...))
}

// SequenceGT applies the GT predicate on the "sequence" field.
func SequenceGT(v int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGT(FieldSequence, v))
}

// SequenceGTE applies the GTE predicate on the "sequence" field.
func SequenceGTE(v int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGTE(FieldSequence, v))
}

// SequenceLT applies the LT predicate on the "sequence" field.
func SequenceLT(v int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLT(FieldSequence, v))
}

// SequenceLTE applies the LTE predicate on the "sequence" field.
func SequenceLTE(v int64) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLTE(FieldSequence, v))
}

// TimestampEQ applies the EQ predicate on the "timestamp" field.
func TimestampEQ(v time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldTimestamp, v))
}

// TimestampNEQ applies the NEQ predicate on the "timestamp" field.
func TimestampNEQ(v time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNEQ(FieldTimestamp, v))
}

// TimestampIn applies the In predicate on the "timestamp" field.
func TimestampIn(vs ...time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIn(FieldTimestamp, vs...))
}

// TimestampNotIn applies the NotIn predicate on the "timestamp" field.
func TimestampNotIn(vs ...time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotIn(FieldTimestamp, vs...))
}

// TimestampGT applies the GT predicate on the "timestamp" field.
func TimestampGT(v time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGT(FieldTimestamp, v))
}

// TimestampGTE applies the GTE predicate on the "timestamp" field.
func TimestampGTE(v time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGTE(FieldTimestamp, v))
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLT(FieldTimestamp, v))
}

// TimestampLTE applies the LTE predicate on the "timestamp" field.
func TimestampLTE(v time.Time) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLTE(FieldTimestamp, v))
}

// FromArchetypeEQ applies the EQ predicate on the "from_archetype" field.
func FromArchetypeEQ(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldFromArchetype, v))
}

// FromArchetypeNEQ applies the NEQ predicate on the "from_archetype" field.
func FromArchetypeNEQ(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNEQ(FieldFromArchetype, v))
}

// FromArchetypeIn applies the In predicate on the "from_archetype" field.
func FromArchetypeIn(vs ...string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIn(FieldFromArchetype, vs...))
}

// FromArchetypeNotIn applies the NotIn predicate on the "from_archetype" field.
func FromArchetypeNotIn(vs ...string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotIn(FieldFromArchetype, vs...))
}

// FromArchetypeGT applies the GT predicate on the "from_archetype" field.
func FromArchetypeGT(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGT(FieldFromArchetype, v))
}

// FromArchetypeGTE applies the GTE predicate on the "from_archetype" field.
func FromArchetypeGTE(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGTE(FieldFromArchetype, v))
}

// FromArchetypeLT applies the LT predicate on the "from_archetype" field.
func FromArchetypeLT(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLT(FieldFromArchetype, v))
}

// FromArchetypeLTE applies the LTE predicate on the "from_archetype" field.
func FromArchetypeLTE(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLTE(FieldFromArchetype, v))
}

// FromArchetypeContains applies the Contains predicate on the "from_archetype" field.
func FromArchetypeContains(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldContains(FieldFromArchetype, v))
}

// FromArchetypeHasPrefix applies the HasPrefix predicate on the "from_archetype" field.
func FromArchetypeHasPrefix(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldHasPrefix(FieldFromArchetype, v))
}

// FromArchetypeHasSuffix applies the HasSuffix predicate on the "from_archetype" field.
func FromArchetypeHasSuffix(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldHasSuffix(FieldFromArchetype, v))
}

// FromArchetypeIsNil applies the IsNil predicate on the "from_archetype" field.
func FromArchetypeIsNil() predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIsNull(FieldFromArchetype))
}

// FromArchetypeNotNil applies the NotNil predicate on the "from_archetype" field.
func FromArchetypeNotNil() predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotNull(FieldFromArchetype))
}

// FromArchetypeEqualFold applies the EqualFold predicate on the "from_archetype" field.
func FromArchetypeEqualFold(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEqualFold(FieldFromArchetype, v))
}

// FromArchetypeContainsFold applies the ContainsFold predicate on the "from_archetype" field.
func FromArchetypeContainsFold(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldContainsFold(FieldFromArchetype, v))
}

// ToArchetypeEQ applies the EQ predicate on the "to_archetype" field.
func ToArchetypeEQ(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldToArchetype, v))
}

// ToArchetypeNEQ applies the NEQ predicate on the "to_archetype" field.
func ToArchetypeNEQ(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNEQ(FieldToArchetype, v))
}

// ToArchetypeIn applies the In predicate on the "to_archetype" field.
func ToArchetypeIn(vs ...string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIn(FieldToArchetype, vs...))
}

// ToArchetypeNotIn applies the NotIn predicate on the "to_archetype" field.
func ToArchetypeNotIn(vs ...string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotIn(FieldToArchetype, vs...))
}

// ToArchetypeGT applies the GT predicate on the "to_archetype" field.
func ToArchetypeGT(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGT(FieldToArchetype, v))
}

// ToArchetypeGTE applies the GTE predicate on the "to_archetype" field.
func ToArchetypeGTE(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGTE(FieldToArchetype, v))
}

// ToArchetypeLT applies the LT predicate on the "to_archetype" field.
func ToArchetypeLT(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLT(FieldToArchetype, v))
}

// ToArchetypeLTE applies the LTE predicate on the "to_archetype" field.
func ToArchetypeLTE(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLTE(FieldToArchetype, v))
}

// ToArchetypeContains applies the Contains predicate on the "to_archetype" field.
func ToArchetypeContains(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldContains(FieldToArchetype, v))
}

// ToArchetypeHasPrefix applies the HasPrefix predicate on the "to_archetype" field.
func ToArchetypeHasPrefix(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldHasPrefix(FieldToArchetype, v))
}

// ToArchetypeHasSuffix applies the HasSuffix predicate on the "to_archetype" field.
func ToArchetypeHasSuffix(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldHasSuffix(FieldToArchetype, v))
}

// ToArchetypeIsNil applies the IsNil predicate on the "to_archetype" field.
func ToArchetypeIsNil() predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIsNull(FieldToArchetype))
}

// ToArchetypeNotNil applies the NotNil predicate on the "to_archetype" field.
func ToArchetypeNotNil() predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotNull(FieldToArchetype))
}

// ToArchetypeEqualFold applies the EqualFold predicate on the "to_archetype" field.
func ToArchetypeEqualFold(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEqualFold(FieldToArchetype, v))
}

// ToArchetypeContainsFold applies the ContainsFold predicate on the "to_archetype" field.
func ToArchetypeContainsFold(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldContainsFold(FieldToArchetype, v))
}

// TriggerEQ applies the EQ predicate on the "trigger" field.
func TriggerEQ(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEQ(FieldTrigger, v))
}

// TriggerNEQ applies the NEQ predicate on the "trigger" field.
func TriggerNEQ(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNEQ(FieldTrigger, v))
}

// TriggerIn applies the In predicate on the "trigger" field.
func TriggerIn(vs ...string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldIn(FieldTrigger, vs...))
}

// TriggerNotIn applies the NotIn predicate on the "trigger" field.
func TriggerNotIn(vs ...string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldNotIn(FieldTrigger, vs...))
}

// TriggerGT applies the GT predicate on the "trigger" field.
func TriggerGT(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGT(FieldTrigger, v))
}

// TriggerGTE applies the GTE predicate on the "trigger" field.
func TriggerGTE(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldGTE(FieldTrigger, v))
}

// TriggerLT applies the LT predicate on the "trigger" field.
func TriggerLT(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLT(FieldTrigger, v))
}

// TriggerLTE applies the LTE predicate on the "trigger" field.
func TriggerLTE(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldLTE(FieldTrigger, v))
}

// TriggerContains applies the Contains predicate on the "trigger" field.
func TriggerContains(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldContains(FieldTrigger, v))
}

// TriggerHasPrefix applies the HasPrefix predicate on the "trigger" field.
func TriggerHasPrefix(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldHasPrefix(FieldTrigger, v))
}

// TriggerHasSuffix applies the HasSuffix predicate on the "trigger" field.
func TriggerHasSuffix(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldHasSuffix(FieldTrigger, v))
}

// TriggerEqualFold applies the EqualFold predicate on the "trigger" field.
func TriggerEqualFold(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldEqualFold(FieldTrigger, v))
}

// TriggerContainsFold applies the ContainsFold predicate on the "trigger" field.
func TriggerContainsFold(v string) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.FieldContainsFold(FieldTrigger, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.TransitionEvent) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.TransitionEvent) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.TransitionEvent) predicate.TransitionEvent {
	return predicate.TransitionEvent(sql.NotPredicates(p))
}
