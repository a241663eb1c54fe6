// Code generated by ent, DO NOT EDIT.

package ent

import (
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/adite/labyrinth/ent/transitionevent"
)

// TransitionEvent is the model entity for the TransitionEvent schema.
type TransitionEvent struct {
	config `json:"-"`
	// ID of the ent.
	ID int `json:"id,omitempty"`
	// Monotonically increasing global sequence number
	Sequence int64 `json:"sequence,omitempty"`
	// UTC wall-clock time of the event
	Timestamp time.Time `json:"timestamp,omitempty"`
	// FromArchetype holds the value of the "from_archetype" field.
	FromArchetype string `json:"from_archetype,omitempty"`
	// ToArchetype holds the value of the "to_archetype" field.
	ToArchetype string `json:"to_archetype,omitempty"`
	// What forced the recomputation: new-event or recalculate
	Trigger      string `json:"trigger,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*TransitionEvent) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case transitionevent.FieldID, transitionevent.FieldSequence:
			values[i] = new(sql.NullInt64)
		case transitionevent.FieldFromArchetype, transitionevent.FieldToArchetype, transitionevent.FieldTrigger:
			values[i] = new(sql.NullString)
		case transitionevent.FieldTimestamp:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the TransitionEvent fields.
func (_m *TransitionEvent) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case transitionevent.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case transitionevent.FieldSequence:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field sequence", values[i])
			} else if value.Valid {
				_m.Sequence = value.Int64
			}
		case transitionevent.FieldTimestamp:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field timestamp", values[i])
			} else if value.Valid {
				_m.Timestamp = value.Time
			}
		case transitionevent.FieldFromArchetype:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field from_archetype", values[i])
			} else if value.Valid {
				_m.FromArchetype = value.String
			}
		case transitionevent.FieldToArchetype:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field to_archetype", values[i])
			} else if value.Valid {
				_m.ToArchetype = value.String
			}
		case transitionevent.FieldTrigger:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field trigger", values[i])
			} else if value.Valid {
				_m.Trigger = value.String
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the TransitionEvent.
// This includes values selected through modifiers, order, etc.
func (_m *TransitionEvent) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this TransitionEvent.
// Note that you need to call TransitionEvent.Unwrap() before calling this method if this TransitionEvent
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *TransitionEvent) Update() *TransitionEventUpdateOne {
	return NewTransitionEventClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the TransitionEvent entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *TransitionEvent) Unwrap() *TransitionEvent {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: TransitionEvent is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *TransitionEvent) String() string {
	var builder strings.Builder
	builder.WriteString("TransitionEvent(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("sequence=")
	builder.WriteString(fmt.Sprintf("%v", _m.Sequence))
	builder.WriteString(", ")
	builder.WriteString("timestamp=")
	builder.WriteString(_m.Timestamp.Format(time.ANSIC))
	builder.WriteString(", ")
	builder.WriteString("from_archetype=")
	builder.WriteString(_m.FromArchetype)
	builder.WriteString(", ")
	builder.WriteString("to_archetype=")
	builder.WriteString(_m.ToArchetype)
	builder.WriteString(", ")
	builder.WriteString("trigger=")
	builder.WriteString(_m.Trigger)
	builder.WriteByte(')')
	return builder.String()
}

// TransitionEvents is a parsable slice of TransitionEvent.
type TransitionEvents []*TransitionEvent
