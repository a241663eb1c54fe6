// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// Snapshot is the predicate function for snapshot builders.
type Snapshot func(*sql.Selector)

// TransitionEvent is the predicate function for transitionevent builders.
type TransitionEvent func(*sql.Selector)

// XPEvent is the predicate function for xpevent builders.
type XPEvent func(*sql.Selector)
