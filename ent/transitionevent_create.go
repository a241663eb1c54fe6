// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/adite/labyrinth/ent/transitionevent"
)

// TransitionEventCreate is the builder for creating a TransitionEvent entity.
type TransitionEventCreate struct {
	config
	mutation *TransitionEventMutation
	hooks    []Hook
}

// SetSequence sets the "sequence" field.
func (_c *TransitionEventCreate) SetSequence(v int64) *TransitionEventCreate {
	_c.mutation.SetSequence(v)
	return _c
}

// SetTimestamp sets the "timestamp" field.
func (_c *TransitionEventCreate) SetTimestamp(v time.Time) *TransitionEventCreate {
	_c.mutation.SetTimestamp(v)
	return _c
}

// SetNillableTimestamp sets the "timestamp" field if the given value is not nil.
func (_c *TransitionEventCreate) SetNillableTimestamp(v *time.Time) *TransitionEventCreate {
	if v != nil {
		_c.SetTimestamp(*v)
	}
	return _c
}

// SetFromArchetype sets the "from_archetype" field.
func (_c *TransitionEventCreate) SetFromArchetype(v string) *TransitionEventCreate {
	_c.mutation.SetFromArchetype(v)
	return _c
}

// SetNillableFromArchetype sets the "from_archetype" field if the given value is not nil.
func (_c *TransitionEventCreate) SetNillableFromArchetype(v *string) *TransitionEventCreate {
	if v != nil {
		_c.SetFromArchetype(*v)
	}
	return _c
}

// SetToArchetype sets the "to_archetype" field.
func (_c *TransitionEventCreate) SetToArchetype(v string) *TransitionEventCreate {
	_c.mutation.SetToArchetype(v)
	return _c
}

// SetNillableToArchetype sets the "to_archetype" field if the given value is not nil.
func (_c *TransitionEventCreate) SetNillableToArchetype(v *string) *TransitionEventCreate {
	if v != nil {
		_c.SetToArchetype(*v)
	}
	return _c
}

// SetTrigger sets the "trigger" field.
func (_c *TransitionEventCreate) SetTrigger(v string) *TransitionEventCreate {
	_c.mutation.SetTrigger(v)
	return _c
}

// Mutation returns the TransitionEventMutation object of the builder.
func (_c *TransitionEventCreate) Mutation() *TransitionEventMutation {
	return _c.mutation
}

// Save creates the TransitionEvent in the database.
func (_c *TransitionEventCreate) Save(ctx context.Context) (*TransitionEvent, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *TransitionEventCreate) SaveX(ctx context.Context) *TransitionEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *TransitionEventCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *TransitionEventCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *TransitionEventCreate) defaults() {
	if _, ok := _c.mutation.Timestamp(); !ok {
		v := transitionevent.DefaultTimestamp()
		_c.mutation.SetTimestamp(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *TransitionEventCreate) check() error {
	if _, ok := _c.mutation.Sequence(); !ok {
		return &ValidationError{Name: "sequence", err: errors.New(`ent: missing required field "TransitionEvent.sequence"`)}
	}
	if _, ok := _c.mutation.Timestamp(); !ok {
		return &ValidationError{Name: "timestamp", err: errors.New(`ent: missing required field "TransitionEvent.timestamp"`)}
	}
	if _, ok := _c.mutation.Trigger(); !ok {
		return &ValidationError{Name: "trigger", err: errors.New(`ent: missing required field "TransitionEvent.trigger"`)}
	}
	if v, ok := _c.mutation.Trigger(); ok {
		if err := transitionevent.TriggerValidator(v); err != nil {
			return &ValidationError{Name: "trigger", err: fmt.Errorf(`ent: validator failed for field "TransitionEvent.trigger": %w`, err)}
		}
	}
	return nil
}

func (_c *TransitionEventCreate) sqlSave(ctx context.Context) (*TransitionEvent, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *TransitionEventCreate) createSpec() (*TransitionEvent, *sqlgraph.CreateSpec) {
	var (
		_node = &TransitionEvent{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(transitionevent.Table, sqlgraph.NewFieldSpec(transitionevent.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.Sequence(); ok {
		_spec.SetField(transitionevent.FieldSequence, field.TypeInt64, value)
		_node.Sequence = value
	}
	if value, ok := _c.mutation.Timestamp(); ok {
		_spec.SetField(transitionevent.FieldTimestamp, field.TypeTime, value)
		_node.Timestamp = value
	}
	if value, ok := _c.mutation.FromArchetype(); ok {
		_spec.SetField(transitionevent.FieldFromArchetype, field.TypeString, value)
		_node.FromArchetype = value
	}
	if value, ok := _c.mutation.ToArchetype(); ok {
		_spec.SetField(transitionevent.FieldToArchetype, field.TypeString, value)
		_node.ToArchetype = value
	}
	if value, ok := _c.mutation.Trigger(); ok {
		_spec.SetField(transitionevent.FieldTrigger, field.TypeString, value)
		_node.Trigger = value
	}
	return _node, _spec
}

// TransitionEventCreateBulk is the builder for creating many TransitionEvent entities in bulk.
type TransitionEventCreateBulk struct {
	config
	err      error
	builders []*TransitionEventCreate
}

// Save creates the TransitionEvent entities in the database.
func (_c *TransitionEventCreateBulk) Save(ctx context.Context) ([]*TransitionEvent, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*TransitionEvent, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*TransitionEventMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *TransitionEventCreateBulk) SaveX(ctx context.Context) []*TransitionEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *TransitionEventCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *TransitionEventCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
