// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/adite/labyrinth/ent/schema"
	"github.com/adite/labyrinth/ent/snapshot"
	"github.com/adite/labyrinth/ent/transitionevent"
	"github.com/adite/labyrinth/ent/xpevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	snapshotFields := schema.Snapshot{}.Fields()
	_ = snapshotFields
	// snapshotDescTimestamp is the schema descriptor for timestamp field.
	snapshotDescTimestamp := snapshotFields[1].Descriptor()
	// snapshot.DefaultTimestamp holds the default value on creation for the timestamp field.
	snapshot.DefaultTimestamp = snapshotDescTimestamp.Default.(func() time.Time)
	transitioneventMixin := schema.TransitionEvent{}.Mixin()
	transitioneventMixinFields0 := transitioneventMixin[0].Fields()
	_ = transitioneventMixinFields0
	transitioneventFields := schema.TransitionEvent{}.Fields()
	_ = transitioneventFields
	// transitioneventDescTimestamp is the schema descriptor for timestamp field.
	transitioneventDescTimestamp := transitioneventMixinFields0[1].Descriptor()
	// transitionevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	transitionevent.DefaultTimestamp = transitioneventDescTimestamp.Default.(func() time.Time)
	// transitioneventDescTrigger is the schema descriptor for trigger field.
	transitioneventDescTrigger := transitioneventFields[2].Descriptor()
	// transitionevent.TriggerValidator is a validator for the "trigger" field. It is called by the builders before save.
	transitionevent.TriggerValidator = transitioneventDescTrigger.Validators[0].(func(string) error)
	xpeventMixin := schema.XPEvent{}.Mixin()
	xpeventMixinFields0 := xpeventMixin[0].Fields()
	_ = xpeventMixinFields0
	xpeventFields := schema.XPEvent{}.Fields()
	_ = xpeventFields
	// xpeventDescTimestamp is the schema descriptor for timestamp field.
	xpeventDescTimestamp := xpeventMixinFields0[1].Descriptor()
	// xpevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	xpevent.DefaultTimestamp = xpeventDescTimestamp.Default.(func() time.Time)
	// xpeventDescAmount is the schema descriptor for amount field.
	xpeventDescAmount := xpeventFields[0].Descriptor()
	// xpevent.AmountValidator is a validator for the "amount" field. It is called by the builders before save.
	xpevent.AmountValidator = xpeventDescAmount.Validators[0].(func(int) error)
	// xpeventDescReason is the schema descriptor for reason field.
	xpeventDescReason := xpeventFields[1].Descriptor()
	// xpevent.ReasonValidator is a validator for the "reason" field. It is called by the builders before save.
	xpevent.ReasonValidator = xpeventDescReason.Validators[0].(func(string) error)
	// xpeventDescTotalAfter is the schema descriptor for total_after field.
	xpeventDescTotalAfter := xpeventFields[3].Descriptor()
	// xpevent.TotalAfterValidator is a validator for the "total_after" field. It is called by the builders before save.
	xpevent.TotalAfterValidator = xpeventDescTotalAfter.Validators[0].(func(int) error)
}
