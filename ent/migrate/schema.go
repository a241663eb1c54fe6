// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "snapshot_timestamp",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[2]},
			},
			{
				Name:    "snapshot_sequence",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[1]},
			},
		},
	}
	// TransitionEventsColumns holds the columns for the "transition_events" table.
	TransitionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "from_archetype", Type: field.TypeString, Nullable: true},
		{Name: "to_archetype", Type: field.TypeString, Nullable: true},
		{Name: "trigger", Type: field.TypeString},
	}
	// TransitionEventsTable holds the schema information for the "transition_events" table.
	TransitionEventsTable = &schema.Table{
		Name:       "transition_events",
		Columns:    TransitionEventsColumns,
		PrimaryKey: []*schema.Column{TransitionEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "transitionevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{TransitionEventsColumns[1]},
			},
			{
				Name:    "transitionevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{TransitionEventsColumns[2]},
			},
			{
				Name:    "transitionevent_to_archetype",
				Unique:  false,
				Columns: []*schema.Column{TransitionEventsColumns[4]},
			},
		},
	}
	// XpEventsColumns holds the columns for the "xp_events" table.
	XpEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "amount", Type: field.TypeInt},
		{Name: "reason", Type: field.TypeString},
		{Name: "loss_id", Type: field.TypeString, Nullable: true},
		{Name: "total_after", Type: field.TypeInt},
	}
	// XpEventsTable holds the schema information for the "xp_events" table.
	XpEventsTable = &schema.Table{
		Name:       "xp_events",
		Columns:    XpEventsColumns,
		PrimaryKey: []*schema.Column{XpEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "xpevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{XpEventsColumns[1]},
			},
			{
				Name:    "xpevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{XpEventsColumns[2]},
			},
			{
				Name:    "xpevent_reason",
				Unique:  false,
				Columns: []*schema.Column{XpEventsColumns[4]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SnapshotsTable,
		TransitionEventsTable,
		XpEventsTable,
	}
)

func init() {
}
