package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// DocumentsColumns holds the columns of the "documents" table.
	DocumentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Comment: "Global sequence number at save time"},
		{Name: "saved_at", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON, Comment: "Full document as JSON"},
	}
	// DocumentsTable holds the schema information for the "documents" table.
	DocumentsTable = &schema.Table{
		Name:       "documents",
		Columns:    DocumentsColumns,
		PrimaryKey: []*schema.Column{DocumentsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "document_sequence", Unique: true, Columns: []*schema.Column{DocumentsColumns[1]}},
			{Name: "document_saved_at", Columns: []*schema.Column{DocumentsColumns[2]}},
		},
	}

	// IntentEventsColumns holds the columns of the "intent_events" table.
	IntentEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Comment: "Monotonically increasing global sequence number"},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "kind", Type: field.TypeString},
		{Name: "pattern_id", Type: field.TypeString, Default: ""},
		{Name: "payload", Type: field.TypeJSON},
	}
	// IntentEventsTable holds the schema information for the "intent_events" table.
	IntentEventsTable = &schema.Table{
		Name:       "intent_events",
		Columns:    IntentEventsColumns,
		PrimaryKey: []*schema.Column{IntentEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "intentevent_sequence", Unique: true, Columns: []*schema.Column{IntentEventsColumns[1]}},
			{Name: "intentevent_kind", Columns: []*schema.Column{IntentEventsColumns[3]}},
			{Name: "intentevent_pattern_id", Columns: []*schema.Column{IntentEventsColumns[4]}},
		},
	}

	// Tables holds every table the store manages.
	Tables = []*schema.Table{
		DocumentsTable,
		IntentEventsTable,
	}
)

// migrate creates missing tables and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}
