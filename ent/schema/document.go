package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/abhisek/aromabench/internal/workbench"
)

// Document is one saved copy of the workbench document. The newest row is
// the current document; older rows are history until pruned.
type Document struct {
	ent.Schema
}

func (Document) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.Time("saved_at").
			Default(time.Now).
			Immutable(),
		field.JSON("data", workbench.Document{}).
			Comment("Full document as JSON"),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("saved_at"),
	}
}
