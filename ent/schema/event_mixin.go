package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// SequenceMixin adds the global sequence number. Document snapshots and
// intent events draw from one counter, so every row of either table can
// be ordered against the other.
type SequenceMixin struct {
	mixin.Schema
}

func (SequenceMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global sequence number"),
	}
}

func (SequenceMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence").Unique(),
	}
}
