package schema

import (
	"encoding/json"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// IntentEvent records one intent applied to the document.
type IntentEvent struct {
	ent.Schema
}

func (IntentEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (IntentEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Time("timestamp").
			Default(time.Now).
			Immutable(),
		field.String("kind").
			NotEmpty().
			Comment("Intent kind, e.g. upsert_question"),
		field.String("pattern_id").
			Default("").
			Comment("Targeted pattern; empty for catalog intents"),
		field.JSON("payload", json.RawMessage{}).
			Comment("The intent as JSON"),
	}
}

func (IntentEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
		index.Fields("pattern_id"),
	}
}
