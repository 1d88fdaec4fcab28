package workbench

// IntentKind names an intent variant. The value is stable and is what the
// event log stores.
type IntentKind string

const (
	KindAddFragrance    IntentKind = "add_fragrance"
	KindUpdateFragrance IntentKind = "update_fragrance"
	KindDeleteFragrance IntentKind = "delete_fragrance"
	KindAddPattern      IntentKind = "add_pattern"
	KindUpdatePattern   IntentKind = "update_pattern"
	KindDeletePattern   IntentKind = "delete_pattern"
	KindUpsertQuestion  IntentKind = "upsert_question"
	KindAddNote         IntentKind = "add_note"
	KindDeleteNote      IntentKind = "delete_note"
)

// AllIntentKinds returns every intent kind the reducer understands.
func AllIntentKinds() []IntentKind {
	return []IntentKind{
		KindAddFragrance,
		KindUpdateFragrance,
		KindDeleteFragrance,
		KindAddPattern,
		KindUpdatePattern,
		KindDeletePattern,
		KindUpsertQuestion,
		KindAddNote,
		KindDeleteNote,
	}
}

// Intent is a requested change to a Document. The set of variants is closed:
// only the types in this file implement it.
type Intent interface {
	Kind() IntentKind

	// PatternRef returns the pattern the intent targets, or "" for
	// catalog-level intents.
	PatternRef() string

	intent()
}

// AddFragrance appends a fragrance. The caller supplies a unique id.
type AddFragrance struct {
	Fragrance Fragrance `json:"fragrance"`
}

// UpdateFragrance replaces the fragrance with the same id.
type UpdateFragrance struct {
	Fragrance Fragrance `json:"fragrance"`
}

// DeleteFragrance removes a fragrance from the catalog. Choices that still
// reference it are left alone.
type DeleteFragrance struct {
	ID string `json:"id"`
}

// AddPattern appends a pattern.
type AddPattern struct {
	Pattern Pattern `json:"pattern"`
}

// UpdatePattern replaces the pattern with the same id.
type UpdatePattern struct {
	Pattern Pattern `json:"pattern"`
}

// DeletePattern removes a pattern.
type DeletePattern struct {
	ID string `json:"id"`
}

// UpsertQuestion replaces the question with the same number in the pattern,
// or appends it when the number is free.
type UpsertQuestion struct {
	PatternID string   `json:"patternId"`
	Question  Question `json:"question"`
}

// AddNote appends a note to a pattern.
type AddNote struct {
	PatternID string `json:"patternId"`
	Note      Note   `json:"note"`
}

// DeleteNote removes a note from a pattern.
type DeleteNote struct {
	PatternID string `json:"patternId"`
	NoteID    string `json:"noteId"`
}

func (AddFragrance) Kind() IntentKind    { return KindAddFragrance }
func (UpdateFragrance) Kind() IntentKind { return KindUpdateFragrance }
func (DeleteFragrance) Kind() IntentKind { return KindDeleteFragrance }
func (AddPattern) Kind() IntentKind      { return KindAddPattern }
func (UpdatePattern) Kind() IntentKind   { return KindUpdatePattern }
func (DeletePattern) Kind() IntentKind   { return KindDeletePattern }
func (UpsertQuestion) Kind() IntentKind  { return KindUpsertQuestion }
func (AddNote) Kind() IntentKind         { return KindAddNote }
func (DeleteNote) Kind() IntentKind      { return KindDeleteNote }

func (AddFragrance) PatternRef() string     { return "" }
func (UpdateFragrance) PatternRef() string  { return "" }
func (DeleteFragrance) PatternRef() string  { return "" }
func (i AddPattern) PatternRef() string     { return i.Pattern.ID }
func (i UpdatePattern) PatternRef() string  { return i.Pattern.ID }
func (i DeletePattern) PatternRef() string  { return i.ID }
func (i UpsertQuestion) PatternRef() string { return i.PatternID }
func (i AddNote) PatternRef() string        { return i.PatternID }
func (i DeleteNote) PatternRef() string     { return i.PatternID }

func (AddFragrance) intent()    {}
func (UpdateFragrance) intent() {}
func (DeleteFragrance) intent() {}
func (AddPattern) intent()      {}
func (UpdatePattern) intent()   {}
func (DeletePattern) intent()   {}
func (UpsertQuestion) intent()  {}
func (AddNote) intent()         {}
func (DeleteNote) intent()      {}
