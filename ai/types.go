package ai

// Entity is a named entity span recognized in text.
type Entity struct {
	// Text is the surface form of the entity as it appeared.
	Text string

	// Label categorizes the entity. Must match one of EntityLabels.
	Label string

	// Start and End are the character offsets of the span in the source
	// text (end exclusive).
	Start int
	End   int
}

// Triple is a (subject, predicate, object) relationship extracted from a
// sentence. Predicate is the lemma of the connecting verb.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// EntityLabels defines the valid categories for extracted entities.
// These follow the conventional NER tag set used by extraction backends.
var EntityLabels = []string{
	"PERSON",
	"ORG",
	"GPE",
	"LOC",
	"FAC",
	"PRODUCT",
	"EVENT",
	"WORK_OF_ART",
	"LANGUAGE",
	"NORP",
	"DATE",
	"TIME",
	"MONEY",
	"QUANTITY",
	"CARDINAL",
}
