// Package nlp defines the named-entity recognition capability used by
// the resume parsing pipeline. Implementations may wrap a real NLP
// model; the heuristic recognizer is the guaranteed-available default.
package nlp

// Entity labels emitted by recognizers.
const (
	LabelPerson       = "PERSON"
	LabelOrganization = "ORG"
)

// Entity is a labeled text span.
type Entity struct {
	Text  string
	Label string
}

// EntityRecognizer extracts labeled entities from plain text.
type EntityRecognizer interface {
	Extract(text string) []Entity
}
