package nlp

import (
	"strings"
	"unicode"
)

var orgIndicators = []string{"inc", "corp", "ltd", "llc", "company", "technologies", "solutions"}

// HeuristicRecognizer approximates NER with capitalization and keyword
// rules. Good enough for resume headers, where person names sit on
// their own short line near the top.
type HeuristicRecognizer struct{}

// NewHeuristicRecognizer creates the rule-based recognizer.
func NewHeuristicRecognizer() *HeuristicRecognizer {
	return &HeuristicRecognizer{}
}

var _ EntityRecognizer = (*HeuristicRecognizer)(nil)

// Extract scans the text line by line for person-name-shaped spans and
// organization mentions.
func (r *HeuristicRecognizer) Extract(text string) []Entity {
	var entities []Entity
	seen := make(map[string]bool)

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		for _, ind := range orgIndicators {
			if strings.Contains(lower, ind) {
				if !seen["org:"+lower] {
					seen["org:"+lower] = true
					entities = append(entities, Entity{Text: line, Label: LabelOrganization})
				}
				break
			}
		}

		// Person names only appear near the top of a resume.
		if i < 5 && looksLikePersonName(line) && !seen["person:"+lower] {
			seen["person:"+lower] = true
			entities = append(entities, Entity{Text: line, Label: LabelPerson})
		}
	}
	return entities
}

func looksLikePersonName(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	for _, tok := range tokens {
		tok = strings.TrimSuffix(tok, ".")
		if tok == "" {
			return false
		}
		runes := []rune(tok)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}
