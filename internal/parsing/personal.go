package parsing

import (
	"strings"
	"unicode"

	"github.com/hotgigs/talent/internal/nlp"
)

// Lines containing these are headers or boilerplate, never names.
var nameExclusions = []string{
	"resume", "curriculum", "vitae", "summary", "objective", "profile",
	"email", "phone", "address", "contact",
}

// extractPersonalInfo finds the candidate's name. A person entity from
// the recognizer wins; otherwise the first short alphabetic line near
// the top of the document is taken as the name.
func extractPersonalInfo(text string, ner nlp.EntityRecognizer) PersonalInfo {
	if ner != nil {
		for _, ent := range ner.Extract(text) {
			if ent.Label == nlp.LabelPerson {
				return splitName(ent.Text)
			}
		}
	}

	for i, line := range strings.Split(text, "\n") {
		if i >= 5 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || !isNameLine(line) {
			continue
		}
		return splitName(line)
	}
	return PersonalInfo{}
}

func splitName(full string) PersonalInfo {
	full = strings.TrimSpace(full)
	parts := strings.Fields(full)
	info := PersonalInfo{FullName: full}
	if len(parts) > 0 {
		info.FirstName = parts[0]
	}
	if len(parts) > 1 {
		info.LastName = parts[len(parts)-1]
	}
	return info
}

func isNameLine(line string) bool {
	lower := strings.ToLower(line)
	for _, excl := range nameExclusions {
		if strings.Contains(lower, excl) {
			return false
		}
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 || len(tokens) > 4 {
		return false
	}
	for _, tok := range tokens {
		tok = strings.ReplaceAll(tok, ".", "")
		if tok == "" {
			return false
		}
		for _, r := range tok {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}
