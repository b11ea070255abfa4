package parsing

import (
	"regexp"
	"strings"
)

var (
	degreeRe = regexp.MustCompile(`(?i)\b(?:bachelor(?:'s)?|master(?:'s)?|ph\.?d|doctorate|doctoral|mba|b\.?s(?:c)?|b\.?a|beng|m\.?s(?:c)?|m\.?a|meng)\b[^,\n]*`)
	yearRe   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	institutionRe = regexp.MustCompile(`(?:[A-Z][A-Za-z&.]*\s)+(?:University|College|Institute|School)\b(?:\sof(?:\s[A-Z][A-Za-z]*)+)?|\b(?:University|College|Institute|School)\sof(?:\s[A-Z][A-Za-z]*)+`)
)

var fieldsOfStudy = []string{
	"computer science", "engineering", "business", "mathematics", "physics",
	"chemistry", "biology", "economics", "finance", "marketing", "psychology",
	"sociology", "history", "literature", "art", "design", "medicine", "law",
}

var educationHeaders = []string{"education", "academic background", "qualifications"}

var educationExitHeaders = []string{"experience", "skills", "projects"}

// extractEducation matches degree phrases, institution names and
// 4-digit years, then pairs them positionally. Pairing is approximate
// on purpose; any field may come back empty.
func extractEducation(text string) []EducationEntry {
	scope := sectionText(text, educationHeaders, educationExitHeaders)
	if scope == "" {
		scope = text
	}

	degrees := degreeRe.FindAllString(scope, -1)
	institutions := institutionRe.FindAllString(scope, -1)
	years := yearRe.FindAllString(scope, -1)

	education := []EducationEntry{}
	for i, degree := range degrees {
		degree = strings.TrimSpace(degree)
		entry := EducationEntry{
			Degree:       degree,
			FieldOfStudy: extractFieldOfStudy(degree, scope),
		}
		if i < len(institutions) {
			entry.Institution = strings.TrimSpace(institutions[i])
		}
		if i < len(years) {
			entry.Year = years[i]
		}
		education = append(education, entry)
	}
	return education
}

// extractFieldOfStudy picks the first known field mentioned in the
// degree phrase, falling back to the surrounding text.
func extractFieldOfStudy(degree, text string) string {
	degreeLower := strings.ToLower(degree)
	textLower := strings.ToLower(text)

	for _, field := range fieldsOfStudy {
		if strings.Contains(degreeLower, field) || strings.Contains(textLower, field) {
			return titleCase(field)
		}
	}
	return ""
}

// sectionText returns the lines between the first line containing one
// of the section headers and the next line containing an exit header,
// or "" when the section header never occurs.
func sectionText(text string, headers, exitHeaders []string) string {
	var sb strings.Builder
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if !inSection {
			if containsAny(lower, headers) {
				inSection = true
			}
			continue
		}
		if containsAny(lower, exitHeaders) {
			break
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
