package parsing

import (
	"regexp"
	"strings"
)

var experienceHeaders = []string{
	"experience", "work experience", "professional experience",
	"employment", "career", "work history", "professional background",
}

var experienceExitHeaders = []string{"education", "skills", "projects"}

var jobTitleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "specialist", "consultant",
	"director", "coordinator", "assistant", "associate", "lead", "senior", "junior",
}

var companyIndicators = []string{"inc", "corp", "ltd", "llc", "company", "technologies", "solutions"}

var yearRangeRe = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*[-–]\s*((?:19|20)\d{2}|present|current)\b`)

const maxFallbackExperience = 5

// extractExperience segments the experience section into entries.
// Lines that look like job titles open a new entry; company and
// duration lines attach to the current one; everything else becomes
// description. Without an experience header it falls back to scanning
// the whole text for job-title-shaped lines.
func extractExperience(text string) []ExperienceEntry {
	lines := strings.Split(text, "\n")

	entries, sawSection := extractExperienceSection(lines)
	if !sawSection {
		entries = extractExperienceFallback(lines)
	}

	for i := range entries {
		fillDates(&entries[i])
	}
	return entries
}

func extractExperienceSection(lines []string) ([]ExperienceEntry, bool) {
	entries := []ExperienceEntry{}
	inSection := false
	sawSection := false
	var current *ExperienceEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if !inSection {
			if containsAny(lower, experienceHeaders) {
				inSection = true
				sawSection = true
			}
			continue
		}
		if containsAny(lower, experienceExitHeaders) {
			inSection = false
			flush()
			continue
		}
		if trimmed == "" {
			continue
		}

		switch {
		case looksLikeJobTitle(lower):
			flush()
			current = &ExperienceEntry{JobTitle: trimmed}
		case current != nil && looksLikeCompany(lower):
			current.Company = trimmed
		case current != nil && looksLikeDuration(trimmed):
			current.Duration = trimmed
		case current != nil:
			if current.Description == "" {
				current.Description = trimmed
			} else {
				current.Description += " " + trimmed
			}
		}
	}
	flush()
	return entries, sawSection
}

// extractExperienceFallback handles resumes without section headers by
// treating each job-title-shaped line as an entry of its own.
func extractExperienceFallback(lines []string) []ExperienceEntry {
	entries := []ExperienceEntry{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !looksLikeJobTitle(strings.ToLower(trimmed)) {
			continue
		}

		entry := ExperienceEntry{JobTitle: trimmed}
		if idx := strings.Index(trimmed, " at "); idx > 0 {
			entry.JobTitle = strings.TrimSpace(trimmed[:idx])
			rest := strings.TrimSpace(trimmed[idx+4:])
			if m := yearRangeRe.FindStringIndex(rest); m != nil {
				entry.Duration = rest[m[0]:m[1]]
				rest = strings.Trim(strings.TrimSpace(rest[:m[0]]), ",")
			}
			entry.Company = strings.TrimSpace(rest)
		} else if m := yearRangeRe.FindString(trimmed); m != "" {
			entry.Duration = m
		}

		entries = append(entries, entry)
		if len(entries) >= maxFallbackExperience {
			break
		}
	}
	return entries
}

// fillDates derives duration and start/end dates from whatever year
// range appears in the entry's fields.
func fillDates(e *ExperienceEntry) {
	source := e.Duration
	if source == "" {
		for _, candidate := range []string{e.JobTitle, e.Description} {
			if yearRangeRe.MatchString(candidate) {
				source = yearRangeRe.FindString(candidate)
				e.Duration = source
				break
			}
		}
	}
	if m := yearRangeRe.FindStringSubmatch(source); m != nil {
		e.StartDate = m[1]
		e.EndDate = m[2]
	}
}

func looksLikeJobTitle(lower string) bool {
	return containsAny(lower, jobTitleKeywords)
}

func looksLikeCompany(lower string) bool {
	return containsAny(lower, companyIndicators)
}

func looksLikeDuration(line string) bool {
	return yearRe.MatchString(line)
}
