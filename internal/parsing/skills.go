package parsing

import (
	"sort"
	"strings"
)

// extractSkills scans the text for known skill keywords. Matches are
// deduplicated by lowercase name (first category wins), proficiency is
// estimated from surrounding context, and the list is sorted by
// (mention count, proficiency) before the cap is applied.
func extractSkills(text string, limit int) []Skill {
	lower := strings.ToLower(text)
	found := make(map[string]bool)
	skills := []Skill{}

	for _, category := range skillCategoryOrder {
		for _, keyword := range skillsDB[category] {
			if found[keyword] || !strings.Contains(lower, keyword) {
				continue
			}
			found[keyword] = true
			skills = append(skills, Skill{
				Name:             titleCase(keyword),
				Category:         categoryDisplayName(category),
				ProficiencyLevel: assessProficiency(keyword, lower),
				MentionedCount:   strings.Count(lower, keyword),
			})
		}
	}

	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].MentionedCount != skills[j].MentionedCount {
			return skills[i].MentionedCount > skills[j].MentionedCount
		}
		return skills[i].ProficiencyLevel.Rank() > skills[j].ProficiencyLevel.Rank()
	})

	if limit > 0 && len(skills) > limit {
		skills = skills[:limit]
	}
	return skills
}

// assessProficiency estimates a level from the sentences that mention
// the skill.
func assessProficiency(skill, lowerText string) Proficiency {
	var context strings.Builder
	for _, sentence := range strings.Split(lowerText, ".") {
		if strings.Contains(sentence, skill) {
			context.WriteString(sentence)
			context.WriteString(" ")
		}
	}
	ctx := context.String()

	for _, ind := range expertIndicators {
		if strings.Contains(ctx, ind) {
			return ProficiencyExpert
		}
	}
	for _, ind := range intermediateIndicators {
		if strings.Contains(ctx, ind) {
			return ProficiencyIntermediate
		}
	}
	for _, ind := range beginnerIndicators {
		if strings.Contains(ctx, ind) {
			return ProficiencyBeginner
		}
	}
	return ProficiencyIntermediate
}

// categoryDisplayName converts "programming_languages" into
// "Programming Languages".
func categoryDisplayName(category string) string {
	return titleCase(strings.ReplaceAll(category, "_", " "))
}

// titleCase uppercases the first letter of every word, leaving other
// characters alone ("sql" -> "Sql", "node.js" -> "Node.js").
func titleCase(s string) string {
	var sb strings.Builder
	startOfWord := true
	for _, r := range s {
		if startOfWord && r >= 'a' && r <= 'z' {
			sb.WriteRune(r - 'a' + 'A')
		} else {
			sb.WriteRune(r)
		}
		startOfWord = r == ' ' || r == '-' || r == '/'
	}
	return sb.String()
}
