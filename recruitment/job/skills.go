package job

import (
	"strings"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/internal/parsing"
)

// commonSkills is the vocabulary scanned when a posting carries no
// structured skill records.
var commonSkills = []string{
	"python", "java", "javascript", "react", "angular", "node.js",
	"sql", "mysql", "postgresql", "mongodb",
	"aws", "azure", "docker", "kubernetes", "git",
	"html", "css",
}

// DeriveRequiredSkills scans free text for known skill keywords and
// returns them as structured requirements at intermediate proficiency.
func DeriveRequiredSkills(text string) []matching.RequiredSkill {
	lower := strings.ToLower(text)

	skills := make([]matching.RequiredSkill, 0)
	for _, keyword := range commonSkills {
		if !strings.Contains(lower, keyword) {
			continue
		}
		skills = append(skills, matching.RequiredSkill{
			Name:             strings.ToUpper(keyword[:1]) + keyword[1:],
			Category:         "Technical",
			ProficiencyLevel: parsing.ProficiencyIntermediate,
			Required:         true,
		})
	}
	return skills
}
