package matching

import (
	"fmt"
	"strings"

	"github.com/hotgigs/talent/internal/parsing"
)

// categoryWeights ranks skill categories by hiring importance. Unknown
// categories fall back to defaultCategoryWeight.
var categoryWeights = map[string]float64{
	"programming_languages": 1.0,
	"web_development":       0.9,
	"data_science":          0.95,
	"databases":             0.8,
	"cloud_technologies":    0.85,
	"mobile_development":    0.8,
	"design":                0.7,
	"project_management":    0.75,
	"soft_skills":           0.6,
	"cybersecurity":         0.9,
	"devops":                0.85,
}

const defaultCategoryWeight = 0.7

func categoryWeight(category string) float64 {
	key := strings.ReplaceAll(strings.ToLower(category), " ", "_")
	if w, ok := categoryWeights[key]; ok {
		return w
	}
	return defaultCategoryWeight
}

// scoreSkills matches each required skill against the candidate's
// skill list by name. The mean weighted level score is scaled by the
// coverage ratio so sparse overlap cannot score high.
func scoreSkills(candidate *CandidateProfile, job *JobPosting) SkillScore {
	if len(candidate.Skills) == 0 || len(job.RequiredSkills) == 0 {
		return SkillScore{Score: 0.0, Details: "Insufficient skill data"}
	}

	byName := make(map[string]*parsing.Skill, len(candidate.Skills))
	for i := range candidate.Skills {
		name := strings.ToLower(candidate.Skills[i].Name)
		if _, seen := byName[name]; !seen {
			byName[name] = &candidate.Skills[i]
		}
	}

	var (
		matched []MatchedSkill
		missing []MissingSkill
		sum     float64
	)
	for _, required := range job.RequiredSkills {
		name := strings.ToLower(required.Name)
		candSkill, ok := byName[name]
		if !ok {
			missing = append(missing, MissingSkill{
				Name:          titleWords(name),
				RequiredLevel: string(required.ProficiencyLevel),
				Category:      required.Category,
			})
			continue
		}

		levelScore := skillLevelMatch(candSkill.ProficiencyLevel, required.ProficiencyLevel)
		weighted := levelScore * categoryWeight(required.Category)
		sum += weighted

		matched = append(matched, MatchedSkill{
			Name:           titleWords(name),
			CandidateLevel: string(candSkill.ProficiencyLevel),
			RequiredLevel:  string(required.ProficiencyLevel),
			MatchScore:     levelScore,
			WeightedScore:  weighted,
			Category:       required.Category,
		})
	}

	coverage := float64(len(matched)) / float64(len(job.RequiredSkills))

	var overall float64
	if len(matched) > 0 {
		overall = (sum / float64(len(matched))) * coverage
	}

	return SkillScore{
		Score:         round3(overall),
		MatchedSkills: matched,
		MissingSkills: missing,
		CoverageRatio: round3(coverage),
		Details:       fmt.Sprintf("%d/%d skills matched", len(matched), len(job.RequiredSkills)),
	}
}

// skillLevelMatch scores candidate proficiency against the required
// level: meeting or exceeding is a full match, each level short costs
// a quarter.
func skillLevelMatch(candidate, required parsing.Proficiency) float64 {
	candRank := parsing.Proficiency(strings.ToLower(string(candidate))).Rank()
	reqRank := parsing.Proficiency(strings.ToLower(string(required))).Rank()
	if candRank >= reqRank {
		return 1.0
	}
	gap := float64(reqRank - candRank)
	return maxf(0.0, 1.0-gap*0.25)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
