package matching

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hotgigs/talent/internal/parsing"
)

// experienceLevelRank orders seniority levels; unknown levels sit at
// mid.
var experienceLevelRank = map[string]int{
	"entry":     0,
	"junior":    1,
	"mid":       2,
	"senior":    3,
	"lead":      4,
	"principal": 5,
	"director":  6,
}

const defaultLevelRank = 2

var (
	durationYearsRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:year|yr)`)
	durationMonthsRe = regexp.MustCompile(`(\d+)\s*(?:month|mo)`)
	durationRangeRe  = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|present|current)`)
)

// scoreExperience blends years fit, seniority fit and industry
// exposure at 0.4/0.4/0.2.
func scoreExperience(candidate *CandidateProfile, job *JobPosting) ExperienceScore {
	requiredYears, maxYears, requiredLevel := 0.0, 20.0, "mid"
	if req := job.ExperienceRequirements; req != nil {
		requiredYears = req.MinYears
		if req.MaxYears > 0 {
			maxYears = req.MaxYears
		}
		if req.Level != "" {
			requiredLevel = req.Level
		}
	}

	candidateYears := totalExperienceYears(candidate.WorkExperience)
	candidateLevel := experienceLevelForYears(candidateYears)

	var yearsScore float64
	switch {
	case candidateYears >= requiredYears && candidateYears <= maxYears:
		yearsScore = 1.0
	case candidateYears > maxYears:
		excess := candidateYears - maxYears
		yearsScore = maxf(0.7, 1.0-excess*0.05)
	default:
		gap := requiredYears - candidateYears
		yearsScore = maxf(0.0, 1.0-gap*0.15)
	}

	levelScore := levelMatch(candidateLevel, requiredLevel)
	industryScore := industryExperienceMatch(candidate.WorkExperience, job.Industry)

	overall := yearsScore*0.4 + levelScore*0.4 + industryScore*0.2

	return ExperienceScore{
		Score:          round3(overall),
		CandidateYears: candidateYears,
		RequiredYears:  requiredYears,
		CandidateLevel: candidateLevel,
		RequiredLevel:  requiredLevel,
		YearsScore:     round3(yearsScore),
		LevelScore:     round3(levelScore),
		IndustryScore:  round3(industryScore),
		Details:        fmt.Sprintf("%s years experience (%s level)", formatYears(candidateYears), candidateLevel),
	}
}

// totalExperienceYears sums the parsed duration of every entry.
func totalExperienceYears(experience []parsing.ExperienceEntry) float64 {
	var total float64
	for _, exp := range experience {
		total += durationToYears(exp.Duration)
	}
	return total
}

// durationToYears parses "N years", "N months" or a "YYYY-YYYY" range.
// Non-empty strings that match nothing count as one year.
func durationToYears(duration string) float64 {
	if duration == "" {
		return 0.0
	}
	duration = strings.ToLower(duration)

	if m := durationYearsRe.FindStringSubmatch(duration); m != nil {
		years, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return years
		}
	}
	if m := durationMonthsRe.FindStringSubmatch(duration); m != nil {
		months, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return months / 12
		}
	}
	if m := durationRangeRe.FindStringSubmatch(duration); m != nil {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			return 1.0
		}
		end := time.Now().Year()
		if m[2] != "present" && m[2] != "current" {
			end, err = strconv.Atoi(m[2])
			if err != nil {
				return 1.0
			}
		}
		if end < start {
			return 0.0
		}
		return float64(end - start)
	}

	return 1.0
}

func experienceLevelForYears(years float64) string {
	switch {
	case years < 1:
		return "entry"
	case years < 3:
		return "junior"
	case years < 6:
		return "mid"
	case years < 10:
		return "senior"
	case years < 15:
		return "lead"
	default:
		return "principal"
	}
}

// levelMatch scores candidate seniority against the required level.
// One level above the requirement is still a full match; further
// overqualification decays slowly, underqualification decays fast.
func levelMatch(candidateLevel, requiredLevel string) float64 {
	candRank := levelRank(candidateLevel)
	reqRank := levelRank(requiredLevel)

	if candRank >= reqRank {
		if candRank-reqRank <= 1 {
			return 1.0
		}
		return maxf(0.7, 1.0-float64(candRank-reqRank-1)*0.1)
	}
	gap := float64(reqRank - candRank)
	return maxf(0.0, 1.0-gap*0.2)
}

func levelRank(level string) int {
	if r, ok := experienceLevelRank[strings.ToLower(level)]; ok {
		return r
	}
	return defaultLevelRank
}

// industryExperienceMatch is the fraction of entries mentioning the
// job's industry, boosted by 0.3 and capped at 1.0. Any experience at
// all keeps a 0.3 floor; missing data scores neutral.
func industryExperienceMatch(experience []parsing.ExperienceEntry, industry string) float64 {
	if industry == "" || len(experience) == 0 {
		return 0.5
	}

	industry = strings.ToLower(industry)
	mentions := 0
	for _, exp := range experience {
		text := strings.ToLower(exp.Description + " " + exp.Company)
		if strings.Contains(text, industry) {
			mentions++
		}
	}

	if mentions == 0 {
		return 0.3
	}
	return minf(1.0, float64(mentions)/float64(len(experience))+0.3)
}
