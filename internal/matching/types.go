package matching

import (
	"time"

	"github.com/hotgigs/talent/internal/parsing"
)

// CandidateProfile is the matching-side view of a candidate: the
// structured resume plus an identity.
type CandidateProfile struct {
	ID string `json:"id"`
	parsing.ParsedResume
}

// RequiredSkill is one skill a job posting asks for.
type RequiredSkill struct {
	Name             string              `json:"name"`
	Category         string              `json:"category"`
	ProficiencyLevel parsing.Proficiency `json:"proficiency_level"`
	Weight           float64             `json:"weight,omitempty"`
	Required         bool                `json:"required,omitempty"`
}

// ExperienceRequirements bounds the years and seniority a job expects.
// A nil value on JobPosting means the job states no requirement.
type ExperienceRequirements struct {
	MinYears float64 `json:"min_years"`
	MaxYears float64 `json:"max_years"`
	Level    string  `json:"level"`
}

// JobPosting is the matching-side view of a job.
type JobPosting struct {
	ID                     string                  `json:"id"`
	Title                  string                  `json:"title"`
	Company                string                  `json:"company"`
	Location               string                  `json:"location"`
	Industry               string                  `json:"industry"`
	Description            string                  `json:"description"`
	Requirements           string                  `json:"requirements"`
	RemoteOK               bool                    `json:"remote_ok"`
	SalaryMin              float64                 `json:"salary_min,omitempty"`
	SalaryMax              float64                 `json:"salary_max,omitempty"`
	ExperienceRequirements *ExperienceRequirements `json:"experience_requirements,omitempty"`
	RequiredSkills         []RequiredSkill         `json:"required_skills"`
}

// MatchedSkill records one required skill the candidate covers.
type MatchedSkill struct {
	Name           string  `json:"name"`
	CandidateLevel string  `json:"candidate_level"`
	RequiredLevel  string  `json:"required_level"`
	MatchScore     float64 `json:"match_score"`
	WeightedScore  float64 `json:"weighted_score"`
	Category       string  `json:"category"`
}

// MissingSkill records one required skill the candidate lacks.
type MissingSkill struct {
	Name          string `json:"name"`
	RequiredLevel string `json:"required_level"`
	Category      string `json:"category"`
}

// SkillScore is the skills component of a match breakdown.
type SkillScore struct {
	Score         float64        `json:"score"`
	MatchedSkills []MatchedSkill `json:"matched_skills,omitempty"`
	MissingSkills []MissingSkill `json:"missing_skills,omitempty"`
	CoverageRatio float64        `json:"coverage_ratio"`
	Details       string         `json:"details,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// ExperienceScore is the experience component of a match breakdown.
type ExperienceScore struct {
	Score          float64 `json:"score"`
	CandidateYears float64 `json:"candidate_years"`
	RequiredYears  float64 `json:"required_years"`
	CandidateLevel string  `json:"candidate_level"`
	RequiredLevel  string  `json:"required_level"`
	YearsScore     float64 `json:"years_score"`
	LevelScore     float64 `json:"level_score"`
	IndustryScore  float64 `json:"industry_score"`
	Details        string  `json:"details,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// DomainScore is the domain component of a match breakdown.
type DomainScore struct {
	Score         float64 `json:"score"`
	MatchType     string  `json:"match_type,omitempty"`
	MatchedDomain string  `json:"matched_domain,omitempty"`
	Details       string  `json:"details,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// LocationScore is the location component of a match breakdown.
type LocationScore struct {
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type,omitempty"`
	Details   string  `json:"details,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// SemanticScore is the text-similarity component of a match breakdown.
type SemanticScore struct {
	Score   float64 `json:"score"`
	Method  string  `json:"method,omitempty"`
	Details string  `json:"details,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Breakdown carries every component score of a match.
type Breakdown struct {
	Skills     SkillScore      `json:"skills"`
	Experience ExperienceScore `json:"experience"`
	Domain     DomainScore     `json:"domain"`
	Location   LocationScore   `json:"location"`
	Semantic   SemanticScore   `json:"semantic"`
}

// Weights are the fixed component weights of the overall score.
type Weights struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Domain     float64 `json:"domain"`
	Location   float64 `json:"location"`
	Semantic   float64 `json:"semantic"`
}

// MatchResult is one scored candidate/job pair.
type MatchResult struct {
	OverallScore float64   `json:"overall_score"`
	Confidence   float64   `json:"confidence"`
	Breakdown    Breakdown `json:"breakdown"`
	Weights      Weights   `json:"weights"`
	MatchReasons []string  `json:"match_reasons"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// JobMatch is one ranked job for a candidate.
type JobMatch struct {
	JobID        string     `json:"job_id"`
	JobTitle     string     `json:"job_title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	MatchScore   float64    `json:"match_score"`
	Confidence   float64    `json:"confidence"`
	Breakdown    Breakdown  `json:"match_breakdown"`
	MatchReasons []string   `json:"match_reasons"`
	Job          JobPosting `json:"job_data"`
}

// CandidateMatch is one ranked candidate for a job.
type CandidateMatch struct {
	CandidateID     string           `json:"candidate_id"`
	CandidateName   string           `json:"candidate_name"`
	Email           string           `json:"email"`
	ExperienceYears float64          `json:"experience_years"`
	TopSkills       []string         `json:"top_skills"`
	MatchScore      float64          `json:"match_score"`
	Confidence      float64          `json:"confidence"`
	Breakdown       Breakdown        `json:"match_breakdown"`
	MatchReasons    []string         `json:"match_reasons"`
	Candidate       CandidateProfile `json:"candidate_data"`
}
