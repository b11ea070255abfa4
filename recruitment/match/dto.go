package match

import (
	"time"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
)

// DefaultMinScore filters out weak matches unless the caller overrides
// the threshold.
const DefaultMinScore = 0.3

// ============================================================================
// Request DTOs
// ============================================================================

// FindJobsRequest - Parameters for ranking jobs for a candidate
type FindJobsRequest struct {
	CandidateID kernel.CandidateID `json:"candidate_id" validate:"required"`
	Limit       int                `json:"limit"`
	MinScore    float64            `json:"min_score"`
	// Optional pre-ranking filters.
	Location   string `json:"location,omitempty"`
	Industry   string `json:"industry,omitempty"`
	RemoteOnly bool   `json:"remote_only"`
}

// FindCandidatesRequest - Parameters for ranking candidates for a job
type FindCandidatesRequest struct {
	JobID    kernel.JobID `json:"job_id" validate:"required"`
	Limit    int          `json:"limit"`
	MinScore float64      `json:"min_score"`
}

// ScoreRequest - Parameters for scoring one candidate/job pair
type ScoreRequest struct {
	CandidateID kernel.CandidateID `json:"candidate_id" validate:"required"`
	JobID       kernel.JobID       `json:"job_id" validate:"required"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// CandidateSummary - Profile facts echoed back with job matches
type CandidateSummary struct {
	Name            string   `json:"name"`
	SkillsCount     int      `json:"skills_count"`
	ExperienceCount int      `json:"experience_count"`
	Domains         []string `json:"domains"`
}

// FindJobsResponse - Ranked jobs for a candidate
type FindJobsResponse struct {
	CandidateID      kernel.CandidateID  `json:"candidate_id"`
	Matches          []matching.JobMatch `json:"matches"`
	TotalFound       int                 `json:"total_found"`
	JobsEvaluated    int                 `json:"jobs_evaluated"`
	MinScore         float64             `json:"min_score"`
	CandidateProfile CandidateSummary    `json:"candidate_profile"`
	GeneratedAt      time.Time           `json:"generated_at"`
}

// FindCandidatesResponse - Ranked candidates for a job
type FindCandidatesResponse struct {
	JobID               kernel.JobID              `json:"job_id"`
	JobTitle            string                    `json:"job_title"`
	Matches             []matching.CandidateMatch `json:"matches"`
	TotalFound          int                       `json:"total_found"`
	CandidatesEvaluated int                       `json:"candidates_evaluated"`
	MinScore            float64                   `json:"min_score"`
	GeneratedAt         time.Time                 `json:"generated_at"`
}

// ScoreResponse - Full match result for one candidate/job pair
type ScoreResponse struct {
	CandidateID kernel.CandidateID   `json:"candidate_id"`
	JobID       kernel.JobID         `json:"job_id"`
	Result      matching.MatchResult `json:"result"`
}

// RefitResponse - Corpus sizes after refitting the similarity model
type RefitResponse struct {
	Candidates int       `json:"candidates"`
	Jobs       int       `json:"jobs"`
	FittedAt   time.Time `json:"fitted_at"`
}

// CandidateAnalyticsResponse - Matching analytics for one candidate
type CandidateAnalyticsResponse struct {
	CandidateID                kernel.CandidateID `json:"candidate_id"`
	ProfileCompleteness        float64            `json:"profile_completeness"`
	TotalApplications          int                `json:"total_applications"`
	ApplicationStatusBreakdown map[string]int     `json:"application_status_breakdown"`
	SkillsCount                int                `json:"skills_count"`
	DomainExpertise            []string           `json:"domain_expertise"`
}
