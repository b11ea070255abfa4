package matchsrv

import (
	"context"
	"strings"
	"time"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/pkg/logx"
	"github.com/hotgigs/talent/recruitment/application"
	"github.com/hotgigs/talent/recruitment/candidate"
	"github.com/hotgigs/talent/recruitment/job"
	"github.com/hotgigs/talent/recruitment/match"
)

type MatchService struct {
	candidates   candidate.Repository
	jobs         job.Repository
	applications application.Repository
	engine       *matching.Engine
}

// NewMatchService creates a new matching service over the shared engine
func NewMatchService(
	candidates candidate.Repository,
	jobs job.Repository,
	applications application.Repository,
	engine *matching.Engine,
) *MatchService {
	return &MatchService{
		candidates:   candidates,
		jobs:         jobs,
		applications: applications,
		engine:       engine,
	}
}

// ============================================================================
// Ranking Operations
// ============================================================================

// FindJobsForCandidate ranks active jobs for a candidate
func (s *MatchService) FindJobsForCandidate(ctx context.Context, req match.FindJobsRequest) (*match.FindJobsResponse, error) {
	profile, err := s.loadProfile(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}

	postings, err := s.loadActivePostings(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterPostings(postings, req)
	if len(filtered) == 0 {
		return nil, match.ErrNoActiveJobs().
			WithDetail("candidate_id", req.CandidateID)
	}

	s.ensureFitted(ctx)

	minScore := req.MinScore
	if minScore <= 0 {
		minScore = match.DefaultMinScore
	}

	// Rank over the full filtered set, then cut by threshold and limit.
	ranked := s.engine.RankJobsForCandidate(profile, filtered, len(filtered))
	matches := make([]matching.JobMatch, 0, len(ranked))
	for _, m := range ranked {
		if m.MatchScore < minScore {
			continue
		}
		matches = append(matches, m)
	}
	if limit := normalizeLimit(req.Limit); len(matches) > limit {
		matches = matches[:limit]
	}

	return &match.FindJobsResponse{
		CandidateID:   req.CandidateID,
		Matches:       matches,
		TotalFound:    len(matches),
		JobsEvaluated: len(filtered),
		MinScore:      minScore,
		CandidateProfile: match.CandidateSummary{
			Name:            profile.PersonalInfo.FullName,
			SkillsCount:     len(profile.Skills),
			ExperienceCount: len(profile.WorkExperience),
			Domains:         profile.DomainExpertise,
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// FindCandidatesForJob ranks candidates for a job posting
func (s *MatchService) FindCandidatesForJob(ctx context.Context, req match.FindCandidatesRequest) (*match.FindCandidatesResponse, error) {
	posting, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, match.ErrJobNotFound().
			WithDetail("job_id", req.JobID)
	}

	profiles, err := s.loadCandidateProfiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, match.ErrNoCandidates().
			WithDetail("job_id", req.JobID)
	}

	s.ensureFitted(ctx)

	minScore := req.MinScore
	if minScore <= 0 {
		minScore = match.DefaultMinScore
	}

	jobPosting := posting.ToPosting()
	ranked := s.engine.RankCandidatesForJob(&jobPosting, profiles, len(profiles))
	matches := make([]matching.CandidateMatch, 0, len(ranked))
	for _, m := range ranked {
		if m.MatchScore < minScore {
			continue
		}
		matches = append(matches, m)
	}
	if limit := normalizeLimit(req.Limit); len(matches) > limit {
		matches = matches[:limit]
	}

	return &match.FindCandidatesResponse{
		JobID:               req.JobID,
		JobTitle:            string(posting.Title),
		Matches:             matches,
		TotalFound:          len(matches),
		CandidatesEvaluated: len(profiles),
		MinScore:            minScore,
		GeneratedAt:         time.Now().UTC(),
	}, nil
}

// ScorePair computes the full match for one candidate/job pair
func (s *MatchService) ScorePair(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*matching.MatchResult, error) {
	profile, err := s.loadProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, match.ErrJobNotFound().
			WithDetail("job_id", jobID)
	}

	s.ensureFitted(ctx)

	jobPosting := posting.ToPosting()
	result := s.engine.Score(profile, &jobPosting)
	return &result, nil
}

// Score answers a score request
func (s *MatchService) Score(ctx context.Context, req match.ScoreRequest) (*match.ScoreResponse, error) {
	result, err := s.ScorePair(ctx, req.CandidateID, req.JobID)
	if err != nil {
		return nil, err
	}

	return &match.ScoreResponse{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Result:      *result,
	}, nil
}

// ============================================================================
// Model Management
// ============================================================================

// Refit rebuilds the text-similarity model over the current corpus
func (s *MatchService) Refit(ctx context.Context) (*match.RefitResponse, error) {
	profiles, err := s.loadCandidateProfiles(ctx)
	if err != nil {
		return nil, err
	}

	postings, err := s.loadActivePostings(ctx)
	if err != nil {
		return nil, err
	}

	s.engine.Fit(profiles, postings)

	return &match.RefitResponse{
		Candidates: len(profiles),
		Jobs:       len(postings),
		FittedAt:   time.Now().UTC(),
	}, nil
}

// ensureFitted lazily fits the similarity model on first use. Scoring
// degrades to keyword overlap if fitting fails.
func (s *MatchService) ensureFitted(ctx context.Context) {
	if s.engine.Fitted() {
		return
	}
	if _, err := s.Refit(ctx); err != nil {
		logx.Warnf("Lazy model fit failed, falling back to keyword similarity: %v", err)
	}
}

// ============================================================================
// Analytics
// ============================================================================

// GetCandidateAnalytics reports profile and application pipeline facts
// for one candidate
func (s *MatchService) GetCandidateAnalytics(ctx context.Context, candidateID kernel.CandidateID) (*match.CandidateAnalyticsResponse, error) {
	c, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, match.ErrCandidateNotFound().
			WithDetail("candidate_id", candidateID)
	}

	response := &match.CandidateAnalyticsResponse{
		CandidateID:                candidateID,
		ProfileCompleteness:        c.ProfileCompleteness(),
		ApplicationStatusBreakdown: map[string]int{},
		SkillsCount:                len(c.Profile.Skills),
		DomainExpertise:            c.Profile.DomainExpertise,
	}

	apps, err := s.applications.List(ctx, application.ListApplicationsRequest{
		CandidateID: &candidateID,
		Pagination:  kernel.PaginationOptions{Page: 1, PageSize: 1000},
	})
	if err != nil {
		return nil, err
	}

	response.TotalApplications = apps.Page.Total
	for i := range apps.Items {
		response.ApplicationStatusBreakdown[string(apps.Items[i].Status)]++
	}

	return response, nil
}

// ============================================================================
// Private Helper Methods
// ============================================================================

func (s *MatchService) loadProfile(ctx context.Context, candidateID kernel.CandidateID) (*matching.CandidateProfile, error) {
	c, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, match.ErrCandidateNotFound().
			WithDetail("candidate_id", candidateID)
	}

	if c.ProfileUpdatedAt == nil {
		return nil, match.ErrProfileNotParsed().
			WithDetail("candidate_id", candidateID)
	}

	profile := c.ToMatchingProfile()
	return &profile, nil
}

func (s *MatchService) loadCandidateProfiles(ctx context.Context) ([]matching.CandidateProfile, error) {
	candidates, err := s.candidates.ListActiveWithProfiles(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]matching.CandidateProfile, 0, len(candidates))
	for _, c := range candidates {
		profiles = append(profiles, c.ToMatchingProfile())
	}
	return profiles, nil
}

func (s *MatchService) loadActivePostings(ctx context.Context) ([]matching.JobPosting, error) {
	jobs, err := s.jobs.ListAllActive(ctx)
	if err != nil {
		return nil, err
	}

	postings := make([]matching.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		j.EnsureRequiredSkills()
		postings = append(postings, j.ToPosting())
	}
	return postings, nil
}

func filterPostings(postings []matching.JobPosting, req match.FindJobsRequest) []matching.JobPosting {
	if req.Location == "" && req.Industry == "" && !req.RemoteOnly {
		return postings
	}

	filtered := make([]matching.JobPosting, 0, len(postings))
	for _, p := range postings {
		if req.RemoteOnly && !p.RemoteOK {
			continue
		}
		if req.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(req.Location)) {
			continue
		}
		if req.Industry != "" && !strings.EqualFold(p.Industry, req.Industry) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}
