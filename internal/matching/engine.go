package matching

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/hotgigs/talent/pkg/logx"
)

// componentWeights is the fixed blend of the five scoring dimensions.
// The constants are hand-tuned and intentionally kept as-is; changing
// them changes every historical score.
var componentWeights = Weights{
	Skills:     0.35,
	Experience: 0.25,
	Domain:     0.15,
	Location:   0.10,
	Semantic:   0.15,
}

const defaultRankLimit = 10

// Engine scores candidate/job compatibility. The only shared state is
// the lazily fitted text-similarity model; everything else is computed
// per call.
type Engine struct {
	mu    sync.RWMutex
	model *tfidfModel
}

func NewEngine() *Engine {
	return &Engine{}
}

// Fit builds the text-similarity model over the current corpus. Safe
// to call concurrently with Score; the last completed fit wins.
func (e *Engine) Fit(candidates []CandidateProfile, jobs []JobPosting) {
	docs := make([]string, 0, len(candidates)+len(jobs))
	for i := range candidates {
		if text := candidateText(&candidates[i]); text != "" {
			docs = append(docs, text)
		}
	}
	for i := range jobs {
		if text := jobText(&jobs[i]); text != "" {
			docs = append(docs, text)
		}
	}

	model := fitTFIDF(docs)

	e.mu.Lock()
	e.model = model
	e.mu.Unlock()

	logx.Debugf("matching engine fitted on %d documents", len(docs))
}

// Fitted reports whether a similarity model is available. Scoring
// works either way; unfitted engines fall back to keyword overlap.
func (e *Engine) Fitted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model != nil
}

func (e *Engine) currentModel() *tfidfModel {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model
}

// Score computes the full multi-factor match between one candidate and
// one job. A failure inside any single component zeroes that component
// with an error annotation instead of aborting the whole match.
func (e *Engine) Score(candidate *CandidateProfile, job *JobPosting) MatchResult {
	var b Breakdown

	if err := guard(func() { b.Skills = scoreSkills(candidate, job) }); err != nil {
		b.Skills = SkillScore{Error: err.Error()}
	}
	if err := guard(func() { b.Experience = scoreExperience(candidate, job) }); err != nil {
		b.Experience = ExperienceScore{Error: err.Error()}
	}
	if err := guard(func() { b.Domain = scoreDomain(candidate, job) }); err != nil {
		b.Domain = DomainScore{Error: err.Error()}
	}
	if err := guard(func() { b.Location = scoreLocation(candidate, job) }); err != nil {
		b.Location = LocationScore{Error: err.Error()}
	}
	if err := guard(func() { b.Semantic = scoreSemantic(e.currentModel(), candidate, job) }); err != nil {
		b.Semantic = SemanticScore{Error: err.Error()}
	}

	overall := b.Skills.Score*componentWeights.Skills +
		b.Experience.Score*componentWeights.Experience +
		b.Domain.Score*componentWeights.Domain +
		b.Location.Score*componentWeights.Location +
		b.Semantic.Score*componentWeights.Semantic

	return MatchResult{
		OverallScore: round3(overall),
		Confidence:   round3(confidence(candidate, job)),
		Breakdown:    b,
		Weights:      componentWeights,
		MatchReasons: matchReasons(b),
		CalculatedAt: time.Now().UTC(),
	}
}

// RankJobsForCandidate scores every job for the candidate and returns
// the top matches, best first. Ties keep input order.
func (e *Engine) RankJobsForCandidate(candidate *CandidateProfile, jobs []JobPosting, limit int) []JobMatch {
	if limit <= 0 {
		limit = defaultRankLimit
	}

	matches := make([]JobMatch, 0, len(jobs))
	for i := range jobs {
		result := e.Score(candidate, &jobs[i])
		if result.OverallScore <= 0 {
			continue
		}
		matches = append(matches, JobMatch{
			JobID:        jobs[i].ID,
			JobTitle:     jobs[i].Title,
			Company:      jobs[i].Company,
			Location:     jobs[i].Location,
			MatchScore:   result.OverallScore,
			Confidence:   result.Confidence,
			Breakdown:    result.Breakdown,
			MatchReasons: result.MatchReasons,
			Job:          jobs[i],
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// RankCandidatesForJob scores every candidate for the job and returns
// the top matches, best first. Ties keep input order.
func (e *Engine) RankCandidatesForJob(job *JobPosting, candidates []CandidateProfile, limit int) []CandidateMatch {
	if limit <= 0 {
		limit = defaultRankLimit
	}

	matches := make([]CandidateMatch, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		result := e.Score(c, job)
		if result.OverallScore <= 0 {
			continue
		}

		top := make([]string, 0, 5)
		for _, s := range c.Skills {
			if len(top) == 5 {
				break
			}
			top = append(top, s.Name)
		}

		matches = append(matches, CandidateMatch{
			CandidateID:     c.ID,
			CandidateName:   c.PersonalInfo.FullName,
			Email:           c.ContactInfo.Email,
			ExperienceYears: totalExperienceYears(c.WorkExperience),
			TopSkills:       top,
			MatchScore:      result.OverallScore,
			Confidence:      result.Confidence,
			Breakdown:       result.Breakdown,
			MatchReasons:    result.MatchReasons,
			Candidate:       *c,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// confidence averages candidate and job data completeness. Each side
// is a weighted presence sum with weights totalling 1.0.
func confidence(candidate *CandidateProfile, job *JobPosting) float64 {
	var c float64
	if candidate.PersonalInfo.FullName != "" {
		c += 0.1
	}
	if candidate.ContactInfo.Email != "" {
		c += 0.1
	}
	if len(candidate.Skills) > 0 {
		c += 0.3
	}
	if len(candidate.WorkExperience) > 0 {
		c += 0.3
	}
	if len(candidate.Education) > 0 {
		c += 0.1
	}
	if candidate.Summary != "" {
		c += 0.1
	}

	var j float64
	if job.Title != "" {
		j += 0.2
	}
	if job.Description != "" {
		j += 0.3
	}
	if len(job.RequiredSkills) > 0 {
		j += 0.3
	}
	if job.ExperienceRequirements != nil {
		j += 0.1
	}
	if job.Location != "" {
		j += 0.1
	}

	return (c + j) / 2
}

// matchReasons emits one sentence per component that clears the 0.7
// bar, with a generic fallback when none do.
func matchReasons(b Breakdown) []string {
	var reasons []string

	if b.Skills.Score > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Strong skill match with %d relevant skills", len(b.Skills.MatchedSkills)))
	}
	if b.Experience.Score > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Good experience match with %s years (%s level)",
			formatYears(b.Experience.CandidateYears), b.Experience.CandidateLevel))
	}
	if b.Domain.Score > 0.7 {
		switch b.Domain.MatchType {
		case "direct":
			reasons = append(reasons, "Direct industry experience match")
		case "compatible":
			reasons = append(reasons, "Compatible industry background")
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Partial match based on available criteria")
	}
	return reasons
}

func formatYears(years float64) string {
	if years == math.Trunc(years) {
		return fmt.Sprintf("%.0f", years)
	}
	return fmt.Sprintf("%.1f", years)
}

// guard confines a component scorer's panic to that component.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("match component panicked: %v", r)
			err = fmt.Errorf("component failed: %v", r)
		}
	}()
	fn()
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
