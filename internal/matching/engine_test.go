package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/internal/parsing"
)

func testCandidate() *CandidateProfile {
	c := &CandidateProfile{ID: "cand-1", ParsedResume: *parsing.NewParsedResume()}
	c.PersonalInfo.FullName = "Jane Doe"
	c.ContactInfo.Email = "jane.doe@example.com"
	c.ContactInfo.Location = "San Francisco, CA"
	c.Summary = "Backend engineer building data platforms."
	c.Skills = []parsing.Skill{
		{Name: "Python", Category: "Programming Languages", ProficiencyLevel: parsing.ProficiencyExpert},
		{Name: "Sql", Category: "Databases", ProficiencyLevel: parsing.ProficiencyIntermediate},
	}
	c.WorkExperience = []parsing.ExperienceEntry{
		{JobTitle: "Software Engineer", Company: "Acme Inc", Duration: "2019 - 2022", Description: "Built payment services for a finance platform."},
	}
	c.Education = []parsing.EducationEntry{
		{Degree: "Bachelor of Science", FieldOfStudy: "Computer Science", Year: "2018"},
	}
	c.DomainExpertise = []string{"technology"}
	return c
}

func testJob() *JobPosting {
	return &JobPosting{
		ID:          "job-1",
		Title:       "Backend Engineer",
		Company:     "Initech",
		Location:    "San Francisco, CA",
		Industry:    "technology",
		Description: "Build backend services in Python.",
		RequiredSkills: []RequiredSkill{
			{Name: "Python", Category: "programming_languages", ProficiencyLevel: parsing.ProficiencyIntermediate},
		},
		ExperienceRequirements: &ExperienceRequirements{MinYears: 2, MaxYears: 8, Level: "mid"},
	}
}

func TestScoreSkillsMeetsRequirement(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	candidate.Skills = []parsing.Skill{
		{Name: "Python", ProficiencyLevel: parsing.ProficiencyExpert},
	}
	job := &JobPosting{
		RequiredSkills: []RequiredSkill{
			{Name: "Python", Category: "programming_languages", ProficiencyLevel: parsing.ProficiencyBeginner},
		},
	}

	score := scoreSkills(candidate, job)
	assert.Equal(t, 1.0, score.Score)
	require.Len(t, score.MatchedSkills, 1)
	assert.Equal(t, "Python", score.MatchedSkills[0].Name)
	assert.Equal(t, 1.0, score.MatchedSkills[0].MatchScore)
	assert.Equal(t, 1.0, score.CoverageRatio)
	assert.Equal(t, "1/1 skills matched", score.Details)
}

func TestScoreSkillsInsufficientData(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	job := &JobPosting{}

	score := scoreSkills(candidate, job)
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, "Insufficient skill data", score.Details)
}

func TestScoreSkillsGapPenaltyAndCategoryWeight(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	candidate.Skills = []parsing.Skill{
		{Name: "Communication", ProficiencyLevel: parsing.ProficiencyBeginner},
	}
	job := &JobPosting{
		RequiredSkills: []RequiredSkill{
			{Name: "Communication", Category: "soft_skills", ProficiencyLevel: parsing.ProficiencyExpert},
		},
	}

	// Three levels short: 1 - 3*0.25 = 0.25, then soft_skills weight 0.6.
	score := scoreSkills(candidate, job)
	assert.InDelta(t, 0.15, score.Score, 0.001)
	require.Len(t, score.MatchedSkills, 1)
	assert.InDelta(t, 0.25, score.MatchedSkills[0].MatchScore, 0.001)
}

func TestScoreSkillsCoverageIsMonotonic(t *testing.T) {
	job := &JobPosting{
		RequiredSkills: []RequiredSkill{
			{Name: "Python", Category: "programming_languages", ProficiencyLevel: parsing.ProficiencyIntermediate},
			{Name: "Docker", Category: "devops", ProficiencyLevel: parsing.ProficiencyIntermediate},
		},
	}

	partial := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	partial.Skills = []parsing.Skill{
		{Name: "Python", ProficiencyLevel: parsing.ProficiencyExpert},
	}
	full := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	full.Skills = []parsing.Skill{
		{Name: "Python", ProficiencyLevel: parsing.ProficiencyExpert},
		{Name: "Docker", ProficiencyLevel: parsing.ProficiencyExpert},
	}

	partialScore := scoreSkills(partial, job)
	fullScore := scoreSkills(full, job)
	assert.Greater(t, fullScore.Score, partialScore.Score)
	require.Len(t, partialScore.MissingSkills, 1)
	assert.Equal(t, "Docker", partialScore.MissingSkills[0].Name)
}

func TestScoreExperienceUnderqualifiedYears(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	job := &JobPosting{
		ExperienceRequirements: &ExperienceRequirements{MinYears: 5, MaxYears: 20, Level: "senior"},
	}

	// Zero parseable years against a five-year minimum.
	score := scoreExperience(candidate, job)
	assert.InDelta(t, 0.25, score.YearsScore, 0.001)
	assert.Equal(t, 0.0, score.CandidateYears)
	assert.Equal(t, "entry", score.CandidateLevel)
}

func TestScoreExperienceInRange(t *testing.T) {
	score := scoreExperience(testCandidate(), testJob())
	assert.Equal(t, 1.0, score.YearsScore)
	assert.Equal(t, 3.0, score.CandidateYears)
	assert.Equal(t, "mid", score.CandidateLevel)
	// Job industry "technology" does not appear in the entry text.
	assert.InDelta(t, 0.3, score.IndustryScore, 0.001)
}

func TestScoreExperienceOverqualifiedFloors(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	candidate.WorkExperience = []parsing.ExperienceEntry{{Duration: "30 years"}}
	job := &JobPosting{ExperienceRequirements: &ExperienceRequirements{MinYears: 1, MaxYears: 5}}

	score := scoreExperience(candidate, job)
	assert.Equal(t, 0.7, score.YearsScore)
}

func TestDurationToYears(t *testing.T) {
	now := float64(time.Now().Year())
	tests := []struct {
		duration string
		want     float64
	}{
		{"", 0.0},
		{"3 years", 3.0},
		{"2.5 years", 2.5},
		{"1 yr", 1.0},
		{"18 months", 1.5},
		{"2019 - 2022", 3.0},
		{"2019-2022", 3.0},
		{"2020 - Present", now - 2020},
		{"2021 - current", now - 2021},
		{"unparseable text", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			assert.InDelta(t, tt.want, durationToYears(tt.duration), 0.001)
		})
	}
}

func TestExperienceLevelForYears(t *testing.T) {
	assert.Equal(t, "entry", experienceLevelForYears(0.5))
	assert.Equal(t, "junior", experienceLevelForYears(2))
	assert.Equal(t, "mid", experienceLevelForYears(4))
	assert.Equal(t, "senior", experienceLevelForYears(8))
	assert.Equal(t, "lead", experienceLevelForYears(12))
	assert.Equal(t, "principal", experienceLevelForYears(20))
}

func TestLevelMatch(t *testing.T) {
	assert.Equal(t, 1.0, levelMatch("senior", "senior"))
	assert.Equal(t, 1.0, levelMatch("lead", "senior"))
	assert.InDelta(t, 0.9, levelMatch("principal", "mid"), 0.001)
	assert.InDelta(t, 0.6, levelMatch("entry", "mid"), 0.001)
	assert.Equal(t, 1.0, levelMatch("unknown", "mid"))
}

func TestScoreDomain(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	job := &JobPosting{Industry: "technology"}

	score := scoreDomain(candidate, job)
	assert.Equal(t, 0.5, score.Score)
	assert.Equal(t, "Insufficient domain data", score.Details)

	candidate.DomainExpertise = []string{"technology"}
	score = scoreDomain(candidate, job)
	assert.Equal(t, 1.0, score.Score)
	assert.Equal(t, "direct", score.MatchType)

	candidate.DomainExpertise = []string{"finance"}
	score = scoreDomain(candidate, job)
	assert.Equal(t, 0.7, score.Score)
	assert.Equal(t, "compatible", score.MatchType)

	candidate.DomainExpertise = []string{"retail"}
	score = scoreDomain(candidate, job)
	assert.Equal(t, 0.3, score.Score)
	assert.Equal(t, "none", score.MatchType)
}

func TestScoreLocation(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}

	// Remote wins regardless of candidate location, even empty.
	score := scoreLocation(candidate, &JobPosting{RemoteOK: true})
	assert.Equal(t, 1.0, score.Score)
	assert.Equal(t, "remote", score.MatchType)

	score = scoreLocation(candidate, &JobPosting{Location: "Austin, TX"})
	assert.Equal(t, 0.5, score.Score)

	candidate.ContactInfo.Location = "Austin, TX"
	score = scoreLocation(candidate, &JobPosting{Location: "Austin, TX"})
	assert.Equal(t, 1.0, score.Score)
	assert.Equal(t, "exact", score.MatchType)

	candidate.ContactInfo.Location = "Dallas, TX"
	score = scoreLocation(candidate, &JobPosting{Location: "Austin, TX"})
	assert.Equal(t, 0.8, score.Score)
	assert.Equal(t, "compatible", score.MatchType)

	candidate.ContactInfo.Location = "Portland, OR"
	score = scoreLocation(candidate, &JobPosting{Location: "Austin, TX"})
	assert.Equal(t, 0.2, score.Score)
	assert.Equal(t, "different", score.MatchType)
}

func TestScoreSemanticFallsBackToKeywords(t *testing.T) {
	candidate := testCandidate()
	job := testJob()

	score := scoreSemantic(nil, candidate, job)
	assert.Equal(t, "keyword_based", score.Method)
	assert.Greater(t, score.Score, 0.0)
	assert.LessOrEqual(t, score.Score, 1.0)
}

func TestScoreSemanticEmptyText(t *testing.T) {
	candidate := &CandidateProfile{ParsedResume: *parsing.NewParsedResume()}
	score := scoreSemantic(nil, candidate, &JobPosting{})
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, "Insufficient text data", score.Details)
}

func TestTFIDFSimilarity(t *testing.T) {
	model := fitTFIDF([]string{
		"python backend services",
		"frontend react development",
		"database administration",
	})
	require.NotNil(t, model)

	same := cosine(model.vectorize("python backend services"), model.vectorize("python backend services"))
	assert.InDelta(t, 1.0, same, 0.001)

	different := cosine(model.vectorize("python backend"), model.vectorize("frontend react"))
	assert.Equal(t, 0.0, different)

	assert.Nil(t, fitTFIDF(nil))
}

func TestEngineScoreBounded(t *testing.T) {
	engine := NewEngine()

	pairs := []struct {
		candidate *CandidateProfile
		job       *JobPosting
	}{
		{testCandidate(), testJob()},
		{&CandidateProfile{ParsedResume: *parsing.NewParsedResume()}, &JobPosting{}},
		{testCandidate(), &JobPosting{RemoteOK: true}},
	}
	for _, pair := range pairs {
		result := engine.Score(pair.candidate, pair.job)
		assert.GreaterOrEqual(t, result.OverallScore, 0.0)
		assert.LessOrEqual(t, result.OverallScore, 1.0)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
		assert.NotEmpty(t, result.MatchReasons)
		assert.False(t, result.CalculatedAt.IsZero())
	}
}

func TestEngineScoreUsesFittedModel(t *testing.T) {
	engine := NewEngine()
	candidate := testCandidate()
	job := testJob()
	assert.False(t, engine.Fitted())

	engine.Fit([]CandidateProfile{*candidate}, []JobPosting{*job})
	assert.True(t, engine.Fitted())

	result := engine.Score(candidate, job)
	assert.Equal(t, "tfidf_cosine", result.Breakdown.Semantic.Method)
}

func TestEngineConfidence(t *testing.T) {
	full := confidence(testCandidate(), testJob())
	assert.Equal(t, 1.0, full)

	empty := confidence(&CandidateProfile{ParsedResume: *parsing.NewParsedResume()}, &JobPosting{})
	assert.Equal(t, 0.0, empty)
}

func TestMatchReasons(t *testing.T) {
	reasons := matchReasons(Breakdown{
		Skills:     SkillScore{Score: 0.9, MatchedSkills: []MatchedSkill{{}, {}}},
		Experience: ExperienceScore{Score: 0.8, CandidateYears: 3, CandidateLevel: "junior"},
		Domain:     DomainScore{Score: 1.0, MatchType: "direct"},
	})
	assert.Equal(t, []string{
		"Strong skill match with 2 relevant skills",
		"Good experience match with 3 years (junior level)",
		"Direct industry experience match",
	}, reasons)

	fallback := matchReasons(Breakdown{})
	assert.Equal(t, []string{"Partial match based on available criteria"}, fallback)
}

func TestRankJobsForCandidate(t *testing.T) {
	engine := NewEngine()
	candidate := testCandidate()

	strong := *testJob()
	weak := JobPosting{
		ID:       "job-2",
		Title:    "Nurse",
		Industry: "healthcare",
		Location: "Boston, MA",
		RequiredSkills: []RequiredSkill{
			{Name: "Patient Care", Category: "soft_skills", ProficiencyLevel: parsing.ProficiencyExpert},
		},
	}

	matches := engine.RankJobsForCandidate(candidate, []JobPosting{weak, strong}, 10)
	require.Len(t, matches, 2)
	assert.Equal(t, "job-1", matches[0].JobID)
	assert.Greater(t, matches[0].MatchScore, matches[1].MatchScore)

	limited := engine.RankJobsForCandidate(candidate, []JobPosting{weak, strong}, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "job-1", limited[0].JobID)
}

func TestRankCandidatesForJob(t *testing.T) {
	engine := NewEngine()
	job := testJob()

	strong := *testCandidate()
	weak := CandidateProfile{ID: "cand-2", ParsedResume: *parsing.NewParsedResume()}
	weak.PersonalInfo.FullName = "John Roe"

	matches := engine.RankCandidatesForJob(job, []CandidateProfile{weak, strong}, 10)
	require.NotEmpty(t, matches)
	assert.Equal(t, "cand-1", matches[0].CandidateID)
	assert.Equal(t, "Jane Doe", matches[0].CandidateName)
	assert.Equal(t, []string{"Python", "Sql"}, matches[0].TopSkills)
	assert.Equal(t, 3.0, matches[0].ExperienceYears)
}
