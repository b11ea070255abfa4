package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
)

func testResume() *Resume {
	parsed := parsing.NewParsedResume()
	parsed.Summary = "Backend engineer with 8 years building distributed systems"
	parsed.Skills = []parsing.Skill{
		{Name: "Go", Category: "programming_languages"},
		{Name: "PostgreSQL", Category: "databases"},
	}
	parsed.WorkExperience = []parsing.ExperienceEntry{
		{JobTitle: "Senior Engineer", Company: "Acme", Description: "Built the payments platform"},
	}
	parsed.Education = []parsing.EducationEntry{
		{Degree: "BSc", FieldOfStudy: "Computer Science", Institution: "MIT"},
	}
	parsed.DomainExpertise = []string{"fintech"}

	return &Resume{
		ID:          kernel.NewResumeID("res-1"),
		TenantID:    kernel.NewTenantID("tenant-1"),
		CandidateID: kernel.NewCandidateID("cand-1"),
		Title:       "Backend Resume",
		IsActive:    true,
		Parsed:      *parsed,
		Provider:    "nlp",
		CreatedAt:   time.Now(),
	}
}

func TestDefaultLifecycle(t *testing.T) {
	r := testResume()
	assert.False(t, r.IsDefault)

	before := r.LastUpdatedAt
	r.SetAsDefault()
	assert.True(t, r.IsDefault)
	assert.True(t, r.LastUpdatedAt.After(before))

	r.UnsetAsDefault()
	assert.False(t, r.IsDefault)
}

func TestActivateDeactivate(t *testing.T) {
	r := testResume()

	r.Deactivate()
	assert.False(t, r.IsActive)

	r.Activate()
	assert.True(t, r.IsActive)
}

func TestEmbeddingText(t *testing.T) {
	r := testResume()
	text := r.EmbeddingText()

	assert.Contains(t, text, "Backend engineer with 8 years")
	assert.Contains(t, text, "Senior Engineer at Acme Built the payments platform")
	assert.Contains(t, text, "Skills: Go, PostgreSQL")
	assert.Contains(t, text, "BSc in Computer Science from MIT")
	assert.Contains(t, text, "Domains: fintech")
}

func TestEmbeddingTextEmptyProfile(t *testing.T) {
	r := &Resume{Parsed: *parsing.NewParsedResume()}
	assert.Empty(t, r.EmbeddingText())
}

func TestHasEmbedding(t *testing.T) {
	r := testResume()
	assert.False(t, r.HasEmbedding())

	r.UpdateEmbedding(kernel.ResumeEmbedding{0.1, 0.2, 0.3})
	assert.True(t, r.HasEmbedding())
}

func TestSkillNames(t *testing.T) {
	r := testResume()
	assert.Equal(t, []string{"Go", "PostgreSQL"}, r.SkillNames())
}

func TestSummaryResponseTruncatesSkills(t *testing.T) {
	r := testResume()
	r.Parsed.Skills = nil
	for i := 0; i < 15; i++ {
		r.Parsed.Skills = append(r.Parsed.Skills, parsing.Skill{Name: string(rune('a' + i))})
	}

	summary := ToResumeSummaryResponse(r)
	assert.Len(t, summary.TopSkills, 10)
}
