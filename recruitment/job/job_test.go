package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/internal/parsing"
)

func TestDeriveRequiredSkills(t *testing.T) {
	skills := DeriveRequiredSkills("We need Python and PostgreSQL experience, Docker a plus.")

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
		assert.Equal(t, "Technical", s.Category)
		assert.Equal(t, parsing.ProficiencyIntermediate, s.ProficiencyLevel)
		assert.True(t, s.Required)
	}
	assert.Contains(t, names, "Python")
	assert.Contains(t, names, "Postgresql")
	assert.Contains(t, names, "Docker")

	// "postgresql" contains "sql"; both keywords fire.
	assert.Contains(t, names, "Sql")
}

func TestDeriveRequiredSkillsEmptyText(t *testing.T) {
	assert.Empty(t, DeriveRequiredSkills("We need friendly people."))
}

func TestEnsureRequiredSkillsKeepsExplicitRecords(t *testing.T) {
	j := &Job{
		Description:    "Python required",
		RequiredSkills: nil,
	}
	j.EnsureRequiredSkills()
	require.NotEmpty(t, j.RequiredSkills)

	explicit := j.RequiredSkills[:1]
	j.RequiredSkills = explicit
	j.EnsureRequiredSkills()
	assert.Equal(t, explicit, j.RequiredSkills)
}

func TestJobLifecycle(t *testing.T) {
	j := &Job{Status: JobStatusDraft}

	require.NoError(t, j.Publish())
	assert.Equal(t, JobStatusActive, j.Status)
	require.NotNil(t, j.PublishedAt)
	assert.True(t, j.IsOpen())

	// A published job cannot be published again.
	assert.Error(t, j.Publish())

	require.NoError(t, j.Close())
	assert.Equal(t, JobStatusClosed, j.Status)
	require.NotNil(t, j.ClosedAt)
	assert.Error(t, j.Close())

	require.NoError(t, j.Reopen())
	assert.Equal(t, JobStatusDraft, j.Status)
	assert.Nil(t, j.ClosedAt)
}

func TestToPosting(t *testing.T) {
	j := &Job{
		Title:       "Backend Engineer",
		Company:     "Initech",
		Location:    "Austin, TX",
		Industry:    "technology",
		Description: "Build services",
		RemoteOK:    true,
	}
	j.EnsureRequiredSkills()

	posting := j.ToPosting()
	assert.Equal(t, "Backend Engineer", posting.Title)
	assert.Equal(t, "Initech", posting.Company)
	assert.True(t, posting.RemoteOK)
	assert.Equal(t, j.RequiredSkills, posting.RequiredSkills)
}
