package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
)

func testCandidate() *Candidate {
	return &Candidate{
		ID:        kernel.NewCandidateID("cand-1"),
		TenantID:  kernel.TenantID("tenant-1"),
		Email:     kernel.Email("jane@example.com"),
		FirstName: kernel.FirstName("Jane"),
		LastName:  kernel.LastName("Doe"),
		Role:      RoleCandidate,
		Status:    CandidateStatusActive,
		Profile:   *parsing.NewParsedResume(),
	}
}

func TestArchiveLifecycle(t *testing.T) {
	c := testCandidate()

	require.NoError(t, c.Archive())
	assert.True(t, c.IsArchived())
	assert.NotNil(t, c.ArchivedAt)
	assert.False(t, c.CanApplyToJob())

	err := c.Archive()
	require.Error(t, err)

	require.NoError(t, c.Unarchive())
	assert.True(t, c.IsActive())
	assert.Nil(t, c.ArchivedAt)

	err = c.Unarchive()
	require.Error(t, err)
}

func TestGetFullNamePrefersProfile(t *testing.T) {
	c := testCandidate()
	assert.Equal(t, "Jane Doe", c.GetFullName())

	c.Profile.PersonalInfo.FullName = "Jane A. Doe"
	assert.Equal(t, "Jane A. Doe", c.GetFullName())
}

func TestApplyParsedProfileBackfillsContactFields(t *testing.T) {
	c := testCandidate()
	c.Phone = ""
	c.FirstName = ""
	c.LastName = ""

	parsed := parsing.NewParsedResume()
	parsed.PersonalInfo.FirstName = "Jane"
	parsed.PersonalInfo.LastName = "Doe"
	parsed.ContactInfo.Phone = "+1 555 0100"

	resumeID := kernel.ResumeID("resume-1")
	c.ApplyParsedProfile(parsed, resumeID)

	assert.Equal(t, kernel.Phone("+1 555 0100"), c.Phone)
	assert.Equal(t, kernel.FirstName("Jane"), c.FirstName)
	assert.Equal(t, kernel.LastName("Doe"), c.LastName)
	require.NotNil(t, c.PrimaryResumeID)
	assert.Equal(t, resumeID, *c.PrimaryResumeID)
	assert.NotNil(t, c.ProfileUpdatedAt)
}

func TestApplyParsedProfileKeepsExistingContactFields(t *testing.T) {
	c := testCandidate()
	c.Phone = kernel.Phone("+1 555 9999")

	parsed := parsing.NewParsedResume()
	parsed.ContactInfo.Phone = "+1 555 0100"

	c.ApplyParsedProfile(parsed, kernel.ResumeID("resume-1"))
	assert.Equal(t, kernel.Phone("+1 555 9999"), c.Phone)
}

func TestProfileCompleteness(t *testing.T) {
	c := testCandidate()
	c.FirstName = ""
	c.LastName = ""
	c.Email = ""

	assert.InDelta(t, 0.0, c.ProfileCompleteness(), 0.001)

	c.Email = kernel.Email("jane@example.com")
	assert.InDelta(t, 0.15, c.ProfileCompleteness(), 0.001)

	c.Profile.PersonalInfo.FullName = "Jane Doe"
	c.Profile.Summary = "Backend engineer with platform experience."
	c.Profile.Skills = []parsing.Skill{{Name: "Go"}}
	c.Profile.WorkExperience = []parsing.ExperienceEntry{{Company: "Acme"}}
	c.Profile.Education = []parsing.EducationEntry{{Institution: "State University"}}

	assert.InDelta(t, 1.0, c.ProfileCompleteness(), 0.001)
}

func TestToMatchingProfileFillsAccountFields(t *testing.T) {
	c := testCandidate()

	profile := c.ToMatchingProfile()
	assert.Equal(t, "cand-1", profile.ID)
	assert.Equal(t, "jane@example.com", profile.ContactInfo.Email)
	assert.Equal(t, "Jane Doe", profile.PersonalInfo.FullName)

	c.Profile.ContactInfo.Email = "resume@example.com"
	c.Profile.PersonalInfo.FullName = "Jane A. Doe"
	profile = c.ToMatchingProfile()
	assert.Equal(t, "resume@example.com", profile.ContactInfo.Email)
	assert.Equal(t, "Jane A. Doe", profile.PersonalInfo.FullName)
}
