package candidate

import (
	"fmt"
	"time"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
)

// CandidateStatus represents the status of a candidate
type CandidateStatus string

const (
	CandidateStatusActive   CandidateStatus = "active"
	CandidateStatusInactive CandidateStatus = "inactive"
	CandidateStatusArchived CandidateStatus = "archived"
)

// CandidateRole determines the scope group granted at login
type CandidateRole string

const (
	RoleCandidate CandidateRole = "candidate"
	RoleRecruiter CandidateRole = "recruiter"
	RoleHRAdmin   CandidateRole = "hr_admin"
)

type Candidate struct {
	ID       kernel.CandidateID `db:"id" json:"id"`
	TenantID kernel.TenantID    `db:"tenant_id" json:"tenant_id"`

	Email     kernel.Email     `db:"email" json:"email"`
	Phone     kernel.Phone     `db:"phone" json:"phone"`
	FirstName kernel.FirstName `db:"first_name" json:"first_name"`
	LastName  kernel.LastName  `db:"last_name" json:"last_name"`

	PasswordHash string        `db:"password_hash" json:"-"`
	Role         CandidateRole `db:"role" json:"role"`

	Status CandidateStatus `db:"status" json:"status"`

	// Profile is the structured view of the candidate's primary
	// resume; it feeds the matching engine.
	Profile          parsing.ParsedResume `db:"profile" json:"profile"`
	PrimaryResumeID  *kernel.ResumeID     `db:"primary_resume_id" json:"primary_resume_id,omitempty"`
	ProfileUpdatedAt *time.Time           `db:"profile_updated_at" json:"profile_updated_at,omitempty"`

	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the candidate is active
func (c *Candidate) IsActive() bool {
	return c.Status == CandidateStatusActive
}

// IsArchived checks if the candidate is archived
func (c *Candidate) IsArchived() bool {
	return c.Status == CandidateStatusArchived
}

// GetFullName returns the candidate's full name
func (c *Candidate) GetFullName() string {
	if c.Profile.PersonalInfo.FullName != "" {
		return c.Profile.PersonalInfo.FullName
	}
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

// Archive marks the candidate as archived
func (c *Candidate) Archive() error {
	if c.IsArchived() {
		return ErrCandidateAlreadyArchived()
	}

	now := time.Now()
	c.Status = CandidateStatusArchived
	c.ArchivedAt = &now
	c.UpdatedAt = now
	return nil
}

// Unarchive removes archived status
func (c *Candidate) Unarchive() error {
	if !c.IsArchived() {
		return ErrCandidateNotArchived()
	}

	c.Status = CandidateStatusActive
	c.ArchivedAt = nil
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the candidate as inactive
func (c *Candidate) Deactivate() {
	c.Status = CandidateStatusInactive
	c.UpdatedAt = time.Now()
}

// Activate marks the candidate as active
func (c *Candidate) Activate() {
	c.Status = CandidateStatusActive
	c.UpdatedAt = time.Now()
}

// CanApplyToJob checks if candidate can apply to jobs
func (c *Candidate) CanApplyToJob() bool {
	return c.IsActive()
}

// ApplyParsedProfile replaces the candidate's structured profile with
// a freshly parsed resume and backfills missing contact fields.
func (c *Candidate) ApplyParsedProfile(parsed *parsing.ParsedResume, resumeID kernel.ResumeID) {
	now := time.Now()
	c.Profile = *parsed
	c.PrimaryResumeID = &resumeID
	c.ProfileUpdatedAt = &now

	if c.Phone == "" && parsed.ContactInfo.Phone != "" {
		c.Phone = kernel.Phone(parsed.ContactInfo.Phone)
	}
	if c.FirstName == "" && parsed.PersonalInfo.FirstName != "" {
		c.FirstName = kernel.FirstName(parsed.PersonalInfo.FirstName)
	}
	if c.LastName == "" && parsed.PersonalInfo.LastName != "" {
		c.LastName = kernel.LastName(parsed.PersonalInfo.LastName)
	}
	c.UpdatedAt = now
}

// ProfileCompleteness scores how much of the profile is filled in,
// weighted by how much each section matters to matching quality.
func (c *Candidate) ProfileCompleteness() float64 {
	var score float64
	if c.Profile.PersonalInfo.FullName != "" || c.FirstName != "" || c.LastName != "" {
		score += 0.15
	}
	if c.Email != "" {
		score += 0.15
	}
	if c.Profile.Summary != "" {
		score += 0.15
	}
	if len(c.Profile.Skills) > 0 {
		score += 0.25
	}
	if len(c.Profile.WorkExperience) > 0 {
		score += 0.20
	}
	if len(c.Profile.Education) > 0 {
		score += 0.10
	}
	return score
}

// ToMatchingProfile projects the candidate into the matching engine's
// input shape. The login email fills in when the resume had none.
func (c *Candidate) ToMatchingProfile() matching.CandidateProfile {
	profile := matching.CandidateProfile{
		ID:           c.ID.String(),
		ParsedResume: c.Profile,
	}
	if profile.ContactInfo.Email == "" {
		profile.ContactInfo.Email = string(c.Email)
	}
	if profile.PersonalInfo.FullName == "" {
		profile.PersonalInfo.FullName = c.GetFullName()
	}
	return profile
}
