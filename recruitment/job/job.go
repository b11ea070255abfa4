package job

import (
	"time"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
)

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"  // Created but not visible to candidates
	JobStatusActive JobStatus = "active" // Published and accepting applications
	JobStatusClosed JobStatus = "closed" // No longer accepting applications
)

type Job struct {
	ID       kernel.JobID    `db:"id" json:"id"`
	TenantID kernel.TenantID `db:"tenant_id" json:"tenant_id"`

	Title       kernel.JobTitle       `db:"title" json:"title"`
	Company     string                `db:"company" json:"company"`
	Location    kernel.Location       `db:"location" json:"location"`
	Industry    string                `db:"industry" json:"industry"`
	Description kernel.JobDescription `db:"description" json:"description"`

	// Requirements is the free-text requirements block; RequiredSkills
	// is its structured counterpart consumed by the matching engine.
	Requirements   string                   `db:"requirements" json:"requirements"`
	RequiredSkills []matching.RequiredSkill `db:"required_skills" json:"required_skills"`

	RemoteOK  bool    `db:"remote_ok" json:"remote_ok"`
	SalaryMin float64 `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax float64 `db:"salary_max" json:"salary_max,omitempty"`

	ExperienceRequirements *matching.ExperienceRequirements `db:"experience_requirements" json:"experience_requirements,omitempty"`

	PostedBy kernel.UserID `db:"posted_by" json:"posted_by"`
	Status   JobStatus     `db:"status" json:"status"`

	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	ClosedAt    *time.Time `db:"closed_at" json:"closed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOpen checks if the job is currently accepting applications
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusActive
}

// IsDraft checks if the job is in draft status
func (j *Job) IsDraft() bool {
	return j.Status == JobStatusDraft
}

// IsClosed checks if the job is closed
func (j *Job) IsClosed() bool {
	return j.Status == JobStatusClosed
}

// Publish makes the job visible to candidates
func (j *Job) Publish() error {
	if !j.IsDraft() {
		return ErrCannotPublish().WithDetail("current_status", j.Status)
	}

	now := time.Now()
	j.Status = JobStatusActive
	j.PublishedAt = &now
	j.UpdatedAt = now
	return nil
}

// Close takes the job off the board
func (j *Job) Close() error {
	if j.IsClosed() {
		return ErrJobAlreadyClosed()
	}

	now := time.Now()
	j.Status = JobStatusClosed
	j.ClosedAt = &now
	j.UpdatedAt = now
	return nil
}

// Reopen puts a closed job back into draft
func (j *Job) Reopen() error {
	if !j.IsClosed() {
		return ErrJobNotClosed()
	}

	j.Status = JobStatusDraft
	j.ClosedAt = nil
	j.UpdatedAt = time.Now()
	return nil
}

// EnsureRequiredSkills derives structured skill records from the
// free-text fields when none were supplied.
func (j *Job) EnsureRequiredSkills() {
	if len(j.RequiredSkills) == 0 {
		j.RequiredSkills = DeriveRequiredSkills(string(j.Description) + " " + j.Requirements)
	}
}

// UpdateDetails updates the editable posting fields
func (j *Job) UpdateDetails(req UpdateJobRequest) {
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Company != nil {
		j.Company = *req.Company
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.Industry != nil {
		j.Industry = *req.Industry
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		j.Requirements = *req.Requirements
	}
	if req.RequiredSkills != nil {
		j.RequiredSkills = *req.RequiredSkills
	}
	if req.RemoteOK != nil {
		j.RemoteOK = *req.RemoteOK
	}
	if req.SalaryMin != nil {
		j.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		j.SalaryMax = *req.SalaryMax
	}
	if req.ExperienceRequirements != nil {
		j.ExperienceRequirements = req.ExperienceRequirements
	}
	j.UpdatedAt = time.Now()
}

// ToPosting projects the job into the matching engine's input shape
func (j *Job) ToPosting() matching.JobPosting {
	return matching.JobPosting{
		ID:                     j.ID.String(),
		Title:                  string(j.Title),
		Company:                j.Company,
		Location:               string(j.Location),
		Industry:               j.Industry,
		Description:            string(j.Description),
		Requirements:           j.Requirements,
		RemoteOK:               j.RemoteOK,
		SalaryMin:              j.SalaryMin,
		SalaryMax:              j.SalaryMax,
		ExperienceRequirements: j.ExperienceRequirements,
		RequiredSkills:         j.RequiredSkills,
	}
}
