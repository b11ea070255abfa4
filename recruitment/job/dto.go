package job

import (
	"time"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title          kernel.JobTitle          `json:"title" validate:"required"`
	Company        string                   `json:"company" validate:"required"`
	Location       kernel.Location          `json:"location"`
	Industry       string                   `json:"industry"`
	Description    kernel.JobDescription    `json:"description" validate:"required"`
	Requirements   string                   `json:"requirements"`
	RequiredSkills []matching.RequiredSkill `json:"required_skills,omitempty"`
	RemoteOK       bool                     `json:"remote_ok"`
	SalaryMin      float64                  `json:"salary_min,omitempty"`
	SalaryMax      float64                  `json:"salary_max,omitempty"`

	ExperienceRequirements *matching.ExperienceRequirements `json:"experience_requirements,omitempty"`

	PostedBy kernel.UserID `json:"posted_by"`
}

// UpdateJobRequest - DTO for updating an existing job
type UpdateJobRequest struct {
	Title          *kernel.JobTitle          `json:"title,omitempty"`
	Company        *string                   `json:"company,omitempty"`
	Location       *kernel.Location          `json:"location,omitempty"`
	Industry       *string                   `json:"industry,omitempty"`
	Description    *kernel.JobDescription    `json:"description,omitempty"`
	Requirements   *string                   `json:"requirements,omitempty"`
	RequiredSkills *[]matching.RequiredSkill `json:"required_skills,omitempty"`
	RemoteOK       *bool                     `json:"remote_ok,omitempty"`
	SalaryMin      *float64                  `json:"salary_min,omitempty"`
	SalaryMax      *float64                  `json:"salary_max,omitempty"`

	ExperienceRequirements *matching.ExperienceRequirements `json:"experience_requirements,omitempty"`
}

// SearchJobsRequest - DTO for searching jobs
type SearchJobsRequest struct {
	Query      string                   `json:"query,omitempty"`
	Industry   string                   `json:"industry,omitempty"`
	Location   string                   `json:"location,omitempty"`
	RemoteOK   *bool                    `json:"remote_ok,omitempty"`
	Status     JobStatus                `json:"status,omitempty"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[JobResponse]

// JobResponse - DTO for returning job data
type JobResponse struct {
	ID             kernel.JobID             `json:"id"`
	TenantID       kernel.TenantID          `json:"tenant_id"`
	Title          kernel.JobTitle          `json:"title"`
	Company        string                   `json:"company"`
	Location       kernel.Location          `json:"location"`
	Industry       string                   `json:"industry"`
	Description    kernel.JobDescription    `json:"description"`
	Requirements   string                   `json:"requirements"`
	RequiredSkills []matching.RequiredSkill `json:"required_skills"`
	RemoteOK       bool                     `json:"remote_ok"`
	SalaryMin      float64                  `json:"salary_min,omitempty"`
	SalaryMax      float64                  `json:"salary_max,omitempty"`

	ExperienceRequirements *matching.ExperienceRequirements `json:"experience_requirements,omitempty"`

	PostedBy    kernel.UserID `json:"posted_by"`
	Status      JobStatus     `json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	ClosedAt    *time.Time    `json:"closed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ToJobResponse converts a domain entity to its response DTO
func ToJobResponse(j *Job) *JobResponse {
	return &JobResponse{
		ID:                     j.ID,
		TenantID:               j.TenantID,
		Title:                  j.Title,
		Company:                j.Company,
		Location:               j.Location,
		Industry:               j.Industry,
		Description:            j.Description,
		Requirements:           j.Requirements,
		RequiredSkills:         j.RequiredSkills,
		RemoteOK:               j.RemoteOK,
		SalaryMin:              j.SalaryMin,
		SalaryMax:              j.SalaryMax,
		ExperienceRequirements: j.ExperienceRequirements,
		PostedBy:               j.PostedBy,
		Status:                 j.Status,
		PublishedAt:            j.PublishedAt,
		ClosedAt:               j.ClosedAt,
		CreatedAt:              j.CreatedAt,
		UpdatedAt:              j.UpdatedAt,
	}
}
