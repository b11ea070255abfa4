package candidate

import (
	"time"

	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
)

// UpdateCandidateRequest - DTO for updating candidate contact fields
type UpdateCandidateRequest struct {
	Phone     *kernel.Phone     `json:"phone,omitempty"`
	FirstName *kernel.FirstName `json:"first_name,omitempty"`
	LastName  *kernel.LastName  `json:"last_name,omitempty"`
}

// Response type alias for paginated candidates
type PaginatedCandidatesResponse = kernel.Paginated[CandidateResponse]

// CandidateResponse - DTO for returning candidate data
type CandidateResponse struct {
	ID        kernel.CandidateID `json:"id"`
	TenantID  kernel.TenantID    `json:"tenant_id"`
	Email     kernel.Email       `json:"email"`
	Phone     kernel.Phone       `json:"phone"`
	FirstName kernel.FirstName   `json:"first_name"`
	LastName  kernel.LastName    `json:"last_name"`
	Role      CandidateRole      `json:"role"`
	Status    CandidateStatus    `json:"status"`

	Profile             parsing.ParsedResume `json:"profile"`
	PrimaryResumeID     *kernel.ResumeID     `json:"primary_resume_id,omitempty"`
	ProfileUpdatedAt    *time.Time           `json:"profile_updated_at,omitempty"`
	ProfileCompleteness float64              `json:"profile_completeness"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCandidateResponse converts a domain entity to its response DTO
func ToCandidateResponse(c *Candidate) *CandidateResponse {
	return &CandidateResponse{
		ID:                  c.ID,
		TenantID:            c.TenantID,
		Email:               c.Email,
		Phone:               c.Phone,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		Role:                c.Role,
		Status:              c.Status,
		Profile:             c.Profile,
		PrimaryResumeID:     c.PrimaryResumeID,
		ProfileUpdatedAt:    c.ProfileUpdatedAt,
		ProfileCompleteness: c.ProfileCompleteness(),
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
