package application

import (
	"time"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// SubmitApplicationRequest - Request to apply to a job
type SubmitApplicationRequest struct {
	TenantID    kernel.TenantID    `json:"tenant_id" validate:"required"`
	JobID       kernel.JobID       `json:"job_id" validate:"required"`
	CandidateID kernel.CandidateID `json:"candidate_id" validate:"required"`
	// ResumeID optionally names the resume to apply with; the
	// candidate's default resume is used when empty.
	ResumeID    *kernel.ResumeID `json:"resume_id,omitempty"`
	CoverLetter string           `json:"cover_letter,omitempty"`
}

// UpdateStatusRequest - Request to move an application along the pipeline
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required"`
	Reason string            `json:"reason,omitempty"`
}

// AssignReviewerRequest - Request to assign a reviewer
type AssignReviewerRequest struct {
	ReviewerID kernel.UserID `json:"reviewer_id" validate:"required"`
}

// RecruiterNotesRequest - Request to set recruiter notes
type RecruiterNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// ListApplicationsRequest - Filters for listing applications
type ListApplicationsRequest struct {
	JobID       *kernel.JobID            `json:"job_id,omitempty"`
	CandidateID *kernel.CandidateID      `json:"candidate_id,omitempty"`
	Status      *ApplicationStatus       `json:"status,omitempty"`
	Pagination  kernel.PaginationOptions `json:"pagination"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ApplicationResponse - Full application data
type ApplicationResponse struct {
	ID             kernel.ApplicationID  `json:"id"`
	TenantID       kernel.TenantID       `json:"tenant_id"`
	JobID          kernel.JobID          `json:"job_id"`
	CandidateID    kernel.CandidateID    `json:"candidate_id"`
	ResumeID       *kernel.ResumeID      `json:"resume_id,omitempty"`
	CoverLetter    string                `json:"cover_letter,omitempty"`
	Status         ApplicationStatus     `json:"status"`
	MatchScore     *float64              `json:"match_score,omitempty"`
	MatchReport    *matching.MatchResult `json:"match_report,omitempty"`
	RecruiterNotes string                `json:"recruiter_notes,omitempty"`
	ReviewerID     *kernel.UserID        `json:"reviewer_id,omitempty"`
	SubmittedAt    time.Time             `json:"submitted_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// PaginatedApplicationsResponse - Paginated application list
type PaginatedApplicationsResponse = kernel.Paginated[ApplicationResponse]

// ApplicationStatsResponse - Per-job application pipeline counts
type ApplicationStatsResponse struct {
	JobID       kernel.JobID `json:"job_id"`
	Total       int          `json:"total"`
	Submitted   int          `json:"submitted"`
	UnderReview int          `json:"under_review"`
	Interview   int          `json:"interview"`
	Hired       int          `json:"hired"`
	Rejected    int          `json:"rejected"`
	Withdrawn   int          `json:"withdrawn"`
}

// ============================================================================
// Mapper Functions
// ============================================================================

// ToApplicationResponse converts an Application to its response DTO
func ToApplicationResponse(a *Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:             a.ID,
		TenantID:       a.TenantID,
		JobID:          a.JobID,
		CandidateID:    a.CandidateID,
		ResumeID:       a.ResumeID,
		CoverLetter:    a.CoverLetter,
		Status:         a.Status,
		MatchScore:     a.MatchScore,
		MatchReport:    a.MatchReport,
		RecruiterNotes: a.RecruiterNotes,
		ReviewerID:     a.ReviewerID,
		SubmittedAt:    a.SubmittedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
