package application

import (
	"slices"
	"time"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"    // Initial submission
	ApplicationStatusUnderReview ApplicationStatus = "under_review" // Being reviewed
	ApplicationStatusInterview   ApplicationStatus = "interview"    // In interview process
	ApplicationStatusHired       ApplicationStatus = "hired"        // Offer accepted
	ApplicationStatusRejected    ApplicationStatus = "rejected"     // Rejected
	ApplicationStatusWithdrawn   ApplicationStatus = "withdrawn"    // Withdrawn by candidate
)

// ValidStatuses lists every status accepted on input
var ValidStatuses = []ApplicationStatus{
	ApplicationStatusSubmitted,
	ApplicationStatusUnderReview,
	ApplicationStatusInterview,
	ApplicationStatusHired,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

type Application struct {
	ID          kernel.ApplicationID `db:"id" json:"id"`
	TenantID    kernel.TenantID      `db:"tenant_id" json:"tenant_id"`
	JobID       kernel.JobID         `db:"job_id" json:"job_id"`
	CandidateID kernel.CandidateID   `db:"candidate_id" json:"candidate_id"`

	// ResumeID is the resume the candidate applied with; nil when the
	// candidate has no stored resume.
	ResumeID *kernel.ResumeID `db:"resume_id" json:"resume_id,omitempty"`

	CoverLetter string            `db:"cover_letter" json:"cover_letter,omitempty"`
	Status      ApplicationStatus `db:"status" json:"status"`

	// MatchScore and MatchReport hold the match computed at submission
	// time. Both are nil when scoring was unavailable.
	MatchScore  *float64              `db:"match_score" json:"match_score,omitempty"`
	MatchReport *matching.MatchResult `db:"match_report" json:"match_report,omitempty"`

	RecruiterNotes string         `db:"recruiter_notes" json:"recruiter_notes,omitempty"`
	ReviewerID     *kernel.UserID `db:"reviewer_id" json:"reviewer_id,omitempty"`

	StatusChangedAt *time.Time `db:"status_changed_at" json:"status_changed_at,omitempty"`
	SubmittedAt     time.Time  `db:"submitted_at" json:"submitted_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal checks if the application reached a final state
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusHired ||
		a.Status == ApplicationStatusRejected ||
		a.Status == ApplicationStatusWithdrawn
}

// IsActive checks if the application is still in the pipeline
func (a *Application) IsActive() bool {
	return !a.IsTerminal()
}

// HasReviewer checks if a reviewer is assigned
func (a *Application) HasReviewer() bool {
	return a.ReviewerID != nil
}

// HasMatchScore checks if a match was computed for this application
func (a *Application) HasMatchScore() bool {
	return a.MatchScore != nil
}

// validTransitions maps each pipeline status to the statuses it may
// move to. Terminal statuses have no outgoing transitions.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusSubmitted: {
		ApplicationStatusUnderReview,
		ApplicationStatusRejected,
		ApplicationStatusWithdrawn,
	},
	ApplicationStatusUnderReview: {
		ApplicationStatusInterview,
		ApplicationStatusRejected,
		ApplicationStatusWithdrawn,
	},
	ApplicationStatusInterview: {
		ApplicationStatusHired,
		ApplicationStatusRejected,
		ApplicationStatusWithdrawn,
	},
}

// CanUpdateStatus checks if the status transition is allowed
func (a *Application) CanUpdateStatus(newStatus ApplicationStatus) bool {
	allowed, ok := validTransitions[a.Status]
	if !ok {
		return false
	}
	return slices.Contains(allowed, newStatus)
}

// UpdateStatus moves the application to a new status
func (a *Application) UpdateStatus(newStatus ApplicationStatus) error {
	if !a.CanUpdateStatus(newStatus) {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", a.Status).
			WithDetail("new_status", newStatus)
	}

	now := time.Now()
	a.Status = newStatus
	a.StatusChangedAt = &now
	a.UpdatedAt = now
	return nil
}

// Withdraw marks the application as withdrawn by the candidate
func (a *Application) Withdraw() error {
	if a.IsTerminal() {
		return ErrCannotWithdraw().
			WithDetail("status", a.Status)
	}

	now := time.Now()
	a.Status = ApplicationStatusWithdrawn
	a.StatusChangedAt = &now
	a.UpdatedAt = now
	return nil
}

// AssignReviewer assigns a reviewer to the application
func (a *Application) AssignReviewer(reviewerID kernel.UserID) error {
	if a.IsTerminal() {
		return ErrApplicationClosed().
			WithDetail("status", a.Status)
	}

	a.ReviewerID = &reviewerID
	a.UpdatedAt = time.Now()
	return nil
}

// SetMatchResult records the computed match for this application
func (a *Application) SetMatchResult(result *matching.MatchResult) {
	if result == nil {
		return
	}
	score := result.OverallScore
	a.MatchScore = &score
	a.MatchReport = result
	a.UpdatedAt = time.Now()
}

// AddRecruiterNotes replaces the recruiter notes
func (a *Application) AddRecruiterNotes(notes string) {
	a.RecruiterNotes = notes
	a.UpdatedAt = time.Now()
}
