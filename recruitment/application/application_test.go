package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
)

func testApplication() *Application {
	now := time.Now()
	return &Application{
		ID:          kernel.NewApplicationID("app-1"),
		TenantID:    kernel.NewTenantID("tenant-1"),
		JobID:       kernel.NewJobID("job-1"),
		CandidateID: kernel.NewCandidateID("cand-1"),
		Status:      ApplicationStatusSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"submitted to under_review", ApplicationStatusSubmitted, ApplicationStatusUnderReview, true},
		{"submitted to rejected", ApplicationStatusSubmitted, ApplicationStatusRejected, true},
		{"submitted skips to interview", ApplicationStatusSubmitted, ApplicationStatusInterview, false},
		{"submitted skips to hired", ApplicationStatusSubmitted, ApplicationStatusHired, false},
		{"under_review to interview", ApplicationStatusUnderReview, ApplicationStatusInterview, true},
		{"under_review back to submitted", ApplicationStatusUnderReview, ApplicationStatusSubmitted, false},
		{"interview to hired", ApplicationStatusInterview, ApplicationStatusHired, true},
		{"interview to rejected", ApplicationStatusInterview, ApplicationStatusRejected, true},
		{"hired is terminal", ApplicationStatusHired, ApplicationStatusUnderReview, false},
		{"rejected is terminal", ApplicationStatusRejected, ApplicationStatusSubmitted, false},
		{"withdrawn is terminal", ApplicationStatusWithdrawn, ApplicationStatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApplication()
			app.Status = tt.from

			err := app.UpdateStatus(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, app.Status)
				assert.NotNil(t, app.StatusChangedAt)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.from, app.Status)
			}
		})
	}
}

func TestFullPipeline(t *testing.T) {
	app := testApplication()

	require.NoError(t, app.UpdateStatus(ApplicationStatusUnderReview))
	require.NoError(t, app.UpdateStatus(ApplicationStatusInterview))
	require.NoError(t, app.UpdateStatus(ApplicationStatusHired))

	assert.True(t, app.IsTerminal())
	assert.False(t, app.IsActive())
}

func TestWithdraw(t *testing.T) {
	app := testApplication()
	require.NoError(t, app.Withdraw())
	assert.Equal(t, ApplicationStatusWithdrawn, app.Status)

	// Terminal states cannot be withdrawn again
	err := app.Withdraw()
	require.Error(t, err)
}

func TestWithdrawRejectedFails(t *testing.T) {
	app := testApplication()
	app.Status = ApplicationStatusRejected

	err := app.Withdraw()
	require.Error(t, err)
	assert.Equal(t, ApplicationStatusRejected, app.Status)
}

func TestAssignReviewer(t *testing.T) {
	app := testApplication()
	reviewerID := kernel.NewUserID("user-9")

	require.NoError(t, app.AssignReviewer(reviewerID))
	assert.True(t, app.HasReviewer())
	assert.Equal(t, reviewerID, *app.ReviewerID)
}

func TestAssignReviewerOnTerminalFails(t *testing.T) {
	app := testApplication()
	app.Status = ApplicationStatusHired

	err := app.AssignReviewer(kernel.NewUserID("user-9"))
	require.Error(t, err)
	assert.False(t, app.HasReviewer())
}

func TestSetMatchResult(t *testing.T) {
	app := testApplication()
	assert.False(t, app.HasMatchScore())

	app.SetMatchResult(&matching.MatchResult{OverallScore: 0.82, Confidence: 0.9})
	require.True(t, app.HasMatchScore())
	assert.InDelta(t, 0.82, *app.MatchScore, 1e-9)
	assert.NotNil(t, app.MatchReport)

	// Nil result leaves the existing score in place
	app.SetMatchResult(nil)
	assert.True(t, app.HasMatchScore())
}
