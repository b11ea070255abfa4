package application

import (
	"context"

	"github.com/hotgigs/talent/pkg/kernel"
)

type Repository interface {
	// Create creates a new application
	Create(ctx context.Context, application *Application) error

	// Update updates an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// Delete deletes an application by ID
	Delete(ctx context.Context, id kernel.ApplicationID) error

	// List retrieves applications matching the request filters
	List(ctx context.Context, req ListApplicationsRequest) (*kernel.Paginated[Application], error)

	// ExistsByJobAndCandidate checks if a candidate already applied to a job
	ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (bool, error)

	// CountByJobID counts applications for a job
	CountByJobID(ctx context.Context, jobID kernel.JobID) (int64, error)

	// CountByJobIDAndStatus counts applications for a job in a given status
	CountByJobIDAndStatus(ctx context.Context, jobID kernel.JobID, status ApplicationStatus) (int64, error)

	// ListByReviewer retrieves applications assigned to a reviewer
	ListByReviewer(ctx context.Context, reviewerID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)
}
