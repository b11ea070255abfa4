package job

import (
	"context"

	"github.com/hotgigs/talent/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// Update updates an existing job
	Update(ctx context.Context, id kernel.JobID, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Delete deletes a job by ID
	Delete(ctx context.Context, id kernel.JobID) error

	// List retrieves all jobs with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListActive retrieves only published jobs
	ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListByUserID retrieves jobs posted by a specific user
	ListByUserID(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListAllActive retrieves every active job without pagination, for
	// the matching engine's ranking pass
	ListAllActive(ctx context.Context) ([]*Job, error)

	// Search searches jobs by various criteria
	Search(ctx context.Context, req SearchJobsRequest) (*kernel.Paginated[Job], error)

	// Exists checks if a job exists by ID
	Exists(ctx context.Context, id kernel.JobID) (bool, error)

	// CountApplications counts applications submitted to a job
	CountApplications(ctx context.Context, jobID kernel.JobID) (int64, error)
}
