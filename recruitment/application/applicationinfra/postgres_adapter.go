package applicationinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/application"
)

type PostgresApplicationRepository struct {
	db *sqlx.DB
}

func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationRow struct {
	ID          string         `db:"id"`
	TenantID    string         `db:"tenant_id"`
	JobID       string         `db:"job_id"`
	CandidateID string         `db:"candidate_id"`
	ResumeID    sql.NullString `db:"resume_id"`

	CoverLetter string `db:"cover_letter"`
	Status      string `db:"status"`

	MatchScore  sql.NullFloat64 `db:"match_score"`
	MatchReport json.RawMessage `db:"match_report"`

	RecruiterNotes string         `db:"recruiter_notes"`
	ReviewerID     sql.NullString `db:"reviewer_id"`

	StatusChangedAt *time.Time `db:"status_changed_at"`
	SubmittedAt     time.Time  `db:"submitted_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (row *applicationRow) toEntity() (*application.Application, error) {
	app := &application.Application{
		ID:              kernel.ApplicationID(row.ID),
		TenantID:        kernel.TenantID(row.TenantID),
		JobID:           kernel.JobID(row.JobID),
		CandidateID:     kernel.CandidateID(row.CandidateID),
		CoverLetter:     row.CoverLetter,
		Status:          application.ApplicationStatus(row.Status),
		RecruiterNotes:  row.RecruiterNotes,
		StatusChangedAt: row.StatusChangedAt,
		SubmittedAt:     row.SubmittedAt,
		UpdatedAt:       row.UpdatedAt,
	}

	if row.ResumeID.Valid {
		id := kernel.ResumeID(row.ResumeID.String)
		app.ResumeID = &id
	}
	if row.MatchScore.Valid {
		score := row.MatchScore.Float64
		app.MatchScore = &score
	}
	if row.ReviewerID.Valid {
		id := kernel.UserID(row.ReviewerID.String)
		app.ReviewerID = &id
	}
	if len(row.MatchReport) > 0 && string(row.MatchReport) != "null" {
		var report matching.MatchResult
		if err := json.Unmarshal(row.MatchReport, &report); err != nil {
			return nil, fmt.Errorf("unmarshal match report: %w", err)
		}
		app.MatchReport = &report
	}

	return app, nil
}

const applicationColumns = `
	id, tenant_id, job_id, candidate_id, resume_id,
	cover_letter, status, match_score, match_report,
	recruiter_notes, reviewer_id,
	status_changed_at, submitted_at, updated_at`

// ============================================================================
// CRUD Operations
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	matchReport, err := marshalMatchReport(app)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.ExecContext(ctx, query,
		app.ID, app.TenantID, app.JobID, app.CandidateID, resumeIDOrNil(app.ResumeID),
		app.CoverLetter, app.Status, matchScoreOrNil(app.MatchScore), matchReport,
		app.RecruiterNotes, reviewerIDOrNil(app.ReviewerID),
		app.StatusChangedAt, app.SubmittedAt, app.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return application.ErrApplicationAlreadyExists().
				WithDetail("job_id", app.JobID).
				WithDetail("candidate_id", app.CandidateID)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// Update updates an existing application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	matchReport, err := marshalMatchReport(app)
	if err != nil {
		return err
	}

	query := `
		UPDATE applications SET
			status = $1,
			match_score = $2,
			match_report = $3,
			recruiter_notes = $4,
			reviewer_id = $5,
			status_changed_at = $6,
			updated_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		app.Status, matchScoreOrNil(app.MatchScore), matchReport,
		app.RecruiterNotes, reviewerIDOrNil(app.ReviewerID),
		app.StatusChangedAt, app.UpdatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id)
	}
	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var row applicationRow
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id)
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return row.toEntity()
}

// Delete deletes an application by ID
func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id)
	}
	return nil
}

// List retrieves applications matching the request filters
func (r *PostgresApplicationRepository) List(ctx context.Context, req application.ListApplicationsRequest) (*kernel.Paginated[application.Application], error) {
	conditions := []string{"1=1"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.JobID != nil {
		conditions = append(conditions, "job_id = "+arg(string(*req.JobID)))
	}
	if req.CandidateID != nil {
		conditions = append(conditions, "candidate_id = "+arg(string(*req.CandidateID)))
	}
	if req.Status != nil {
		conditions = append(conditions, "status = "+arg(string(*req.Status)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM applications WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	pagination := req.Pagination.Normalize()
	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE %s
		ORDER BY submitted_at DESC
		LIMIT %d OFFSET %d`, applicationColumns, where, pagination.PageSize, pagination.Offset())

	var rows []applicationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	apps, err := rowsToEntities(rows)
	if err != nil {
		return nil, err
	}

	paginated := kernel.NewPaginated(apps, pagination.Page, pagination.PageSize, int(total))
	return &paginated, nil
}

// ListByReviewer retrieves applications assigned to a reviewer
func (r *PostgresApplicationRepository) ListByReviewer(ctx context.Context, reviewerID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	pagination = pagination.Normalize()

	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM applications WHERE reviewer_id = $1`, string(reviewerID))
	if err != nil {
		return nil, fmt.Errorf("count reviewer applications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE reviewer_id = $1
		ORDER BY submitted_at DESC
		LIMIT %d OFFSET %d`, applicationColumns, pagination.PageSize, pagination.Offset())

	var rows []applicationRow
	if err := r.db.SelectContext(ctx, &rows, query, string(reviewerID)); err != nil {
		return nil, fmt.Errorf("list reviewer applications: %w", err)
	}

	apps, err := rowsToEntities(rows)
	if err != nil {
		return nil, err
	}

	paginated := kernel.NewPaginated(apps, pagination.Page, pagination.PageSize, int(total))
	return &paginated, nil
}

// ============================================================================
// Existence & Counts
// ============================================================================

// ExistsByJobAndCandidate checks if a candidate already applied to a job
func (r *PostgresApplicationRepository) ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		string(jobID), string(candidateID))
	if err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}
	return exists, nil
}

// CountByJobID counts applications for a job
func (r *PostgresApplicationRepository) CountByJobID(ctx context.Context, jobID kernel.JobID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1`, string(jobID))
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

// CountByJobIDAndStatus counts applications for a job in a given status
func (r *PostgresApplicationRepository) CountByJobIDAndStatus(ctx context.Context, jobID kernel.JobID, status application.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1 AND status = $2`,
		string(jobID), string(status))
	if err != nil {
		return 0, fmt.Errorf("count applications by status: %w", err)
	}
	return count, nil
}

// ============================================================================
// Helpers
// ============================================================================

func rowsToEntities(rows []applicationRow) ([]application.Application, error) {
	apps := make([]application.Application, 0, len(rows))
	for i := range rows {
		app, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

func marshalMatchReport(app *application.Application) (any, error) {
	if app.MatchReport == nil {
		return nil, nil
	}
	data, err := json.Marshal(app.MatchReport)
	if err != nil {
		return nil, fmt.Errorf("marshal match report: %w", err)
	}
	return data, nil
}

func resumeIDOrNil(id *kernel.ResumeID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}

func reviewerIDOrNil(id *kernel.UserID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}

func matchScoreOrNil(score *float64) any {
	if score == nil {
		return nil
	}
	return *score
}
