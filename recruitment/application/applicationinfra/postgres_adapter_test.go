package applicationinfra

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/pkg/errx"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/application"
)

func setupMockRepo(t *testing.T) (*PostgresApplicationRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresApplicationRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func applicationRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "job_id", "candidate_id", "resume_id",
		"cover_letter", "status", "match_score", "match_report",
		"recruiter_notes", "reviewer_id",
		"status_changed_at", "submitted_at", "updated_at",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(
			id, "tenant-1", "job-1", "cand-1", "resume-1",
			"I am interested", "submitted", 0.72, []byte(`{"overall_score":0.72}`),
			"", nil,
			nil, now, now,
		)
	}
	return rows
}

func TestGetByID(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM applications WHERE id = $1")).
		WithArgs("app-1").
		WillReturnRows(applicationRows("app-1"))

	app, err := repo.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID.String())
	assert.Equal(t, application.ApplicationStatusSubmitted, app.Status)
	require.NotNil(t, app.ResumeID)
	assert.Equal(t, "resume-1", app.ResumeID.String())
	require.NotNil(t, app.MatchScore)
	assert.InDelta(t, 0.72, *app.MatchScore, 0.001)
	require.NotNil(t, app.MatchReport)
	assert.InDelta(t, 0.72, app.MatchReport.OverallScore, 0.001)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM applications WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)

	var appErr *errx.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, application.CodeApplicationNotFound, appErr.Code)
}

func TestCreateDuplicateApplication(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnError(&pq.Error{Code: "23505"})

	app := &application.Application{
		ID:          "app-1",
		TenantID:    "tenant-1",
		JobID:       "job-1",
		CandidateID: "cand-1",
		Status:      application.ApplicationStatusSubmitted,
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := repo.Create(context.Background(), app)
	require.Error(t, err)

	var appErr *errx.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, application.CodeApplicationAlreadyExists, appErr.Code)
}

func TestListFiltersByJobAndStatus(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM applications WHERE 1=1 AND job_id = $1 AND status = $2")).
		WithArgs("job-1", "submitted").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("SELECT .* FROM applications\\s+WHERE 1=1 AND job_id = \\$1 AND status = \\$2").
		WithArgs("job-1", "submitted").
		WillReturnRows(applicationRows("app-1", "app-2"))

	jobID := kernel.JobID("job-1")
	status := application.ApplicationStatusSubmitted
	result, err := repo.List(context.Background(), application.ListApplicationsRequest{
		JobID:  &jobID,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 2, result.Page.Total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByJobAndCandidate(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("job-1", "cand-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByJobAndCandidate(context.Background(), "job-1", "cand-1")
	require.NoError(t, err)
	assert.True(t, exists)
}
