package matchsrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/application"
	"github.com/hotgigs/talent/recruitment/candidate"
	"github.com/hotgigs/talent/recruitment/job"
	"github.com/hotgigs/talent/recruitment/match"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeCandidateRepo struct {
	byID map[kernel.CandidateID]*candidate.Candidate
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{byID: map[kernel.CandidateID]*candidate.Candidate{}}
}

func (f *fakeCandidateRepo) Create(_ context.Context, c *candidate.Candidate) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCandidateRepo) Update(_ context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	f.byID[id] = c
	return nil
}

func (f *fakeCandidateRepo) GetByID(_ context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return c, nil
}

func (f *fakeCandidateRepo) GetByEmail(_ context.Context, email kernel.Email) (*candidate.Candidate, error) {
	for _, c := range f.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound()
}

func (f *fakeCandidateRepo) Delete(_ context.Context, id kernel.CandidateID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCandidateRepo) List(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	return nil, nil
}

func (f *fakeCandidateRepo) ListActiveWithProfiles(_ context.Context) ([]*candidate.Candidate, error) {
	var out []*candidate.Candidate
	for _, c := range f.byID {
		if c.IsActive() && c.ProfileUpdatedAt != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) Exists(_ context.Context, id kernel.CandidateID) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

type fakeJobRepo struct {
	byID map[kernel.JobID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: map[kernel.JobID]*job.Job{}}
}

func (f *fakeJobRepo) Create(_ context.Context, j *job.Job) error {
	f.byID[j.ID] = j
	return nil
}

func (f *fakeJobRepo) Update(_ context.Context, id kernel.JobID, j *job.Job) error {
	f.byID[id] = j
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return j, nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id kernel.JobID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeJobRepo) List(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (f *fakeJobRepo) ListActive(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (f *fakeJobRepo) ListByUserID(_ context.Context, _ kernel.UserID, _ kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (f *fakeJobRepo) ListAllActive(_ context.Context) ([]*job.Job, error) {
	var out []*job.Job
	for _, j := range f.byID {
		if j.IsOpen() {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Search(_ context.Context, _ job.SearchJobsRequest) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (f *fakeJobRepo) Exists(_ context.Context, id kernel.JobID) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeJobRepo) CountApplications(_ context.Context, _ kernel.JobID) (int64, error) {
	return 0, nil
}

type fakeApplicationRepo struct {
	apps []application.Application
}

func (f *fakeApplicationRepo) Create(_ context.Context, a *application.Application) error {
	f.apps = append(f.apps, *a)
	return nil
}

func (f *fakeApplicationRepo) Update(_ context.Context, _ kernel.ApplicationID, _ *application.Application) error {
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, _ kernel.ApplicationID) (*application.Application, error) {
	return nil, application.ErrApplicationNotFound()
}

func (f *fakeApplicationRepo) Delete(_ context.Context, _ kernel.ApplicationID) error {
	return nil
}

func (f *fakeApplicationRepo) List(_ context.Context, req application.ListApplicationsRequest) (*kernel.Paginated[application.Application], error) {
	var items []application.Application
	for _, a := range f.apps {
		if req.CandidateID != nil && a.CandidateID != *req.CandidateID {
			continue
		}
		items = append(items, a)
	}
	paginated := kernel.NewPaginated(items, 1, 1000, len(items))
	return &paginated, nil
}

func (f *fakeApplicationRepo) ExistsByJobAndCandidate(_ context.Context, _ kernel.JobID, _ kernel.CandidateID) (bool, error) {
	return false, nil
}

func (f *fakeApplicationRepo) CountByJobID(_ context.Context, _ kernel.JobID) (int64, error) {
	return 0, nil
}

func (f *fakeApplicationRepo) CountByJobIDAndStatus(_ context.Context, _ kernel.JobID, _ application.ApplicationStatus) (int64, error) {
	return 0, nil
}

func (f *fakeApplicationRepo) ListByReviewer(_ context.Context, _ kernel.UserID, _ kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return nil, nil
}

// ============================================================================
// Fixtures
// ============================================================================

func goCandidate(id string) *candidate.Candidate {
	now := time.Now()
	profile := parsing.NewParsedResume()
	profile.PersonalInfo.FullName = "Dana Rivers"
	profile.Summary = "Go developer building backend services with PostgreSQL and Redis"
	profile.Skills = []parsing.Skill{
		{Name: "go", Category: "programming_languages", ProficiencyLevel: parsing.ProficiencyAdvanced},
		{Name: "postgresql", Category: "databases", ProficiencyLevel: parsing.ProficiencyAdvanced},
		{Name: "docker", Category: "devops", ProficiencyLevel: parsing.ProficiencyIntermediate},
	}
	profile.WorkExperience = []parsing.ExperienceEntry{
		{JobTitle: "Backend Engineer", Company: "Acme", Duration: "2019 - 2024", Description: "Built Go microservices"},
	}
	profile.DomainExpertise = []string{"software_engineering"}

	return &candidate.Candidate{
		ID:               kernel.NewCandidateID(id),
		TenantID:         kernel.NewTenantID("tenant-1"),
		Email:            kernel.Email("dana@example.com"),
		Status:           candidate.CandidateStatusActive,
		Profile:          *profile,
		ProfileUpdatedAt: &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func goJob(id string, remote bool) *job.Job {
	now := time.Now()
	return &job.Job{
		ID:          kernel.NewJobID(id),
		TenantID:    kernel.NewTenantID("tenant-1"),
		Title:       kernel.JobTitle("Senior Go Engineer"),
		Company:     "Acme",
		Location:    kernel.Location("Austin, TX"),
		Industry:    "technology",
		Description: kernel.JobDescription("Build and operate Go backend services with PostgreSQL"),
		RequiredSkills: []matching.RequiredSkill{
			{Name: "go", Category: "programming_languages", ProficiencyLevel: parsing.ProficiencyAdvanced},
			{Name: "postgresql", Category: "databases", ProficiencyLevel: parsing.ProficiencyIntermediate},
		},
		RemoteOK:  remote,
		Status:    job.JobStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestService() (*MatchService, *fakeCandidateRepo, *fakeJobRepo, *fakeApplicationRepo) {
	candidates := newFakeCandidateRepo()
	jobs := newFakeJobRepo()
	apps := &fakeApplicationRepo{}
	service := NewMatchService(candidates, jobs, apps, matching.NewEngine())
	return service, candidates, jobs, apps
}

// ============================================================================
// Tests
// ============================================================================

func TestScorePair(t *testing.T) {
	service, candidates, jobs, _ := newTestService()
	ctx := context.Background()

	candidates.byID["cand-1"] = goCandidate("cand-1")
	jobs.byID["job-1"] = goJob("job-1", true)

	result, err := service.ScorePair(ctx, "cand-1", "job-1")
	require.NoError(t, err)

	assert.Greater(t, result.OverallScore, 0.5)
	assert.NotEmpty(t, result.MatchReasons)
	assert.InDelta(t, 0.35, result.Weights.Skills, 1e-9)
}

func TestScorePairRequiresParsedProfile(t *testing.T) {
	service, candidates, jobs, _ := newTestService()
	ctx := context.Background()

	unparsed := goCandidate("cand-1")
	unparsed.ProfileUpdatedAt = nil
	candidates.byID["cand-1"] = unparsed
	jobs.byID["job-1"] = goJob("job-1", true)

	_, err := service.ScorePair(ctx, "cand-1", "job-1")
	require.Error(t, err)
}

func TestScorePairUnknownCandidate(t *testing.T) {
	service, _, jobs, _ := newTestService()
	jobs.byID["job-1"] = goJob("job-1", true)

	_, err := service.ScorePair(context.Background(), "missing", "job-1")
	require.Error(t, err)
}

func TestFindJobsForCandidate(t *testing.T) {
	service, candidates, jobs, _ := newTestService()
	ctx := context.Background()

	candidates.byID["cand-1"] = goCandidate("cand-1")
	jobs.byID["job-1"] = goJob("job-1", true)

	offTopic := goJob("job-2", true)
	offTopic.Title = kernel.JobTitle("Forklift Operator")
	offTopic.Description = kernel.JobDescription("Operate warehouse forklifts on night shifts")
	offTopic.Industry = "logistics"
	offTopic.RequiredSkills = []matching.RequiredSkill{
		{Name: "forklift certification", Category: "other", ProficiencyLevel: parsing.ProficiencyAdvanced},
	}
	jobs.byID["job-2"] = offTopic

	response, err := service.FindJobsForCandidate(ctx, match.FindJobsRequest{
		CandidateID: "cand-1",
		MinScore:    0.01,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, response.JobsEvaluated)
	require.NotEmpty(t, response.Matches)
	assert.Equal(t, "job-1", response.Matches[0].JobID)
	assert.Equal(t, "Dana Rivers", response.CandidateProfile.Name)

	// Ranked best first
	for i := 1; i < len(response.Matches); i++ {
		assert.GreaterOrEqual(t, response.Matches[i-1].MatchScore, response.Matches[i].MatchScore)
	}
}

func TestFindJobsRemoteOnlyFilter(t *testing.T) {
	service, candidates, jobs, _ := newTestService()
	ctx := context.Background()

	candidates.byID["cand-1"] = goCandidate("cand-1")
	jobs.byID["job-1"] = goJob("job-1", true)
	jobs.byID["job-2"] = goJob("job-2", false)

	response, err := service.FindJobsForCandidate(ctx, match.FindJobsRequest{
		CandidateID: "cand-1",
		MinScore:    0.01,
		RemoteOnly:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, response.JobsEvaluated)
}

func TestFindJobsNoActiveJobs(t *testing.T) {
	service, candidates, _, _ := newTestService()
	candidates.byID["cand-1"] = goCandidate("cand-1")

	_, err := service.FindJobsForCandidate(context.Background(), match.FindJobsRequest{
		CandidateID: "cand-1",
	})
	require.Error(t, err)
}

func TestFindCandidatesForJob(t *testing.T) {
	service, candidates, jobs, _ := newTestService()
	ctx := context.Background()

	candidates.byID["cand-1"] = goCandidate("cand-1")
	jobs.byID["job-1"] = goJob("job-1", true)

	response, err := service.FindCandidatesForJob(ctx, match.FindCandidatesRequest{
		JobID:    "job-1",
		MinScore: 0.01,
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", response.JobTitle)
	assert.Equal(t, 1, response.CandidatesEvaluated)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "cand-1", response.Matches[0].CandidateID)
	assert.Contains(t, response.Matches[0].TopSkills, "go")
}

func TestRefitReportsCorpusSizes(t *testing.T) {
	service, candidates, jobs, _ := newTestService()
	ctx := context.Background()

	candidates.byID["cand-1"] = goCandidate("cand-1")
	jobs.byID["job-1"] = goJob("job-1", true)

	response, err := service.Refit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, response.Candidates)
	assert.Equal(t, 1, response.Jobs)
}

func TestCandidateAnalytics(t *testing.T) {
	service, candidates, _, apps := newTestService()
	ctx := context.Background()

	candidates.byID["cand-1"] = goCandidate("cand-1")
	apps.apps = []application.Application{
		{ID: "app-1", CandidateID: "cand-1", Status: application.ApplicationStatusSubmitted},
		{ID: "app-2", CandidateID: "cand-1", Status: application.ApplicationStatusRejected},
		{ID: "app-3", CandidateID: "other", Status: application.ApplicationStatusSubmitted},
	}

	response, err := service.GetCandidateAnalytics(ctx, "cand-1")
	require.NoError(t, err)

	assert.Equal(t, 2, response.TotalApplications)
	assert.Equal(t, 1, response.ApplicationStatusBreakdown["submitted"])
	assert.Equal(t, 1, response.ApplicationStatusBreakdown["rejected"])
	assert.Greater(t, response.ProfileCompleteness, 0.5)
}
