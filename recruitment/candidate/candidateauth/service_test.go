package candidateauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/candidate"
)

type fakeRepo struct {
	byID    map[kernel.CandidateID]*candidate.Candidate
	byEmail map[kernel.Email]*candidate.Candidate
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    map[kernel.CandidateID]*candidate.Candidate{},
		byEmail: map[kernel.Email]*candidate.Candidate{},
	}
}

func (f *fakeRepo) Create(_ context.Context, c *candidate.Candidate) error {
	if _, ok := f.byEmail[c.Email]; ok {
		return candidate.ErrEmailAlreadyRegistered()
	}
	f.byID[c.ID] = c
	f.byEmail[c.Email] = c
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	f.byID[id] = c
	f.byEmail[c.Email] = c
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return c, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email kernel.Email) (*candidate.Candidate, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return c, nil
}

func (f *fakeRepo) Delete(_ context.Context, id kernel.CandidateID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	return nil, nil
}

func (f *fakeRepo) ListActiveWithProfiles(_ context.Context) ([]*candidate.Candidate, error) {
	return nil, nil
}

func (f *fakeRepo) Exists(_ context.Context, id kernel.CandidateID) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func newTestService(repo candidate.Repository) *AuthService {
	tokens := auth.NewJWTService("test-secret", "talent-test", time.Hour)
	return NewAuthService(repo, tokens, time.Hour)
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "jane@example.com",
		Password:  "correct-horse",
		FirstName: "Jane",
		LastName:  "Doe",
		TenantID:  "tenant-1",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	resp, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.Candidate)
	assert.Equal(t, candidate.RoleCandidate, resp.Candidate.Role)

	login, err := service.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), registerRequest())
	require.Error(t, err)
}

func TestRegisterValidatesInput(t *testing.T) {
	service := newTestService(newFakeRepo())

	req := registerRequest()
	req.Email = "not-an-email"
	_, err := service.Register(context.Background(), req)
	require.Error(t, err)

	req = registerRequest()
	req.Password = "short"
	_, err = service.Register(context.Background(), req)
	require.Error(t, err)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	service := newTestService(newFakeRepo())

	req := registerRequest()
	req.Role = "superuser"
	_, err := service.Register(context.Background(), req)
	require.Error(t, err)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	resp, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	stored := repo.byID[resp.Candidate.ID]
	stored.Deactivate()

	_, err = service.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)
}

func TestIssuedTokenCarriesRoleScopes(t *testing.T) {
	repo := newFakeRepo()
	tokens := auth.NewJWTService("test-secret", "talent-test", time.Hour)
	service := NewAuthService(repo, tokens, time.Hour)

	req := registerRequest()
	req.Role = string(candidate.RoleRecruiter)
	resp, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	claims, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.ElementsMatch(t, auth.DomainScopeGroups["recruiter"], claims.Scopes)
}
