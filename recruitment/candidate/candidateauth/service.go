package candidateauth

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotgigs/talent/pkg/errx"
	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/pkg/logx"
	"github.com/hotgigs/talent/recruitment/candidate"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CANDIDATE_AUTH")

// Error codes
var (
	CodeInvalidCredentials  = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid email or password")
	CodeAccountNotActive    = ErrRegistry.Register("ACCOUNT_NOT_ACTIVE", errx.TypeAuthorization, http.StatusForbidden, "Account is not active")
	CodeInvalidRegistration = ErrRegistry.Register("INVALID_REGISTRATION", errx.TypeValidation, http.StatusBadRequest, "Invalid registration data")
	CodeUnsupportedRole     = ErrRegistry.Register("UNSUPPORTED_ROLE", errx.TypeValidation, http.StatusBadRequest, "Unsupported account role")
)

// roleScopes maps an account role to the scopes granted at login.
var roleScopes = map[candidate.CandidateRole][]string{
	candidate.RoleCandidate: {
		auth.ScopeJobsRead,
		auth.ScopeResumesRead,
		auth.ScopeResumesWrite,
		auth.ScopeResumesParse,
		auth.ScopeApplicationsRead,
		auth.ScopeApplicationsWrite,
		auth.ScopeMatchingRead,
	},
	candidate.RoleRecruiter: auth.DomainScopeGroups["recruiter"],
	candidate.RoleHRAdmin:   {auth.ScopeAll},
}

// RegisterRequest - DTO for account registration
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	TenantID  string `json:"tenant_id" validate:"required"`
}

// LoginRequest - DTO for credential login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - DTO returned after registration or login
type AuthResponse struct {
	AccessToken string                       `json:"access_token"`
	TokenType   string                       `json:"token_type"`
	ExpiresAt   time.Time                    `json:"expires_at"`
	Candidate   *candidate.CandidateResponse `json:"candidate"`
}

// AuthService handles candidate registration and credential login
type AuthService struct {
	repo         candidate.Repository
	tokenService auth.TokenService
	tokenTTL     time.Duration
	validate     *validator.Validate
}

// NewAuthService creates a new candidate auth service
func NewAuthService(repo candidate.Repository, tokenService auth.TokenService, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:         repo,
		tokenService: tokenService,
		tokenTTL:     tokenTTL,
		validate:     validator.New(),
	}
}

// Register creates a candidate account and returns a signed token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrRegistry.NewWithCause(CodeInvalidRegistration, err)
	}

	role := candidate.RoleCandidate
	if req.Role != "" {
		role = candidate.CandidateRole(req.Role)
	}
	if _, ok := roleScopes[role]; !ok {
		return nil, ErrRegistry.New(CodeUnsupportedRole).WithDetail("role", req.Role)
	}

	if existing, err := s.repo.GetByEmail(ctx, kernel.Email(req.Email)); err == nil && existing != nil {
		return nil, candidate.ErrEmailAlreadyRegistered().WithDetail("email", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errx.Wrap(err, "hash password", errx.TypeInternal)
	}

	now := time.Now()
	newCandidate := &candidate.Candidate{
		ID:           kernel.NewCandidateID(uuid.NewString()),
		TenantID:     kernel.TenantID(req.TenantID),
		Email:        kernel.Email(req.Email),
		Phone:        kernel.Phone(req.Phone),
		FirstName:    kernel.FirstName(req.FirstName),
		LastName:     kernel.LastName(req.LastName),
		PasswordHash: string(hash),
		Role:         role,
		Status:       candidate.CandidateStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newCandidate); err != nil {
		return nil, err
	}

	logx.Infof("Registered candidate account %s with role %s", newCandidate.ID, role)
	return s.issueToken(newCandidate)
}

// Login verifies credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrRegistry.NewWithCause(CodeInvalidRegistration, err)
	}

	found, err := s.repo.GetByEmail(ctx, kernel.Email(req.Email))
	if err != nil {
		// Same failure shape whether the account exists or not
		return nil, ErrRegistry.New(CodeInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrRegistry.New(CodeInvalidCredentials)
	}

	if !found.IsActive() {
		return nil, ErrRegistry.New(CodeAccountNotActive).WithDetail("status", found.Status)
	}

	logx.Debugf("Candidate %s logged in", found.ID)
	return s.issueToken(found)
}

// GetAccount returns the account behind an authenticated request
func (s *AuthService) GetAccount(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return candidate.ToCandidateResponse(found), nil
}

func (s *AuthService) issueToken(c *candidate.Candidate) (*AuthResponse, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	token, err := s.tokenService.GenerateAccessToken(
		kernel.UserID(c.ID),
		c.TenantID,
		map[string]any{
			"email":      string(c.Email),
			"scopes":     roleScopes[c.Role],
			"expires_at": expiresAt,
		},
	)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Candidate:   candidate.ToCandidateResponse(c),
	}, nil
}
