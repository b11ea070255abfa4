package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hotgigs/talent/pkg/errx"
	"github.com/hotgigs/talent/pkg/kernel"
)

var authErrors = errx.NewRegistry("AUTH")

var (
	codeTokenInvalid    = authErrors.Register("TOKEN_INVALID", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid token")
	codeTokenExpired    = authErrors.Register("TOKEN_EXPIRED", errx.TypeAuthentication, http.StatusUnauthorized, "Token has expired")
	codeTokenGeneration = authErrors.Register("TOKEN_GENERATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
)

// TokenClaims is the validated content of an access token.
type TokenClaims struct {
	UserID    kernel.UserID
	TenantID  kernel.TenantID
	Email     string
	Scopes    []string
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, tenantID kernel.TenantID, claims map[string]any) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// JWTService implements TokenService with HMAC-signed JWTs.
type JWTService struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewJWTService creates a JWT token service. ttl applies when the
// extra claims do not carry an explicit expiry.
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secret:   []byte(secret),
		issuer:   issuer,
		tokenTTL: ttl,
	}
}

// GenerateAccessToken signs a token for the given identity. Arbitrary
// extra claims are merged into the payload; an "expires_at" time.Time
// claim overrides the default TTL.
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, tenantID kernel.TenantID, claims map[string]any) (string, error) {
	now := time.Now()
	expiry := now.Add(s.tokenTTL)
	if v, ok := claims["expires_at"].(time.Time); ok {
		expiry = v
	}

	payload := jwt.MapClaims{
		"sub": userID.String(),
		"tid": tenantID.String(),
		"iss": s.issuer,
		"iat": now.Unix(),
		"exp": expiry.Unix(),
	}
	for k, v := range claims {
		if k == "expires_at" {
			continue
		}
		payload[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", authErrors.NewWithCause(codeTokenGeneration, err)
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies a token and maps its payload
// back to TokenClaims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authErrors.New(codeTokenInvalid).
				WithDetail("alg", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authErrors.New(codeTokenExpired)
		}
		return nil, authErrors.NewWithCause(codeTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, authErrors.New(codeTokenInvalid)
	}

	tc := &TokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		tc.UserID = kernel.UserID(sub)
	}
	if tid, ok := claims["tid"].(string); ok {
		tc.TenantID = kernel.TenantID(tid)
	}
	if email, ok := claims["email"].(string); ok {
		tc.Email = email
	}
	if raw, ok := claims["scopes"].([]any); ok {
		for _, v := range raw {
			if scope, ok := v.(string); ok {
				tc.Scopes = append(tc.Scopes, scope)
			}
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		tc.ExpiresAt = exp.Time
	}
	return tc, nil
}
