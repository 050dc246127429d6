package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/config"
	"bizdocs/internal/domain"
	"bizdocs/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret-key-for-testing", Issuer: "bizdocs"}
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	token, err := svc.IssueToken("user-1", "ops@industech.example", domain.RoleStaff, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ops@industech.example", claims.Email)
	assert.Equal(t, domain.RoleStaff, claims.Role)
	assert.Equal(t, "bizdocs", claims.Issuer)
}

func TestAuthService_IssueToken_Invalid(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	_, err := svc.IssueToken("", "", domain.RoleAdmin, time.Hour)
	require.ErrorIs(t, err, domain.ErrInvalidData)

	_, err = svc.IssueToken("user-1", "", domain.UserRole("viewer"), time.Hour)
	require.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	token, err := svc.IssueToken("user-1", "", domain.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	other := service.NewAuthService(config.JWTConfig{Secret: "another-secret", Issuer: "bizdocs"})
	token, err := other.IssueToken("user-1", "", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = service.NewAuthService(testJWTConfig()).ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongIssuer(t *testing.T) {
	other := service.NewAuthService(config.JWTConfig{Secret: "test-secret-key-for-testing", Issuer: "someone-else"})
	token, err := other.IssueToken("user-1", "", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = service.NewAuthService(testJWTConfig()).ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "bizdocs",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: domain.RoleAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.NewAuthService(testJWTConfig()).ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	_, err := service.NewAuthService(testJWTConfig()).ValidateToken("not-a-token")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
