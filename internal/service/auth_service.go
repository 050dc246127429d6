package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bizdocs/internal/config"
	"bizdocs/internal/domain"
)

// Claims are the bearer token claims. Subject identifies the caller.
type Claims struct {
	jwt.RegisteredClaims
	Email string          `json:"email,omitempty"`
	Role  domain.UserRole `json:"role"`
}

// AuthService verifies the bearer tokens presented to the API.
type AuthService interface {
	IssueToken(subject, email string, role domain.UserRole, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.JWTConfig) AuthService {
	return &authService{cfg: cfg}
}

// IssueToken signs an HS256 token. Tokens are minted out of band (cmd/token);
// the API itself has no login endpoint.
func (s *authService) IssueToken(subject, email string, role domain.UserRole, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token subject is required: %w", domain.ErrInvalidData)
	}
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return "", fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidData)
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
		Email: email,
		Role:  role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
