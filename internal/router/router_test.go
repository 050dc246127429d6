package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/domain"
	"bizdocs/internal/handler"
	"bizdocs/internal/logger"
	"bizdocs/internal/router"
	"bizdocs/internal/service"
	"bizdocs/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func setup(t *testing.T) (*gin.Engine, *mocks.MockAuthService, *mocks.MockFileService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc := new(mocks.MockAuthService)
	fileSvc := new(mocks.MockFileService)
	r, err := router.Setup(
		logger.Discard(),
		[]string{"http://localhost:3000"},
		authSvc,
		handler.NewDocumentHandler(new(mocks.MockDocumentService)),
		handler.NewFileHandler(fileSvc),
		handler.NewHealthHandler(okPinger{}),
	)
	require.NoError(t, err)
	return r, authSvc, fileSvc
}

func claims(role domain.UserRole) *service.Claims {
	return &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}, Role: role}
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthIsPublic(t *testing.T) {
	r, _, _ := setup(t)
	assert.Equal(t, http.StatusOK, do(r, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "/readyz", "").Code)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	r, _, _ := setup(t)
	w := do(r, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/invoices/tax-analysis")
}

func TestRouter_APIRequiresToken(t *testing.T) {
	r, _, _ := setup(t)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/v1/files", "").Code)
}

func TestRouter_APIRequiresKnownRole(t *testing.T) {
	r, authSvc, fileSvc := setup(t)
	authSvc.On("ValidateToken", "viewer-token").Return(claims(domain.UserRole("viewer")), nil)
	authSvc.On("ValidateToken", "staff-token").Return(claims(domain.RoleStaff), nil)
	fileSvc.On("List").Return([]domain.FileEntry{}, nil)

	assert.Equal(t, http.StatusForbidden, do(r, "/api/v1/files", "viewer-token").Code)

	w := do(r, "/api/v1/files", "staff-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
