package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"bizdocs/internal/handler"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name      string
		ping      error
		readiness int
	}{
		{"db up", nil, http.StatusOK},
		{"db down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(fakePinger{err: tt.ping})
			r := gin.New()
			r.GET("/healthz", h.Liveness)
			r.GET("/readyz", h.Readiness)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)

			w = httptest.NewRecorder()
			req, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.readiness, w.Code)
		})
	}
}
