package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/auth"
	"github.com/justsurfingit/careerpilot/internal/handlers"
	"github.com/justsurfingit/careerpilot/internal/models"
	"github.com/justsurfingit/careerpilot/pkg/logging"
)

type noUsers struct{}

func (noUsers) FindUserByID(context.Context, uint) (*models.User, error) {
	return nil, auth.ErrUnknownUser
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := RouterConfig{
		ClientURL: "http://localhost:3000",
		Tokens:    auth.NewTokenManager("secret", time.Hour),
		Users:     noUsers{},
	}
	h := Handlers{
		Auth:         handlers.NewAuthHandler(nil, time.Hour, false),
		Profiles:     handlers.NewProfileHandler(nil),
		Resumes:      handlers.NewResumeHandler(nil),
		Applications: handlers.NewApplicationHandler(nil, nil),
		Chat:         handlers.NewChatHandler(nil),
		Analyzer:     handlers.NewAnalyzerHandler(nil, 0),
		Jobs:         handlers.NewJobHandler(nil),
	}
	return NewRouter(cfg, h, logging.Nop())
}

func TestHealthRoutes(t *testing.T) {
	r := testRouter()
	for _, path := range []string{"/", "/api/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s = %d", path, w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: missing request id", path)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := testRouter()
	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/users"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestCORSAllowsClientWithCredentials(t *testing.T) {
	r := testRouter()
	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" ||
		w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("cors headers = %v", w.Header())
	}
}
