package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookai/backend/internal/config"
	"bookai/backend/internal/handler"
	"bookai/backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubServices struct{}

func (stubServices) ForBook(ctx context.Context, title, author string) model.Summary {
	return model.Summary{Title: title, Author: author, Text: "stub"}
}

func (stubServices) Recommend(ctx context.Context, userID int64, titles []string, limit int) model.RecommendationResult {
	return model.RecommendationResult{Recommendations: []model.Recommendation{}, Reason: model.ReasonEmptyLibrary}
}

func (stubServices) Trending(ctx context.Context, limit int) ([]model.Recommendation, error) {
	return []model.Recommendation{}, nil
}

func (stubServices) Translate(ctx context.Context, text, source, target string) model.TranslationResult {
	return model.TranslationResult{Original: text, Translated: text, Method: model.MethodNone}
}

func newTestRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := stubServices{}
	return NewRouter(cfg, handler.New(s, s, s, s, false))
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(config.Config{})

	testCases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recommendations/trending", "", http.StatusOK},
		{http.MethodPost, "/api/v1/recommendations/users/9", `{"library_titles":[]}`, http.StatusOK},
		{http.MethodPost, "/bookSummary", `{"title":"Dune","author":"Frank Herbert"}`, http.StatusOK},
		{http.MethodPost, "/translateText", `{"text":"Hello"}`, http.StatusOK},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.method+" "+testCase.path, func(t *testing.T) {
			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(config.Config{})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bookai_http_requests_total{method="GET",path="/health",status="200"}`)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(config.Config{Env: "production", AllowedOrigins: []string{"https://books.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://books.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://books.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "dev origin is not allowed in production")
}

func TestCORSAllowsAllWithoutOrigins(t *testing.T) {
	cfg := corsConfig(config.Config{Env: "production"})
	assert.True(t, cfg.AllowAllOrigins)
	assert.Empty(t, cfg.AllowOrigins)

	cfg = corsConfig(config.Config{})
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowOrigins)
}
