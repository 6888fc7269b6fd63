package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/handlers"
	"github.com/hulukipedia/gateway/internal/logger"
	"github.com/hulukipedia/gateway/internal/registry"
	"github.com/hulukipedia/gateway/internal/selector"
	"github.com/hulukipedia/gateway/internal/vendors"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.Config{Level: logger.LevelError, Format: "json", Output: "stdout"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubUpstream struct{}

func (stubUpstream) Completion(ctx context.Context, alias string, messages []vendors.Message, options map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{
		"choices": []interface{}{map[string]interface{}{"message": map[string]interface{}{"content": "hello"}}},
	}, nil
}

func (stubUpstream) ImageGeneration(ctx context.Context, alias, prompt, size string, options map[string]interface{}) (interface{}, error) {
	return nil, vendors.ErrCapabilityUnsupported
}

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	entries := []config.ModelEntry{{
		ModelName:     "gpt-demo",
		Metadata:      map[string]interface{}{"provider": "openai"},
		LiteLLMParams: map[string]interface{}{"model": "openai/gpt-4o-mini"},
	}}
	apiHandlers := handlers.NewAPIHandlers(
		registry.Build(context.Background(), entries),
		selector.NewResolver(map[string]string{"monday": "gpt-demo"}),
		stubUpstream{},
		nil,
	)
	handler := SetupRoutes(apiHandlers, opts)
	require.NotNil(t, handler)
	return handler
}

func TestSetupRoutes(t *testing.T) {
	handler := newTestHandler(t, Options{EnableSwagger: true})

	testCases := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"health endpoint", http.MethodGet, "/v1/health", "", http.StatusOK},
		{"providers endpoint", http.MethodGet, "/v1/providers", "", http.StatusOK},
		{"generate endpoint", http.MethodPost, "/v1/generate", `{"agent":"monday","prompt":"hi"}`, http.StatusOK},
		{"generate invalid body", http.MethodPost, "/v1/generate", `{}`, http.StatusBadRequest},
		{"images unsupported", http.MethodPost, "/v1/images", `{"model":"gpt-demo","prompt":"p"}`, http.StatusBadRequest},
		{"metrics endpoint", http.MethodGet, "/metrics", "", http.StatusOK},
		{"swagger ui redirect", http.MethodGet, "/swagger/", "", http.StatusMovedPermanently},
		{"swagger ui index", http.MethodGet, "/swagger/index.html", "", http.StatusOK},
		{"unregistered path", http.MethodGet, "/nonexistent", "", http.StatusNotFound},
		{"legacy health path", http.MethodGet, "/health", "", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetupRoutes_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, Options{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/v1/generate", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Contains(t, w.Body.String(), `"detail":"Method Not Allowed"`)
	}
}

func TestSetupRoutes_SwaggerDisabled(t *testing.T) {
	handler := newTestHandler(t, Options{EnableSwagger: false})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_CORSPreflight(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/generate", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRoutes_RecoversFromPanic(t *testing.T) {
	apiHandlers := handlers.NewAPIHandlers(nil, nil, nil, nil)
	handler := SetupRoutes(apiHandlers, Options{})

	// A nil registry panics inside the handler.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/providers", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
