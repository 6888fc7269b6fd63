package app

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/errors"
	"github.com/hulukipedia/gateway/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.Config{Level: logger.LevelError, Format: "json", Output: "stdout"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const testConfig = `
model_list:
  - model_name: gpt-demo
    metadata:
      provider: openai
    litellm_params:
      model: openai/gpt-4o-mini
      api_key: sk-test
  - model_name: local
    litellm_params:
      model: ollama/llama3
      api_base: http://localhost:11434/v1
  - metadata:
      provider: nameless
hulukipedia_defaults:
  Monday: gpt-demo
`

func testSettings(t *testing.T, document string) *config.Settings {
	t.Helper()
	path := filepath.Join(t.TempDir(), "litellm_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))
	return &config.Settings{ConfigPath: path, ServiceName: "hulukipedia-gateway", Environment: "test"}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(context.Background(), testSettings(t, testConfig))
	require.NoError(t, err)
	require.NotNil(t, app)
	t.Cleanup(func() { _ = app.Close(context.Background()) })

	assert.Equal(t, 2, app.Registry.Len())
	assert.Equal(t, 2, app.Upstream.Len())
	assert.False(t, app.Usage.Enabled())
	require.NotNil(t, app.APIHandlers)

	alias, err := app.Resolver.Resolve("MONDAY", "", "")
	require.NoError(t, err)
	assert.Equal(t, "gpt-demo", alias)
}

func TestNewApp_MissingConfig(t *testing.T) {
	settings := &config.Settings{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}

	app, err := NewApp(context.Background(), settings)
	assert.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "configuration file not found")

	var apiErr *errors.APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, errors.ErrorTypeConfiguration, apiErr.Type)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	app, err := NewApp(context.Background(), testSettings(t, "model_list: [unterminated"))
	require.Error(t, err)
	assert.Nil(t, app)

	var apiErr *errors.APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, errors.ErrorTypeConfiguration, apiErr.Type)
}

func TestNewApp_EmptyConfig(t *testing.T) {
	app, err := NewApp(context.Background(), testSettings(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, app.Registry.Len())
}

func TestSetupRoutes(t *testing.T) {
	app, err := NewApp(context.Background(), testSettings(t, testConfig))
	require.NoError(t, err)

	handler := app.SetupRoutes()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/providers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alias":"gpt-demo"`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
