package vendors

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/httpclient"
	"github.com/hulukipedia/gateway/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.DefaultConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func TestParseBackendConfig_Vendors(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]interface{}
		vendor  string
		model   string
		baseURL string
	}{
		{
			name:   "openai_prefix",
			params: map[string]interface{}{"model": "openai/gpt-4o-mini"},
			vendor: VendorOpenAI,
			model:  "gpt-4o-mini",
		},
		{
			name:   "anthropic_prefix",
			params: map[string]interface{}{"model": "anthropic/claude-3-5-sonnet"},
			vendor: VendorAnthropic,
			model:  "claude-3-5-sonnet",
		},
		{
			name:   "gemini_prefix",
			params: map[string]interface{}{"model": "gemini/gemini-2.0-flash"},
			vendor: VendorGemini,
			model:  "gemini-2.0-flash",
		},
		{
			name:   "inferred_claude",
			params: map[string]interface{}{"model": "claude-3-haiku"},
			vendor: VendorAnthropic,
			model:  "claude-3-haiku",
		},
		{
			name:   "inferred_imagen",
			params: map[string]interface{}{"model": "imagen-3.0-generate-002"},
			vendor: VendorGemini,
			model:  "imagen-3.0-generate-002",
		},
		{
			name:   "inferred_openai_default",
			params: map[string]interface{}{"model": "dall-e-3"},
			vendor: VendorOpenAI,
			model:  "dall-e-3",
		},
		{
			name:    "ollama_default_base",
			params:  map[string]interface{}{"model": "ollama/llama3"},
			vendor:  VendorOpenAICompatible,
			model:   "llama3",
			baseURL: "http://localhost:11434/v1",
		},
		{
			name:    "ollama_custom_base",
			params:  map[string]interface{}{"model": "ollama/llama3", "api_base": "http://gpu:11434/v1"},
			vendor:  VendorOpenAICompatible,
			model:   "llama3",
			baseURL: "http://gpu:11434/v1",
		},
		{
			name:    "openai_with_api_base",
			params:  map[string]interface{}{"model": "openai/local", "api_base": "http://proxy/v1"},
			vendor:  VendorOpenAI,
			model:   "local",
			baseURL: "http://proxy/v1",
		},
		{
			name:    "unprefixed_with_api_base",
			params:  map[string]interface{}{"model": "mistral-7b", "api_base": "http://vllm:8000/v1"},
			vendor:  VendorOpenAICompatible,
			model:   "mistral-7b",
			baseURL: "http://vllm:8000/v1",
		},
		{
			name:    "custom_provider_keeps_nested_model",
			params:  map[string]interface{}{"model": "openrouter/anthropic/claude-3-opus"},
			vendor:  VendorOpenAICompatible,
			model:   "anthropic/claude-3-opus",
			baseURL: "https://openrouter.ai/api/v1",
		},
		{
			name:   "explicit_custom_llm_provider",
			params: map[string]interface{}{"model": "my-model", "custom_llm_provider": "anthropic"},
			vendor: VendorAnthropic,
			model:  "my-model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseBackendConfig(context.Background(), "alias", tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.vendor, cfg.Vendor)
			assert.Equal(t, tt.model, cfg.Model)
			assert.Equal(t, tt.baseURL, cfg.BaseURL)
			assert.Equal(t, DefaultTimeout, cfg.Timeout)
		})
	}
}

func TestParseBackendConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{"missing_model", map[string]interface{}{}},
		{"unknown_vendor_without_base", map[string]interface{}{"model": "x", "custom_llm_provider": "bedrock"}},
		{"bad_timeout", map[string]interface{}{"model": "gpt-4o", "timeout": "soon"}},
		{"negative_timeout", map[string]interface{}{"model": "gpt-4o", "timeout": -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBackendConfig(context.Background(), "alias", tt.params)
			assert.Error(t, err)
		})
	}
}

func TestParseBackendConfig_APIKeyReference(t *testing.T) {
	t.Setenv("HULUKIPEDIA_TEST_KEY", "sk-from-env")

	cfg, err := ParseBackendConfig(context.Background(), "alias", map[string]interface{}{
		"model":   "gpt-4o",
		"api_key": "os.environ/HULUKIPEDIA_TEST_KEY",
	})
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.APIKey)

	cfg, err = ParseBackendConfig(context.Background(), "alias", map[string]interface{}{
		"model":   "gpt-4o",
		"api_key": "os.environ/HULUKIPEDIA_TEST_KEY_MISSING",
	})
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)

	cfg, err = ParseBackendConfig(context.Background(), "alias", map[string]interface{}{
		"model":   "gpt-4o",
		"api_key": "sk-literal",
	})
	require.NoError(t, err)
	assert.Equal(t, "sk-literal", cfg.APIKey)
}

func TestParseBackendConfig_TimeoutAndDefaults(t *testing.T) {
	cfg, err := ParseBackendConfig(context.Background(), "alias", map[string]interface{}{
		"model":       "gpt-4o",
		"timeout":     30,
		"temperature": 0.2,
		"rpm":         100,
	})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, map[string]interface{}{"temperature": 0.2}, cfg.Defaults)

	cfg, err = ParseBackendConfig(context.Background(), "alias", map[string]interface{}{
		"model":   "gpt-4o",
		"timeout": "1m30s",
	})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestParseBackendConfig_ForwardsOnlyRequestParams(t *testing.T) {
	cfg, err := ParseBackendConfig(context.Background(), "alias", map[string]interface{}{
		"model":                 "openai/gpt-4o",
		"api_base":              "http://localhost:9999/v1",
		"organization":          "org-123",
		"drop_params":           true,
		"input_cost_per_token":  1e-6,
		"output_cost_per_token": 2e-6,
		"api_version":           "2024-06-01",
		"model_info":            map[string]interface{}{"id": "x"},
		"region_name":           "us-east-1",
		"vertex_project":        "p",
		"aws_region_name":       "us-east-1",
		"max_tokens":            512,
		"stop":                  []interface{}{"END"},
	})
	require.NoError(t, err)
	assert.Equal(t, "org-123", cfg.Organization)
	assert.Equal(t, map[string]interface{}{
		"max_tokens": 512,
		"stop":       []interface{}{"END"},
	}, cfg.Defaults)
}

func TestNewRouter_DoesNotForwardRoutingParams(t *testing.T) {
	server, captured := newUpstreamServer(t, http.StatusOK, chatCompletionJSON)
	r := NewRouter(context.Background(), NewFactory(httpclient.NewFactory(httpclient.Options{})), []config.ModelEntry{{
		ModelName: "gpt",
		LiteLLMParams: map[string]interface{}{
			"model":                "openai/gpt-4o",
			"api_base":             server.URL + "/v1/",
			"api_key":              "sk-test",
			"organization":         "org-123",
			"input_cost_per_token": 1e-6,
			"drop_params":          true,
			"temperature":          0.3,
		},
	}})

	_, err := r.Completion(context.Background(), "gpt", []Message{{Role: "user", Content: "hi"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", captured.body["model"])
	assert.Equal(t, 0.3, captured.body["temperature"])
	assert.NotContains(t, captured.body, "drop_params")
	assert.NotContains(t, captured.body, "input_cost_per_token")
	assert.NotContains(t, captured.body, "organization")
	assert.Equal(t, "org-123", captured.organization)
}

func TestFactory_CreateBackend(t *testing.T) {
	factory := NewFactory(httpclient.NewFactory(httpclient.Options{}))
	assert.Equal(t, []string{VendorAnthropic, VendorGemini, VendorOpenAI, VendorOpenAICompatible}, factory.SupportedVendors())

	backend, err := factory.CreateBackend(context.Background(), BackendConfig{
		Alias:   "local",
		Vendor:  VendorOpenAICompatible,
		Model:   "llama3",
		BaseURL: "http://localhost:11434/v1",
		Timeout: time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, VendorOpenAICompatible, backend.Vendor())

	_, err = factory.CreateBackend(context.Background(), BackendConfig{Vendor: "bedrock"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported vendor "bedrock"`)
	assert.Contains(t, err.Error(), "anthropic, gemini, openai, openai_compatible")
}

func TestMergeOptions(t *testing.T) {
	merged := mergeOptions(
		map[string]interface{}{"temperature": 0.1, "top_p": 0.9},
		map[string]interface{}{"temperature": 0.7},
	)
	assert.Equal(t, map[string]interface{}{"temperature": 0.7, "top_p": 0.9}, merged)
	assert.Empty(t, mergeOptions(nil, nil))
}
