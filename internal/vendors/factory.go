package vendors

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/httpclient"
	"github.com/hulukipedia/gateway/internal/logger"
)

// DefaultTimeout applies when an entry sets no timeout.
const DefaultTimeout = 600 * time.Second

// Vendor identifiers.
const (
	VendorOpenAI           = "openai"
	VendorAnthropic        = "anthropic"
	VendorGemini           = "gemini"
	VendorOpenAICompatible = "openai_compatible"
)

// requestParams are the litellm_params keys forwarded to the provider as
// default request options. Every other key configures routing, credentials
// or accounting and stays in the gateway.
var requestParams = map[string]bool{
	"temperature":           true,
	"top_p":                 true,
	"top_k":                 true,
	"max_tokens":            true,
	"max_completion_tokens": true,
	"stop":                  true,
	"seed":                  true,
	"presence_penalty":      true,
	"frequency_penalty":     true,
	"logit_bias":            true,
	"logprobs":              true,
	"top_logprobs":          true,
	"n":                     true,
	"response_format":       true,
	"reasoning_effort":      true,
	"user":                  true,
	"quality":               true,
	"style":                 true,
}

// vendorAliases folds provider spellings onto a backend.
var vendorAliases = map[string]string{
	"openai":            VendorOpenAI,
	"anthropic":         VendorAnthropic,
	"gemini":            VendorGemini,
	"google":            VendorGemini,
	"google_ai_studio":  VendorGemini,
	"openai_compatible": VendorOpenAICompatible,
	"custom_openai":     VendorOpenAICompatible,
}

// compatibleBaseURLs are OpenAI-compatible providers with a well-known endpoint.
var compatibleBaseURLs = map[string]string{
	"ollama":      "http://localhost:11434/v1",
	"ollama_chat": "http://localhost:11434/v1",
	"openrouter":  "https://openrouter.ai/api/v1",
	"groq":        "https://api.groq.com/openai/v1",
	"deepseek":    "https://api.deepseek.com/v1",
	"together_ai": "https://api.together.xyz/v1",
	"mistral":     "https://api.mistral.ai/v1",
	"xai":         "https://api.x.ai/v1",
}

type backendBuilder func(ctx context.Context, cfg BackendConfig, httpClient *http.Client) (Backend, error)

// Factory builds provider backends from routing entries
type Factory struct {
	httpClients *httpclient.Factory
	builders    map[string]backendBuilder
}

// NewFactory creates a new vendor factory
func NewFactory(httpClients *httpclient.Factory) *Factory {
	return &Factory{
		httpClients: httpClients,
		builders: map[string]backendBuilder{
			VendorOpenAI:           newOpenAIBackend,
			VendorAnthropic:        newAnthropicBackend,
			VendorGemini:           newGeminiBackend,
			VendorOpenAICompatible: newCompatibleBackend,
		},
	}
}

// SupportedVendors returns the backend identifiers the factory can build
func (f *Factory) SupportedVendors() []string {
	vendors := make([]string, 0, len(f.builders))
	for name := range f.builders {
		vendors = append(vendors, name)
	}
	sort.Strings(vendors)
	return vendors
}

// CreateBackend builds the backend described by cfg
func (f *Factory) CreateBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	build, ok := f.builders[cfg.Vendor]
	if !ok {
		return nil, fmt.Errorf("unsupported vendor %q (supported: %s)", cfg.Vendor, strings.Join(f.SupportedVendors(), ", "))
	}
	httpClient := f.httpClients.CreateClient(httpclient.Options{Timeout: cfg.Timeout})
	backend, err := build(ctx, cfg, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend for %s: %w", cfg.Vendor, cfg.Alias, err)
	}
	return backend, nil
}

// ParseBackendConfig derives a BackendConfig from an entry's litellm_params.
//
// The vendor comes from custom_llm_provider, then a "<vendor>/" model prefix,
// then the model family; entries with only an api_base are treated as
// OpenAI-compatible. api_key may be an "os.environ/NAME" reference.
func ParseBackendConfig(ctx context.Context, alias string, params map[string]interface{}) (BackendConfig, error) {
	cfg := BackendConfig{
		Alias:    alias,
		Timeout:  DefaultTimeout,
		Defaults: map[string]interface{}{},
	}

	model := config.String(params, "model")
	if model == "" {
		return cfg, fmt.Errorf("litellm_params.model is required")
	}

	explicit := strings.ToLower(config.String(params, "custom_llm_provider"))
	prefix, rest, hasPrefix := strings.Cut(model, "/")
	prefix = strings.ToLower(prefix)

	vendor := explicit
	cfg.Model = model
	if hasPrefix && (isKnownVendor(prefix) || prefix == explicit) {
		if vendor == "" {
			vendor = prefix
		}
		if vendor == prefix {
			cfg.Model = rest
		}
	}

	cfg.BaseURL = config.String(params, "api_base")
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.String(params, "base_url")
	}

	if vendor == "" {
		vendor = inferVendor(cfg.Model, cfg.BaseURL)
	}
	if mapped, ok := vendorAliases[vendor]; ok {
		cfg.Vendor = mapped
	} else if baseURL, ok := compatibleBaseURLs[vendor]; ok {
		cfg.Vendor = VendorOpenAICompatible
		if cfg.BaseURL == "" {
			cfg.BaseURL = baseURL
		}
	} else if cfg.BaseURL != "" {
		cfg.Vendor = VendorOpenAICompatible
	} else {
		return cfg, fmt.Errorf("unsupported vendor %q for model %q", vendor, model)
	}
	if cfg.Vendor == VendorOpenAICompatible && cfg.BaseURL == "" {
		return cfg, fmt.Errorf("api_base is required for OpenAI-compatible model %q", model)
	}

	if raw := config.String(params, "api_key"); raw != "" {
		key, found := config.ResolveEnvReference(raw)
		if !found {
			logger.Warn(ctx, "API key environment variable is not set",
				"alias", alias,
				"reference", raw,
			)
		}
		cfg.APIKey = key
	}

	if raw := config.String(params, "timeout"); raw != "" {
		timeout, err := parseTimeout(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid timeout %q: %w", raw, err)
		}
		cfg.Timeout = timeout
	}

	cfg.Organization = config.String(params, "organization")

	for key, value := range params {
		if requestParams[key] {
			cfg.Defaults[key] = value
		}
	}

	return cfg, nil
}

func isKnownVendor(name string) bool {
	if _, ok := vendorAliases[name]; ok {
		return true
	}
	_, ok := compatibleBaseURLs[name]
	return ok
}

func inferVendor(model, baseURL string) string {
	if baseURL != "" {
		return VendorOpenAICompatible
	}
	lower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(lower, "claude"):
		return VendorAnthropic
	case strings.HasPrefix(lower, "gemini"), strings.HasPrefix(lower, "imagen"):
		return VendorGemini
	default:
		return VendorOpenAI
	}
}

// parseTimeout accepts Go durations ("90s") or a number of seconds ("90", "1.5").
func parseTimeout(raw string) (time.Duration, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("timeout must be positive")
		}
		return d, nil
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("timeout must be positive")
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// mergeOptions overlays request options on an entry's default options.
func mergeOptions(defaults, options map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(defaults)+len(options))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range options {
		merged[k] = v
	}
	return merged
}
