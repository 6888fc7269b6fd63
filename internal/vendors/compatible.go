package vendors

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"resty.dev/v3"
)

// compatibleBackend speaks the OpenAI wire format to any compatible server
// (Ollama, vLLM, OpenRouter, ...). It returns the raw response body.
type compatibleBackend struct {
	client *resty.Client
	model  string
}

func newCompatibleBackend(_ context.Context, cfg BackendConfig, httpClient *http.Client) (Backend, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	client := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &compatibleBackend{client: client, model: cfg.Model}, nil
}

func (b *compatibleBackend) Vendor() string {
	return VendorOpenAICompatible
}

func (b *compatibleBackend) Completion(ctx context.Context, messages []Message, options map[string]interface{}) (interface{}, error) {
	body := mergeOptions(options, map[string]interface{}{
		"model":    b.model,
		"messages": messages,
	})
	return b.post(ctx, "/chat/completions", body)
}

func (b *compatibleBackend) ImageGeneration(ctx context.Context, prompt, size string, options map[string]interface{}) (interface{}, error) {
	request := map[string]interface{}{
		"n":               1,
		"response_format": "b64_json",
	}
	if size != "" {
		request["size"] = size
	}
	body := mergeOptions(request, options)
	body["model"] = b.model
	body["prompt"] = prompt
	return b.post(ctx, "/images/generations", body)
}

func (b *compatibleBackend) post(ctx context.Context, path string, body map[string]interface{}) (interface{}, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("upstream request to %s failed: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upstream error (%d): %s", resp.StatusCode(), resp.String())
	}
	return resp.Bytes(), nil
}
