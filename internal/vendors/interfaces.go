package vendors

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnknownAlias is returned when no backend is configured for an alias.
	ErrUnknownAlias = errors.New("model alias is not configured")
	// ErrCapabilityUnsupported is returned when a backend cannot perform the
	// requested operation, for example image generation on a chat-only provider.
	ErrCapabilityUnsupported = errors.New("operation not supported by provider")
	// ErrBackendUnavailable is returned for aliases whose backend could not be built.
	ErrBackendUnavailable = errors.New("provider backend unavailable")
)

// Operation names used in logs and metrics.
const (
	OperationCompletion = "completion"
	OperationImage      = "image_generation"
)

// Upstream is the gateway's view of the model router: it dispatches by alias
// and returns the provider result in whatever shape the provider produced.
type Upstream interface {
	Completion(ctx context.Context, alias string, messages []Message, options map[string]interface{}) (interface{}, error)
	ImageGeneration(ctx context.Context, alias, prompt, size string, options map[string]interface{}) (interface{}, error)
}

// Backend talks to a single provider for a single upstream model.
type Backend interface {
	// Vendor returns the provider identifier, e.g. "openai".
	Vendor() string
	Completion(ctx context.Context, messages []Message, options map[string]interface{}) (interface{}, error)
	ImageGeneration(ctx context.Context, prompt, size string, options map[string]interface{}) (interface{}, error)
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse represents an OpenAI-shaped chat completion
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice represents a response choice
type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

// ChoiceMessage is the assistant message of a choice. Content is nil when the
// provider produced no text.
type ChoiceMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// ImageResponse represents an OpenAI-shaped image generation result
type ImageResponse struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// ImageData is one generated image
type ImageData struct {
	B64JSON       string `json:"b64_json,omitempty"`
	URL           string `json:"url,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// BackendConfig holds provider settings derived from an entry's litellm_params
type BackendConfig struct {
	Alias        string
	Vendor       string
	Model        string
	APIKey       string
	BaseURL      string
	Organization string
	Timeout      time.Duration
	// Defaults are request parameters from litellm_params forwarded with
	// every call; request options override them key by key.
	Defaults map[string]interface{}
}

// AsMap renders the response as a generic JSON-shaped map.
func (r *ChatResponse) AsMap() map[string]interface{} {
	choices := make([]interface{}, 0, len(r.Choices))
	for _, c := range r.Choices {
		var content interface{}
		if c.Message.Content != nil {
			content = *c.Message.Content
		}
		choice := map[string]interface{}{
			"index": c.Index,
			"message": map[string]interface{}{
				"role":    c.Message.Role,
				"content": content,
			},
		}
		if c.FinishReason != "" {
			choice["finish_reason"] = c.FinishReason
		}
		choices = append(choices, choice)
	}

	out := map[string]interface{}{
		"id":      r.ID,
		"object":  r.Object,
		"created": r.Created,
		"model":   r.Model,
		"choices": choices,
	}
	if r.Usage != nil {
		out["usage"] = map[string]interface{}{
			"prompt_tokens":     r.Usage.PromptTokens,
			"completion_tokens": r.Usage.CompletionTokens,
			"total_tokens":      r.Usage.TotalTokens,
		}
	}
	return out
}
