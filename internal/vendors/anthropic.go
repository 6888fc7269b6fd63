package vendors

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultMaxTokens = 4096

var anthropicStopReasons = map[string]string{
	"end_turn":      "stop",
	"stop_sequence": "stop",
	"max_tokens":    "length",
	"tool_use":      "tool_calls",
}

// anthropicBackend calls the Messages API and translates the reply into an
// OpenAI-shaped ChatResponse.
type anthropicBackend struct {
	client anthropic.Client
	model  string
}

func newAnthropicBackend(_ context.Context, cfg BackendConfig, httpClient *http.Client) (Backend, error) {
	opts := []option.RequestOption{option.WithHTTPClient(httpClient)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &anthropicBackend{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

func (b *anthropicBackend) Vendor() string {
	return VendorAnthropic
}

func (b *anthropicBackend) Completion(ctx context.Context, messages []Message, options map[string]interface{}) (interface{}, error) {
	maxTokens := int64(anthropicDefaultMaxTokens)
	if v, ok := intOption(options, "max_tokens"); ok && v > 0 {
		maxTokens = v
	}

	msgs, system := convertAnthropicMessages(messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}

	extra := make([]option.RequestOption, 0, len(options))
	for _, key := range sortedKeys(options) {
		if key == "max_tokens" {
			continue
		}
		extra = append(extra, option.WithJSONSet(key, options[key]))
	}

	resp, err := b.client.Messages.New(ctx, params, extra...)
	if err != nil {
		return nil, err
	}
	return anthropicToChatResponse(resp), nil
}

func (b *anthropicBackend) ImageGeneration(context.Context, string, string, map[string]interface{}) (interface{}, error) {
	return nil, fmt.Errorf("%w: anthropic models do not generate images", ErrCapabilityUnsupported)
}

func convertAnthropicMessages(messages []Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var out []anthropic.MessageParam
	var system []anthropic.TextBlockParam

	for _, msg := range messages {
		// The API rejects empty text blocks.
		if msg.Content == "" {
			continue
		}
		switch msg.Role {
		case "system":
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case "assistant":
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return out, system
}

func anthropicToChatResponse(resp *anthropic.Message) *ChatResponse {
	var text strings.Builder
	hasText := false
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
			hasText = true
		}
	}

	message := ChoiceMessage{Role: "assistant"}
	if hasText {
		content := text.String()
		message.Content = &content
	}

	finish := string(resp.StopReason)
	if mapped, ok := anthropicStopReasons[finish]; ok {
		finish = mapped
	}

	return &ChatResponse{
		ID:      resp.ID,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   string(resp.Model),
		Choices: []Choice{{Index: 0, Message: message, FinishReason: finish}},
		Usage: &Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}
}
