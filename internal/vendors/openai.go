package vendors

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIBackend calls the OpenAI API through the official SDK. Results are the
// SDK's response objects, which keep the raw JSON they were decoded from.
type openAIBackend struct {
	client openai.Client
	model  string
}

func newOpenAIBackend(_ context.Context, cfg BackendConfig, httpClient *http.Client) (Backend, error) {
	opts := []option.RequestOption{option.WithHTTPClient(httpClient)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Organization != "" {
		opts = append(opts, option.WithOrganization(cfg.Organization))
	}

	return &openAIBackend{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

func (b *openAIBackend) Vendor() string {
	return VendorOpenAI
}

func (b *openAIBackend) Completion(ctx context.Context, messages []Message, options map[string]interface{}) (interface{}, error) {
	params := openai.ChatCompletionNewParams{
		Model:    b.model,
		Messages: convertOpenAIMessages(messages),
	}

	resp, err := b.client.Chat.Completions.New(ctx, params, jsonSetOptions(options)...)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (b *openAIBackend) ImageGeneration(ctx context.Context, prompt, size string, options map[string]interface{}) (interface{}, error) {
	params := openai.ImageGenerateParams{
		Model:          openai.ImageModel(b.model),
		Prompt:         prompt,
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormat("b64_json"),
	}
	if size != "" {
		params.Size = openai.ImageGenerateParamsSize(size)
	}

	resp, err := b.client.Images.Generate(ctx, params, jsonSetOptions(options)...)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func convertOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

// jsonSetOptions forwards caller options into the request body unchanged.
func jsonSetOptions(options map[string]interface{}) []option.RequestOption {
	opts := make([]option.RequestOption, 0, len(options))
	for _, key := range sortedKeys(options) {
		opts = append(opts, option.WithJSONSet(key, options[key]))
	}
	return opts
}
