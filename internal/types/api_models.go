package types

// GenerateRequest represents a request to the text generation API
type GenerateRequest struct {
	Agent    string                 `json:"agent,omitempty" example:"Monday"`
	Prompt   *string                `json:"prompt" validate:"required" swaggertype:"string" example:"Summarize the history of Addis Ababa"`
	Provider string                 `json:"provider,omitempty" example:"gpt-demo"`
	Model    string                 `json:"model,omitempty" example:"gpt-demo"`
	Options  map[string]interface{} `json:"options,omitempty" swaggertype:"object"`
}

// PromptText returns the prompt. A present but empty prompt is valid.
func (r GenerateRequest) PromptText() string {
	return deref(r.Prompt)
}

// GenerateResponse represents a text generation result
type GenerateResponse struct {
	Alias    string                 `json:"alias" example:"gpt-demo"`
	Provider *string                `json:"provider" example:"openai"`
	Model    *string                `json:"model" example:"openai/gpt-4o-mini"`
	Content  string                 `json:"content" example:"Addis Ababa was founded in 1886..."`
	Usage    map[string]interface{} `json:"usage" swaggertype:"object"`
}

// ImageRequest represents a request to the image generation API
type ImageRequest struct {
	Prompt   *string                `json:"prompt" validate:"required" swaggertype:"string" example:"A watercolor of the Simien mountains"`
	Agent    string                 `json:"agent,omitempty" example:"Tuesday"`
	Provider string                 `json:"provider,omitempty" example:"dalle"`
	Model    string                 `json:"model,omitempty" example:"dalle"`
	Size     string                 `json:"size,omitempty" example:"1024x1024"`
	Options  map[string]interface{} `json:"options,omitempty" swaggertype:"object"`
}

// PromptText returns the prompt. A present but empty prompt is valid.
func (r ImageRequest) PromptText() string {
	return deref(r.Prompt)
}

// ImageResponse represents an image generation result
type ImageResponse struct {
	Alias    string                 `json:"alias" example:"dalle"`
	Provider *string                `json:"provider" example:"openai"`
	Model    *string                `json:"model" example:"openai/dall-e-3"`
	ImageB64 string                 `json:"image_b64" example:"iVBORw0KGgo..."`
	Usage    map[string]interface{} `json:"usage" swaggertype:"object"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
