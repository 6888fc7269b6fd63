package vendors

import (
	"context"
	"encoding/base64"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/hulukipedia/gateway/internal/logger"
)

var geminiFinishReasons = map[string]string{
	"STOP":       "stop",
	"MAX_TOKENS": "length",
	"SAFETY":     "content_filter",
}

// imagenAspectRatios are the aspect ratios Imagen accepts.
var imagenAspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}

// geminiBackend calls the Gemini API through the genai SDK. Chat replies are
// returned as OpenAI-shaped maps; image replies as an ImageResponse.
type geminiBackend struct {
	client *genai.Client
	model  string
}

func newGeminiBackend(ctx context.Context, cfg BackendConfig, httpClient *http.Client) (Backend, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, err
	}
	return &geminiBackend{client: client, model: cfg.Model}, nil
}

func (b *geminiBackend) Vendor() string {
	return VendorGemini
}

func (b *geminiBackend) Completion(ctx context.Context, messages []Message, options map[string]interface{}) (interface{}, error) {
	contents, system := convertGeminiMessages(messages)

	config := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{Parts: system}
	}
	applyGeminiOptions(ctx, config, options)

	resp, err := b.client.Models.GenerateContent(ctx, b.model, contents, config)
	if err != nil {
		return nil, err
	}
	return geminiToChatResponse(b.model, resp).AsMap(), nil
}

func (b *geminiBackend) ImageGeneration(ctx context.Context, prompt, size string, options map[string]interface{}) (interface{}, error) {
	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio(size),
	}
	applyImagenOptions(ctx, config, options)

	resp, err := b.client.Models.GenerateImages(ctx, b.model, prompt, config)
	if err != nil {
		return nil, err
	}
	return imagenToImageResponse(resp), nil
}

// imagenToImageResponse skips nil entries, so a response without usable
// images surfaces as missing data rather than a panic.
func imagenToImageResponse(resp *genai.GenerateImagesResponse) *ImageResponse {
	out := &ImageResponse{Created: time.Now().Unix(), Data: []ImageData{}}
	if resp == nil {
		return out
	}
	for _, img := range resp.GeneratedImages {
		if img == nil {
			continue
		}
		var data ImageData
		if img.Image != nil && len(img.Image.ImageBytes) > 0 {
			data.B64JSON = base64.StdEncoding.EncodeToString(img.Image.ImageBytes)
		}
		out.Data = append(out.Data, data)
	}
	return out
}

func convertGeminiMessages(messages []Message) ([]*genai.Content, []*genai.Part) {
	var contents []*genai.Content
	var system []*genai.Part

	for _, msg := range messages {
		part := &genai.Part{Text: msg.Content}
		switch msg.Role {
		case "system":
			system = append(system, part)
		case "assistant":
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{part}})
		}
	}
	return contents, system
}

// applyGeminiOptions maps OpenAI-style options onto the generation config.
// Keys without a Gemini equivalent are dropped.
func applyGeminiOptions(ctx context.Context, config *genai.GenerateContentConfig, options map[string]interface{}) {
	for _, key := range sortedKeys(options) {
		applied := true
		switch key {
		case "temperature":
			if v, ok := floatOption(options, key); ok {
				f := float32(v)
				config.Temperature = &f
			}
		case "top_p":
			if v, ok := floatOption(options, key); ok {
				f := float32(v)
				config.TopP = &f
			}
		case "top_k":
			if v, ok := floatOption(options, key); ok {
				f := float32(v)
				config.TopK = &f
			}
		case "max_tokens", "max_output_tokens":
			if v, ok := intOption(options, key); ok {
				config.MaxOutputTokens = int32(v)
			}
		case "stop":
			if v, ok := stringsOption(options, key); ok {
				config.StopSequences = v
			}
		case "seed":
			if v, ok := intOption(options, key); ok {
				seed := int32(v)
				config.Seed = &seed
			}
		default:
			applied = false
		}
		if !applied {
			logger.Debug(ctx, "Dropping option without Gemini equivalent", "option", key)
		}
	}
}

// applyImagenOptions maps image options onto the Imagen config. Keys without
// an Imagen equivalent are dropped.
func applyImagenOptions(ctx context.Context, config *genai.GenerateImagesConfig, options map[string]interface{}) {
	for _, key := range sortedKeys(options) {
		applied := true
		switch key {
		case "negative_prompt":
			if v, ok := options[key].(string); ok {
				config.NegativePrompt = v
			}
		case "aspect_ratio":
			if v, ok := options[key].(string); ok && v != "" {
				config.AspectRatio = v
			}
		case "seed":
			if v, ok := intOption(options, key); ok {
				seed := int32(v)
				config.Seed = &seed
			}
		case "guidance_scale":
			if v, ok := floatOption(options, key); ok {
				f := float32(v)
				config.GuidanceScale = &f
			}
		default:
			applied = false
		}
		if !applied {
			logger.Debug(ctx, "Dropping option without Imagen equivalent", "option", key)
		}
	}
}

func geminiToChatResponse(model string, resp *genai.GenerateContentResponse) *ChatResponse {
	out := &ChatResponse{
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{},
	}

	for i, candidate := range resp.Candidates {
		message := ChoiceMessage{Role: "assistant"}
		if candidate.Content != nil {
			var text strings.Builder
			hasText := false
			for _, part := range candidate.Content.Parts {
				if part != nil && part.Text != "" {
					text.WriteString(part.Text)
					hasText = true
				}
			}
			if hasText {
				content := text.String()
				message.Content = &content
			}
		}

		finish := string(candidate.FinishReason)
		if mapped, ok := geminiFinishReasons[finish]; ok {
			finish = mapped
		} else {
			finish = strings.ToLower(finish)
		}
		out.Choices = append(out.Choices, Choice{Index: i, Message: message, FinishReason: finish})
	}

	if resp.UsageMetadata != nil {
		out.Usage = &Usage{
			PromptTokens:     int64(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int64(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out
}

// aspectRatio maps an OpenAI "WxH" size onto the closest Imagen aspect ratio.
func aspectRatio(size string) string {
	w, h, ok := parseSize(size)
	if !ok {
		return "1:1"
	}
	target := w / h

	best, bestDiff := "1:1", math.MaxFloat64
	for _, candidate := range imagenAspectRatios {
		cw, ch, _ := strings.Cut(candidate, ":")
		num, _ := strconv.ParseFloat(cw, 64)
		den, _ := strconv.ParseFloat(ch, 64)
		if diff := math.Abs(num/den - target); diff < bestDiff {
			best, bestDiff = candidate, diff
		}
	}
	return best
}

func parseSize(size string) (float64, float64, bool) {
	ws, hs, ok := strings.Cut(strings.ToLower(size), "x")
	if !ok {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(ws, 64)
	h, errH := strconv.ParseFloat(hs, 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
