// Package transformers turns upstream results into canonical JSON-shaped
// payloads and pulls the text, image and usage fields out of them.
package transformers

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse means a completion payload had no choices.
	ErrEmptyResponse = errors.New("the model returned an empty response")
	// ErrNoContent means the first choice had no message content.
	ErrNoContent = errors.New("the model response did not include text content")
	// ErrNoImageData means an image payload had neither data nor images entries.
	ErrNoImageData = errors.New("image generation returned no data")
	// ErrMissingImageData means the first image entry carried no base64 payload.
	ErrMissingImageData = errors.New("image data missing from provider response")
)

// ExtractText returns choices[0].message.content. Non-string content such as
// a list of parts is rendered as JSON text.
func ExtractText(payload map[string]interface{}) (string, error) {
	choices, _ := payload["choices"].([]interface{})
	if len(choices) == 0 {
		return "", ErrEmptyResponse
	}

	choice, _ := choices[0].(map[string]interface{})
	message, _ := choice["message"].(map[string]interface{})
	content, ok := message["content"]
	if !ok || content == nil {
		return "", ErrNoContent
	}

	switch v := content.(type) {
	case string:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoContent, err)
		}
		return string(data), nil
	}
}

// ExtractImage returns the first base64 image from payload. Entries are read
// from "data", falling back to "images"; within an entry "b64_json" is
// preferred over "image_base64".
func ExtractImage(payload map[string]interface{}) (string, error) {
	images := nonEmptyList(payload["data"])
	if images == nil {
		images = nonEmptyList(payload["images"])
	}
	if images == nil {
		return "", ErrNoImageData
	}

	first, _ := images[0].(map[string]interface{})
	for _, key := range []string{"b64_json", "image_base64"} {
		if b64, ok := first[key].(string); ok && b64 != "" {
			return b64, nil
		}
	}
	return "", ErrMissingImageData
}

// Usage returns the payload's usage object, or nil when absent.
func Usage(payload map[string]interface{}) map[string]interface{} {
	usage, _ := payload["usage"].(map[string]interface{})
	return usage
}

func nonEmptyList(v interface{}) []interface{} {
	list, _ := v.([]interface{})
	if len(list) == 0 {
		return nil
	}
	return list
}
