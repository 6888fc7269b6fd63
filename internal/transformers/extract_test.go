package transformers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completion(message map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"choices": []interface{}{map[string]interface{}{"message": message}},
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]interface{}
		expected string
		err      error
	}{
		{
			name:     "string_content",
			payload:  completion(map[string]interface{}{"content": "hi"}),
			expected: "hi",
		},
		{
			name:     "empty_string_content_is_valid",
			payload:  completion(map[string]interface{}{"content": ""}),
			expected: "",
		},
		{
			name:     "list_content_rendered_as_json",
			payload:  completion(map[string]interface{}{"content": []interface{}{map[string]interface{}{"type": "text", "text": "a"}}}),
			expected: `[{"text":"a","type":"text"}]`,
		},
		{
			name:    "no_choices_key",
			payload: map[string]interface{}{},
			err:     ErrEmptyResponse,
		},
		{
			name:    "empty_choices",
			payload: map[string]interface{}{"choices": []interface{}{}},
			err:     ErrEmptyResponse,
		},
		{
			name:    "choices_wrong_type",
			payload: map[string]interface{}{"choices": "nope"},
			err:     ErrEmptyResponse,
		},
		{
			name:    "missing_message",
			payload: map[string]interface{}{"choices": []interface{}{map[string]interface{}{}}},
			err:     ErrNoContent,
		},
		{
			name:    "null_content",
			payload: completion(map[string]interface{}{"content": nil}),
			err:     ErrNoContent,
		},
		{
			name:    "choice_not_object",
			payload: map[string]interface{}{"choices": []interface{}{"text"}},
			err:     ErrNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.payload)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtractImage(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]interface{}
		expected string
		err      error
	}{
		{
			name:     "data_b64_json",
			payload:  map[string]interface{}{"data": []interface{}{map[string]interface{}{"b64_json": "QUJD"}}},
			expected: "QUJD",
		},
		{
			name:     "images_image_base64",
			payload:  map[string]interface{}{"images": []interface{}{map[string]interface{}{"image_base64": "REVG"}}},
			expected: "REVG",
		},
		{
			name: "b64_json_preferred",
			payload: map[string]interface{}{"data": []interface{}{map[string]interface{}{
				"b64_json": "first", "image_base64": "second",
			}}},
			expected: "first",
		},
		{
			name: "empty_data_falls_back_to_images",
			payload: map[string]interface{}{
				"data":   []interface{}{},
				"images": []interface{}{map[string]interface{}{"b64_json": "X"}},
			},
			expected: "X",
		},
		{
			name:    "no_entries",
			payload: map[string]interface{}{"data": []interface{}{}},
			err:     ErrNoImageData,
		},
		{
			name:    "url_only",
			payload: map[string]interface{}{"data": []interface{}{map[string]interface{}{"url": "https://example.com/a.png"}}},
			err:     ErrMissingImageData,
		},
		{
			name:    "empty_b64",
			payload: map[string]interface{}{"data": []interface{}{map[string]interface{}{"b64_json": ""}}},
			err:     ErrMissingImageData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b64, err := ExtractImage(tt.payload)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b64)
		})
	}
}

func TestUsage(t *testing.T) {
	usage := map[string]interface{}{"tokens": 5}
	assert.Equal(t, usage, Usage(map[string]interface{}{"usage": usage}))
	assert.Nil(t, Usage(map[string]interface{}{}))
	assert.Nil(t, Usage(map[string]interface{}{"usage": "bogus"}))
}
