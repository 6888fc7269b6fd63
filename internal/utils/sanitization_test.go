package utils

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer sk-secret")
	headers.Set("X-Api-Key", "k")
	headers.Add("Accept", "application/json")
	headers.Add("Accept", "text/plain")

	sanitized := SanitizeHeaders(headers)

	assert.Equal(t, "***MASKED***", sanitized["Authorization"])
	assert.Equal(t, "***MASKED***", sanitized["X-Api-Key"])
	assert.Equal(t, "application/json, text/plain", sanitized["Accept"])
}

func TestTruncateLongStrings(t *testing.T) {
	long := strings.Repeat("ABCDEFGHIJ", 30) // 300 characters
	expected := long[:100] + "...[100 chars truncated]..." + long[200:]

	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{"short string unchanged", "hello", "hello"},
		{"long string truncated", long, expected},
		{"number unchanged", float64(42), float64(42)},
		{"nil unchanged", nil, nil},
		{
			name:     "nested structures",
			input:    map[string]interface{}{"image_b64": long, "items": []interface{}{long, "x"}},
			expected: map[string]interface{}{"image_b64": expected, "items": []interface{}{expected, "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLongStrings(tt.input))
		})
	}
}

func TestTruncateLongStrings_DoesNotMutateInput(t *testing.T) {
	long := strings.Repeat("x", 500)
	input := map[string]interface{}{"content": long}

	_ = TruncateLongStrings(input)
	assert.Equal(t, long, input["content"])
}

func TestGenerateRequestID(t *testing.T) {
	first := GenerateRequestID()
	second := GenerateRequestID()

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
