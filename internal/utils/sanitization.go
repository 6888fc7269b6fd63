package utils

import (
	"fmt"
	"net/http"
	"strings"
)

const maskedValue = "***MASKED***"

var sensitiveHeaderParts = []string{"authorization", "cookie", "api-key", "apikey", "token", "secret"}

// SanitizeHeaders flattens headers for logging and masks credentials.
func SanitizeHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for key, values := range headers {
		if isSensitiveHeader(key) {
			out[key] = maskedValue
			continue
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}

func isSensitiveHeader(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range sensitiveHeaderParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// TruncateLongStrings returns a copy of decoded JSON data with every string
// longer than MaxLoggedStringLength shortened. Prompts, completions and
// base64 images all pass through here before being logged.
func TruncateLongStrings(data interface{}) interface{} {
	switch v := data.(type) {
	case string:
		return truncateString(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			out[key] = TruncateLongStrings(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, value := range v {
			out[i] = TruncateLongStrings(value)
		}
		return out
	default:
		return v
	}
}

func truncateString(s string) string {
	if len(s) <= MaxLoggedStringLength {
		return s
	}
	half := MaxLoggedStringLength / 2
	return s[:half] + fmt.Sprintf("...[%d chars truncated]...", len(s)-MaxLoggedStringLength) + s[len(s)-half:]
}
