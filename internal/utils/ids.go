package utils

import "github.com/google/uuid"

// GenerateRequestID returns a random UUID for request tracking.
func GenerateRequestID() string {
	return uuid.NewString()
}
