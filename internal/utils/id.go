package utils

import "github.com/google/uuid"

// NewID returns a random RFC 4122 version 4 identifier.
func NewID() string {
	return uuid.New().String()
}
