package utils

import (
	"os"
)

// IsProduction controls whether log masking is active.
var IsProduction = os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"

// MaskEmail hides a guest email outside of development logs.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// MaskID shortens an id for logging (keeps the first 8 characters).
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}
