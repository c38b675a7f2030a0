// Package utils provides utility functions and helpers for common operations
// used throughout the application. It includes string manipulation, log
// sanitization, and slice operations that simplify repeated tasks.
package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
)

// TruncateForDisplay shortens s to its first maxRunes characters. Counting is
// done in runes so multi-byte content is never split inside a character.
//
// Parameters:
//   - s: the string to truncate
//   - maxRunes: the number of characters kept
//
// Returns:
//   - s unchanged when it is short enough, otherwise its prefix
func TruncateForDisplay(s string, maxRunes int) string {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes])
}

// EmailLocalPart returns the part of an email address before the '@'.
// Addresses without an '@' are returned unchanged.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// MaskEmail masks the user part of an email address, showing only the first and last character.
//
// For example: "user@example.com" becomes "u**r@example.com"
//
// Parameters:
//   - email: the email address to mask
//
// Returns:
//   - the masked email address, or the original string if it's not a valid email format
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	user := parts[0]
	domain := parts[1]

	if len(user) <= 2 {
		return email
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + domain
}

// SanitizeKeys redacts values whose keys look sensitive. Nested maps are
// sanitized recursively; the input map is not modified.
//
// Parameters:
//   - data: the map to sanitize
//
// Returns:
//   - a new map with sensitive values redacted
func SanitizeKeys(data map[string]interface{}) map[string]interface{} {
	sensitiveKeys := map[string]bool{
		"password":         true,
		"confirm_password": true,
		"confirmpassword":  true,
		"token":            true,
		"secret":           true,
	}

	result := make(map[string]interface{}, len(data))
	for k, v := range data {
		if sensitiveKeys[strings.ToLower(k)] {
			result[k] = constants.LogRedactedValue
			continue
		}
		if nestedMap, ok := v.(map[string]interface{}); ok {
			result[k] = SanitizeKeys(nestedMap)
			continue
		}
		result[k] = v
	}

	return result
}
