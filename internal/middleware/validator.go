package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input validation and sanitization utilities

const maxTopicLen = 255

// ValidateText checks the submitted text against the configured maximum
// length in characters. maxLen <= 0 disables the check.
func ValidateText(text string, maxLen int) error {
	if maxLen > 0 && utf8.RuneCountInString(text) > maxLen {
		return fmt.Errorf("text exceeds %d characters", maxLen)
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("text must be valid UTF-8")
	}
	return nil
}

// ValidateTopic checks a search topic after sanitization
func ValidateTopic(topic string) error {
	if utf8.RuneCountInString(topic) > maxTopicLen {
		return fmt.Errorf("topic exceeds %d characters", maxTopicLen)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
