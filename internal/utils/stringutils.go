package utils

import (
	"regexp"
	"strings"
)

// SplitThatEnsuresGlobsAreSafe splits a string by any of the given separators,
// but does not split within brace-delimited glob patterns like {group1,group2}.
// Empty parts are dropped and the remaining parts are trimmed.
func SplitThatEnsuresGlobsAreSafe(s string, separators []rune) []string {
	if len(separators) == 0 {
		return []string{s}
	}

	var parts []string
	var currentPart strings.Builder
	braceLevel := 0

	flush := func() {
		if part := strings.TrimSpace(currentPart.String()); part != "" {
			parts = append(parts, part)
		}
		currentPart.Reset()
	}

	for _, char := range s {
		switch {
		case char == '{':
			braceLevel++
			currentPart.WriteRune(char)
		case char == '}':
			if braceLevel > 0 {
				braceLevel--
			}
			currentPart.WriteRune(char)
		case braceLevel == 0 && strings.ContainsRune(string(separators), char):
			flush()
		default:
			currentPart.WriteRune(char)
		}
	}
	flush()

	return parts
}

// SubstringBefore returns the part of s before the first sep, or s itself
// when sep does not occur.
func SubstringBefore(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

// SubstringAfterLast returns the part of s after the last sep, or s itself
// when sep does not occur.
func SubstringAfterLast(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

// SubstringBetweenOuter returns the text between the first open and the last
// close delimiter. ok is false when either is missing or they are out of order.
func SubstringBetweenOuter(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	end := strings.LastIndex(s, close)
	if start < 0 || end < 0 || end < start+len(open) {
		return "", false
	}
	return s[start+len(open) : end], true
}

// IsDigits reports whether s is non-empty and made of ASCII digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var invalidPathCharsRegex = regexp.MustCompile(`[^\w\.\-]+`)

// ReplaceInvalidPathChars replaces characters in a path that are not word characters, dots, or hyphens with an underscore.
func ReplaceInvalidPathChars(path string) string {
	return invalidPathCharsRegex.ReplaceAllString(path, "_")
}
