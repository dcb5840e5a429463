package middleware

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ValidateRunID checks a run id taken from a URL path.
func ValidateRunID(id string) error {
	if id == "" {
		return fmt.Errorf("run ID cannot be empty")
	}
	if len(id) > 255 {
		return fmt.Errorf("run ID too long")
	}
	if SanitizeString(id) != id || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid run ID format")
	}
	return nil
}

// ValidateRepository accepts an empty value or an owner/name pair.
func ValidateRepository(repo string) error {
	if repo == "" {
		return nil // Optional field
	}
	if !repositoryPattern.MatchString(repo) || strings.Contains(repo, "..") {
		return fmt.Errorf("repository must be in owner/name form")
	}
	return nil
}

// ValidatePrefix validates a file-share folder
func ValidatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return fmt.Errorf("prefix cannot be empty")
	}
	cleaned := path.Clean("/" + prefix)
	for _, seg := range strings.Split(prefix, "/") {
		if seg == ".." {
			return fmt.Errorf("path traversal detected")
		}
	}
	if cleaned == "/" {
		return fmt.Errorf("prefix cannot be the bucket root")
	}
	for _, d := range []string{"\x00", "\n", "\r"} {
		if strings.Contains(prefix, d) {
			return fmt.Errorf("invalid characters in prefix")
		}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
