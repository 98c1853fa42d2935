package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// packageIDRegex matches normalized package identifiers.
var packageIDRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidatePackageID checks that id is a normalized registry identifier:
// lower-case alphanumeric runs joined by single hyphens.
func ValidatePackageID(id string) error {
	if id == "" {
		return Missing("id")
	}
	if len(id) > 128 {
		return Invalid("id", "too long (max 128 characters)")
	}
	if !packageIDRegex.MatchString(id) {
		return Invalid("id", "%q is not a normalized identifier", id)
	}
	return nil
}

// ValidateVersion checks that version is usable as a single path segment.
// It does not require semantic versioning; registries accept free-form
// version strings as long as they cannot escape their directory.
func ValidateVersion(version string) error {
	if version == "" {
		return Missing("version")
	}
	if len(version) > 64 {
		return Invalid("version", "too long (max 64 characters)")
	}
	if version == "." || strings.Contains(version, "..") {
		return Invalid("version", "%q contains path traversal", version)
	}
	for _, r := range version {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == '/' || r == '\\' {
			return Invalid("version", "%q contains invalid characters", version)
		}
	}
	return nil
}

// ValidatePath validates a file path within a package for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateScriptFilename checks that an uploaded file is a Lua source file
// with a plain name.
func ValidateScriptFilename(name string) error {
	if err := ValidatePath(name); err != nil {
		return err
	}
	if !strings.HasSuffix(strings.ToLower(name), ".lua") {
		return New(ErrCodeInvalidInput, "%s: only .lua files are accepted", name)
	}
	return nil
}
