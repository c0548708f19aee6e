package errors

import (
	"strings"
	"unicode"
)

// ValidateDirPath validates a source or output directory path for safety.
// It prevents null bytes, control characters, and unreasonable lengths from
// reaching the filesystem layer.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 500 characters
//
// Existence checks are not performed here; a missing input directory is a
// valid "no files found" condition handled by the locator.
func ValidateDirPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains null byte")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}
