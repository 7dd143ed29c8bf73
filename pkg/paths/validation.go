package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/konsave/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateProfileName ensures a profile name is a safe directory name.
// Profile names must:
// - Not be empty
// - Not contain path separators
// - Not be reserved names (. or ..)
// - Not contain characters that are invalid on common filesystems
func ValidateProfileName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "profile name %q cannot contain path separators", name)
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be '.' or '..'")
	}

	invalidChars := ":*?\"<>|"
	if strings.ContainsAny(name, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"profile name contains invalid characters: %s", invalidChars)
	}

	for _, r := range name {
		if r < 32 {
			return errors.New(errors.ErrInvalidInput,
				"profile name contains control characters")
		}
	}

	return nil
}

// ValidateEntry checks a manifest entry: it must be a relative path that
// stays inside the section location once joined.
func ValidateEntry(entry string) error {
	if err := ValidatePath(entry); err != nil {
		return err
	}

	if filepath.IsAbs(entry) {
		return errors.Newf(errors.ErrInvalidInput, "entry %q must be relative to the section location", entry)
	}

	cleaned := filepath.Clean(entry)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput, "entry %q escapes the section location", entry)
	}

	return nil
}

// SanitizePath expands ~ and cleans the path.
func SanitizePath(path string) string {
	path = expandHome(path)

	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "."
	}

	return cleaned
}

// SamePath reports whether two paths name the same location after
// cleaning. It does not resolve symlinks.
func SamePath(a, b string) bool {
	return SanitizePath(a) == SanitizePath(b)
}

// ContainsPath checks if child is contained within parent.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	parent = SanitizePath(parent)
	child = SanitizePath(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	// If relative path starts with .., child is outside parent
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
