package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for theme operations.
var (
	// ErrThemeImport indicates Import could not produce a theme.
	ErrThemeImport = errors.New("failed to import theme")

	// ErrInvalidThemeStructure indicates a required group is missing or
	// is not an object.
	ErrInvalidThemeStructure = errors.New("invalid theme structure")

	// ErrUnsupportedVersion indicates a theme written by a newer schema.
	ErrUnsupportedVersion = errors.New("unsupported theme version")

	// ErrInvalidOverrides indicates a merge produced a value that does not
	// fit the theme schema.
	ErrInvalidOverrides = errors.New("invalid theme overrides")

	// ErrInvalidTheme indicates a theme failed strict validation.
	ErrInvalidTheme = errors.New("invalid theme")
)

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Location string // JSON pointer into the theme, "" for the root
	Message  string
}

// ValidationError lists every schema violation found in a theme.
type ValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrInvalidTheme.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := "#" + issue.Location
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTheme
}
