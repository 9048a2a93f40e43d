package main

import (
	"context"
	"errors"
	"os"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/theme"
)

// Exit codes for md2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, theme or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2html.ErrBrowserConnect) ||
		errors.Is(err, md2html.ErrPageCreate) ||
		errors.Is(err, md2html.ErrPageLoad) ||
		errors.Is(err, md2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/theme/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, ErrUnknownTheme) ||
		errors.Is(err, theme.ErrThemeImport) ||
		errors.Is(err, theme.ErrInvalidOverrides) ||
		errors.Is(err, theme.ErrInvalidTheme) ||
		errors.Is(err, md2html.ErrUnknownCodeStyle) ||
		errors.Is(err, md2html.ErrInvalidPageSize) ||
		errors.Is(err, md2html.ErrInvalidOrientation) ||
		errors.Is(err, md2html.ErrInvalidMargin) ||
		errors.Is(err, md2html.ErrStyleNotFound) ||
		errors.Is(err, md2html.ErrTemplateNotFound) ||
		errors.Is(err, md2html.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// errorHints pairs sentinel errors with the hint printed after them.
// The first match wins.
var errorHints = []struct {
	err  error
	hint func() string
}{
	{md2html.ErrBrowserConnect, hints.Browser},
	{md2html.ErrPDFGeneration, hints.Timeout},
	{context.DeadlineExceeded, hints.Timeout},
	{ErrUnknownTheme, func() string { return hints.Theme(theme.Names()) }},
	{theme.ErrThemeImport, hints.ThemeImport},
	{md2html.ErrUnknownCodeStyle, hints.CodeStyle},
	{md2html.ErrStyleNotFound, func() string {
		return hints.Assets(md2html.PreviewStyle, "zebra", "print")
	}},
	{ErrWriteOutput, hints.OutputDir},
}
