// Package hints turns common failures into short suggestions. Each hint is
// formatted as "\n  hint: <text>" so it can follow an error message directly.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// IsInContainer reports whether /.dockerenv exists. Replaced in tests.
var IsInContainer = func() bool {
	info, err := os.Stat("/.dockerenv")
	return err == nil && !info.IsDir()
}

// CIVars are the variables whose presence marks a CI runner.
var CIVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether any of CIVars is set.
func InCI() bool {
	for _, name := range CIVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// Browser suggests the environment variables that fix most launch failures.
func Browser() string {
	var parts []string
	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	parts = append(parts, "run 'md2html doctor' to check the setup")
	return hint(parts...)
}

func Timeout() string {
	return hint("for large documents, raise --timeout")
}

// ConfigNotFound suggests --config, plus the user config path among tried
// when there is one.
func ConfigNotFound(tried []string) string {
	parts := []string{"use --config /path/to/file.yaml"}
	for _, p := range tried {
		if strings.Contains(filepath.ToSlash(p), "/go-md2html/") {
			parts = append(parts, "or create "+p)
			break
		}
	}
	return hint(strings.Join(parts, " "))
}

func OutputDir() string {
	return hint("check parent directory exists and is writable")
}

// Assets lists the asset names a custom directory may provide.
func Assets(names ...string) string {
	if len(names) == 0 {
		return ""
	}
	return hint("available: " + strings.Join(names, ", "))
}

// Theme lists the built-in themes and the file alternative.
func Theme(names []string) string {
	if len(names) == 0 {
		return hint("pass a theme JSON file path")
	}
	return hint("available: "+strings.Join(names, ", "), "or pass a theme JSON file path")
}

func CodeStyle() string {
	return hint("run 'md2html themes list --code-styles' to see available styles")
}

func ThemeImport() string {
	return hint("run 'md2html themes validate <file>' for details", "or 'md2html themes export light' for a starting point")
}

// hint joins the non-empty parts with "; ".
func hint(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(kept, "; ")
}
