package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownCodeStyle indicates a chroma style name that is not registered.
var ErrUnknownCodeStyle = errors.New("unknown code style")

// CodeStyleCSS returns the stylesheet for code highlighted with
// WithSyntaxHighlighting, scoped under .md-preview.
func CodeStyleCSS(style string) (string, error) {
	if style == "" {
		style = DefaultCodeStyle
	}
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodeStyle, style)
	}

	var sb strings.Builder
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&sb, s); err != nil {
		return "", fmt.Errorf("writing %s code style: %w", style, err)
	}
	return scopeCSS(sb.String(), ".md-preview"), nil
}

// CodeStyles returns the registered chroma style names.
func CodeStyles() []string {
	return styles.Names()
}

// scopeCSS prefixes every selector line written by chroma with scope.
// Chroma emits one rule per line: "/* Comment */ .chroma .k { ... }".
func scopeCSS(css, scope string) string {
	lines := strings.Split(strings.TrimRight(css, "\n"), "\n")
	for i, line := range lines {
		comment := ""
		rule := line
		if strings.HasPrefix(rule, "/*") {
			if end := strings.Index(rule, "*/"); end >= 0 {
				comment = rule[:end+2] + " "
				rule = strings.TrimSpace(rule[end+2:])
			}
		}
		if strings.HasPrefix(rule, ".") {
			lines[i] = comment + scope + " " + rule
		}
	}
	return strings.Join(lines, "\n")
}
