package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters so they pass
// through goldmark untouched and cannot collide with author text.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	// ==text== on a single line; empty marks are left alone.
	highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)

	// Fenced code blocks are skipped when converting highlights.
	fencePattern = regexp.MustCompile("(?m)^[ ]{0,3}(```|~~~)")
)

// MarkdownPreprocessor prepares Markdown text before rendering.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes line endings and optionally rewrites
// ==highlight== syntax into placeholders.
type CommonMarkPreprocessor struct {
	HighlightMarks bool
}

// PreprocessMarkdown applies the configured transformations.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	if p.HighlightMarks {
		content = convertHighlights(content)
	}
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return lineEndings.Replace(content)
}

// convertHighlights turns ==text== into placeholder markers outside fenced
// code blocks. ConvertMarkPlaceholders finishes the job after rendering.
func convertHighlights(content string) string {
	lines := strings.Split(content, "\n")
	var fence string

	for i, line := range lines {
		if m := fencePattern.FindStringSubmatch(line); m != nil {
			switch {
			case fence == "":
				fence = m[1]
			case fence == m[1]:
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		lines[i] = highlightPattern.ReplaceAllString(line, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	}

	return strings.Join(lines, "\n")
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	if !strings.Contains(content, MarkStartPlaceholder) {
		return content
	}
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
