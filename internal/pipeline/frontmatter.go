package pipeline

import (
	"regexp"
	"strings"
)

// frontmatterPattern matches a leading block delimited by "---" lines.
// Trailing whitespace after each delimiter is tolerated, so a "\r" left by
// CRLF input or the blank separator line is consumed with the block.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*\n`)

// ExtractFrontmatter splits a leading frontmatter block from the document body.
//
// Returns the input unchanged and nil metadata when no block is present.
// The block grammar is flat "key: value" lines; values stay strings, one layer
// of matching surrounding quotes is stripped and later duplicates win.
// Metadata is nil (never empty) when the block holds no keys.
func ExtractFrontmatter(markdown string) (content string, metadata map[string]string) {
	loc := frontmatterPattern.FindStringSubmatchIndex(markdown)
	if loc == nil {
		return markdown, nil
	}

	body := markdown[loc[2]:loc[3]]
	return markdown[loc[1]:], parseFrontmatterBody(body)
}

// parseFrontmatterBody reads "key: value" lines into a map.
func parseFrontmatterBody(body string) map[string]string {
	var metadata map[string]string

	for _, line := range strings.Split(body, "\n") {
		colon := strings.Index(line, ":")
		if colon <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:colon])
		if key == "" {
			continue
		}

		if metadata == nil {
			metadata = make(map[string]string)
		}
		metadata[key] = unquote(strings.TrimSpace(line[colon+1:]))
	}

	return metadata
}

// unquote strips one layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
