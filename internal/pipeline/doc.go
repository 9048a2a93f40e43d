// Package pipeline implements the Markdown-to-HTML conversion stages.
//
// The stages run in this order:
//   - Frontmatter extraction (flat "key: value" block at the top)
//   - Markdown preprocessing (line normalization, highlight syntax)
//   - Markdown to HTML rendering via Goldmark
//   - Allow-list sanitization via bluemonday
//   - Link rewriting for batch output and file:// resolution
//   - Document wrapping with the theme's CSS variables
//
// Theme data and PDF rendering live elsewhere: the theme package owns the
// style model and the root md2html package drives headless Chrome.
package pipeline
