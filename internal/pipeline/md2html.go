package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownRender indicates the Markdown renderer failed.
var ErrMarkdownRender = errors.New("markdown rendering failed")

// DefaultCodeStyle is the chroma style used when highlighting is enabled
// without an explicit style.
const DefaultCodeStyle = "github"

// Renderer converts Markdown text into an HTML fragment.
type Renderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// rendererConfig holds the knobs applied once at construction.
type rendererConfig struct {
	highlight      bool
	codeStyle      string
	footnotes      bool
	highlightMarks bool
}

// RendererOption configures a GoldmarkRenderer.
type RendererOption func(*rendererConfig)

// WithSyntaxHighlighting enables chroma highlighting of fenced code blocks.
// Output uses CSS classes; pair it with CodeStyleCSS for colours.
func WithSyntaxHighlighting(style string) RendererOption {
	return func(c *rendererConfig) {
		c.highlight = true
		c.codeStyle = style
		if c.codeStyle == "" {
			c.codeStyle = DefaultCodeStyle
		}
	}
}

// WithFootnotes enables [^1] footnote syntax.
func WithFootnotes() RendererOption {
	return func(c *rendererConfig) {
		c.footnotes = true
	}
}

// WithHighlightMarks enables ==text== to <mark> conversion.
func WithHighlightMarks() RendererOption {
	return func(c *rendererConfig) {
		c.highlightMarks = true
	}
}

// GoldmarkRenderer renders GitHub Flavored Markdown with goldmark.
// The goldmark instance is built once and is safe for concurrent use.
type GoldmarkRenderer struct {
	md           goldmark.Markdown
	preprocessor MarkdownPreprocessor
	marks        bool
}

// NewGoldmarkRenderer creates a renderer with GFM extensions and automatic
// heading ids. Single newlines do not become <br>, and raw HTML is passed
// through so that sanitization stays the only enforcement point.
func NewGoldmarkRenderer(opts ...RendererOption) *GoldmarkRenderer {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if cfg.footnotes {
		extensions = append(extensions, extension.Footnote)
	}
	if cfg.highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.codeStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &GoldmarkRenderer{
		md:           md,
		preprocessor: &CommonMarkPreprocessor{HighlightMarks: cfg.highlightMarks},
		marks:        cfg.highlightMarks,
	}
}

// Render converts Markdown to an HTML fragment. Empty input renders to "".
// Goldmark has no context support, so conversion runs in a goroutine and
// the caller is released as soon as ctx is done.
func (r *GoldmarkRenderer) Render(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if markdown == "" {
		return "", nil
	}

	content := r.preprocessor.PreprocessMarkdown(ctx, markdown)

	type result struct {
		html  string
		err   error
		panic any
	}

	done := make(chan result, 1)

	// A panic inside goldmark is handed back and re-raised on the caller's
	// goroutine, where it can be handled like any other.
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result{panic: p}
			}
		}()

		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownRender, err)}
			return
		}
		out := buf.String()
		if r.marks {
			out = ConvertMarkPlaceholders(out)
		}
		done <- result{html: out}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.panic != nil {
			panic(res.panic)
		}
		return res.html, res.err
	}
}

// Compile-time interface check.
var _ Renderer = (*GoldmarkRenderer)(nil)
