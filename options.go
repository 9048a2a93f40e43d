package md2html

import (
	"context"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Renderer converts Markdown text into an HTML fragment. Implementations
// must be safe for concurrent use.
type Renderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// Option configures an Engine.
type Option func(*Engine)

// engineConfig holds the settings resolved in NewEngine.
type engineConfig struct {
	rendererOpts []pipeline.RendererOption
	codeStyle    string
	policy       *PolicyOverrides
	assetPath    string
}

// WithRenderer replaces the goldmark renderer. Renderer options such as
// WithFootnotes are ignored when a custom renderer is set.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithSyntaxHighlighting highlights fenced code blocks with the named chroma
// style ("" means github). ToFullHTML then includes the style's CSS.
func WithSyntaxHighlighting(style string) Option {
	return func(e *Engine) {
		if style == "" {
			style = pipeline.DefaultCodeStyle
		}
		e.cfg.codeStyle = style
		e.cfg.rendererOpts = append(e.cfg.rendererOpts, pipeline.WithSyntaxHighlighting(style))
	}
}

// WithFootnotes enables [^1] footnote syntax.
func WithFootnotes() Option {
	return func(e *Engine) {
		e.cfg.rendererOpts = append(e.cfg.rendererOpts, pipeline.WithFootnotes())
	}
}

// WithHighlightMarks renders ==text== as <mark>text</mark>.
func WithHighlightMarks() Option {
	return func(e *Engine) {
		e.cfg.rendererOpts = append(e.cfg.rendererOpts, pipeline.WithHighlightMarks())
	}
}

// WithPolicyOverrides replaces keys of the default sanitization policy for
// every Parse call of the engine.
func WithPolicyOverrides(o *PolicyOverrides) Option {
	return func(e *Engine) {
		e.cfg.policy = o
	}
}

// WithAssetLoader sets a custom loader for the document template and
// stylesheets.
func WithAssetLoader(l AssetLoader) Option {
	return func(e *Engine) {
		e.assetLoader = l
	}
}

// WithAssetPath loads the document template and stylesheets from a
// directory, falling back to the embedded assets for missing files.
// WithAssetLoader takes precedence.
func WithAssetPath(path string) Option {
	return func(e *Engine) {
		e.cfg.assetPath = path
	}
}

// ParseOption configures a single Parse call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	sanitize        bool
	extractMetadata bool
}

func defaultParseOptions() parseOptions {
	return parseOptions{sanitize: true, extractMetadata: true}
}

// WithSanitize toggles sanitization of the rendered HTML. Default true.
func WithSanitize(enabled bool) ParseOption {
	return func(o *parseOptions) {
		o.sanitize = enabled
	}
}

// WithExtractMetadata toggles frontmatter extraction. When disabled the whole
// input is rendered and Metadata is nil. Default true.
func WithExtractMetadata(enabled bool) ParseOption {
	return func(o *parseOptions) {
		o.extractMetadata = enabled
	}
}
