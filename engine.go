package md2html

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ Renderer                      = (*pipeline.GoldmarkRenderer)(nil)
)

// Engine runs the Markdown to HTML pipeline. Create with NewEngine; an
// Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg         engineConfig
	renderer    Renderer
	assetLoader AssetLoader
	sanitizer   *pipeline.Sanitizer
	wrapper     *pipeline.DocumentWrapper
	styles      *pipeline.DocumentWrapper // renders the style block alone
	codeCSS     string
}

// NewEngine creates an Engine with GFM rendering, the default sanitization
// policy and the embedded document assets.
// Returns error if asset loading or template parsing fails.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.renderer == nil {
		e.renderer = pipeline.NewGoldmarkRenderer(e.cfg.rendererOpts...)
	}

	e.sanitizer = pipeline.NewSanitizer(pipeline.DefaultPolicy().Merge(e.cfg.policy))

	if e.assetLoader == nil {
		loader, err := NewAssetLoader(e.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		e.assetLoader = loader
	}

	ts, err := assets.LoadTemplateSet(loaderSource(e.assetLoader))
	if err != nil {
		return nil, fmt.Errorf("loading document assets: %w", err)
	}
	e.wrapper, err = pipeline.NewDocumentWrapper(ts.Document, ts.Stylesheet, ts.Zebra)
	if err != nil {
		return nil, fmt.Errorf("initializing document wrapper: %w", err)
	}
	e.styles, err = pipeline.NewDocumentWrapper("{{.Style}}", ts.Stylesheet, ts.Zebra)
	if err != nil {
		return nil, fmt.Errorf("initializing stylesheet wrapper: %w", err)
	}

	if e.cfg.codeStyle != "" {
		e.codeCSS, err = pipeline.CodeStyleCSS(e.cfg.codeStyle)
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Parse converts Markdown into a ParsedDocument.
//
// By default the leading frontmatter block is split off into Metadata and
// the rendered HTML is sanitized. Either step can be disabled with
// WithExtractMetadata and WithSanitize. Render failures match
// ErrMarkdownRender; a done context returns ctx.Err(). Panics raised by a
// custom Renderer are not recovered.
func (e *Engine) Parse(ctx context.Context, markdown string, opts ...ParseOption) (*ParsedDocument, error) {
	po := defaultParseOptions()
	for _, opt := range opts {
		opt(&po)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := markdown
	var metadata map[string]string
	if po.extractMetadata {
		content, metadata = pipeline.ExtractFrontmatter(markdown)
	}

	html, err := e.renderer.Render(ctx, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, ErrMarkdownRender) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}

	if po.sanitize {
		html = e.sanitizer.Sanitize(html)
	}

	return &ParsedDocument{HTML: html, Metadata: metadata}, nil
}

// Sanitize applies the engine's policy to html.
func (e *Engine) Sanitize(html string) string {
	return e.sanitizer.Sanitize(html)
}

// AssetLoader returns the loader the engine reads its document assets from.
func (e *Engine) AssetLoader() AssetLoader {
	return e.assetLoader
}

// defaultEngine backs the package-level functions.
var defaultEngine = sync.OnceValues(func() (*Engine, error) {
	return NewEngine()
})

// Parse converts Markdown with a shared default Engine.
// See Engine.Parse.
func Parse(ctx context.Context, markdown string, opts ...ParseOption) (*ParsedDocument, error) {
	e, err := defaultEngine()
	if err != nil {
		return nil, err
	}
	return e.Parse(ctx, markdown, opts...)
}
