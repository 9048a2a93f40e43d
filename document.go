package md2html

import (
	"strings"

	"github.com/alnah/go-md2html/internal/pipeline"
	"github.com/alnah/go-md2html/theme"
)

// Document defaults.
const (
	DefaultTitle          = pipeline.DefaultTitle
	DefaultStylesheetHref = pipeline.DefaultStylesheetHref
)

// DocumentOption configures ToFullHTML.
type DocumentOption func(*documentOptions)

type documentOptions struct {
	inlineStyles   bool
	title          string
	metadata       *DocumentMetadata
	stylesheetHref string
	extraCSS       string
	codeStyle      string
	codeStyleSet   bool
}

// WithInlineStyles embeds the theme and stylesheet in a <style> block when
// true (the default), or links StylesheetHref when false.
func WithInlineStyles(enabled bool) DocumentOption {
	return func(o *documentOptions) {
		o.inlineStyles = enabled
	}
}

// WithTitle sets the <title>. It is not escaped; pass frontmatter values
// through html.EscapeString first.
func WithTitle(title string) DocumentOption {
	return func(o *documentOptions) {
		o.title = title
	}
}

// WithMetadata sets the author, description and keywords meta tags.
// Values are not escaped; see DocumentMetadata.Escaped.
func WithMetadata(m *DocumentMetadata) DocumentOption {
	return func(o *documentOptions) {
		o.metadata = m
	}
}

// WithStylesheetHref sets the stylesheet linked when inline styles are off.
func WithStylesheetHref(href string) DocumentOption {
	return func(o *documentOptions) {
		o.stylesheetHref = href
	}
}

// WithExtraCSS appends css after the built-in stylesheet, so its rules win.
func WithExtraCSS(css string) DocumentOption {
	return func(o *documentOptions) {
		o.extraCSS = css
	}
}

// WithCodeStyle includes the CSS of the named chroma style. An empty name
// drops the code style an engine would otherwise add.
func WithCodeStyle(style string) DocumentOption {
	return func(o *documentOptions) {
		o.codeStyle = style
		o.codeStyleSet = true
	}
}

// CodeStyles returns the style names accepted by WithSyntaxHighlighting and
// WithCodeStyle.
func CodeStyles() []string {
	return pipeline.CodeStyles()
}

// ToFullHTML wraps an HTML fragment into a complete document styled by t.
//
// The fragment, title and metadata are inserted verbatim. Pass a fragment
// produced by Parse with sanitization on; this is not a second sanitization
// boundary.
func (e *Engine) ToFullHTML(fragment string, t theme.Theme, opts ...DocumentOption) (string, error) {
	o := documentOptions{inlineStyles: true}
	for _, opt := range opts {
		opt(&o)
	}

	codeCSS := e.codeCSS
	if o.codeStyleSet {
		codeCSS = ""
		if o.codeStyle != "" {
			css, err := pipeline.CodeStyleCSS(o.codeStyle)
			if err != nil {
				return "", err
			}
			codeCSS = css
		}
	}

	data := &pipeline.DocumentData{
		Title:          o.title,
		InlineStyles:   o.inlineStyles,
		StylesheetHref: o.stylesheetHref,
		RootVariables:  theme.CSSVariables(t),
		Zebra:          t.Tables.Zebra,
		ExtraCSS:       joinCSS(codeCSS, o.extraCSS),
		Content:        fragment,
	}
	if o.metadata != nil {
		data.Author = o.metadata.Author
		data.Description = o.metadata.Description
		data.Keywords = o.metadata.Keywords
	}

	return e.wrapper.Wrap(data)
}

// ToFullHTML wraps a fragment with the shared default Engine.
// See Engine.ToFullHTML.
func ToFullHTML(fragment string, t theme.Theme, opts ...DocumentOption) (string, error) {
	e, err := defaultEngine()
	if err != nil {
		return "", err
	}
	return e.ToFullHTML(fragment, t, opts...)
}

// Stylesheet returns the standalone CSS for t, for use with
// WithInlineStyles(false): the :root variables, the content stylesheet and
// any code style CSS.
func (e *Engine) Stylesheet(t theme.Theme, extraCSS string) (string, error) {
	css, err := e.styles.Wrap(&pipeline.DocumentData{
		InlineStyles:  true,
		RootVariables: theme.CSSVariables(t),
		Zebra:         t.Tables.Zebra,
		ExtraCSS:      joinCSS(e.codeCSS, extraCSS),
	})
	if err != nil {
		return "", err
	}
	return css + "\n", nil
}

func joinCSS(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
