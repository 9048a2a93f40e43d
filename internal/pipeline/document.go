package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// ErrDocumentRender indicates the document template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

// Document defaults.
const (
	DefaultTitle          = "Markdown Document"
	DefaultStylesheetHref = "styles.css"
)

// DocumentData holds the values placed into the document template.
// Nothing is escaped: Content must already be sanitized and callers escape
// Title and metadata themselves.
type DocumentData struct {
	Title       string
	Author      string
	Description string
	Keywords    string

	InlineStyles   bool
	StylesheetHref string

	// RootVariables holds CSS custom property declarations, one per line.
	RootVariables string
	Zebra         bool
	ExtraCSS      string

	Content string
}

// templateData is what the document template sees.
type templateData struct {
	Title          string
	Author         string
	Description    string
	Keywords       string
	InlineStyles   bool
	Style          string
	StylesheetHref string
	Content        string
}

// DocumentWrapper composes an HTML fragment and styles into a full document.
// It is safe for concurrent use.
type DocumentWrapper struct {
	tmpl       *template.Template
	stylesheet string
	zebra      string
}

// NewDocumentWrapper parses the document template. The stylesheet follows the
// :root block; zebra is appended only for documents with zebra rows.
func NewDocumentWrapper(tmplContent, stylesheet, zebra string) (*DocumentWrapper, error) {
	tmpl, err := template.New("document").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}

	return &DocumentWrapper{
		tmpl:       tmpl,
		stylesheet: stylesheet,
		zebra:      zebra,
	}, nil
}

// Wrap renders data into a complete HTML document.
func (w *DocumentWrapper) Wrap(data *DocumentData) (string, error) {
	if data == nil {
		data = &DocumentData{}
	}

	view := templateData{
		Title:          data.Title,
		Author:         data.Author,
		Description:    data.Description,
		Keywords:       data.Keywords,
		InlineStyles:   data.InlineStyles,
		StylesheetHref: data.StylesheetHref,
		Content:        data.Content,
	}
	if view.Title == "" {
		view.Title = DefaultTitle
	}
	if view.StylesheetHref == "" {
		view.StylesheetHref = DefaultStylesheetHref
	}
	if view.InlineStyles {
		view.Style = escapeStyleText(w.buildStyle(data))
	}

	var sb strings.Builder
	if err := w.tmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return sb.String(), nil
}

// buildStyle assembles the inline style block: the :root variables, the
// content stylesheet, the optional zebra rule and user CSS last.
func (w *DocumentWrapper) buildStyle(data *DocumentData) string {
	var sb strings.Builder

	sb.WriteString(":root {\n")
	for _, line := range strings.Split(strings.TrimRight(data.RootVariables, "\n"), "\n") {
		if line != "" {
			sb.WriteString("  ")
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	appendBlock(&sb, w.stylesheet)
	if data.Zebra {
		appendBlock(&sb, w.zebra)
	}
	appendBlock(&sb, data.ExtraCSS)

	return strings.TrimRight(sb.String(), "\n")
}

func appendBlock(sb *strings.Builder, css string) {
	css = strings.TrimSpace(css)
	if css == "" {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(css)
	sb.WriteString("\n")
}
