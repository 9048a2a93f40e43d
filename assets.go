package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/assets"
)

// Asset name constants for the built-in document assets.
const (
	// DocumentTemplate is the name of the document wrapper template.
	DocumentTemplate = assets.DefaultTemplateName

	// PreviewStyle is the name of the content stylesheet.
	PreviewStyle = assets.DefaultStyleName
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The engine loads the "document" template and the "preview" and "zebra"
// styles. The document template is a text/template receiving Title,
// Author, Description, Keywords, InlineStyles, Style, StylesheetHref and
// Content.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, files under basePath/styles/{name}.css and
// basePath/templates/{name}.html take precedence; anything missing there
// comes from the embedded set.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	src, err := assets.Resolve(basePath)
	if err != nil {
		return nil, publicAssetError(err)
	}
	return sourceLoader{src: src}, nil
}

// sourceLoader exposes an internal asset source with public errors.
type sourceLoader struct {
	src assets.Source
}

func (l sourceLoader) LoadStyle(name string) (string, error) {
	content, err := l.src.Read(assets.Style, name)
	return content, publicAssetError(err)
}

func (l sourceLoader) LoadTemplate(name string) (string, error) {
	content, err := l.src.Read(assets.Template, name)
	return content, publicAssetError(err)
}

// loaderSource lets the internal template set read through any AssetLoader.
func loaderSource(l AssetLoader) assets.Source {
	if sl, ok := l.(sourceLoader); ok {
		return sl.src
	}
	return assets.SourceFunc(func(kind assets.Kind, name string) (string, error) {
		if kind == assets.Template {
			return l.LoadTemplate(name)
		}
		return l.LoadStyle(name)
	})
}

var assetSentinels = []struct{ internal, public error }{
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrTemplateNotFound, ErrTemplateNotFound},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrAssetRead, ErrInvalidAssetPath},
}

// publicAssetError reports an internal asset error under its public
// sentinel. The message is kept, the internal chain is not.
func publicAssetError(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range assetSentinels {
		if errors.Is(err, s.internal) {
			return &assetError{public: s.public, msg: err.Error()}
		}
	}
	return err
}

type assetError struct {
	public error
	msg    string
}

func (e *assetError) Error() string { return e.msg }

func (e *assetError) Unwrap() error { return e.public }
