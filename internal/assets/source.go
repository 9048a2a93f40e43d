package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

//go:embed styles templates
var builtin embed.FS

// Kind selects the directory and extension an asset name resolves to.
type Kind int

const (
	Style Kind = iota
	Template
)

func (k Kind) String() string {
	if k == Template {
		return "template"
	}
	return "style"
}

func (k Kind) path(name string) string {
	if k == Template {
		return "templates/" + name + ".html"
	}
	return "styles/" + name + ".css"
}

func (k Kind) notFound() error {
	if k == Template {
		return ErrTemplateNotFound
	}
	return ErrStyleNotFound
}

// Source reads assets by kind and name.
type Source interface {
	Read(kind Kind, name string) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(kind Kind, name string) (string, error)

func (f SourceFunc) Read(kind Kind, name string) (string, error) {
	return f(kind, name)
}

// ValidateName rejects empty names and names that could select another
// directory or extension.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// IsNotFound reports whether err means the source has no such asset.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// fsSource reads assets laid out as styles/*.css and templates/*.html.
type fsSource struct {
	fsys fs.FS
}

func (s *fsSource) Read(kind Kind, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %w", kind.notFound(), err)
	}

	p := kind.path(name)
	data, err := fs.ReadFile(s.fsys, p)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.notFound(), name)
	default:
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, p, err)
	}
}

// Embedded returns the built-in assets.
func Embedded() Source {
	return &fsSource{fsys: builtin}
}

// Dir returns a Source reading from dir. Reads that resolve outside dir,
// through ".." or a symlink, fail with ErrAssetRead.
func Dir(dir string) (Source, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, dir)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &fsSource{fsys: root.FS()}, nil
}

// layered tries each source in order and moves on only when an asset is
// missing. Other errors stop the lookup.
type layered []Source

// Layered stacks sources, first match wins.
func Layered(sources ...Source) Source {
	return layered(sources)
}

func (l layered) Read(kind Kind, name string) (string, error) {
	err := fmt.Errorf("%w: %q", kind.notFound(), name)
	for _, src := range l {
		var content string
		content, err = src.Read(kind, name)
		if err == nil || !IsNotFound(err) {
			return content, err
		}
	}
	return "", err
}

// Resolve returns the embedded assets, overlaid with dir when set.
func Resolve(dir string) (Source, error) {
	if dir == "" {
		return Embedded(), nil
	}
	custom, err := Dir(dir)
	if err != nil {
		return nil, err
	}
	return Layered(custom, Embedded()), nil
}
