package assets

import "fmt"

// Names of the built-in assets.
const (
	DefaultTemplateName = "document"
	DefaultStyleName    = "preview"
	ZebraStyleName      = "zebra"
	PrintStyleName      = "print"
)

// TemplateSet holds the assets needed to wrap a fragment into a document.
type TemplateSet struct {
	Document   string // text/template source of the document
	Stylesheet string // content stylesheet
	Zebra      string // emitted only when the theme enables zebra rows
}

// LoadTemplateSet reads the document template and its stylesheets from src.
func LoadTemplateSet(src Source) (*TemplateSet, error) {
	var ts TemplateSet
	for _, a := range []struct {
		kind Kind
		name string
		dst  *string
	}{
		{Template, DefaultTemplateName, &ts.Document},
		{Style, DefaultStyleName, &ts.Stylesheet},
		{Style, ZebraStyleName, &ts.Zebra},
	} {
		content, err := src.Read(a.kind, a.name)
		if err != nil {
			return nil, fmt.Errorf("loading %s %q: %w", a.kind, a.name, err)
		}
		*a.dst = content
	}
	return &ts, nil
}

// DefaultTemplateSet returns the built-in document assets.
func DefaultTemplateSet() (*TemplateSet, error) {
	return LoadTemplateSet(Embedded())
}

// PrintStylesheet returns the built-in page rules added before PDF printing.
func PrintStylesheet() (string, error) {
	return Embedded().Read(Style, PrintStyleName)
}
