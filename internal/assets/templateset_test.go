package assets

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLoadTemplateSet - Document assets
// ---------------------------------------------------------------------------

func TestDefaultTemplateSet(t *testing.T) {
	t.Parallel()

	ts, err := DefaultTemplateSet()
	if err != nil {
		t.Fatalf("DefaultTemplateSet() error = %v", err)
	}
	if !strings.Contains(ts.Document, "{{.Content}}") {
		t.Error("Document should reference .Content")
	}
	if !strings.Contains(ts.Stylesheet, ".md-preview") {
		t.Error("Stylesheet should be scoped under .md-preview")
	}
	if !strings.Contains(ts.Zebra, "--color-table-row-alt") {
		t.Error("Zebra should use the alternate row variable")
	}
}

func TestLoadTemplateSet_MissingAsset(t *testing.T) {
	t.Parallel()

	src := SourceFunc(func(kind Kind, name string) (string, error) {
		if name == ZebraStyleName {
			return "", kind.notFound()
		}
		return name, nil
	})

	_, err := LoadTemplateSet(src)
	if !errors.Is(err, ErrStyleNotFound) {
		t.Fatalf("error = %v, want ErrStyleNotFound", err)
	}
	if !strings.Contains(err.Error(), `style "zebra"`) {
		t.Errorf("error should name the asset, got %v", err)
	}
}

func TestPrintStylesheet(t *testing.T) {
	t.Parallel()

	css, err := PrintStylesheet()
	if err != nil {
		t.Fatalf("PrintStylesheet() error = %v", err)
	}
	if !strings.Contains(css, "@page") {
		t.Error("print stylesheet should contain @page rules")
	}
}
