package md2html

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/theme"
)

// ---------------------------------------------------------------------------
// TestToFullHTML - Document Assembly
// ---------------------------------------------------------------------------

func TestToFullHTML(t *testing.T) {
	t.Parallel()

	noZebra := theme.Light()
	noZebra.Tables.Zebra = false

	tests := []struct {
		name         string
		theme        theme.Theme
		opts         []DocumentOption
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "defaults",
			theme: theme.Light(),
			wantContains: []string{
				"<!DOCTYPE html>",
				"<title>" + DefaultTitle + "</title>",
				"<style>",
				":root {\n  --font-family: Inter",
				"  --color-background: #ffffff;",
				".md-preview tbody tr:nth-child(even)",
				"<p>body</p>",
			},
			wantNot: []string{`<link rel="stylesheet"`, `name="author"`},
		},
		{
			name:         "dark theme colors",
			theme:        theme.Dark(),
			wantContains: []string{"--color-background: #0f172a;"},
		},
		{
			name:    "zebra disabled",
			theme:   noZebra,
			wantNot: []string{"nth-child(even)"},
		},
		{
			name:         "linked stylesheet",
			theme:        theme.Light(),
			opts:         []DocumentOption{WithInlineStyles(false), WithStylesheetHref("site.css")},
			wantContains: []string{`<link rel="stylesheet" href="site.css">`},
			wantNot:      []string{"<style>", ":root"},
		},
		{
			name:         "linked stylesheet default href",
			theme:        theme.Light(),
			opts:         []DocumentOption{WithInlineStyles(false)},
			wantContains: []string{`href="` + DefaultStylesheetHref + `"`},
		},
		{
			name:  "title and metadata",
			theme: theme.Light(),
			opts: []DocumentOption{
				WithTitle("Guide"),
				WithMetadata(&DocumentMetadata{Author: "Ada", Description: "How to", Keywords: "go, docs"}),
			},
			wantContains: []string{
				"<title>Guide</title>",
				`<meta name="author" content="Ada">`,
				`<meta name="description" content="How to">`,
				`<meta name="keywords" content="go, docs">`,
			},
		},
		{
			name:         "extra CSS",
			theme:        theme.Light(),
			opts:         []DocumentOption{WithExtraCSS(".x { color: red; }")},
			wantContains: []string{".x { color: red; }"},
		},
		{
			name:         "code style CSS",
			theme:        theme.Light(),
			opts:         []DocumentOption{WithCodeStyle("monokai")},
			wantContains: []string{".md-preview .chroma"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ToFullHTML("<p>body</p>", tt.theme, tt.opts...)
			if err != nil {
				t.Fatalf("ToFullHTML() error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q", want)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("output should not contain %q", notWant)
				}
			}
		})
	}
}

func TestToFullHTML_UnknownCodeStyle(t *testing.T) {
	t.Parallel()

	_, err := ToFullHTML("", theme.Light(), WithCodeStyle("nope"))
	if !errors.Is(err, ErrUnknownCodeStyle) {
		t.Errorf("ToFullHTML() error = %v, want ErrUnknownCodeStyle", err)
	}
}

func TestEngine_ToFullHTML_CodeStyle(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, WithSyntaxHighlighting("monokai"))

	got, err := e.ToFullHTML("<p>x</p>", theme.Light())
	if err != nil {
		t.Fatalf("ToFullHTML() error: %v", err)
	}
	if !strings.Contains(got, ".md-preview .chroma") {
		t.Error("highlighting engine should include code style CSS")
	}

	got, err = e.ToFullHTML("<p>x</p>", theme.Light(), WithCodeStyle(""))
	if err != nil {
		t.Fatalf("ToFullHTML() error: %v", err)
	}
	if strings.Contains(got, ".chroma") {
		t.Error("WithCodeStyle(\"\") should drop the engine code style")
	}
}

func TestToFullHTML_StyleBlockOrder(t *testing.T) {
	t.Parallel()

	got, err := ToFullHTML("", theme.Light(), WithExtraCSS("/* user */"))
	if err != nil {
		t.Fatalf("ToFullHTML() error: %v", err)
	}

	root := strings.Index(got, ":root {")
	sheet := strings.Index(got, ".md-preview h1")
	zebra := strings.Index(got, "nth-child(even)")
	user := strings.Index(got, "/* user */")
	if root < 0 || sheet < 0 || zebra < 0 || user < 0 {
		t.Fatalf("missing style sections: root=%d sheet=%d zebra=%d user=%d", root, sheet, zebra, user)
	}
	if !(root < sheet && sheet < zebra && zebra < user) {
		t.Errorf("style order = root %d, sheet %d, zebra %d, user %d; want ascending", root, sheet, zebra, user)
	}
}

func TestToFullHTML_EndToEnd(t *testing.T) {
	t.Parallel()

	doc, err := Parse(context.Background(), "---\ntitle: Report\nauthor: Ada\n---\n\n# Results\n\n<script>x()</script>")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	out, err := ToFullHTML(doc.HTML, theme.Light(),
		WithTitle(doc.Metadata["title"]),
		WithMetadata(DocumentMetadataFromMap(doc.Metadata)),
	)
	if err != nil {
		t.Fatalf("ToFullHTML() error: %v", err)
	}

	for _, want := range []string{"<title>Report</title>", `content="Ada"`, `<h1 id="results">Results</h1>`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("output should not contain <script>")
	}
}

// ---------------------------------------------------------------------------
// TestStylesheet - Linked CSS
// ---------------------------------------------------------------------------

func TestEngine_Stylesheet(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	css, err := e.Stylesheet(theme.Dark(), ".extra {}")
	if err != nil {
		t.Fatalf("Stylesheet() error: %v", err)
	}

	if !strings.HasPrefix(css, ":root {\n") {
		t.Errorf("stylesheet should start with :root block, got %q", css[:min(len(css), 40)])
	}
	for _, want := range []string{"--color-background: #0f172a;", ".md-preview h1", ".extra {}"} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing %q", want)
		}
	}
	if strings.Contains(css, "<style>") || strings.Contains(css, "<html") {
		t.Error("stylesheet should be plain CSS")
	}
	if !strings.HasSuffix(css, "\n") {
		t.Error("stylesheet should end with a newline")
	}
}

func TestCodeStyles(t *testing.T) {
	t.Parallel()

	names := CodeStyles()
	found := false
	for _, n := range names {
		if n == "github" {
			found = true
		}
	}
	if !found {
		t.Errorf("CodeStyles() = %v, want to contain github", names)
	}
}
