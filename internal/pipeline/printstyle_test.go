package pipeline

// Notes:
// - HeadStyler: we test placement for documents with and without a head,
//   and that lookalike tags in scripts and comments are skipped.
// These are acceptable gaps: we test observable behavior, not tokenizer internals.

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEscapeStyleText - Closing sequences
// ---------------------------------------------------------------------------

func TestEscapeStyleText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                     "",
		"body { color: red; }": "body { color: red; }",
		"</style>":             `<\/style>`,
		"</STYLE></script>":    `<\/STYLE><\/script>`,
		"</</style>":           `<\/<\/style>`,
	}
	for in, want := range tests {
		if got := escapeStyleText(in); got != want {
			t.Errorf("escapeStyleText(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHeadStyler - Print style placement
// ---------------------------------------------------------------------------

func TestHeadStyler_AddPrintStyle(t *testing.T) {
	t.Parallel()

	const css = "@page { margin: 0; }"
	const block = `<style media="print">@page { margin: 0; }</style>`

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "end of head",
			doc:  "<html><head><title>t</title></head><body>x</body></html>",
			want: "<html><head><title>t</title>" + block + "</head><body>x</body></html>",
		},
		{
			name: "uppercase head",
			doc:  "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			want: "<HTML><HEAD>" + block + "</HEAD><BODY></BODY></HTML>",
		},
		{
			name: "after body start tag",
			doc:  `<body class="doc"><p>x</p></body>`,
			want: `<body class="doc">` + block + `<p>x</p></body>`,
		},
		{
			name: "fragment",
			doc:  "<p>x</p>",
			want: block + "<p>x</p>",
		},
		{
			name: "head close inside script is skipped",
			doc:  `<head><script>var s = "</head>";</script></head>`,
			want: `<head><script>var s = "</head>";</script>` + block + `</head>`,
		},
		{
			name: "head close inside comment is skipped",
			doc:  `<head><!-- </head> --></head>`,
			want: `<head><!-- </head> -->` + block + `</head>`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := HeadStyler{}.AddPrintStyle(context.Background(), tt.doc, css)
			if got != tt.want {
				t.Errorf("AddPrintStyle() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestHeadStyler_NoOp(t *testing.T) {
	t.Parallel()

	doc := "<html><head></head></html>"

	if got := (HeadStyler{}).AddPrintStyle(context.Background(), doc, ""); got != doc {
		t.Errorf("empty CSS changed the document: %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := (HeadStyler{}).AddPrintStyle(ctx, doc, "p{}"); got != doc {
		t.Errorf("cancelled context changed the document: %q", got)
	}
}

func TestHeadStyler_EscapesCSS(t *testing.T) {
	t.Parallel()

	got := HeadStyler{}.AddPrintStyle(context.Background(), "<head></head>", "</style><script>x</script>")
	if strings.Contains(got, "</style><script>") {
		t.Errorf("CSS broke out of the style element: %s", got)
	}
}

func BenchmarkHeadStyler(b *testing.B) {
	doc := "<!DOCTYPE html><html><head><title>t</title></head><body>" +
		strings.Repeat("<p>paragraph</p>", 500) + "</body></html>"
	css := "@page { size: letter; }"
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		_ = HeadStyler{}.AddPrintStyle(ctx, doc, css)
	}
}
