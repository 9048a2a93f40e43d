// Package md2html converts Markdown into sanitized HTML fragments and themed
// standalone HTML documents, with optional PDF export through headless Chrome.
//
// # Quick Start
//
// Parse Markdown and wrap the fragment into a document:
//
//	doc, err := md2html.Parse(ctx, "---\ntitle: Notes\n---\n\n# Hello\n\nWorld")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := md2html.ToFullHTML(doc.HTML, theme.Light(),
//	    md2html.WithTitle(html.EscapeString(doc.Metadata["title"])),
//	    md2html.WithMetadata(md2html.DocumentMetadataFromMap(doc.Metadata).Escaped()),
//	)
//	os.WriteFile("notes.html", []byte(page), 0644)
//
// Parse splits a leading frontmatter block into doc.Metadata and returns the
// rendered body in doc.HTML. Empty input yields an empty fragment and nil
// metadata. Metadata values are raw text and the document wrapper does not
// escape them, so escape them before they reach the <head>.
//
// # Pipeline
//
//  1. Frontmatter extraction (flat "key: value" lines between "---" fences)
//  2. Markdown preprocessing (line normalization, ==highlight== syntax)
//  3. GitHub Flavored Markdown rendering via goldmark, with heading ids
//  4. Sanitization against an allow-list policy via bluemonday
//  5. Optional document wrapping with theme CSS variables
//
// Raw HTML in the Markdown is passed to the renderer and then filtered by the
// sanitizer, which is the only enforcement point. ToFullHTML does not
// sanitize again.
//
// # Configuration
//
// Package-level Parse and ToFullHTML use a shared default Engine. Create an
// Engine to change rendering or sanitization:
//
//	engine, err := md2html.NewEngine(
//	    md2html.WithSyntaxHighlighting("monokai"),
//	    md2html.WithFootnotes(),
//	    md2html.WithPolicyOverrides(&md2html.PolicyOverrides{
//	        AllowedTags: []string{"p", "a", "code", "pre"},
//	    }),
//	)
//
// # Themes
//
// Package theme holds the built-in light, dark and custom themes, deep merge
// of partial overrides and JSON import and export with schema validation.
//
// # PDF Export
//
// PDFExporter prints a document produced by ToFullHTML. Use ExporterPool to
// render several documents in parallel, one browser per exporter:
//
//	pool := md2html.NewExporterPool(4, md2html.WithPageSettings(&md2html.PageSettings{Size: "a4"}))
//	defer pool.Close()
//
//	exp, err := pool.Acquire(ctx)
//	if err != nil {
//		return err
//	}
//	defer pool.Release(exp)
//	pdf, err := exp.ToPDF(ctx, page)
//
// # Custom Assets
//
// Override the document template and stylesheets with a directory:
//
//	assets/
//	├── styles/
//	│   ├── preview.css
//	│   ├── zebra.css
//	│   └── print.css
//	└── templates/
//	    └── document.html
//
// Missing files fall back to the embedded assets.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2html
