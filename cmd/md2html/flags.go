package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing errors and missing arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds Markdown rendering flags.
type renderFlags struct {
	noSanitize bool
	noMetadata bool
	highlight  bool
	codeStyle  string
	footnotes  bool
	marks      bool
}

// documentFlags holds document wrapper flags.
type documentFlags struct {
	theme      string // Name or theme JSON path
	title      string
	fragment   bool
	linkStyles bool
	stylesheet string
	css        string // CSS file path or inline CSS
	assetPath  string
}

// pdfFlags holds PDF export flags.
type pdfFlags struct {
	enabled     bool
	size        string
	orientation string
	margin      float64
	timeout     string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	watch    bool
	render   renderFlags
	document documentFlags
	pdf      pdfFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addRenderFlags adds Markdown rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "keep raw HTML unfiltered (trusted input only)")
	fs.BoolVar(&f.noMetadata, "no-metadata", false, "render frontmatter as Markdown")
	fs.BoolVar(&f.highlight, "highlight", false, "enable syntax highlighting")
	fs.StringVar(&f.codeStyle, "code-style", "", "syntax highlighting style (implies --highlight)")
	fs.BoolVar(&f.footnotes, "footnotes", false, "enable footnotes")
	fs.BoolVar(&f.marks, "marks", false, "render ==text== as <mark>")
}

// addDocumentFlags adds document wrapper flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.theme, "theme", "", "theme name (light, dark, custom) or JSON file")
	fs.StringVar(&f.title, "title", "", "document title (default: frontmatter title, then file name)")
	fs.BoolVar(&f.fragment, "fragment", false, "write the HTML fragment without document wrapper")
	fs.BoolVar(&f.linkStyles, "link-styles", false, "link an external stylesheet instead of inlining")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "linked stylesheet file name (default: styles.css)")
	fs.StringVar(&f.css, "css", "", "extra CSS file or inline CSS appended to the theme")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template and style directory")
}

// addPDFFlags adds PDF export flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also write a PDF next to each HTML file")
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parseConvertFlags and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.watch, "watch", false, "reconvert files when they change")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addDocumentFlags(fs, &f.document)
	addPDFFlags(fs, &f.pdf)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}

	return f, fs.Args(), nil
}

// usageError wraps a pflag error with ErrUsage. Help requests pass through
// so callers can exit cleanly.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
