package md2html

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// pdfRenderer prints a local HTML file to PDF. Tests swap in a mock so
// most of the exporter runs without Chrome.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

var (
	_ pdfRenderer          = (*rodRenderer)(nil)
	_ pipeline.PrintStyler = pipeline.HeadStyler{}
)

type pdfOptions struct {
	Page *PageSettings
}

// defaultTimeout bounds a render when the context carries no deadline.
const defaultTimeout = 30 * time.Second

// rodRenderer drives one headless Chrome through go-rod. The browser starts
// on the first render; rod downloads Chromium when none is installed.
type rodRenderer struct {
	timeout time.Duration

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// noSandbox reports whether Chrome must run without its sandbox, which
// containers and most CI runners do not support.
func noSandbox() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" || hints.InCI()
}

// start launches Chrome and connects to it. Callers hold r.mu.
func (r *rodRenderer) start() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().NoSandbox(noSandbox())
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		stopLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher, r.browser = l, b
	return nil
}

// Close shuts the browser down. Chrome helper processes are killed with the
// process group so none outlive the renderer.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
	}
	if r.launcher != nil {
		stopLauncher(r.launcher)
	}
	r.browser, r.launcher = nil, nil
	return err
}

func stopLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		_ = killBrowserTree(pid)
	}
	l.Kill()
	l.Cleanup()
}

// RenderFromFile loads filePath in a new tab and prints it. A context error
// is returned as is; browser failures wrap the matching Err* sentinel.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.start(); err != nil {
		return nil, err
	}

	renderCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	page, err := r.browser.Context(renderCtx).Page(proto.TargetCreateTarget{URL: localFileURL(filePath)})
	if err != nil {
		return nil, renderError(ctx, ErrPageCreate, err)
	}
	defer func() { _ = page.Context(context.Background()).Close() }()

	if err := page.WaitLoad(); err != nil {
		return nil, renderError(ctx, ErrPageLoad, err)
	}

	stream, err := page.PDF(printOptions(opts))
	if err != nil {
		return nil, renderError(ctx, ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// renderError prefers the caller's context error, so cancellation is not
// reported as a browser failure.
func renderError(ctx context.Context, sentinel, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func localFileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// printOptions maps page settings onto Chrome's print parameters, in inches.
func printOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	var page *PageSettings
	if opts != nil {
		page = opts.Page
	}
	width, height, margin := page.dimensions()

	return &proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
		PrintBackground: true,
	}
}

// PDFOption configures a PDFExporter.
type PDFOption func(*PDFExporter)

// WithTimeout sets the page load timeout used when the context has no deadline.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) PDFOption {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(e *PDFExporter) {
		e.timeout = d
	}
}

// WithPageSettings sets the paper size, orientation and margin.
// Nil means letter portrait with half-inch margins.
func WithPageSettings(p *PageSettings) PDFOption {
	return func(e *PDFExporter) {
		e.page = p
	}
}

// PDFExporter prints full HTML documents to PDF with headless Chrome.
// The browser starts on first use; call Close to release it. A PDFExporter
// renders one document at a time; use ExporterPool for parallel output.
type PDFExporter struct {
	timeout     time.Duration
	page        *PageSettings
	printStyler pipeline.PrintStyler
	renderer    pdfRenderer
}

// NewPDFExporter creates a PDFExporter. No browser is started until ToPDF.
func NewPDFExporter(opts ...PDFOption) *PDFExporter {
	e := &PDFExporter{
		timeout:     defaultTimeout,
		printStyler: pipeline.HeadStyler{},
	}
	for _, opt := range opts {
		opt(e)
	}

	// Create renderer if not injected (e.g., by tests)
	if e.renderer == nil {
		e.renderer = newRodRenderer(e.timeout)
	}
	return e
}

// ToPDF renders a document produced by ToFullHTML and returns the PDF bytes.
// Print rules for page breaks are added before rendering. Relative image
// paths should already be absolute; see the CLI's handling of source
// directories.
func (e *PDFExporter) ToPDF(ctx context.Context, fullHTML string) ([]byte, error) {
	if err := e.page.Validate(); err != nil {
		return nil, err
	}

	printCSS, err := assets.PrintStylesheet()
	if err != nil {
		return nil, fmt.Errorf("loading print stylesheet: %w", err)
	}

	htmlContent := e.printStyler.AddPrintStyle(ctx, fullHTML, printCSS)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.TempFile("md2html-*.html", []byte(htmlContent))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath, &pdfOptions{Page: e.page})
}

// Close releases browser resources (headless Chrome).
func (e *PDFExporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}
