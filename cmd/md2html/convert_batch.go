package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrExporterInit = errors.New("failed to acquire PDF exporter")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string // empty unless a PDF was written
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently with params.workers workers.
// With PDF export enabled, each worker holds one exporter for its lifetime.
// Results keep the order of files.
func convertBatch(ctx context.Context, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := params.workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var exp Exporter
			if params.pool != nil {
				var err error
				if exp, err = params.pool.Acquire(ctx); err != nil {
					for idx := range jobs {
						results[idx] = ConversionResult{
							InputPath: files[idx].InputPath,
							Err:       fmt.Errorf("%w: %w", ErrExporterInit, err),
						}
					}
					return
				}
				defer params.pool.Release(exp)
			}

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, exp, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
// exp may be nil, in which case no PDF is written.
func convertFile(ctx context.Context, exp Exporter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	cfg := params.cfg
	doc, err := params.engine.Parse(ctx, string(content),
		md2html.WithSanitize(cfg.Render.Sanitize),
		md2html.WithExtractMetadata(cfg.Render.ExtractMetadata),
	)
	if err != nil {
		return fail(err)
	}

	// Links between converted files point at their HTML outputs
	fragment, err := pipeline.RewriteMarkdownLinks(doc.HTML)
	if err != nil {
		return fail(fmt.Errorf("rewriting links: %w", err))
	}

	output := fragment
	if !cfg.Document.Fragment {
		output, err = buildDocument(params, fragment, doc.Metadata, f, cfg.Document.InlineStyles)
		if err != nil {
			return fail(err)
		}
	}

	if err := fileutil.WriteFile(f.OutputPath, []byte(output)); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if exp == nil {
		result.Duration = time.Since(start)
		return result
	}

	// The browser loads the document from a temp file, so local images and
	// links must be absolute and styles inlined.
	printable, err := pipeline.RewriteRelativePaths(doc.HTML, filepath.Dir(f.InputPath))
	if err != nil {
		return fail(fmt.Errorf("rewriting paths: %w", err))
	}
	printable, err = buildDocument(params, printable, doc.Metadata, f, true)
	if err != nil {
		return fail(err)
	}

	pdf, err := exp.ToPDF(ctx, printable)
	if err != nil {
		return fail(err)
	}

	pdfPath := f.PDFPath()
	if err := fileutil.WriteFile(pdfPath, pdf); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	result.PDFPath = pdfPath

	result.Duration = time.Since(start)
	return result
}

// buildDocument wraps fragment into a themed document. Title and meta
// values are plain text from frontmatter, flags or file names and are
// escaped here: the wrapper writes them as is.
func buildDocument(params *conversionParams, fragment string, metadata map[string]string, f FileToConvert, inline bool) (string, error) {
	doc := params.cfg.Document
	opts := []md2html.DocumentOption{
		md2html.WithTitle(html.EscapeString(documentTitle(doc.Title, metadata, f.InputPath))),
		md2html.WithMetadata(md2html.DocumentMetadataFromMap(metadata).Escaped()),
		md2html.WithInlineStyles(inline),
	}
	if inline {
		opts = append(opts, md2html.WithExtraCSS(params.extraCSS))
	} else {
		opts = append(opts, md2html.WithStylesheetHref(doc.Stylesheet))
	}
	return params.engine.ToFullHTML(fragment, params.theme, opts...)
}

// documentTitle picks the title: config or flag, then the frontmatter
// title, then the file name without extension.
func documentTitle(configured string, metadata map[string]string, inputPath string) string {
	if configured != "" {
		return configured
	}
	if title := metadata["title"]; title != "" {
		return title
	}
	return strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		outputs := r.OutputPath
		if r.PDFPath != "" {
			outputs += ", " + r.PDFPath
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, outputs, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputs)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// batchError reports failed conversions. It unwraps to each failure so
// exit codes follow the underlying errors.
type batchError struct {
	failed int
	errs   []error
}

func newBatchError(results []ConversionResult) error {
	e := &batchError{}
	for _, r := range results {
		if r.Err != nil {
			e.failed++
			e.errs = append(e.errs, r.Err)
		}
	}
	if e.failed == 0 {
		return nil
	}
	return e
}

func (e *batchError) Error() string {
	if e.failed == 1 {
		return e.errs[0].Error()
	}
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}
