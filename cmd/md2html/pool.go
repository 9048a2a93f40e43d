package main

import (
	"context"
	"fmt"

	md2html "github.com/alnah/go-md2html"
)

// Exporter is the interface for PDF export.
type Exporter interface {
	ToPDF(ctx context.Context, fullHTML string) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Exporter = (*md2html.PDFExporter)(nil)

// Pool abstracts exporter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Exporter, error)
	Release(Exporter)
	Size() int
	Close() error
}

// poolAdapter adapts *md2html.ExporterPool to Pool.
type poolAdapter struct {
	pool *md2html.ExporterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newExporterPool creates the production pool. Browsers start lazily on
// the first export.
func newExporterPool(size int, opts ...md2html.PDFOption) Pool {
	return &poolAdapter{pool: md2html.NewExporterPool(size, opts...)}
}

// Acquire returns a nil interface, not a typed nil, on error.
func (a *poolAdapter) Acquire(ctx context.Context) (Exporter, error) {
	exp, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return exp, nil
}

// Release panics when given an exporter this pool did not hand out.
func (a *poolAdapter) Release(e Exporter) {
	exp, ok := e.(*md2html.PDFExporter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", e))
	}
	a.pool.Release(exp)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// resolvePoolSize determines the worker count.
// Priority: explicit flag > MD2HTML_WORKERS > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return md2html.ResolvePoolSize(flagWorkers)
	}
	return md2html.ResolvePoolSize(envWorkers)
}
