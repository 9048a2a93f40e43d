package md2html

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing bounds.
const (
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browsers; each Chrome costs about 200MB.
	MaxPoolSize = 8

	// cpuPerBrowser leaves headroom for Chrome's renderer processes.
	cpuPerBrowser = 2
)

// ErrPoolClosed is returned by Acquire once the pool is closed.
var ErrPoolClosed = errors.New("exporter pool closed")

// ExporterPool shares up to Size PDFExporters between goroutines. Each
// exporter owns one browser, started on its first export, so the pool costs
// nothing until PDFs are actually rendered.
type ExporterPool struct {
	opts  []PDFOption
	slots chan struct{}     // one token per exporter that may be created
	idle  chan *PDFExporter // released exporters
	done  chan struct{}

	mu     sync.Mutex
	all    []*PDFExporter
	closed bool
}

// NewExporterPool returns a pool of at most n exporters built with opts.
// n below 1 is treated as 1.
func NewExporterPool(n int, opts ...PDFOption) *ExporterPool {
	n = max(n, 1)
	return &ExporterPool{
		opts:  opts,
		slots: make(chan struct{}, n),
		idle:  make(chan *PDFExporter, n),
		done:  make(chan struct{}),
	}
}

// Acquire returns an idle exporter, creates one while the pool is below
// capacity, or waits for a Release. It fails with ErrPoolClosed after Close
// and with the context error when ctx ends first.
func (p *ExporterPool) Acquire(ctx context.Context) (*PDFExporter, error) {
	select {
	case <-p.done:
		return nil, ErrPoolClosed
	default:
	}
	select {
	case exp := <-p.idle:
		return exp, nil
	default:
	}

	select {
	case <-p.done:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case exp := <-p.idle:
		return exp, nil
	case p.slots <- struct{}{}:
		return p.create()
	}
}

func (p *ExporterPool) create() (*PDFExporter, error) {
	exp := NewPDFExporter(p.opts...)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = exp.Close()
		return nil, ErrPoolClosed
	}
	p.all = append(p.all, exp)
	return exp, nil
}

// Release hands exp back for reuse. After Close it is a no-op: Close already
// shut down every exporter the pool created.
func (p *ExporterPool) Release(exp *PDFExporter) {
	if exp == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// idle has room for every exporter, so this never blocks.
	p.idle <- exp
}

// Close shuts down every exporter the pool created and wakes blocked
// Acquire calls. It is safe to call more than once.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	all := p.all
	p.mu.Unlock()

	var errs []error
	for _, exp := range all {
		if err := exp.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return cap(p.slots)
}

// Created returns how many exporters the pool has built so far.
func (p *ExporterPool) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all)
}

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize]. The CLI imports
// automaxprocs, so GOMAXPROCS follows container CPU quotas.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuPerBrowser, MinPoolSize), MaxPoolSize)
}
