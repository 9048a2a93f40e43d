package main

// Notes:
// - This file contains test helpers and mocks used across command tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/theme"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockExporter returns a fixed PDF and records the HTML it received.
type mockExporter struct {
	pdf   []byte
	err   error
	calls atomic.Int32

	mu    sync.Mutex
	htmls []string
}

func (m *mockExporter) ToPDF(_ context.Context, fullHTML string) ([]byte, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.htmls = append(m.htmls, fullHTML)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.pdf, nil
}

// lastHTML returns the last document passed to ToPDF.
func (m *mockExporter) lastHTML() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.htmls) == 0 {
		return ""
	}
	return m.htmls[len(m.htmls)-1]
}

// mockPool hands out the same exporter to every worker.
// A nil exporter simulates a closed pool.
type mockPool struct {
	exp      Exporter
	size     int
	acquired atomic.Int32
	released atomic.Int32
	closed   atomic.Bool
}

func (p *mockPool) Acquire(context.Context) (Exporter, error) {
	p.acquired.Add(1)
	if p.exp == nil {
		return nil, md2html.ErrPoolClosed
	}
	return p.exp, nil
}

func (p *mockPool) Release(Exporter) {
	p.released.Add(1)
}

func (p *mockPool) Size() int {
	return p.size
}

func (p *mockPool) Close() error {
	p.closed.Store(true)
	return nil
}

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers. NewPool returns pool.
func testEnv(pool Pool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := DefaultEnv()
	env.Stdin = strings.NewReader("")
	env.Stdout = &stdout
	env.Stderr = &stderr
	if pool != nil {
		env.NewPool = func(int, ...md2html.PDFOption) Pool { return pool }
	}
	return env, &stdout, &stderr
}

// testParams builds conversion parameters from cfg with the light theme.
func testParams(t *testing.T, cfg *config.Config) *conversionParams {
	t.Helper()

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	return &conversionParams{
		engine:  engine,
		theme:   theme.Light(),
		cfg:     cfg,
		workers: 2,
	}
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
