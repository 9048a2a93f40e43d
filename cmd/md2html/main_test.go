package main

// Notes:
// - poolAdapter: we test Acquire/Release/Size and panic on wrong type. Acquire
//   never launches a browser since exporters start Chrome on first export.
// - isCommand: we test command name matching.
// - runMain: we test exit codes for dispatch, usage and I/O errors, plus one
//   end-to-end HTML conversion. PDF export needs Chrome and is covered by the
//   batch tests through a mock pool.
// - printError/hintFor: we test that hints follow the error.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Wrong exporter type
// ---------------------------------------------------------------------------

// wrongTypeExporter is an Exporter that is NOT *md2html.PDFExporter.
type wrongTypeExporter struct{}

func (w *wrongTypeExporter) ToPDF(_ context.Context, _ string) ([]byte, error) {
	return []byte("%PDF-1.4 mock"), nil
}

// ---------------------------------------------------------------------------
// TestPoolAdapter_Release_WrongType - Pool adapter type safety
// ---------------------------------------------------------------------------

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	pool := md2html.NewExporterPool(1)
	defer pool.Close()

	adapter := &poolAdapter{pool: pool}

	// Release with wrong type should panic (programmer error)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic message should contain 'unexpected type', got %q", msg)
		}
	}()

	adapter.Release(&wrongTypeExporter{})
}

// ---------------------------------------------------------------------------
// TestPoolAdapter_Size - Pool size reporting
// ---------------------------------------------------------------------------

func TestPoolAdapter_Size(t *testing.T) {
	t.Parallel()

	pool := md2html.NewExporterPool(3)
	defer pool.Close()

	adapter := &poolAdapter{pool: pool}

	if adapter.Size() != 3 {
		t.Errorf("Size() = %d, want 3", adapter.Size())
	}
}

// ---------------------------------------------------------------------------
// TestPoolAdapter_AcquireRelease - Exporter round trip
// ---------------------------------------------------------------------------

func TestPoolAdapter_AcquireRelease(t *testing.T) {
	t.Parallel()

	adapter := newExporterPool(1)
	defer adapter.Close()

	exp, err := adapter.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error on open pool: %v", err)
	}
	if _, ok := exp.(*md2html.PDFExporter); !ok {
		t.Errorf("Acquire() type = %T, want *md2html.PDFExporter", exp)
	}

	// Must not panic
	adapter.Release(exp)
}

// ---------------------------------------------------------------------------
// TestPoolAdapter_AcquireAfterClose - Closed pool yields ErrPoolClosed
// ---------------------------------------------------------------------------

func TestPoolAdapter_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	adapter := newExporterPool(1)
	if err := adapter.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	exp, err := adapter.Acquire(context.Background())
	if !errors.Is(err, md2html.ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
	if exp != nil {
		t.Errorf("Acquire() after Close = %T, want nil interface", exp)
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"convert", true},
		{"themes", true},
		{"sanitize", true},
		{"doctor", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"Convert", false},
		{"doc.md", false},
		{"--help", false},
		{"", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.arg); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ExitCodes - Dispatch and error mapping
// ---------------------------------------------------------------------------

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "plain")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no arguments prints usage",
			args:       []string{"md2html"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: md2html",
		},
		{
			name:       "unknown command",
			args:       []string{"md2html", "frobnicate"},
			wantCode:   ExitUsage,
			wantStderr: "unknown command: frobnicate",
		},
		{
			name:       "version",
			args:       []string{"md2html", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "go-md2html dev",
		},
		{
			name:       "help",
			args:       []string{"md2html", "help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "help for unknown topic",
			args:       []string{"md2html", "help", "nope"},
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: nope",
		},
		{
			name:       "convert --help exits cleanly",
			args:       []string{"md2html", "convert", "--help"},
			wantCode:   ExitSuccess,
			wantStderr: "Usage: md2html convert",
		},
		{
			name:       "convert with unknown flag",
			args:       []string{"md2html", "convert", "--bogus"},
			wantCode:   ExitUsage,
			wantStderr: "invalid usage",
		},
		{
			name:       "convert missing file",
			args:       []string{"md2html", "convert", filepath.Join(dir, "missing.md")},
			wantCode:   ExitIO,
			wantStderr: "error:",
		},
		{
			name:       "convert wrong extension",
			args:       []string{"md2html", "convert", txt},
			wantCode:   ExitUsage,
			wantStderr: "extension",
		},
		{
			name:       "convert negative workers",
			args:       []string{"md2html", "convert", "-w", "-1", txt},
			wantCode:   ExitUsage,
			wantStderr: "invalid worker count",
		},
		{
			name:       "convert unknown theme",
			args:       []string{"md2html", "convert", "--theme", "neon", txt},
			wantCode:   ExitUsage,
			wantStderr: "theme",
		},
		{
			name:       "convert invalid timeout",
			args:       []string{"md2html", "convert", "-t", "soon", txt},
			wantCode:   ExitUsage,
			wantStderr: "invalid timeout",
		},
		{
			name:       "themes unknown subcommand",
			args:       []string{"md2html", "themes", "paint"},
			wantCode:   ExitUsage,
			wantStderr: "unknown themes command",
		},
		{
			name:       "completion unsupported shell",
			args:       []string{"md2html", "completion", "tcsh"},
			wantCode:   ExitUsage,
			wantStderr: "unsupported shell",
		},
		{
			name:       "sanitize without argument",
			args:       []string{"md2html", "sanitize"},
			wantCode:   ExitUsage,
			wantStderr: "exactly one file",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q, got:\n%s", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q, got:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End-to-end HTML conversion
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "guide.md", "---\ntitle: User Guide\n---\n# Hello\n\n<script>alert(1)</script>\n")

	env, stdout, stderr := testEnv(nil)
	code := runMain([]string{"md2html", "convert", input}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}

	outPath := filepath.Join(dir, "guide.html")
	if !strings.Contains(stdout.String(), "Created "+outPath) {
		t.Errorf("stdout = %q, want Created line", stdout.String())
	}

	html := readFile(t, outPath)
	for _, want := range []string{"<!DOCTYPE html>", "<title>User Guide</title>", "<h1", "Hello"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Error("output should not contain script tags")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ConvertFragmentToOutputDir - Fragment mode and -o
// ---------------------------------------------------------------------------

func TestRunMain_ConvertFragmentToOutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "docs/a.md", "# A\n\nSee [b](b.md).\n")
	writeFile(t, dir, "docs/sub/c.md", "# C\n")
	outDir := filepath.Join(dir, "site")

	env, stdout, stderr := testEnv(nil)
	code := runMain([]string{"md2html", "convert", "--fragment", "-o", outDir, filepath.Join(dir, "docs")}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}

	a := readFile(t, filepath.Join(outDir, "a.html"))
	if strings.Contains(a, "<!DOCTYPE") {
		t.Error("fragment output should not contain a document wrapper")
	}
	if !strings.Contains(a, `href="b.html"`) {
		t.Errorf("markdown link should point at the HTML output, got:\n%s", a)
	}
	if _, err := os.Stat(filepath.Join(outDir, "sub", "c.html")); err != nil {
		t.Errorf("nested output not mirrored: %v", err)
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout missing summary, got:\n%s", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hints follow matching errors
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{
			name:     "unknown theme lists themes",
			err:      fmt.Errorf("%w: %q", ErrUnknownTheme, "neon"),
			wantHint: "light",
		},
		{
			name:     "code style points at list",
			err:      fmt.Errorf("wrap: %w", md2html.ErrUnknownCodeStyle),
			wantHint: "--code-styles",
		},
		{
			name:     "config not found lists paths",
			err:      fmt.Errorf("loading config: %w", &config.NotFoundError{Tried: []string{"work.yaml", "/home/u/.config/go-md2html/work.yaml"}}),
			wantHint: "/home/u/.config/go-md2html/work.yaml",
		},
		{
			name:     "unrelated error has no hint",
			err:      errors.New("boom"),
			wantHint: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.wantHint == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantHint) {
				t.Errorf("hintFor() = %q, want to contain %q", got, tt.wantHint)
			}
		})
	}
}
