package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoFilesFound       = errors.New("no markdown files found")
)

// allFiles matches every file at any depth below a directory. Markdown
// files are picked out with isMarkdown, which ignores case.
const allFiles = "**/*"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string // HTML output
}

// PDFPath returns the PDF written next to the HTML output.
func (f FileToConvert) PDFPath() string {
	return fileutil.ReplaceExt(f.OutputPath, ".pdf")
}

// discoverFiles expands every input into the Markdown files to convert.
// An input is a file, a directory searched recursively, or a doublestar
// glob such as "docs/**/*.md". Files found twice are converted once.
func discoverFiles(inputs []string, outputDir string) ([]FileToConvert, error) {
	seen := make(map[string]bool)
	var files []FileToConvert

	add := func(path, baseDir string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		files = append(files, FileToConvert{
			InputPath:  clean,
			OutputPath: resolveOutputPath(clean, outputDir, baseDir),
		})
	}

	for _, input := range inputs {
		if isGlob(input) {
			matches, base, err := expandGlob(input)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				add(m, base)
			}
			continue
		}

		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateMarkdownExtension(input); err != nil {
				return nil, err
			}
			add(input, "")
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(input), allFiles, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", input, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if isMarkdown(m) {
				add(filepath.Join(input, filepath.FromSlash(m)), input)
			}
		}
	}

	return files, nil
}

// isGlob reports whether s contains glob metacharacters.
func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// expandGlob returns the Markdown files matching pattern and the static
// directory prefix of the pattern, used to mirror the tree in the output.
func expandGlob(pattern string) ([]string, string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, "", fmt.Errorf("%w: invalid glob %q", ErrUsage, pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, "", fmt.Errorf("expanding %s: %w", pattern, err)
	}

	base, _ := splitGlob(pattern)

	out := matches[:0]
	for _, m := range matches {
		if isMarkdown(m) {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, base, nil
}

// splitGlob splits pattern into its static directory prefix and the
// remaining glob, "." when the pattern starts with a metacharacter.
func splitGlob(pattern string) (base, rest string) {
	base, rest = doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base), rest
}

// resolveOutputPath determines the HTML output path for a markdown file.
// Files found under baseInputDir keep their relative layout below outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil && !strings.HasPrefix(relPath, "..") {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// isMarkdown reports whether path has a .md or .markdown extension, in any
// case. Cross-links are rewritten with the same rule, so README.MD is both
// converted and linked as README.html.
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2html.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2html.MaxPoolSize)
	}
	return nil
}
