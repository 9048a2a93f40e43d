// Package fileutil holds the small file and path helpers shared by the
// library and the CLI.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsFileRef reports whether a flag or config value names a file rather than
// a built-in: it contains a path separator or ends with ext, in any case.
//
//	IsFileRef("dark", ".json")          // false
//	IsFileRef("brand.JSON", ".json")    // true
//	IsFileRef("./themes/x", ".json")    // true
//	IsFileRef(`C:\themes\x`, ".json")   // true
func IsFileRef(value, ext string) bool {
	return strings.ContainsAny(value, `/\`) || strings.EqualFold(filepath.Ext(value), ext)
}

// IsCSS reports whether value is inline CSS rather than a file path.
func IsCSS(value string) bool {
	return strings.Contains(value, "{")
}

// ReplaceExt returns path with its extension replaced by ext (including the dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// TempFile writes data to a new file in the system temp directory, named
// after pattern as in os.CreateTemp. The caller must run cleanup.
func TempFile(pattern string, data []byte) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

// WriteFile writes data to path, creating parent directories as needed.
// The data goes to a sibling temp file first and is renamed into place, so
// readers such as a browser reloading the output never see a partial file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmp := f.Name()

	_, err = f.Write(data)
	if err == nil {
		// #nosec G302 -- output files are intended to be readable
		err = f.Chmod(0o644)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
