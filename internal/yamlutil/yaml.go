// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files are decoded strictly; errors carry the offending line so the
// CLI can print them as is.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict decodes data onto v, rejecting unknown fields. Fields
// absent from data keep the value v already holds, so callers decode onto a
// populated default.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return &DecodeError{err: err}
	}
	return nil
}

// DecodeError is a YAML syntax or type error.
type DecodeError struct {
	err error
}

// Error returns the one-line description of the failure.
func (e *DecodeError) Error() string {
	return "yamlutil: " + firstLine(e.err.Error())
}

// Source returns the description followed by the annotated source lines
// around the failure, without colours.
func (e *DecodeError) Source() string {
	return yaml.FormatError(e.err, false, true)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
