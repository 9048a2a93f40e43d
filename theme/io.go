package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Export returns t as JSON indented with two spaces, fields in schema order.
func Export(t Theme) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return "", fmt.Errorf("encoding theme %q: %w", t.Name, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Import parses a theme exported by Export or written by hand.
//
// The typography, colors and spacing groups must be present as objects.
// Any other missing group or leaf is filled from the light theme, so a
// partial file still yields a complete theme. Errors match ErrThemeImport;
// structural failures also match ErrInvalidThemeStructure.
func Import(data string) (Theme, error) {
	var doc any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrThemeImport, err)
	}

	schema, err := shapeSchema()
	if err != nil {
		return Theme{}, fmt.Errorf("%w: compiling shape schema: %v", ErrThemeImport, err)
	}
	if err := validateDocument(schema, doc); err != nil {
		return Theme{}, fmt.Errorf("%w: %w: %v", ErrThemeImport, ErrInvalidThemeStructure, err)
	}

	t := light
	t.Name = ""
	t.Version = 0
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrThemeImport, err)
	}

	if t.Version < 0 || t.Version > SchemaVersion {
		return Theme{}, fmt.Errorf("%w: %w: %d", ErrThemeImport, ErrUnsupportedVersion, t.Version)
	}

	return t, nil
}
