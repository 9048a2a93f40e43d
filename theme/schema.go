package theme

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/shape.json
var shapeSchemaJSON []byte

//go:embed schema/strict.json
var strictSchemaJSON []byte

// Schemas compile once; the embedded sources are fixed at build time.
var (
	shapeSchema  = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("shape.json", shapeSchemaJSON) })
	strictSchema = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("strict.json", strictSchemaJSON) })
)

// StrictSchema returns the JSON Schema that ValidateStrict applies.
func StrictSchema() string {
	return string(strictSchemaJSON)
}

func compileSchema(name string, source []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(source)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

// validateDocument checks a decoded JSON document against schema and
// converts failures to a *ValidationError.
func validateDocument(schema *jsonschema.Schema, doc any) error {
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return &ValidationError{Issues: collectIssues(validationErr), Cause: err}
	}
	return &ValidationError{Cause: err}
}

// collectIssues flattens the leaf causes of a jsonschema error.
func collectIssues(err *jsonschema.ValidationError) []ValidationIssue {
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// ValidateStrict checks that data is a complete theme: every group and leaf
// present with the right type and no unknown keys. Failures are returned as
// *ValidationError, which matches ErrInvalidTheme.
func ValidateStrict(data string) error {
	var doc any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return &ValidationError{
			Issues: []ValidationIssue{{Message: err.Error()}},
			Cause:  err,
		}
	}

	schema, err := strictSchema()
	if err != nil {
		return fmt.Errorf("compiling theme schema: %w", err)
	}
	return validateDocument(schema, doc)
}
