package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Overrides is a JSON-shaped partial theme, as decoded from JSON or YAML.
type Overrides map[string]any

// Merge returns a copy of base with overrides applied one level deep.
//
// For each top-level key, an object value is merged key by key onto the
// matching group; nested objects such as typography.h1 replace the whole
// heading. Any other value replaces the key outright. A nil value leaves
// the key unchanged. base is never modified. A result that no longer fits
// the theme schema fails with ErrInvalidOverrides.
func Merge(base Theme, overrides Overrides) (Theme, error) {
	if len(overrides) == 0 {
		return Clone(base), nil
	}

	merged, err := toJSONMap(base)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidOverrides, err)
	}
	normalized, err := toJSONMap(overrides)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidOverrides, err)
	}

	for key, value := range normalized {
		if value == nil {
			continue
		}
		patch, isObject := value.(map[string]any)
		group, hasGroup := merged[key].(map[string]any)
		if !isObject || !hasGroup {
			merged[key] = value
			continue
		}
		for leaf, leafValue := range patch {
			group[leaf] = leafValue
		}
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidOverrides, err)
	}

	var out Theme
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidOverrides, err)
	}
	return out, nil
}

// toJSONMap converts v to its generic JSON object form.
func toJSONMap(v any) (map[string]any, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
