package header

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fields decodes the header block as YAML. It reports false when the document
// has no header block.
func Fields(text string) (map[string]any, bool, error) {
	b, ok := Parse(text)
	if !ok {
		return nil, false, nil
	}
	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(b.Body), &fields); err != nil {
		return nil, true, fmt.Errorf("invalid header: %w", err)
	}
	return fields, true, nil
}

// Count returns the study_count stored in the header, if any.
func Count(text string) (int, bool) {
	fields, ok, err := Fields(text)
	if !ok || err != nil {
		return 0, false
	}
	switch v := fields[Field].(type) {
	case int:
		return v, true
	default:
		return 0, false
	}
}
