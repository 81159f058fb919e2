package validator

import (
	"bytes"
	"encoding/json"
)

// ValidJSON validates that raw holds a single well-formed JSON document.
func ValidJSON(field string, raw []byte) Rule {
	return Rule{
		Check: func() bool {
			return len(bytes.TrimSpace(raw)) > 0 && json.Valid(raw)
		},
		Error: newError(field, "must be valid JSON", "validation.json", nil),
	}
}

// JSONKind validates that raw is a JSON document of the given kind:
// "boolean", "number", "string", "array", "object" or "null".
func JSONKind(field string, raw []byte, kind string) Rule {
	return Rule{
		Check: func() bool {
			return jsonKind(raw) == kind
		},
		Error: newError(field, "must be a JSON "+kind, "validation.json_kind", map[string]any{"kind": kind}),
	}
}

func jsonKind(raw []byte) string {
	if !json.Valid(raw) {
		return ""
	}
	trimmed := bytes.TrimSpace(raw)
	switch trimmed[0] {
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	case '"':
		return "string"
	case '[':
		return "array"
	case '{':
		return "object"
	default:
		return "number"
	}
}
