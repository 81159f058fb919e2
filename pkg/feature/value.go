package feature

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Value is a flag value stored as an opaque JSON document.
// Boolean flags carry a JSON bool, percentage flags a JSON number and
// variant flags any JSON document. An empty Value and JSON null are both
// treated as absent.
type Value json.RawMessage

var jsonNull = []byte("null")

// Bool returns a Value holding b.
func Bool(b bool) Value {
	if b {
		return Value("true")
	}
	return Value("false")
}

// Percent returns a Value holding the rollout percentage p.
func Percent(p float64) Value {
	return Value(strconv.FormatFloat(p, 'f', -1, 64))
}

// Variant encodes v as JSON and returns it as a Value.
func Variant(v any) (Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	return Value(b), nil
}

// MustVariant is like Variant but panics on encoding errors.
func MustVariant(v any) Value {
	val, err := Variant(v)
	if err != nil {
		panic(err)
	}
	return val
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	trimmed := bytes.TrimSpace(v)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

// AsBool returns the boolean held by v. The second result is false when v
// is not a JSON bool.
func (v Value) AsBool() (bool, bool) {
	switch string(bytes.TrimSpace(v)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// AsNumber returns the number held by v. The second result is false when v
// is not a JSON number.
func (v Value) AsNumber() (float64, bool) {
	if v.IsNull() {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, false
	}
	return n, true
}

// Decode unmarshals the value into dst.
func (v Value) Decode(dst any) error {
	if v.IsNull() {
		return nil
	}
	return json.Unmarshal(v, dst)
}

// Equal reports whether both values encode the same JSON document,
// ignoring insignificant whitespace.
func (v Value) Equal(other Value) bool {
	if v.IsNull() || other.IsNull() {
		return v.IsNull() == other.IsNull()
	}
	var a, b bytes.Buffer
	if json.Compact(&a, v) != nil || json.Compact(&b, other) != nil {
		return bytes.Equal(v, other)
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// Clone returns a copy that does not share memory with v.
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}
	return bytes.Clone(v)
}

// String returns the JSON text of the value.
func (v Value) String() string {
	if v.IsNull() {
		return "null"
	}
	return string(v)
}

// MarshalJSON implements json.Marshaler. Absent values encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return jsonNull, nil
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if v == nil {
		return errors.New("feature.Value: UnmarshalJSON on nil pointer")
	}
	*v = append((*v)[0:0], data...)
	return nil
}
