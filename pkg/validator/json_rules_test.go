package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/akademate/pkg/validator"
)

func TestValidJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"object", `{"a":1}`, true},
		{"number", `42`, true},
		{"null", `null`, true},
		{"empty", ``, false},
		{"blank", `   `, false},
		{"truncated", `{"a":`, false},
		{"two documents", `1 2`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidJSON("value", []byte(tt.raw)))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, validator.IsValidationError(err))
		})
	}
}

func TestJSONKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		kind string
	}{
		{`true`, "boolean"},
		{` false `, "boolean"},
		{`12.5`, "number"},
		{`-3`, "number"},
		{`"x"`, "string"},
		{`[1]`, "array"},
		{`{}`, "object"},
		{`null`, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, validator.Apply(validator.JSONKind("value", []byte(tt.raw), tt.kind)))
		})
	}

	err := validator.Apply(validator.JSONKind("value", []byte(`"50"`), "number"))
	errs := validator.ExtractValidationErrors(err)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "value", errs[0].Field)
		assert.Equal(t, "must be a JSON number", errs[0].Message)
	}

	assert.Error(t, validator.Apply(validator.JSONKind("value", []byte(`{`), "object")))
}
