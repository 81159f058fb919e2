package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/akademate/pkg/validator"
)

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  validator.Rule
		valid bool
	}{
		{"required ok", validator.RequiredString("name", "Acme"), true},
		{"required blank", validator.RequiredString("name", "  "), false},
		{"max len ok", validator.MaxLenString("description", "héllo", 5), true},
		{"max len too long", validator.MaxLenString("description", "héllo!", 5), false},
		{"regex ok", validator.MatchesRegex("key", "beta-rollout", `^[a-z-]+$`, "slug"), true},
		{"regex mismatch", validator.MatchesRegex("key", "Beta", `^[a-z-]+$`, "slug"), false},
		{"regex empty", validator.MatchesRegex("key", "", `^.*$`, "anything"), false},
		{"in list ok", validator.InListString("plan", "pro", []string{"starter", "pro"}), true},
		{"in list miss", validator.InListString("plan", "gold", []string{"starter", "pro"}), false},
		{"min ok", validator.MinNum("rollout", 0.0, 0), true},
		{"min below", validator.MinNum("rollout", -0.5, 0), false},
		{"max ok", validator.MaxNum("rollout", 100, 100), true},
		{"max above", validator.MaxNum("rollout", 100.1, 100), false},
		{"uuid ok", validator.ValidUUID("tenantId", "11111111-1111-1111-1111-111111111111"), true},
		{"uuid upper", validator.ValidUUID("tenantId", "0B7C6F1E-8F3E-4C1A-9D2E-3F4A5B6C7D8E"), true},
		{"uuid braced", validator.ValidUUID("tenantId", "{11111111-1111-1111-1111-111111111111}"), false},
		{"uuid urn", validator.ValidUUID("tenantId", "urn:uuid:11111111-1111-1111-1111-111111111111"), false},
		{"uuid compact", validator.ValidUUID("tenantId", "11111111111111111111111111111111"), false},
		{"uuid bad hex", validator.ValidUUID("tenantId", "1111111g-1111-1111-1111-111111111111"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, tt.rule.Check())
			assert.NotEmpty(t, tt.rule.Error.Field)
			assert.NotEmpty(t, tt.rule.Error.TranslationKey)
			assert.Equal(t, tt.rule.Error.Field, tt.rule.Error.TranslationValues["field"])
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(
			validator.RequiredString("name", "Acme"),
			validator.InListString("plan", "pro", []string{"pro"}),
		))
	})

	t.Run("failures are collected", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", ""),
			validator.MaxLenString("name", "abcdef", 3),
			validator.InListString("plan", "gold", []string{"pro"}),
			validator.MinNum("rollout", 5, 0),
		)
		require.Error(t, err)

		wrapped := fmt.Errorf("create tenant: %w", err)
		assert.True(t, validator.IsValidationError(wrapped))

		verrs := validator.ExtractValidationErrors(errors.Join(errors.New("context"), err))
		require.Len(t, verrs, 3)
		assert.True(t, verrs.Has("name"))
		assert.True(t, verrs.Has("plan"))
		assert.False(t, verrs.Has("rollout"))
		assert.Equal(t, []string{"name", "plan"}, verrs.Fields())
		assert.Len(t, verrs.Get("name"), 2)
		assert.Contains(t, err.Error(), "plan: must be one of: pro")
	})

	t.Run("non validation errors", func(t *testing.T) {
		t.Parallel()
		assert.False(t, validator.IsValidationError(errors.New("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}
