package feature

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/akademate/pkg/validator"
)

const keyPattern = `^[a-z0-9][a-z0-9._-]{0,127}$`

// ValidateDefinition checks the operator-supplied parts of a definition.
// The returned error wraps ErrInvalidFlag and validator.ValidationErrors.
func ValidateDefinition(def Definition, ranks PlanRanks) error {
	rules := []validator.Rule{
		validator.MatchesRegex("key", def.Key, keyPattern, "flag key"),
		validator.InListString("type", string(def.Type), []string{
			string(TypeBoolean), string(TypePercentage), string(TypeVariant),
		}),
		validator.MaxLenString("description", def.Description, 512),
		validator.ValidJSON("defaultValue", def.DefaultValue),
	}

	switch def.Type {
	case TypeBoolean:
		rules = append(rules, validator.JSONKind("defaultValue", def.DefaultValue, "boolean"))
	case TypePercentage:
		rules = append(rules, validator.JSONKind("defaultValue", def.DefaultValue, "number"))
		if n, ok := def.DefaultValue.AsNumber(); ok {
			rules = append(rules,
				validator.MinNum("defaultValue", n, 0),
				validator.MaxNum("defaultValue", n, 100),
			)
		}
	}

	if def.PlanRequirement != "" {
		rules = append(rules, validator.InListString("planRequirement", def.PlanRequirement, ranks.Plans()))
	}

	seen := make(map[string]struct{}, len(def.Overrides))
	for i, o := range def.Overrides {
		field := fmt.Sprintf("overrides[%d].tenantId", i)
		rules = append(rules, validator.ValidUUID(field, o.TenantID))
		_, dup := seen[o.TenantID]
		rules = append(rules, validator.Rule{
			Check: func() bool { return !dup },
			Error: validator.ValidationError{
				Field:          field,
				Message:        "duplicate tenant override",
				TranslationKey: "validation.unique",
				TranslationValues: map[string]any{
					"field": field,
				},
			},
		})
		seen[o.TenantID] = struct{}{}
	}

	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrInvalidFlag, err)
	}
	return nil
}
