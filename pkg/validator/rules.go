package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
)

var patterns sync.Map // pattern string -> *regexp.Regexp

func compiled(pattern string) *regexp.Regexp {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := patterns.LoadOrStore(pattern, regexp.MustCompile(pattern))
	return re.(*regexp.Regexp)
}

// RequiredString fails for empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// MaxLenString limits value to max runes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", max),
			"validation.max_length", map[string]any{"max": max}),
	}
}

// MatchesRegex requires a non-empty value matching pattern. Compiled
// patterns are cached, pattern must be a valid regular expression.
func MatchesRegex(field, value, pattern, description string) Rule {
	re := compiled(pattern)
	return Rule{
		Check: func() bool { return value != "" && re.MatchString(value) },
		Error: newError(field, fmt.Sprintf("must match %s pattern", description),
			"validation.regex_pattern", map[string]any{"pattern": pattern, "description": description}),
	}
}

// InListString requires value to be one of allowed.
func InListString(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: newError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			"validation.in_list", map[string]any{"allowed_values": allowed}),
	}
}

// MinNum requires value >= min.
func MinNum[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: newError(field, fmt.Sprintf("must be at least %v", min),
			"validation.min_value", map[string]any{"min": min}),
	}
}

// MaxNum requires value <= max.
func MaxNum[T Numeric](field string, value, max T) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Error: newError(field, fmt.Sprintf("must be at most %v", max),
			"validation.max_value", map[string]any{"max": max}),
	}
}

// ValidUUID accepts only the 36 character hyphenated form, in any letter case.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			// uuid.Parse also accepts braced, URN and unhyphenated spellings.
			if len(value) != 36 || value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
				return false
			}
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: newError(field, "must be a valid UUID", "validation.uuid", nil),
	}
}
