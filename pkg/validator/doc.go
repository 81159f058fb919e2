// Package validator builds declarative validation out of small Rule values.
//
// Each rule constructor captures the value to check and returns a Rule
// holding a Check func plus a ValidationError carrying a translation key.
// Apply runs the rules and aggregates failures into ValidationErrors, which
// implements error:
//
//	err := validator.Apply(
//		validator.MatchesRegex("key", def.Key, `^[a-z0-9][a-z0-9._-]*$`, "flag key"),
//		validator.InListString("type", string(def.Type), []string{"boolean", "percentage", "variant"}),
//		validator.MaxNum("defaultValue", rollout, 100),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs.Has("key") {
//		// ...
//	}
package validator
