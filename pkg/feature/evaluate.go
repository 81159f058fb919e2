package feature

// Evaluate computes the effective value of def for a single tenant.
//
// An override registered for tenantID replaces the default value. Tenants
// that fail the plan check get false for boolean and percentage flags and
// the base value for variant flags. Eligible percentage flags compare the
// tenant bucket against the rollout number, anything else passes the base
// value through. A nil eligible func treats every tenant as eligible.
func Evaluate(def Definition, tenantID, tenantPlan string, eligible EligibilityFunc) Result {
	res := Result{
		Key:          def.Key,
		Type:         def.Type,
		DefaultValue: def.DefaultValue.Clone(),
		Eligible:     true,
	}
	if def.PlanRequirement != "" {
		req := def.PlanRequirement
		res.PlanRequirement = &req
	}

	if o, ok := def.Override(tenantID); ok && !o.Value.IsNull() {
		res.OverrideValue = o.Value.Clone()
	}

	if eligible != nil {
		res.Eligible = eligible(tenantPlan, def.PlanRequirement)
	}

	base := res.DefaultValue
	if res.OverrideValue != nil {
		base = res.OverrideValue
	}

	switch {
	case !res.Eligible && def.Type == TypeVariant:
		res.EffectiveValue = base.Clone()
	case !res.Eligible:
		res.EffectiveValue = Bool(false)
	case def.Type == TypePercentage:
		rollout, _ := base.AsNumber()
		res.EffectiveValue = Bool(float64(Bucket(tenantID)) < rollout)
	default:
		res.EffectiveValue = base.Clone()
	}

	return res
}
