package feature

import (
	"maps"
	"slices"
)

// Well-known plan names.
const (
	PlanStarter    = "starter"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// PlanRanks orders subscription plans. A higher rank unlocks every flag
// gated on a lower or equal rank.
type PlanRanks map[string]int

// DefaultPlanRanks returns the starter < pro < enterprise ordering.
func DefaultPlanRanks() PlanRanks {
	return PlanRanks{
		PlanStarter:    0,
		PlanPro:        1,
		PlanEnterprise: 2,
	}
}

// EligibilityFunc reports whether a tenant on tenantPlan may receive a
// non-default evaluation of a flag gated on requirement.
type EligibilityFunc func(tenantPlan, requirement string) bool

// Known reports whether plan has a rank.
func (r PlanRanks) Known(plan string) bool {
	_, ok := r[plan]
	return ok
}

// Plans returns the ranked plan names in ascending rank order.
func (r PlanRanks) Plans() []string {
	plans := slices.Collect(maps.Keys(r))
	slices.SortStableFunc(plans, func(a, b string) int {
		if r[a] != r[b] {
			return r[a] - r[b]
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	return plans
}

// Eligible grants access when there is no requirement or when either plan
// name is unknown. Otherwise the tenant rank must reach the required rank.
func (r PlanRanks) Eligible(tenantPlan, requirement string) bool {
	if requirement == "" {
		return true
	}
	have, okHave := r[tenantPlan]
	need, okNeed := r[requirement]
	if !okHave || !okNeed {
		return true
	}
	return have >= need
}

// EligibleStrict is like Eligible but denies access when either plan name
// is unknown.
func (r PlanRanks) EligibleStrict(tenantPlan, requirement string) bool {
	if requirement == "" {
		return true
	}
	have, okHave := r[tenantPlan]
	need, okNeed := r[requirement]
	if !okHave || !okNeed {
		return false
	}
	return have >= need
}
