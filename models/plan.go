// models/plan.go - Subscription plan tiers and message allowances
package models

const (
	PlanFree    = "free"
	PlanPremium = "premium"
	PlanPro     = "pro"
)

// PlanLimit describes the message allowance for one plan tier.
// Lifetime allowances never reset; the rest roll over monthly.
type PlanLimit struct {
	Messages   int
	IsLifetime bool
}

// PlanLimits is the fixed allowance table.
var PlanLimits = map[string]PlanLimit{
	PlanFree:    {Messages: 50, IsLifetime: true},
	PlanPremium: {Messages: 400, IsLifetime: false},
	PlanPro:     {Messages: 1000, IsLifetime: false},
}

// ValidPlan reports whether s names a known plan tier.
func ValidPlan(s string) bool {
	_, ok := PlanLimits[s]
	return ok
}

// PaidPlan reports whether s is a tier that carries an expiration date.
func PaidPlan(s string) bool {
	return s == PlanPremium || s == PlanPro
}
