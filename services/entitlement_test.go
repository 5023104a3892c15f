package services

import (
	"testing"
	"time"

	"selfhack/models"
)

func planProfile(plan string, expires *time.Time) *models.Profile {
	return &models.Profile{
		Level:         1,
		XPToNextLevel: 1000,
		Plan:          plan,
		PlanExpiresAt: expires,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestIsPlanActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := timePtr(now.Add(24 * time.Hour))
	past := timePtr(now.Add(-24 * time.Hour))

	if !IsPlanActive(planProfile(models.PlanFree, nil), now) {
		t.Fatal("free plan must always be active")
	}
	if !IsPlanActive(planProfile(models.PlanPro, future), now) {
		t.Fatal("pro with future expiry must be active")
	}
	if IsPlanActive(planProfile(models.PlanPro, past), now) {
		t.Fatal("pro with past expiry must be inactive")
	}
	if IsPlanActive(planProfile(models.PlanPremium, nil), now) {
		t.Fatal("paid plan with nil expiry must be inactive")
	}
	// Strictly after: expiry exactly now is inactive.
	if IsPlanActive(planProfile(models.PlanPremium, timePtr(now)), now) {
		t.Fatal("expiry at exactly now must be inactive")
	}
}

func TestEffectivePlanDegradesOnRead(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := timePtr(now.Add(-time.Hour))

	p := planProfile(models.PlanPro, past)
	if got := EffectivePlan(p, now); got != models.PlanFree {
		t.Fatalf("EffectivePlan=%s, want free", got)
	}
	// Degrade is computed, not written back.
	if p.Plan != models.PlanPro {
		t.Fatalf("stored plan mutated to %s", p.Plan)
	}

	p = planProfile(models.PlanPremium, timePtr(now.Add(time.Hour)))
	if got := EffectivePlan(p, now); got != models.PlanPremium {
		t.Fatalf("EffectivePlan=%s, want premium", got)
	}
}

func TestCalendarMonthsSince(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 12},
		{time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), -2},
	}
	for _, tc := range cases {
		if got := calendarMonthsSince(tc.from, tc.to); got != tc.want {
			t.Fatalf("calendarMonthsSince(%v, %v)=%d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestEvaluateQuotaFreeLifetime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	p := planProfile(models.PlanFree, nil)
	p.MessagesUsed = 49
	p.MessagesResetAt = now.AddDate(0, -6, 0) // lifetime window never resets

	d := EvaluateQuota(p, now)
	if !d.Allowed {
		t.Fatal("49/50 must allow one more message")
	}
	if d.Remaining != 0 {
		t.Fatalf("remaining=%d, want 0", d.Remaining)
	}
	if d.NeedsReset {
		t.Fatal("free plan must never reset")
	}

	p.MessagesUsed = 50
	d = EvaluateQuota(p, now)
	if d.Allowed {
		t.Fatal("50/50 must be rejected")
	}
	if d.Remaining != 0 {
		t.Fatalf("remaining=%d, want 0", d.Remaining)
	}
}

func TestEvaluateQuotaMonthlyReset(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	p := planProfile(models.PlanPremium, timePtr(now.Add(30*24*time.Hour)))
	p.MessagesUsed = 400 // at the limit
	p.MessagesResetAt = now.AddDate(0, -2, 0)

	d := EvaluateQuota(p, now)
	if !d.NeedsReset {
		t.Fatal("two calendar months past must reset the window")
	}
	if d.Used != 0 {
		t.Fatalf("used after reset=%d, want 0", d.Used)
	}
	if !d.Allowed {
		t.Fatal("message must be allowed after the window resets")
	}
	if d.Remaining != 399 {
		t.Fatalf("remaining=%d, want 399", d.Remaining)
	}
}

func TestEvaluateQuotaLapsedPaidUsesFreeLimit(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Expired pro subscription: the effective plan governs the limit, so
	// the lapsed subscriber gets the free allowance, not 1000.
	p := planProfile(models.PlanPro, timePtr(now.Add(-time.Hour)))
	p.MessagesUsed = 60
	p.MessagesResetAt = now.AddDate(0, -2, 0)

	d := EvaluateQuota(p, now)
	if d.Plan != models.PlanFree {
		t.Fatalf("effective plan=%s, want free", d.Plan)
	}
	if d.NeedsReset {
		t.Fatal("free window is lifetime, must not reset")
	}
	if d.Allowed {
		t.Fatal("60 used must exceed the free limit of 50")
	}
}

func TestRemainingMessages(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	p := planProfile(models.PlanFree, nil)
	p.MessagesUsed = 30
	if got := RemainingMessages(p, now); got != 20 {
		t.Fatalf("remaining=%d, want 20", got)
	}

	p.MessagesUsed = 75 // over the limit somehow
	if got := RemainingMessages(p, now); got != 0 {
		t.Fatalf("remaining=%d, want 0", got)
	}

	// Rolled-over monthly window reports the full allowance.
	p = planProfile(models.PlanPro, timePtr(now.Add(time.Hour)))
	p.MessagesUsed = 900
	p.MessagesResetAt = now.AddDate(0, -1, 0)
	if got := RemainingMessages(p, now); got != 1000 {
		t.Fatalf("remaining=%d, want 1000", got)
	}
}
