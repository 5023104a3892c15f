package services

import (
	"errors"
	"testing"
	"time"

	"selfhack/models"
)

func validCode(now time.Time) *models.PromoCode {
	return &models.PromoCode{
		ID:           1,
		Code:         "LAUNCH30",
		Plan:         models.PlanPremium,
		DurationDays: 30,
		MaxUses:      100,
		CurrentUses:  5,
		IsActive:     true,
	}
}

func TestValidatePromoCode(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if err := ValidatePromoCode(validCode(now), now); err != nil {
		t.Fatalf("valid code rejected: %v", err)
	}

	if err := ValidatePromoCode(nil, now); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("nil code: got %v, want ErrInvalidCode", err)
	}

	inactive := validCode(now)
	inactive.IsActive = false
	if err := ValidatePromoCode(inactive, now); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("inactive code: got %v, want ErrInvalidCode", err)
	}

	// Exhausted fails regardless of expiry.
	exhausted := validCode(now)
	exhausted.CurrentUses = exhausted.MaxUses
	exhausted.ExpiresAt = timePtr(now.Add(365 * 24 * time.Hour))
	if err := ValidatePromoCode(exhausted, now); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("exhausted code: got %v, want ErrInvalidCode", err)
	}

	expired := validCode(now)
	expired.ExpiresAt = timePtr(now.Add(-time.Minute))
	if err := ValidatePromoCode(expired, now); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expired code: got %v, want ErrInvalidCode", err)
	}

	// No expiry set means no expiry check.
	open := validCode(now)
	open.ExpiresAt = nil
	if err := ValidatePromoCode(open, now); err != nil {
		t.Fatalf("code without expiry rejected: %v", err)
	}
}

func TestNextExpirationStartsFromNow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Free profile: count from now.
	p := planProfile(models.PlanFree, nil)
	got := NextExpiration(p, 30, now)
	if want := now.AddDate(0, 0, 30); !got.Equal(want) {
		t.Fatalf("expiration=%v, want %v", got, want)
	}

	// Paid but lapsed: also from now.
	p = planProfile(models.PlanPremium, timePtr(now.Add(-time.Hour)))
	got = NextExpiration(p, 30, now)
	if want := now.AddDate(0, 0, 30); !got.Equal(want) {
		t.Fatalf("expiration=%v, want %v", got, want)
	}

	// Paid with nil expiry: from now.
	p = planProfile(models.PlanPro, nil)
	got = NextExpiration(p, 15, now)
	if want := now.AddDate(0, 0, 15); !got.Equal(want) {
		t.Fatalf("expiration=%v, want %v", got, want)
	}
}

func TestNextExpirationStacksOnActivePlan(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 20 days remain on an active premium plan; a 30-day code extends
	// from the existing expiration, not from now.
	existing := now.AddDate(0, 0, 20)
	p := planProfile(models.PlanPremium, timePtr(existing))

	got := NextExpiration(p, 30, now)
	if want := existing.AddDate(0, 0, 30); !got.Equal(want) {
		t.Fatalf("expiration=%v, want %v (stacked)", got, want)
	}
}
