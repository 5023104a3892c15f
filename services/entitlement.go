// services/entitlement.go - Effective plan resolution and message quota metering
package services

import (
	"errors"
	"time"

	"selfhack/models"

	"gorm.io/gorm"
)

// IsPlanActive reports whether the stored plan currently grants its tier.
// Free is always active. A paid plan needs an expiration strictly in the
// future; a paid plan with no expiration at all is treated as lapsed.
func IsPlanActive(p *models.Profile, now time.Time) bool {
	if p.Plan == models.PlanFree {
		return true
	}
	return p.PlanExpiresAt != nil && p.PlanExpiresAt.After(now)
}

// EffectivePlan returns the tier that should govern entitlements right now.
// Expired paid plans degrade to free on read; stored state is not touched.
func EffectivePlan(p *models.Profile, now time.Time) string {
	if IsPlanActive(p, now) {
		return p.Plan
	}
	return models.PlanFree
}

// calendarMonthsSince counts whole calendar months between two instants
// using year/month components, not elapsed days. Jan 31 → Feb 1 is one
// month.
func calendarMonthsSince(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
}

// QuotaDecision is the outcome of evaluating a profile snapshot against
// its plan's allowance, before any write happens.
type QuotaDecision struct {
	Limit      models.PlanLimit
	Plan       string // effective plan the limit was looked up for
	Used       int    // messages_used after any monthly reset
	NeedsReset bool   // a monthly window rolled over
	Allowed    bool
	Remaining  int // remaining after the message under evaluation is spent
}

// EvaluateQuota decides whether one more message fits in the window. The
// limit is looked up by the effective plan so lapsed subscriptions never
// keep their paid allowance.
func EvaluateQuota(p *models.Profile, now time.Time) QuotaDecision {
	plan := EffectivePlan(p, now)
	limit := models.PlanLimits[plan]

	d := QuotaDecision{Limit: limit, Plan: plan, Used: p.MessagesUsed}
	if !limit.IsLifetime && calendarMonthsSince(p.MessagesResetAt, now) >= 1 {
		d.NeedsReset = true
		d.Used = 0
	}

	if d.Used >= limit.Messages {
		return d
	}
	d.Allowed = true
	d.Remaining = limit.Messages - (d.Used + 1)
	return d
}

type EntitlementService struct {
	db *gorm.DB
}

func NewEntitlementService(db *gorm.DB) *EntitlementService {
	return &EntitlementService{db: db}
}

// UseMessage spends one message from the profile's allowance. The
// read-modify-write is optimistic: every write is conditional on the state
// it was computed from, a lost race is retried once, and a second loss
// surfaces as an upstream failure. Returns the persisted profile and the
// remaining allowance; on ErrQuotaExceeded the (possibly reset) profile is
// still returned with remaining 0.
func (s *EntitlementService) UseMessage(userID uint) (*models.Profile, int, error) {
	for attempt := 0; attempt < 2; attempt++ {
		profile, remaining, err := s.useMessageOnce(userID)
		if errors.Is(err, ErrConflict) {
			continue
		}
		return profile, remaining, err
	}
	return nil, 0, ErrUpstreamUnavailable
}

func (s *EntitlementService) useMessageOnce(userID uint) (*models.Profile, int, error) {
	now := time.Now()

	var profile models.Profile
	if err := s.db.First(&profile, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	d := EvaluateQuota(&profile, now)

	if d.NeedsReset {
		// Conditional on the old window marker so two devices cannot both
		// roll the window over.
		res := s.db.Model(&models.Profile{}).
			Where("id = ? AND messages_reset_at = ?", userID, profile.MessagesResetAt).
			Updates(map[string]interface{}{
				"messages_used":     0,
				"messages_reset_at": now,
			})
		if res.Error != nil {
			return nil, 0, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, 0, ErrConflict
		}
		profile.MessagesUsed = 0
		profile.MessagesResetAt = now
	}

	if !d.Allowed {
		return &profile, 0, ErrQuotaExceeded
	}

	// Increment-with-check: only succeeds against the count we evaluated.
	res := s.db.Model(&models.Profile{}).
		Where("id = ? AND messages_used = ?", userID, d.Used).
		UpdateColumn("messages_used", d.Used+1)
	if res.Error != nil {
		return nil, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, 0, ErrConflict
	}

	profile.MessagesUsed = d.Used + 1
	return &profile, d.Remaining, nil
}

// RemainingMessages reports the allowance left without spending anything.
func RemainingMessages(p *models.Profile, now time.Time) int {
	limit := models.PlanLimits[EffectivePlan(p, now)]
	used := p.MessagesUsed
	if !limit.IsLifetime && calendarMonthsSince(p.MessagesResetAt, now) >= 1 {
		used = 0
	}
	if used >= limit.Messages {
		return 0
	}
	return limit.Messages - used
}
