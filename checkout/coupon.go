package checkout

import (
	"strings"
	"time"

	"github.com/HasnaHasan194/readhaven-checkout/models"
)

// ApplyCoupon validates the coupon against the session and applies it.
// Totals are recomputed before returning so no stale pricing survives the
// mutation. The used-coupon rejection here is a client-side convenience; the
// backend enforces once-per-user authoritatively when the order is placed.
func (s *Session) ApplyCoupon(coupon models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// No pricing mutations once a submission is in flight: the totals for
	// that attempt are already locked into the payment.
	if s.state == StateSubmitting {
		return ErrSubmissionInProgress
	}

	if !coupon.IsActive {
		return ErrCouponInactive
	}
	if coupon.Expired(time.Now()) {
		return ErrCouponExpired
	}
	for _, used := range s.UsedCoupons {
		if strings.EqualFold(used, coupon.Code) {
			return ErrCouponAlreadyUsed
		}
	}

	// The calculator stays silent on an unmet minimum; eligibility is
	// surfaced at this layer instead.
	subtotal := ComputeTotals(s.Items, nil).Subtotal
	if subtotal < coupon.MinimumPurchase {
		return ErrCouponMinimumNotMet
	}

	s.AppliedCoupon = &coupon
	s.recompute()
	return nil
}

// ClearCoupon removes the applied coupon and recomputes totals.
func (s *Session) ClearCoupon() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	s.AppliedCoupon = nil
	s.recompute()
	return nil
}
