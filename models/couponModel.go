package models

import "time"

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeAmount     = "amount"
)

// Coupon is a read-only snapshot fetched per checkout session. It is applied
// or cleared in session state and never persisted locally.
type Coupon struct {
	Code            string    `json:"code"`
	Description     string    `json:"description,omitempty"`
	DiscountType    string    `json:"discountType"`
	DiscountValue   float64   `json:"discountValue"`
	MinimumPurchase float64   `json:"minimumPurchase"`
	ExpiryDate      time.Time `json:"expiryDate"`
	IsActive        bool      `json:"isActive"`
}

// Expired reports whether the coupon's expiry date has passed. A zero expiry
// means the coupon does not expire.
func (c Coupon) Expired(now time.Time) bool {
	return !c.ExpiryDate.IsZero() && c.ExpiryDate.Before(now)
}
