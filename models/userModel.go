package models

// UserProfile carries the profile fields checkout cares about. The profile
// also reports a wallet balance, but the checkout snapshot's balance is the
// authoritative one for a session; only the used-coupon history is read here.
type UserProfile struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	UsedCoupons []string `json:"usedCoupons"`
	Balance     float64  `json:"balance"`
}
