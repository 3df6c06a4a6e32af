package models

import "time"

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodWallet = "wallet"
	PaymentMethodOnline = "online"
)

// Payment status values the backend expects. The wallet path uses lowercase
// "paid" while the online path reports "Paid"/"Failed"; both spellings are
// part of the backend's contract and must not be normalized.
const (
	PaymentStatusPaid       = "Paid"
	PaymentStatusFailed     = "Failed"
	PaymentStatusWalletPaid = "paid"
)

// PricingResult is derived state, recomputed whenever the cart contents or
// the applied coupon change. It is never cached across mutations.
type PricingResult struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
}

// OrderDraft is the client-assembled, not-yet-persisted order submitted to
// the backend. The delivery address is a full snapshot, not just an id.
type OrderDraft struct {
	PaymentMethod   string  `json:"paymentMethod"`
	DeliveryAddress Address `json:"deliveryAddress"`
	Subtotal        float64 `json:"subtotal"`
	Tax             float64 `json:"tax"`
	DiscountAmount  float64 `json:"discountAmount"`
	TotalAmount     float64 `json:"totalAmount"`
	CouponCode      string  `json:"couponCode,omitempty"`
	TransactionId   string  `json:"transactionId,omitempty"`
	PaymentStatus   string  `json:"paymentStatus,omitempty"`
}

// Order is the persisted record the backend returns once it accepts a draft.
type Order struct {
	ID              string    `json:"id"`
	PaymentMethod   string    `json:"paymentMethod"`
	DeliveryAddress Address   `json:"deliveryAddress"`
	Subtotal        float64   `json:"subtotal"`
	Tax             float64   `json:"tax"`
	DiscountAmount  float64   `json:"discountAmount"`
	TotalAmount     float64   `json:"totalAmount"`
	CouponCode      string    `json:"couponCode,omitempty"`
	TransactionId   string    `json:"transactionId,omitempty"`
	PaymentStatus   string    `json:"paymentStatus"`
	Status          string    `json:"status"`
	DeliveryDate    time.Time `json:"deliveryDate"`
	CreatedAt       time.Time `json:"createdAt"`
}
