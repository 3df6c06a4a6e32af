package checkout

import "errors"

// Validation and payment-path errors surfaced to the user as transient
// notifications. None of them advance the submission state machine.
var (
	ErrNoAddressSelected        = errors.New("please select a valid address to continue")
	ErrNoPaymentMethod          = errors.New("please select a payment method")
	ErrPaymentMethodUnavailable = errors.New("selected payment method is not available for this order")
	ErrInsufficientBalance      = errors.New("insufficient wallet balance")
	ErrSubmissionInProgress     = errors.New("an order submission is already in progress")
	ErrNoPendingPayment         = errors.New("no online payment is awaiting confirmation")
	ErrNoResult                 = errors.New("checkout has not reached a result yet")
)

// Coupon eligibility errors. The used-coupon check is advisory, for UX
// responsiveness only; the backend re-validates usage at order placement.
var (
	ErrCouponInactive      = errors.New("this coupon is no longer active")
	ErrCouponExpired       = errors.New("this coupon has expired")
	ErrCouponAlreadyUsed   = errors.New("this coupon has already been used")
	ErrCouponMinimumNotMet = errors.New("cart total does not meet the coupon's minimum purchase")
)
