package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/HasnaHasan194/readhaven-checkout/gateway"
	"github.com/HasnaHasan194/readhaven-checkout/models"
	"github.com/HasnaHasan194/readhaven-checkout/utils"
)

// Orchestrator runs the order submission state machine: Idle -> Submitting
// -> Succeeded/Failed. Terminal states route to result views; there is no
// retry-in-place, the user re-initiates checkout from scratch.
type Orchestrator struct {
	Backend BackendAPI
	Gateway PaymentGateway
}

// SubmissionOutcome is what a submission attempt produced. For the online
// path the first call returns a PaymentIntent and the session stays
// Submitting until the gateway callback resolves it.
type SubmissionOutcome struct {
	State   State                  `json:"state"`
	Order   *models.Order          `json:"order,omitempty"`
	Payment *gateway.PaymentIntent `json:"payment,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// PlaceOrder executes the submission path for the session's selected payment
// method. Validation failures surface before any network call and leave the
// session in Idle.
func (o *Orchestrator) PlaceOrder(ctx context.Context, session *Session) (*SubmissionOutcome, error) {
	sub, err := session.beginSubmission()
	if err != nil {
		return nil, err
	}

	switch sub.Method {
	case models.PaymentMethodCOD:
		return o.placeCashOnDelivery(ctx, session, sub)
	case models.PaymentMethodWallet:
		return o.placeWithWallet(ctx, session, sub)
	case models.PaymentMethodOnline:
		return o.initiateOnlinePayment(ctx, session, sub)
	default:
		session.abortSubmission()
		return nil, ErrNoPaymentMethod
	}
}

// placeCashOnDelivery submits the draft with the payment status left to the
// backend default. A submission error here is recoverable: the session drops
// back to Idle and the user may resubmit.
func (o *Orchestrator) placeCashOnDelivery(ctx context.Context, session *Session, sub submission) (*SubmissionOutcome, error) {
	draft := buildDraft(sub, "", "")

	order, err := o.Backend.PlaceOrder(ctx, draft)
	if err != nil {
		session.abortSubmission()
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	session.finishSubmission(order, StateSucceeded)
	return &SubmissionOutcome{State: StateSucceeded, Order: order, Message: "Order placed successfully."}, nil
}

// placeWithWallet deducts the wallet first and places the order only after
// the deduction is confirmed. An order is never placed without a confirmed
// deduction.
func (o *Orchestrator) placeWithWallet(ctx context.Context, session *Session, sub submission) (*SubmissionOutcome, error) {
	// Duplicates the selector's gate on purpose, so a stale selection can
	// never charge a wallet that no longer covers the total.
	if sub.WalletBalance < sub.Pricing.Total {
		session.abortSubmission()
		return nil, ErrInsufficientBalance
	}

	description := fmt.Sprintf("Payment for checkout %s", session.ID)
	if err := o.Backend.DeductWallet(ctx, sub.Pricing.Total, description); err != nil {
		session.abortSubmission()
		return nil, fmt.Errorf("wallet deduction failed: %w", err)
	}

	draft := buildDraft(sub, "", models.PaymentStatusWalletPaid)

	order, err := o.Backend.PlaceOrder(ctx, draft)
	if err != nil {
		// The wallet has been charged. Support needs this in the logs.
		log.Printf("Wallet deducted %.2f for checkout %s but order placement failed: %v", sub.Pricing.Total, session.ID, err)
		session.abortSubmission()
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	session.finishSubmission(order, StateSucceeded)
	return &SubmissionOutcome{State: StateSucceeded, Order: order, Message: "Order placed successfully."}, nil
}

// initiateOnlinePayment registers a gateway order and parks the session in
// Submitting until the callback route reports the outcome.
func (o *Orchestrator) initiateOnlinePayment(ctx context.Context, session *Session, sub submission) (*SubmissionOutcome, error) {
	receipt, err := utils.GenerateCode(12)
	if err != nil {
		session.abortSubmission()
		return nil, fmt.Errorf("failed to generate payment reference: %w", err)
	}

	intent, err := o.Gateway.CreatePayment(ctx, receipt, sub.Pricing.Total, "READHAVEN order payment")
	if err != nil {
		session.abortSubmission()
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	session.awaitPayment(intent.OrderID, sub)
	return &SubmissionOutcome{State: StateSubmitting, Payment: intent}, nil
}

// CompleteOnlinePayment resolves a pending online payment from the gateway
// callback. Both outcomes build a draft and both are submitted: a declined
// or dismissed payment is recorded with status "Failed" for reconciliation,
// not discarded. Routing follows the gateway's reported outcome, not whether
// the order record was written.
func (o *Orchestrator) CompleteOnlinePayment(ctx context.Context, session *Session, gatewayOrderID string, result gateway.Result) (*SubmissionOutcome, error) {
	sub, err := session.claimPendingPayment(gatewayOrderID)
	if err != nil {
		return nil, err
	}

	status := models.PaymentStatusFailed
	if result.Authorized {
		status = models.PaymentStatusPaid
	}

	draft := buildDraft(sub, result.TransactionID, status)

	order, err := o.Backend.PlaceOrder(ctx, draft)
	if err != nil {
		// The order record was not written; this is a backend rejection,
		// not a payment failure, so it stays recoverable.
		session.abortSubmission()
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	state := StateFailed
	message := "Payment failed. The attempt has been recorded."
	if result.Authorized {
		state = StateSucceeded
		message = "Order placed successfully."
	}

	session.finishSubmission(order, state)
	return &SubmissionOutcome{State: state, Order: order, Message: message}, nil
}

func buildDraft(sub submission, transactionID, paymentStatus string) models.OrderDraft {
	return models.OrderDraft{
		PaymentMethod:   sub.Method,
		DeliveryAddress: sub.Address,
		Subtotal:        sub.Pricing.Subtotal,
		Tax:             sub.Pricing.Tax,
		DiscountAmount:  sub.Pricing.DiscountAmount,
		TotalAmount:     sub.Pricing.Total,
		CouponCode:      sub.CouponCode,
		TransactionId:   transactionID,
		PaymentStatus:   paymentStatus,
	}
}
