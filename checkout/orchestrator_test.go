package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/HasnaHasan194/readhaven-checkout/gateway"
	"github.com/HasnaHasan194/readhaven-checkout/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend implements BackendAPI for testing and records the order of
// calls so submission sequencing can be asserted.
type mockBackend struct {
	cart         *models.CheckoutCart
	cartErr      error
	addresses    []models.Address
	addressesErr error
	profile      *models.UserProfile
	profileErr   error
	coupons      []models.Coupon
	deductErr    error
	placeErr     error

	calls  []string
	drafts []models.OrderDraft
}

func (m *mockBackend) ProceedToCheckout(context.Context) (*models.CheckoutCart, error) {
	m.calls = append(m.calls, "ProceedToCheckout")
	return m.cart, m.cartErr
}

func (m *mockBackend) GetAddresses(context.Context) ([]models.Address, error) {
	m.calls = append(m.calls, "GetAddresses")
	return m.addresses, m.addressesErr
}

func (m *mockBackend) GetProfile(context.Context) (*models.UserProfile, error) {
	m.calls = append(m.calls, "GetProfile")
	return m.profile, m.profileErr
}

func (m *mockBackend) GetCoupons(context.Context) ([]models.Coupon, error) {
	m.calls = append(m.calls, "GetCoupons")
	return m.coupons, nil
}

func (m *mockBackend) DeductWallet(_ context.Context, amount float64, _ string) error {
	m.calls = append(m.calls, "DeductWallet")
	return m.deductErr
}

func (m *mockBackend) PlaceOrder(_ context.Context, draft models.OrderDraft) (*models.Order, error) {
	m.calls = append(m.calls, "PlaceOrder")
	m.drafts = append(m.drafts, draft)
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	return &models.Order{
		ID:              "order-1",
		PaymentMethod:   draft.PaymentMethod,
		DeliveryAddress: draft.DeliveryAddress,
		Subtotal:        draft.Subtotal,
		Tax:             draft.Tax,
		DiscountAmount:  draft.DiscountAmount,
		TotalAmount:     draft.TotalAmount,
		CouponCode:      draft.CouponCode,
		TransactionId:   draft.TransactionId,
		PaymentStatus:   draft.PaymentStatus,
		Status:          "Pending",
	}, nil
}

// mockGateway implements PaymentGateway.
type mockGateway struct {
	intent *gateway.PaymentIntent
	err    error
	calls  int
}

func (m *mockGateway) CreatePayment(_ context.Context, receipt string, amount float64, _ string) (*gateway.PaymentIntent, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.intent != nil {
		return m.intent, nil
	}
	return &gateway.PaymentIntent{
		OrderID:  "rzp-order-1",
		Amount:   int64(amount * 100),
		Currency: "INR",
	}, nil
}

func submissionSession(method string, prices ...float64) *Session {
	session := NewSession("user-1")
	session.Items = lines(prices...)
	session.Addresses = []models.Address{{ID: "addr-1", FullName: "Hasna", City: "Kochi", IsDefault: true}}
	session.SelectedAddressID = "addr-1"
	session.SelectedMethod = method
	session.Recompute()
	return session
}

func TestPlaceOrder_CODSuccess(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodCOD, 400)

	outcome, err := orch.PlaceOrder(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, outcome.State)
	assert.Equal(t, StateSucceeded, session.State())
	require.Len(t, backend.drafts, 1)
	// Payment status is left to the backend default on the COD path.
	assert.Empty(t, backend.drafts[0].PaymentStatus)
	assert.Equal(t, "addr-1", backend.drafts[0].DeliveryAddress.ID)
}

func TestPlaceOrder_CODErrorIsRecoverable(t *testing.T) {
	backend := &mockBackend{placeErr: errors.New("validation failed")}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodCOD, 400)

	_, err := orch.PlaceOrder(context.Background(), session)

	require.Error(t, err)
	// No failure page for COD; the session drops back to Idle so the user
	// can resubmit.
	assert.Equal(t, StateIdle, session.State())
}

func TestPlaceOrder_NoAddressFailsBeforeAnyCall(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodCOD, 400)
	session.SelectedAddressID = "missing"

	_, err := orch.PlaceOrder(context.Background(), session)

	assert.ErrorIs(t, err, ErrNoAddressSelected)
	assert.Empty(t, backend.calls)
	assert.Equal(t, StateIdle, session.State())
}

func TestPlaceOrder_GatedCODRejected(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodCOD, 1200)

	_, err := orch.PlaceOrder(context.Background(), session)

	assert.ErrorIs(t, err, ErrPaymentMethodUnavailable)
	assert.Empty(t, backend.calls)
}

func TestPlaceOrder_WalletDeductsBeforePlacingOrder(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodWallet, 400)
	session.WalletBalance = 1000

	outcome, err := orch.PlaceOrder(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, outcome.State)
	// The order is never placed before the deduction is confirmed.
	require.Equal(t, []string{"DeductWallet", "PlaceOrder"}, backend.calls)
	require.Len(t, backend.drafts, 1)
	assert.Equal(t, models.PaymentStatusWalletPaid, backend.drafts[0].PaymentStatus)
}

func TestPlaceOrder_WalletDeductionFailureAborts(t *testing.T) {
	backend := &mockBackend{deductErr: errors.New("wallet locked")}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodWallet, 400)
	session.WalletBalance = 1000

	_, err := orch.PlaceOrder(context.Background(), session)

	require.Error(t, err)
	assert.Equal(t, []string{"DeductWallet"}, backend.calls)
	assert.Equal(t, StateIdle, session.State())
}

func TestPlaceOrder_WalletGuardDuplicatesSelectorGate(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodWallet, 400)
	session.WalletBalance = 100

	_, err := orch.PlaceOrder(context.Background(), session)

	assert.ErrorIs(t, err, ErrPaymentMethodUnavailable)
	assert.Empty(t, backend.calls)
}

func TestPlaceOrder_OnlineParksSessionOnIntent(t *testing.T) {
	backend := &mockBackend{}
	gw := &mockGateway{}
	orch := &Orchestrator{Backend: backend, Gateway: gw}
	session := submissionSession(models.PaymentMethodOnline, 400)

	outcome, err := orch.PlaceOrder(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, outcome.State)
	require.NotNil(t, outcome.Payment)
	assert.Equal(t, "rzp-order-1", outcome.Payment.OrderID)
	assert.Equal(t, StateSubmitting, session.State())
	assert.Empty(t, backend.drafts)
}

func TestCompleteOnlinePayment_AuthorizedRoutesToSuccess(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodOnline, 400)

	_, err := orch.PlaceOrder(context.Background(), session)
	require.NoError(t, err)

	outcome, err := orch.CompleteOnlinePayment(context.Background(), session, "rzp-order-1",
		gateway.Result{Authorized: true, TransactionID: "pay_123"})

	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, outcome.State)
	require.Len(t, backend.drafts, 1)
	assert.Equal(t, models.PaymentStatusPaid, backend.drafts[0].PaymentStatus)
	assert.Equal(t, "pay_123", backend.drafts[0].TransactionId)
}

func TestCompleteOnlinePayment_DeclinedStillRecordsOrder(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodOnline, 400)

	_, err := orch.PlaceOrder(context.Background(), session)
	require.NoError(t, err)

	outcome, err := orch.CompleteOnlinePayment(context.Background(), session, "rzp-order-1",
		gateway.Result{Authorized: false})

	require.NoError(t, err)
	// The failed attempt is recorded, not discarded.
	require.Len(t, backend.drafts, 1)
	assert.Equal(t, models.PaymentStatusFailed, backend.drafts[0].PaymentStatus)
	assert.Equal(t, StateFailed, outcome.State)
	assert.Equal(t, StateFailed, session.State())
}

func TestCompleteOnlinePayment_UnknownGatewayOrderRejected(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodOnline, 400)

	_, err := orch.PlaceOrder(context.Background(), session)
	require.NoError(t, err)

	_, err = orch.CompleteOnlinePayment(context.Background(), session, "someone-elses-order",
		gateway.Result{Authorized: true, TransactionID: "pay_999"})

	assert.ErrorIs(t, err, ErrNoPendingPayment)
	assert.Empty(t, backend.drafts)
}

func TestCompleteOnlinePayment_DuplicateCallbackRejected(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}
	session := submissionSession(models.PaymentMethodOnline, 400)

	_, err := orch.PlaceOrder(context.Background(), session)
	require.NoError(t, err)

	result := gateway.Result{Authorized: true, TransactionID: "pay_123"}
	_, err = orch.CompleteOnlinePayment(context.Background(), session, "rzp-order-1", result)
	require.NoError(t, err)

	_, err = orch.CompleteOnlinePayment(context.Background(), session, "rzp-order-1", result)
	assert.ErrorIs(t, err, ErrNoPendingPayment)
	assert.Len(t, backend.drafts, 1)
}

func TestCompleteOnlinePayment_RecordsAmountChargedByGateway(t *testing.T) {
	backend := &mockBackend{}
	gw := &mockGateway{}
	orch := &Orchestrator{Backend: backend, Gateway: gw}
	session := submissionSession(models.PaymentMethodOnline, 999)

	outcome, err := orch.PlaceOrder(context.Background(), session)
	require.NoError(t, err)
	require.NotNil(t, outcome.Payment)
	assert.Equal(t, int64(111900), outcome.Payment.Amount)

	// The gateway has locked 1119 into the payment, so the pricing is
	// frozen until the callback resolves it.
	err = session.ApplyCoupon(models.Coupon{
		Code:            "SAVE10",
		DiscountType:    models.DiscountTypePercentage,
		DiscountValue:   10,
		MinimumPurchase: 500,
		IsActive:        true,
	})
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.ErrorIs(t, session.ClearCoupon(), ErrSubmissionInProgress)
	assert.ErrorIs(t, session.SelectAddress("addr-1"), ErrSubmissionInProgress)

	outcome, err = orch.CompleteOnlinePayment(context.Background(), session, "rzp-order-1",
		gateway.Result{Authorized: true, TransactionID: "pay_123"})
	require.NoError(t, err)

	// The recorded order carries the charged amount, not whatever the
	// session looked like when the callback landed.
	require.Len(t, backend.drafts, 1)
	assert.Equal(t, 1119.0, backend.drafts[0].TotalAmount)
	assert.Equal(t, 0.0, backend.drafts[0].DiscountAmount)
	assert.Empty(t, backend.drafts[0].CouponCode)
	assert.Equal(t, 1119.0, outcome.Order.TotalAmount)
}

func TestPlaceOrder_GatewayErrorIsRecoverable(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{err: errors.New("gateway down")}}
	session := submissionSession(models.PaymentMethodOnline, 400)

	_, err := orch.PlaceOrder(context.Background(), session)

	require.Error(t, err)
	assert.Equal(t, StateIdle, session.State())
}

// Full scenario: a 999 cart with SAVE10 applied prices to 1019, which gates
// COD; switching to online and receiving a success callback produces a paid
// order routed to the success view.
func TestCheckoutScenario_CouponGatesCODThenOnlineSucceeds(t *testing.T) {
	backend := &mockBackend{}
	orch := &Orchestrator{Backend: backend, Gateway: &mockGateway{}}

	session := submissionSession(models.PaymentMethodOnline, 999)
	require.NoError(t, session.ApplyCoupon(models.Coupon{
		Code:            "SAVE10",
		DiscountType:    models.DiscountTypePercentage,
		DiscountValue:   10,
		MinimumPurchase: 500,
		IsActive:        true,
	}))

	pricing := session.Totals()
	assert.InDelta(t, 99.9, pricing.DiscountAmount, 1e-9)
	assert.InDelta(t, 119.88, pricing.Tax, 1e-9)
	assert.Equal(t, 1019.0, pricing.Total)

	// Total is above the COD limit, so COD cannot be selected.
	assert.ErrorIs(t, session.SelectMethod(models.PaymentMethodCOD), ErrPaymentMethodUnavailable)

	require.NoError(t, session.SelectMethod(models.PaymentMethodOnline))
	outcome, err := orch.PlaceOrder(context.Background(), session)
	require.NoError(t, err)
	require.NotNil(t, outcome.Payment)
	assert.Equal(t, int64(101900), outcome.Payment.Amount)

	outcome, err = orch.CompleteOnlinePayment(context.Background(), session, outcome.Payment.OrderID,
		gateway.Result{Authorized: true, TransactionID: "pay_success"})
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, outcome.State)
	assert.Equal(t, models.PaymentStatusPaid, outcome.Order.PaymentStatus)
	assert.Equal(t, "SAVE10", outcome.Order.CouponCode)

	order, state, err := session.Result()
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, state)
	assert.Equal(t, "order-1", order.ID)
}
