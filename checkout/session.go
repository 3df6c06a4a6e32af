package checkout

import (
	"sync"

	"github.com/HasnaHasan194/readhaven-checkout/models"
	"github.com/google/uuid"
)

// State is the submission state of a checkout session. Succeeded and Failed
// are terminal: the only exit is starting a fresh checkout.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Session holds one user's in-progress checkout. It lives in memory only;
// restarting the checkout rebuilds it from the backend, and an in-flight
// session lost to a restart is an accepted gap, not a contract.
type Session struct {
	mu sync.Mutex

	ID     string
	UserID string

	Items         []models.CartLineItem
	Addresses     []models.Address
	WalletBalance float64
	UsedCoupons   []string

	AppliedCoupon     *models.Coupon
	SelectedAddressID string
	SelectedMethod    string

	Pricing models.PricingResult

	state State
	order *models.Order

	// Online payment awaiting its callback: the gateway order id and the
	// submission snapshot whose totals the gateway locked in.
	pendingPaymentID  string
	pendingSubmission *submission
}

func NewSession(userID string) *Session {
	return &Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		SelectedMethod: models.PaymentMethodOnline,
		state:          StateIdle,
	}
}

// recompute re-derives pricing from the current cart and coupon. Callers
// must already hold s.mu. Every mutation affecting subtotal or coupon goes
// through this before the session is read again.
func (s *Session) recompute() {
	s.Pricing = ComputeTotals(s.Items, s.AppliedCoupon)
}

// Recompute re-derives pricing under the session lock.
func (s *Session) Recompute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recompute()
}

// Totals returns the current pricing result.
func (s *Session) Totals() models.PricingResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pricing
}

// Options returns the payment methods selectable for the current totals.
func (s *Session) Options() []PaymentOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PaymentOptions(s.Pricing.Total, s.WalletBalance)
}

// View is a consistent read of the session for rendering. Handlers consume
// this instead of the session fields so reads never race with mutations
// running under the session lock.
type View struct {
	CheckoutID        string                `json:"checkoutId"`
	Items             []models.CartLineItem `json:"items"`
	Addresses         []models.Address      `json:"addresses"`
	SelectedAddressID string                `json:"selectedAddressId"`
	SelectedMethod    string                `json:"selectedMethod"`
	WalletBalance     float64               `json:"walletBalance"`
	AppliedCoupon     *models.Coupon        `json:"appliedCoupon,omitempty"`
	Pricing           models.PricingResult  `json:"pricing"`
	PaymentOptions    []PaymentOption       `json:"paymentOptions"`
	State             State                 `json:"state"`
}

// View takes the snapshot under the session lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		CheckoutID:        s.ID,
		Items:             s.Items,
		Addresses:         s.Addresses,
		SelectedAddressID: s.SelectedAddressID,
		SelectedMethod:    s.SelectedMethod,
		WalletBalance:     s.WalletBalance,
		Pricing:           s.Pricing,
		PaymentOptions:    PaymentOptions(s.Pricing.Total, s.WalletBalance),
		State:             s.state,
	}
	if s.AppliedCoupon != nil {
		coupon := *s.AppliedCoupon
		view.AppliedCoupon = &coupon
	}
	return view
}

// SelectAddress picks a saved address by id. Rejected while a submission is
// in flight: the address snapshot for that attempt is already taken.
func (s *Session) SelectAddress(addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	for _, address := range s.Addresses {
		if address.ID == addressID {
			s.SelectedAddressID = addressID
			return nil
		}
	}
	return ErrNoAddressSelected
}

// SelectMethod switches the active payment method. Radio semantics: exactly
// one method is active, and switching abandons any half-completed gateway
// handoff.
func (s *Session) SelectMethod(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !MethodSelectable(PaymentOptions(s.Pricing.Total, s.WalletBalance), method) {
		return ErrPaymentMethodUnavailable
	}
	s.SelectedMethod = method
	s.pendingPaymentID = ""
	s.pendingSubmission = nil
	if s.state == StateSubmitting {
		s.state = StateIdle
	}
	return nil
}

// State returns the current submission state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the terminal order record, or ErrNoResult if the session
// has not reached Succeeded or Failed.
func (s *Session) Result() (*models.Order, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSucceeded && s.state != StateFailed {
		return nil, s.state, ErrNoResult
	}
	return s.order, s.state, nil
}

// submission is a consistent copy of the fields a submission attempt needs,
// taken in one critical section so the attempt is not affected by later
// session mutations.
type submission struct {
	Address       models.Address
	Method        string
	Pricing       models.PricingResult
	CouponCode    string
	WalletBalance float64
}

// beginSubmission validates the selection, moves Idle to Submitting and
// returns the submission snapshot. All validation errors surface before any
// network call is made.
func (s *Session) beginSubmission() (submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting {
		return submission{}, ErrSubmissionInProgress
	}
	if s.state != StateIdle {
		return submission{}, ErrNoResult
	}

	var address *models.Address
	for i := range s.Addresses {
		if s.Addresses[i].ID == s.SelectedAddressID {
			address = &s.Addresses[i]
			break
		}
	}
	if address == nil {
		return submission{}, ErrNoAddressSelected
	}
	if s.SelectedMethod == "" {
		return submission{}, ErrNoPaymentMethod
	}
	if !MethodSelectable(PaymentOptions(s.Pricing.Total, s.WalletBalance), s.SelectedMethod) {
		return submission{}, ErrPaymentMethodUnavailable
	}

	sub := submission{
		Address:       *address,
		Method:        s.SelectedMethod,
		Pricing:       s.Pricing,
		WalletBalance: s.WalletBalance,
	}
	if s.AppliedCoupon != nil {
		sub.CouponCode = s.AppliedCoupon.Code
	}

	s.state = StateSubmitting
	return sub, nil
}

// abortSubmission drops the session back to Idle after a recoverable error;
// the user may resubmit or pick another method.
func (s *Session) abortSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		s.state = StateIdle
		s.pendingPaymentID = ""
		s.pendingSubmission = nil
	}
}

// finishSubmission records the terminal outcome.
func (s *Session) finishSubmission(order *models.Order, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.state = state
	s.pendingPaymentID = ""
	s.pendingSubmission = nil
}

// awaitPayment parks the session on an online payment: it stays Submitting
// until the gateway callback resolves the given gateway order id. The
// submission snapshot is stashed alongside because the gateway has locked
// its totals into the payment amount; the recorded order must match what
// was charged, not whatever the session looks like when the callback lands.
func (s *Session) awaitPayment(gatewayOrderID string, sub submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingPaymentID = gatewayOrderID
	s.pendingSubmission = &sub
}

// claimPendingPayment consumes the pending payment and returns the stashed
// submission snapshot. It fails unless the session is Submitting on that
// exact payment, so a stale or duplicate callback cannot complete a
// checkout twice.
func (s *Session) claimPendingPayment(gatewayOrderID string) (submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSubmitting || s.pendingPaymentID == "" || s.pendingPaymentID != gatewayOrderID || s.pendingSubmission == nil {
		return submission{}, ErrNoPendingPayment
	}

	sub := *s.pendingSubmission
	s.pendingPaymentID = ""
	s.pendingSubmission = nil
	return sub, nil
}

// Store keeps live checkout sessions keyed by user id. One session per user:
// reloading the checkout page replaces any previous session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.UserID] = s
}

func (st *Store) Get(userID string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[userID]
	return s, ok
}

func (st *Store) Delete(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}
