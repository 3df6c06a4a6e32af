package checkout

import (
	"context"
	"log"

	"github.com/HasnaHasan194/readhaven-checkout/gateway"
	"github.com/HasnaHasan194/readhaven-checkout/models"
)

// BackendAPI is the commerce backend as checkout sees it: a black box
// reached over its documented endpoints.
type BackendAPI interface {
	ProceedToCheckout(ctx context.Context) (*models.CheckoutCart, error)
	GetAddresses(ctx context.Context) ([]models.Address, error)
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	GetCoupons(ctx context.Context) ([]models.Coupon, error)
	DeductWallet(ctx context.Context, amount float64, description string) error
	PlaceOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error)
}

// PaymentGateway initiates an online payment and hands back the intent the
// frontend opens the gateway popup with.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, receipt string, amount float64, description string) (*gateway.PaymentIntent, error)
}

// Loader builds a fresh checkout session from the backend. Fetch failures
// are recoverable: the session is still created with whatever sections
// loaded, and each missing section is reported as a notification message so
// the page can render the rest.
type Loader struct {
	Backend BackendAPI
}

func (l *Loader) Load(ctx context.Context, userID string) (*Session, []string) {
	session := NewSession(userID)
	var notices []string

	cart, err := l.Backend.ProceedToCheckout(ctx)
	if err != nil {
		log.Println("Checkout snapshot fetch failed:", err)
		notices = append(notices, "Unable to load your cart right now.")
	} else {
		session.Items = cart.Items
		// The snapshot's balance is the authoritative one for this
		// session; the profile also reports a balance but it is ignored.
		session.WalletBalance = cart.WalletBalance
	}

	addresses, err := l.Backend.GetAddresses(ctx)
	if err != nil {
		log.Println("Address fetch failed:", err)
		notices = append(notices, "Unable to load your saved addresses.")
	} else {
		session.Addresses = addresses
		for _, address := range addresses {
			if address.IsDefault {
				session.SelectedAddressID = address.ID
				break
			}
		}
	}

	profile, err := l.Backend.GetProfile(ctx)
	if err != nil {
		log.Println("Profile fetch failed:", err)
		notices = append(notices, "Unable to load your coupon history.")
	} else {
		session.UsedCoupons = profile.UsedCoupons
	}

	session.Recompute()
	return session, notices
}
