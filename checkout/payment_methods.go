package checkout

import (
	"fmt"

	"github.com/HasnaHasan194/readhaven-checkout/models"
)

// CODLimit is the fixed business threshold above which cash on delivery is
// not offered.
const CODLimit = 1000

// PaymentOption describes one selectable payment method. Disabled methods
// are still listed, with the reason spelled out, so the caller can show why
// rather than silently omitting them.
type PaymentOption struct {
	Method        string  `json:"method"`
	Label         string  `json:"label"`
	Enabled       bool    `json:"enabled"`
	Default       bool    `json:"default,omitempty"`
	Reason        string  `json:"reason,omitempty"`
	WalletBalance float64 `json:"walletBalance,omitempty"`
	Shortfall     float64 `json:"shortfall,omitempty"`
}

// PaymentOptions returns the three payment methods with their eligibility
// for the given total and wallet balance. Online payment is always enabled
// and is the default selection.
func PaymentOptions(total, walletBalance float64) []PaymentOption {
	cod := PaymentOption{
		Method:  models.PaymentMethodCOD,
		Label:   "Cash on Delivery",
		Enabled: total <= CODLimit,
	}
	if !cod.Enabled {
		cod.Reason = fmt.Sprintf("COD is not available for purchase greater than %d", CODLimit)
	}

	online := PaymentOption{
		Method:  models.PaymentMethodOnline,
		Label:   "Online Payment",
		Enabled: true,
		Default: true,
	}

	wallet := PaymentOption{
		Method:        models.PaymentMethodWallet,
		Label:         "Wallet Payment",
		Enabled:       walletBalance >= total,
		WalletBalance: walletBalance,
	}
	if !wallet.Enabled {
		wallet.Reason = "Insufficient Balance"
		wallet.Shortfall = total - walletBalance
	}

	return []PaymentOption{cod, online, wallet}
}

// MethodSelectable reports whether the given method is currently enabled.
func MethodSelectable(options []PaymentOption, method string) bool {
	for _, option := range options {
		if option.Method == method {
			return option.Enabled
		}
	}
	return false
}
