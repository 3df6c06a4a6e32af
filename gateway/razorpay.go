package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
)

// Result is the gateway's single-shot completion signal. The popup's success
// handler and its ondismiss callback are the two variants: an authorized
// payment carries a transaction id, a dismissal is treated identically to a
// declined payment.
type Result struct {
	Authorized    bool   `json:"authorized"`
	TransactionID string `json:"transactionId,omitempty"`
}

// PaymentIntent is everything the storefront needs to open the gateway's
// payment popup for one checkout. Amount is in minor currency units.
type PaymentIntent struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"keyId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Razorpay creates gateway orders over Razorpay's Orders API. The checkout
// service never sees card details; it only hands the intent to the frontend
// and waits for the callback route to report the outcome.
type Razorpay struct {
	keyID  string
	client *resty.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		keyID: keyID,
		client: resty.New().
			SetBaseURL("https://api.razorpay.com/v1").
			SetBasicAuth(keyID, keySecret).
			SetTimeout(30 * time.Second),
	}
}

// CreatePayment registers an order with the gateway and returns the intent
// the frontend opens the popup with.
func (g *Razorpay) CreatePayment(ctx context.Context, receipt string, amount float64, description string) (*PaymentIntent, error) {
	minorUnits := int64(math.Round(amount * 100))

	body := map[string]any{
		"amount":   minorUnits,
		"currency": "INR",
		"receipt":  receipt,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post("/orders")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var gatewayOrder struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &gatewayOrder); err != nil {
		return nil, fmt.Errorf("failed to parse gateway order response: %w", err)
	}
	if gatewayOrder.ID == "" {
		return nil, fmt.Errorf("gateway order id missing in response: %s", string(resp.Body()))
	}

	return &PaymentIntent{
		OrderID:     gatewayOrder.ID,
		Amount:      minorUnits,
		Currency:    "INR",
		KeyID:       g.keyID,
		Name:        "READHAVEN",
		Description: description,
	}, nil
}
